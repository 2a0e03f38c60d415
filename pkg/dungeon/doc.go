// Package dungeon provides an undirected room-connectivity graph used to
// model, validate, and query generated dungeon levels.
//
// # Overview
//
// Delvemap treats a dungeon as rooms joined by bidirectional passages. This
// package provides the core data structure: a map of room records plus
// symmetric adjacency sets. It answers the questions generation and gameplay
// code ask constantly - can the player get from here to there, how far is
// the boss, is every room reachable - without any knowledge of coordinates,
// rendering, or persistence.
//
// Two structural rules always hold: adjacency is symmetric (a passage from A
// to B is also a passage from B to A), and rooms never connect to themselves.
// Every adjacency entry refers to a room that exists in the graph.
//
// # Basic Usage
//
// Create a graph with [New], add rooms with [Graph.AddRoom], and passages
// with [Graph.Connect]:
//
//	g := dungeon.New(nil)
//	g.AddRoom(dungeon.Room{ID: "entrance", Type: dungeon.RoomStart})
//	g.AddRoom(dungeon.Room{ID: "hall"})
//	g.Connect("entrance", "hall")
//
// Query structure with [Graph.Neighbors], [Graph.Connected], [Graph.Degree]
// and related methods; measure the level with [Graph.Distance],
// [Graph.Farthest], and [Graph.Stats].
//
// # Mutation Policy
//
// Mutations are tolerant by design. Adding a duplicate room keeps the first
// record (first insert wins), connecting unknown rooms or a room to itself
// does nothing, and disconnecting an absent passage does nothing. Generators
// run long randomized edit sequences, and a misfired edit should never bring
// the build down - a malformed dungeon is caught wholesale by the
// connectivity gate instead. Callers that do want individual failures
// surfaced (typo hunting in handwritten level scripts, for instance) use
// [Graph.AddRoomChecked], [Graph.ConnectChecked], and
// [Graph.DisconnectChecked], which report sentinel errors.
//
// Lookups never fail: queries about unknown rooms return empty results,
// zero counts, or false.
//
// # The Connectivity Gate
//
// A dungeon where some rooms cannot be reached is unplayable. After
// generation, [Graph.IsConnected] decides whether the layout is accepted; a
// rejected layout is discarded with [Graph.Clear] and regenerated.
// [Graph.Components] names the stranded rooms when a human needs to debug a
// rejected layout.
//
// # Concurrency
//
// Graph instances are not safe for concurrent mutation. The intended
// lifecycle is a single-writer build phase followed by a read-only steady
// state, during which any number of goroutines may query the graph
// concurrently. Gameplay state changes (Room.State) after the build phase
// need external synchronization.
package dungeon
