// Package graphio provides serialization for dungeon graphs.
//
// This package defines the canonical wire format for Delvemap's dungeon data,
// used for JSON files, API requests and responses, caching, and persistence.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Graph], [Room], [Connection], [Stats]: Wire types (this package)
//   - pkg/dungeon.Graph: Internal graph representation
//
// Use [FromDungeon]/[ToDungeon] to convert between them.
//
// # Wire Format
//
// Dungeons use a simple room-connection JSON format:
//
//	{
//	  "rooms": [
//	    {"id": "entrance", "type": "start", "state": "cleared"},
//	    {"id": "hall", "type": "normal", "state": "unlocked"}
//	  ],
//	  "connections": [{"a": "entrance", "b": "hall"}]
//	}
//
// Each passage appears exactly once with endpoints in ascending order, and
// rooms are sorted by ID, so two exports of the same dungeon are
// byte-identical. The same structs carry bson tags and double as the
// MongoDB document shape.
//
// Common operations:
//
//	g, _ := graphio.ReadFile("crypt.json")    // File → dungeon
//	graphio.WriteFile(g, "out.json")          // Dungeon → file
//	data, _ := graphio.Marshal(g)             // Dungeon → []byte
//	wire, _ := graphio.Unmarshal(data)        // []byte → Graph
//
// # Ingest Strictness
//
// Where the core graph tolerates malformed mutations, ingest does not:
// duplicate room IDs, connections naming unknown rooms, and
// self-connections fail [ToDungeon] with a descriptive error. A corrupted
// file should be rejected loudly, not silently repaired into a different
// dungeon.
package graphio
