package dungeon

// Stats is a read-only summary of a dungeon graph, suitable for validation
// reports and balancing dashboards.
type Stats struct {
	Rooms          int              // Total room count
	Connections    int              // Distinct passages (each counted once)
	AvgConnections float64          // Mean passages per room (0 for an empty graph)
	Connected      bool             // Whether the graph forms a single component
	ByType         map[RoomType]int // Room count per type (only present types appear)
}

// Stats computes a summary of the graph. The computation is a pure read and
// never modifies the graph, so it is safe to call concurrently with other
// reads.
func (g *Graph) Stats() Stats {
	s := Stats{
		Rooms:       len(g.rooms),
		Connections: g.ConnectionCount(),
		Connected:   g.IsConnected(),
		ByType:      make(map[RoomType]int),
	}
	for _, r := range g.rooms {
		s.ByType[r.Type]++
	}
	if s.Rooms > 0 {
		s.AvgConnections = float64(2*s.Connections) / float64(s.Rooms)
	}
	return s
}
