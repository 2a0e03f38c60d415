package dungeon

import "slices"

// Unreachable is returned by [Graph.Distance] when no path exists between
// the two rooms, or when either endpoint is unknown.
const Unreachable = -1

// Distance returns the number of passages on a shortest path between two
// rooms, computed with a breadth-first search. Returns 0 when from and to
// name the same existing room, and Unreachable when either endpoint is
// unknown or the rooms lie in different components.
//
// Rooms are marked visited when enqueued, so each room enters the frontier
// at most once, and the search stops as soon as the target is reached.
func (g *Graph) Distance(from, to string) int {
	if _, ok := g.rooms[from]; !ok {
		return Unreachable
	}
	if _, ok := g.rooms[to]; !ok {
		return Unreachable
	}
	if from == to {
		return 0
	}

	type frontierRoom struct {
		id    string
		depth int
	}

	visited := map[string]struct{}{from: {}}
	queue := []frontierRoom{{id: from, depth: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for neighbor := range g.adj[cur.id] {
			if _, seen := visited[neighbor]; seen {
				continue
			}
			if neighbor == to {
				return cur.depth + 1
			}
			visited[neighbor] = struct{}{}
			queue = append(queue, frontierRoom{id: neighbor, depth: cur.depth + 1})
		}
	}
	return Unreachable
}

// Farthest returns the room at the greatest shortest-path distance from the
// given room, together with that distance. A full breadth-first search is
// run, so unreachable rooms are never candidates. Returns ok=false if the
// starting room is unknown. When several rooms share the maximum distance
// the choice between them is arbitrary.
//
// Generators use this to place the boss encounter at the end of the longest
// forced walk from the entrance.
func (g *Graph) Farthest(from string) (id string, dist int, ok bool) {
	if _, exists := g.rooms[from]; !exists {
		return "", 0, false
	}

	type frontierRoom struct {
		id    string
		depth int
	}

	visited := map[string]struct{}{from: {}}
	queue := []frontierRoom{{id: from, depth: 0}}
	id, dist = from, 0

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.depth > dist {
			id, dist = cur.id, cur.depth
		}

		for neighbor := range g.adj[cur.id] {
			if _, seen := visited[neighbor]; seen {
				continue
			}
			visited[neighbor] = struct{}{}
			queue = append(queue, frontierRoom{id: neighbor, depth: cur.depth + 1})
		}
	}
	return id, dist, true
}

// IsConnected reports whether every room is reachable from every other room,
// i.e. the graph forms a single component. An empty graph is connected.
//
// The check runs a depth-first search with an explicit stack from an
// arbitrary room and compares the visited count against the room count.
// This is the generation acceptance gate: a dungeon where some rooms cannot
// be reached is unplayable and must be discarded.
func (g *Graph) IsConnected() bool {
	if len(g.rooms) == 0 {
		return true
	}

	var start string
	for id := range g.rooms {
		start = id
		break
	}

	visited := map[string]struct{}{start: {}}
	stack := []string{start}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for neighbor := range g.adj[cur] {
			if _, seen := visited[neighbor]; seen {
				continue
			}
			visited[neighbor] = struct{}{}
			stack = append(stack, neighbor)
		}
	}
	return len(visited) == len(g.rooms)
}

// Components returns the connected components of the graph as slices of room
// IDs. Each component is sorted by ID; components are ordered by their
// smallest member. Returns an empty slice for an empty graph.
//
// Used for diagnostics when the connectivity gate rejects a layout: the
// component split tells the caller which rooms ended up stranded.
func (g *Graph) Components() [][]string {
	visited := make(map[string]struct{}, len(g.rooms))
	var components [][]string

	for _, seed := range g.Rooms() {
		if _, seen := visited[seed.ID]; seen {
			continue
		}

		var component []string
		visited[seed.ID] = struct{}{}
		stack := []string{seed.ID}

		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			component = append(component, cur)

			for neighbor := range g.adj[cur] {
				if _, seen := visited[neighbor]; seen {
					continue
				}
				visited[neighbor] = struct{}{}
				stack = append(stack, neighbor)
			}
		}

		slices.Sort(component)
		components = append(components, component)
	}
	return components
}
