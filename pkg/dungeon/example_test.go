package dungeon_test

import (
	"fmt"

	"github.com/delvemap/delvemap/pkg/dungeon"
)

func ExampleGraph_basic() {
	// Model a tiny dungeon: entrance → hall → lair
	g := dungeon.New(nil)
	g.AddRoom(dungeon.Room{ID: "entrance", Type: dungeon.RoomStart})
	g.AddRoom(dungeon.Room{ID: "hall"})
	g.AddRoom(dungeon.Room{ID: "lair", Type: dungeon.RoomBoss})
	g.Connect("entrance", "hall")
	g.Connect("hall", "lair")

	fmt.Println("Rooms:", g.RoomCount())
	fmt.Println("Connections:", g.ConnectionCount())
	fmt.Println("Connected:", g.IsConnected())
	// Output:
	// Rooms: 3
	// Connections: 2
	// Connected: true
}

func ExampleGraph_queries() {
	// A hub room with three exits
	g := dungeon.New(nil)
	g.AddRoom(dungeon.Room{ID: "hub"})
	g.AddRoom(dungeon.Room{ID: "armory"})
	g.AddRoom(dungeon.Room{ID: "crypt"})
	g.AddRoom(dungeon.Room{ID: "well"})
	g.Connect("hub", "armory")
	g.Connect("hub", "crypt")
	g.Connect("hub", "well")

	fmt.Println("Neighbors of hub:", g.NeighborIDs("hub"))
	fmt.Println("Degree of hub:", g.Degree("hub"))
	fmt.Println("armory-crypt direct:", g.Connected("armory", "crypt"))
	// Output:
	// Neighbors of hub: [armory crypt well]
	// Degree of hub: 3
	// armory-crypt direct: false
}

func ExampleGraph_Distance() {
	// A corridor with a locked shortcut
	g := dungeon.New(nil)
	for _, id := range []string{"entrance", "corridor", "gallery", "lair"} {
		g.AddRoom(dungeon.Room{ID: id})
	}
	g.Connect("entrance", "corridor")
	g.Connect("corridor", "gallery")
	g.Connect("gallery", "lair")

	fmt.Println("To lair:", g.Distance("entrance", "lair"))

	// Opening a shortcut shortens the path
	g.Connect("entrance", "gallery")
	fmt.Println("With shortcut:", g.Distance("entrance", "lair"))

	// Unknown rooms are simply unreachable
	fmt.Println("To nowhere:", g.Distance("entrance", "nowhere"))
	// Output:
	// To lair: 3
	// With shortcut: 2
	// To nowhere: -1
}

func ExampleGraph_Farthest() {
	// Boss placement: the room farthest from the entrance
	g := dungeon.New(nil)
	for _, id := range []string{"entrance", "hall", "gallery", "depths"} {
		g.AddRoom(dungeon.Room{ID: id})
	}
	g.Connect("entrance", "hall")
	g.Connect("hall", "gallery")
	g.Connect("gallery", "depths")

	id, dist, _ := g.Farthest("entrance")
	fmt.Printf("Boss goes in %s (%d passages deep)\n", id, dist)
	// Output:
	// Boss goes in depths (3 passages deep)
}

func ExampleGraph_tolerantMutations() {
	// Mutations referring to unknown rooms are silent no-ops
	g := dungeon.New(nil)
	g.AddRoom(dungeon.Room{ID: "entrance"})
	g.Connect("entrance", "phantom") // phantom was never added
	g.Connect("entrance", "entrance")

	fmt.Println("Connections:", g.ConnectionCount())

	// The checked variants surface the refusal instead
	err := g.ConnectChecked("entrance", "phantom")
	fmt.Println("Checked:", err)
	// Output:
	// Connections: 0
	// Checked: unknown room
}

func ExampleGraph_Stats() {
	g := dungeon.New(nil)
	g.AddRoom(dungeon.Room{ID: "entrance", Type: dungeon.RoomStart})
	g.AddRoom(dungeon.Room{ID: "hall"})
	g.AddRoom(dungeon.Room{ID: "vault", Type: dungeon.RoomTreasure})
	g.Connect("entrance", "hall")
	g.Connect("hall", "vault")

	s := g.Stats()
	fmt.Println("Rooms:", s.Rooms)
	fmt.Println("Connections:", s.Connections)
	fmt.Println("Treasures:", s.ByType[dungeon.RoomTreasure])
	// Output:
	// Rooms: 3
	// Connections: 2
	// Treasures: 1
}
