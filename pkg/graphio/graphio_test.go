package graphio

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/delvemap/delvemap/pkg/dungeon"
)

func TestMarshal(t *testing.T) {
	tests := []struct {
		name            string
		build           func() *dungeon.Graph
		wantRooms       int
		wantConnections int
		check           func(t *testing.T, g Graph)
	}{
		{
			name:            "Empty",
			build:           func() *dungeon.Graph { return dungeon.New(nil) },
			wantRooms:       0,
			wantConnections: 0,
		},
		{
			name: "Simple",
			build: func() *dungeon.Graph {
				g := dungeon.New(nil)
				g.AddRoom(dungeon.Room{ID: "entrance", Type: dungeon.RoomStart})
				g.AddRoom(dungeon.Room{ID: "hall"})
				g.Connect("entrance", "hall")
				return g
			},
			wantRooms:       2,
			wantConnections: 1,
		},
		{
			name: "ConnectionsCanonicalized",
			build: func() *dungeon.Graph {
				g := dungeon.New(nil)
				g.AddRoom(dungeon.Room{ID: "b"})
				g.AddRoom(dungeon.Room{ID: "a"})
				g.Connect("b", "a") // stored once as a-b regardless of call order
				return g
			},
			wantRooms:       2,
			wantConnections: 1,
			check: func(t *testing.T, g Graph) {
				if g.Connections[0].A != "a" || g.Connections[0].B != "b" {
					t.Errorf("connection = %+v, want a-b", g.Connections[0])
				}
			},
		},
		{
			name: "PreservesMetadata",
			build: func() *dungeon.Graph {
				g := dungeon.New(nil)
				g.AddRoom(dungeon.Room{
					ID: "vault",
					Meta: dungeon.Metadata{
						"loot_table": "rare",
						"depth":      "3",
					},
				})
				return g
			},
			wantRooms:       1,
			wantConnections: 0,
			check: func(t *testing.T, g Graph) {
				if g.Rooms[0].Meta["loot_table"] != "rare" {
					t.Errorf("loot_table = %v, want rare", g.Rooms[0].Meta["loot_table"])
				}
			},
		},
		{
			name: "Ring",
			build: func() *dungeon.Graph {
				g := dungeon.New(nil)
				for _, id := range []string{"a", "b", "c", "d"} {
					g.AddRoom(dungeon.Room{ID: id})
				}
				g.Connect("a", "b")
				g.Connect("b", "c")
				g.Connect("c", "d")
				g.Connect("d", "a")
				return g
			},
			wantRooms:       4,
			wantConnections: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.build()

			data, err := Marshal(g)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}

			var result Graph
			if err := json.Unmarshal(data, &result); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}

			if got := len(result.Rooms); got != tt.wantRooms {
				t.Errorf("rooms = %d, want %d", got, tt.wantRooms)
			}
			if got := len(result.Connections); got != tt.wantConnections {
				t.Errorf("connections = %d, want %d", got, tt.wantConnections)
			}

			if tt.check != nil {
				tt.check(t, result)
			}
		})
	}
}

func TestMarshalDeterministic(t *testing.T) {
	build := func(order []string) *dungeon.Graph {
		g := dungeon.New(nil)
		for _, id := range order {
			g.AddRoom(dungeon.Room{ID: id})
		}
		g.Connect("c", "a")
		g.Connect("a", "b")
		return g
	}

	first, err := Marshal(build([]string{"a", "b", "c"}))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	second, err := Marshal(build([]string{"c", "b", "a"}))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("exports differ for equivalent dungeons:\n%s\nvs\n%s", first, second)
	}
}

func TestRead(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		check   func(t *testing.T, g *dungeon.Graph)
	}{
		{
			name:  "Valid",
			input: `{"rooms":[{"id":"entrance","type":"start"},{"id":"hall"}],"connections":[{"a":"entrance","b":"hall"}]}`,
			check: func(t *testing.T, g *dungeon.Graph) {
				if g.RoomCount() != 2 {
					t.Errorf("RoomCount = %d, want 2", g.RoomCount())
				}
				if !g.Connected("entrance", "hall") {
					t.Error("Connected(entrance, hall) = false, want true")
				}
				if r, _ := g.Room("entrance"); r.Type != dungeon.RoomStart {
					t.Errorf("entrance type = %v, want start", r.Type)
				}
			},
		},
		{
			name:  "DefaultsApplied",
			input: `{"rooms":[{"id":"hall"}],"connections":[]}`,
			check: func(t *testing.T, g *dungeon.Graph) {
				r, _ := g.Room("hall")
				if r.Type != dungeon.RoomNormal {
					t.Errorf("type = %v, want normal", r.Type)
				}
				if r.State != dungeon.StateUnlocked {
					t.Errorf("state = %v, want unlocked", r.State)
				}
			},
		},
		{
			name:    "MalformedJSON",
			input:   `{"rooms": [`,
			wantErr: true,
		},
		{
			name:    "DuplicateRoom",
			input:   `{"rooms":[{"id":"hall"},{"id":"hall"}],"connections":[]}`,
			wantErr: true,
		},
		{
			name:    "UnknownEndpoint",
			input:   `{"rooms":[{"id":"hall"}],"connections":[{"a":"hall","b":"phantom"}]}`,
			wantErr: true,
		},
		{
			name:    "SelfConnection",
			input:   `{"rooms":[{"id":"hall"}],"connections":[{"a":"hall","b":"hall"}]}`,
			wantErr: true,
		},
		{
			name:    "EmptyRoomID",
			input:   `{"rooms":[{"id":""}],"connections":[]}`,
			wantErr: true,
		},
		{
			name:    "TraversalRoomID",
			input:   `{"rooms":[{"id":"../../etc/passwd"}],"connections":[]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Read(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Read error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, g)
			}
		})
	}
}

func TestRoundTripFile(t *testing.T) {
	g := dungeon.New(nil)
	g.AddRoom(dungeon.Room{ID: "entrance", Type: dungeon.RoomStart, State: dungeon.StateCleared})
	g.AddRoom(dungeon.Room{ID: "hall"})
	g.AddRoom(dungeon.Room{ID: "lair", Type: dungeon.RoomBoss, State: dungeon.StateLocked})
	g.Connect("entrance", "hall")
	g.Connect("hall", "lair")

	path := filepath.Join(t.TempDir(), "crypt.json")
	if err := WriteFile(g, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	loaded, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if loaded.RoomCount() != g.RoomCount() {
		t.Errorf("RoomCount = %d, want %d", loaded.RoomCount(), g.RoomCount())
	}
	if loaded.ConnectionCount() != g.ConnectionCount() {
		t.Errorf("ConnectionCount = %d, want %d", loaded.ConnectionCount(), g.ConnectionCount())
	}
	if r, _ := loaded.Room("lair"); r.Type != dungeon.RoomBoss || r.State != dungeon.StateLocked {
		t.Errorf("lair = %+v, want boss/locked", r)
	}
	if !loaded.Connected("hall", "entrance") {
		t.Error("Connected(hall, entrance) = false after round trip")
	}
}

func TestFromStats(t *testing.T) {
	g := dungeon.New(nil)
	g.AddRoom(dungeon.Room{ID: "entrance", Type: dungeon.RoomStart})
	g.AddRoom(dungeon.Room{ID: "hall"})
	g.Connect("entrance", "hall")

	s := FromStats(g.Stats())
	if s.Rooms != 2 || s.Connections != 1 {
		t.Errorf("stats = %+v, want 2 rooms, 1 connection", s)
	}
	if s.ByType["start"] != 1 {
		t.Errorf("ByType[start] = %d, want 1", s.ByType["start"])
	}
	if !s.Connected {
		t.Error("Connected = false, want true")
	}
}
