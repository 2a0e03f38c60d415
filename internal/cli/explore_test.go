package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/delvemap/delvemap/pkg/dungeon/gen"
)

func TestNewExploreModelDistances(t *testing.T) {
	m := NewExploreModel(connectedGraph(t))

	if len(m.Rooms) != 3 {
		t.Fatalf("rooms = %d, want 3", len(m.Rooms))
	}
	if d := m.distances["entry"]; d != 0 {
		t.Errorf("distance(entry) = %d, want 0", d)
	}
	if d := m.distances["lair"]; d != 2 {
		t.Errorf("distance(lair) = %d, want 2", d)
	}
}

func TestExploreModelUnreachableRoomHasNoDistance(t *testing.T) {
	m := NewExploreModel(splitGraph(t))

	if _, ok := m.distances["crypt"]; ok {
		t.Error("stranded room should have no distance entry")
	}
	if got := m.distanceLabel("crypt"); got != "—" {
		t.Errorf("distanceLabel(crypt) = %q, want dash", got)
	}
}

func TestExploreModelNavigation(t *testing.T) {
	m := NewExploreModel(connectedGraph(t))
	m.Height = 2

	down := tea.KeyMsg{Type: tea.KeyDown}
	up := tea.KeyMsg{Type: tea.KeyUp}
	step := func(msg tea.Msg) {
		next, _ := m.Update(msg)
		m = next.(ExploreModel)
	}

	step(down)
	if m.Cursor != 1 {
		t.Errorf("cursor = %d after down, want 1", m.Cursor)
	}

	step(down)
	if m.Cursor != 2 || m.Offset != 1 {
		t.Errorf("cursor/offset = %d/%d, want 2/1 (scrolled)", m.Cursor, m.Offset)
	}

	step(down) // at the last room, stays put
	if m.Cursor != 2 {
		t.Errorf("cursor = %d at bottom, want 2", m.Cursor)
	}

	step(up)
	step(up)
	if m.Cursor != 0 || m.Offset != 0 {
		t.Errorf("cursor/offset = %d/%d after ups, want 0/0", m.Cursor, m.Offset)
	}

	step(up) // at the top, stays put
	if m.Cursor != 0 {
		t.Errorf("cursor = %d at top, want 0", m.Cursor)
	}
}

func TestExploreModelQuitKeys(t *testing.T) {
	m := NewExploreModel(connectedGraph(t))

	msgs := map[string]tea.KeyMsg{
		"q":      {Type: tea.KeyRunes, Runes: []rune{'q'}},
		"esc":    {Type: tea.KeyEsc},
		"ctrl+c": {Type: tea.KeyCtrlC},
	}
	for key, msg := range msgs {
		if _, cmd := m.Update(msg); cmd == nil {
			t.Errorf("key %q should quit", key)
		}
	}
}

func TestExploreModelWindowResize(t *testing.T) {
	m := NewExploreModel(connectedGraph(t))

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = next.(ExploreModel)
	if m.Height != 24 {
		t.Errorf("height = %d after resize, want 24", m.Height)
	}

	next, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 8})
	m = next.(ExploreModel)
	if m.Height != 5 {
		t.Errorf("height = %d for tiny window, want floor of 5", m.Height)
	}
}

func TestExploreModelView(t *testing.T) {
	g, err := gen.Generate(gen.Options{Rooms: 10, Seed: 3})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	m := NewExploreModel(g)

	view := m.View()
	for _, want := range []string{"Explore Dungeon", "From Start", "Doors"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if !strings.Contains(view, m.Rooms[0].ID) {
		t.Errorf("view missing first room %q", m.Rooms[0].ID)
	}
}

func TestExploreModelNeighborPanel(t *testing.T) {
	m := NewExploreModel(connectedGraph(t))

	// entry sorts first and connects only to the hall.
	panel := m.neighborPanel()
	if !strings.Contains(panel, "entry") || !strings.Contains(panel, "hall") {
		t.Errorf("panel %q should name the room and its neighbor", panel)
	}
	if strings.Contains(panel, "lair") {
		t.Errorf("panel %q should not list unconnected rooms", panel)
	}
}
