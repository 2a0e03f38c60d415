package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/delvemap/delvemap/pkg/dungeon"
	"github.com/delvemap/delvemap/pkg/layout"
)

func minimapFixture() (*dungeon.Graph, layout.Positions) {
	g := buildDungeon()
	pos := layout.Positions{
		"entry": {X: 0.1, Y: 0.5},
		"hall":  {X: 0.5, Y: 0.5},
		"vault": {X: 0.9, Y: 0.2},
		"lair":  {X: 0.9, Y: 0.8},
	}
	return g, pos
}

// wellFormed runs the bytes through an XML tokenizer to catch unclosed
// tags and bad escaping.
func wellFormed(t *testing.T, svg []byte) {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(svg))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("minimap is not well-formed XML: %v\n%s", err, svg)
		}
	}
}

func TestMinimap(t *testing.T) {
	g, pos := minimapFixture()
	svg := Minimap(g, pos)
	wellFormed(t, svg)

	t.Run("DefaultSize", func(t *testing.T) {
		if !bytes.Contains(svg, []byte(`viewBox="0 0 256 256"`)) {
			t.Error("default minimap should be 256x256")
		}
	})

	t.Run("LinesUnderGlyphs", func(t *testing.T) {
		firstLine := bytes.Index(svg, []byte("<line"))
		firstGlyph := bytes.Index(svg, []byte("<circle"))
		if firstLine < 0 || firstGlyph < 0 {
			t.Fatal("minimap missing lines or glyphs")
		}
		if firstLine > firstGlyph {
			t.Error("connection lines must be drawn before room glyphs")
		}
	})

	t.Run("OneLinePerConnection", func(t *testing.T) {
		if n := bytes.Count(svg, []byte("<line")); n != 3 {
			t.Errorf("%d lines drawn, want 3", n)
		}
	})

	t.Run("GlyphShapes", func(t *testing.T) {
		if n := bytes.Count(svg, []byte("<polygon")); n != 2 {
			t.Errorf("%d polygons drawn, want 2 (star + diamond)", n)
		}
		if n := bytes.Count(svg, []byte("<rect")); n != 1 {
			t.Errorf("%d rects drawn, want 1 (boss)", n)
		}
		if n := bytes.Count(svg, []byte("<circle")); n != 1 {
			t.Errorf("%d circles drawn, want 1 (normal)", n)
		}
	})

	t.Run("NoLabelsByDefault", func(t *testing.T) {
		if bytes.Contains(svg, []byte("<text")) {
			t.Error("labels should be off by default")
		}
	})
}

func TestMinimapOptions(t *testing.T) {
	g, pos := minimapFixture()

	t.Run("Size", func(t *testing.T) {
		svg := Minimap(g, pos, WithSize(128))
		if !bytes.Contains(svg, []byte(`viewBox="0 0 128 128"`)) {
			t.Error("WithSize(128) not applied")
		}
	})

	t.Run("Background", func(t *testing.T) {
		svg := Minimap(g, pos, WithBackground("#101014"))
		wellFormed(t, svg)
		if !bytes.Contains(svg, []byte(`<rect width="256" height="256" fill="#101014"/>`)) {
			t.Error("background rect missing")
		}
	})

	t.Run("Labels", func(t *testing.T) {
		svg := Minimap(g, pos, WithLabels())
		wellFormed(t, svg)
		if n := bytes.Count(svg, []byte("<text")); n != 4 {
			t.Errorf("%d labels drawn, want 4", n)
		}
		if !bytes.Contains(svg, []byte(">hall</text>")) {
			t.Error("label text missing")
		}
	})
}

func TestMinimapSecretDashed(t *testing.T) {
	g := dungeon.New(nil)
	g.AddRoom(dungeon.Room{ID: "wall", Type: dungeon.RoomSecret})
	svg := Minimap(g, layout.Positions{"wall": {X: 0.5, Y: 0.5}})

	if !bytes.Contains(svg, []byte(`stroke-dasharray`)) {
		t.Error("secret room glyph should have a dashed outline")
	}
}

func TestMinimapSkipsUnplacedRooms(t *testing.T) {
	g, pos := minimapFixture()
	delete(pos, "vault")
	svg := Minimap(g, pos)
	wellFormed(t, svg)

	// vault's glyph and its connection line disappear.
	if bytes.Contains(svg, []byte("<polygon")) && bytes.Count(svg, []byte("<polygon")) != 1 {
		t.Error("unplaced treasure room still drawn")
	}
	if n := bytes.Count(svg, []byte("<line")); n != 2 {
		t.Errorf("%d lines drawn, want 2 after dropping vault", n)
	}
}

func TestMinimapLabelEscaping(t *testing.T) {
	g := dungeon.New(nil)
	g.AddRoom(dungeon.Room{ID: "cell<3&co"})
	svg := Minimap(g, layout.Positions{"cell<3&co": {X: 0.5, Y: 0.5}}, WithLabels())
	wellFormed(t, svg)

	if !bytes.Contains(svg, []byte("cell&lt;3&amp;co")) {
		t.Error("label with XML metacharacters not escaped")
	}
}

func TestMinimapDeterministic(t *testing.T) {
	g, pos := minimapFixture()
	if !bytes.Equal(Minimap(g, pos), Minimap(g, pos)) {
		t.Error("minimap output should be deterministic")
	}
}

func TestGlyphRadiusShrinks(t *testing.T) {
	small := glyphRadius(256, 8)
	large := glyphRadius(256, 40)
	if large >= small {
		t.Errorf("radius should shrink with room count: %f vs %f", large, small)
	}
	if floor := 256 * glyphRadiusMin; large < floor-1e-9 {
		t.Errorf("radius %f below floor %f", large, floor)
	}
}

func ExampleMinimap() {
	g := dungeon.New(nil)
	g.AddRoom(dungeon.Room{ID: "a"})
	g.AddRoom(dungeon.Room{ID: "b"})
	g.Connect("a", "b")

	svg := Minimap(g, layout.Positions{
		"a": {X: 0, Y: 0.5},
		"b": {X: 1, Y: 0.5},
	}, WithSize(64))

	fmt.Println(strings.Split(string(svg), "\n")[0])
	// Output:
	// <svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 64" width="64" height="64">
}
