package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goccy/go-graphviz"
)

func engineAvailable() bool {
	gv, err := graphviz.New(context.Background())
	if err != nil {
		return false
	}
	defer gv.Close()
	return true
}

func TestRenderSVG(t *testing.T) {
	if !engineAvailable() {
		t.Skip("graphviz engine unavailable")
	}

	dot := ToDOT(buildDungeon(), DOTOptions{})
	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("output does not look like SVG")
	}
	if !bytes.Contains(svg, []byte(`viewBox="0 0 `)) {
		t.Error("viewBox not normalized to origin")
	}
}

func TestRenderSVGBadDOT(t *testing.T) {
	if !engineAvailable() {
		t.Skip("graphviz engine unavailable")
	}

	if _, err := RenderSVG(context.Background(), "graph { unclosed"); err == nil {
		t.Error("malformed DOT should fail")
	}
}

func TestRenderPNG(t *testing.T) {
	if !engineAvailable() {
		t.Skip("graphviz engine unavailable")
	}

	dot := ToDOT(buildDungeon(), DOTOptions{})
	png, err := RenderPNG(context.Background(), dot, 1.0)
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output does not start with PNG magic bytes")
	}
}

func TestWithScale(t *testing.T) {
	dot := "graph dungeon {\n  \"a\";\n}\n"

	t.Run("InjectsDPI", func(t *testing.T) {
		scaled := withScale(dot, 2.0)
		if !strings.Contains(scaled, "dpi=192;") {
			t.Errorf("dpi not injected: %s", scaled)
		}
		if !strings.HasPrefix(scaled, "graph dungeon {") {
			t.Errorf("graph header damaged: %s", scaled)
		}
	})

	t.Run("UnitScaleUntouched", func(t *testing.T) {
		if withScale(dot, 1.0) != dot {
			t.Error("scale 1.0 should not modify the DOT")
		}
	})

	t.Run("ZeroScaleUntouched", func(t *testing.T) {
		if withScale(dot, 0) != dot {
			t.Error("zero scale should not modify the DOT")
		}
	})

	t.Run("NoBrace", func(t *testing.T) {
		if withScale("not dot at all", 2.0) != "not dot at all" {
			t.Error("input without a brace should pass through")
		}
	})
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>` + "\n" +
		`<svg width="3in" height="2in" viewBox="0.00 0.00 216.00 144.00" xmlns="http://www.w3.org/2000/svg">` +
		`<g></g></svg>`)

	out := normalizeViewBox(in)
	if !bytes.Contains(out, []byte(`viewBox="0 0 216.00 144.00" width="216" height="144"`)) {
		t.Errorf("viewBox not normalized: %s", out)
	}

	t.Run("NoViewBoxPassesThrough", func(t *testing.T) {
		in := []byte(`<svg><g/></svg>`)
		if !bytes.Equal(normalizeViewBox(in), in) {
			t.Error("svg without viewBox should pass through")
		}
	})
}
