package render

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/delvemap/delvemap/pkg/dungeon"
	"github.com/delvemap/delvemap/pkg/layout"
)

// posScale is the default frame edge for pinned positions, in points.
const posScale = 500.0

// DOTOptions configures DOT generation.
type DOTOptions struct {
	// Detailed includes type, state, and degree in node labels.
	// When false, only the room ID is shown.
	Detailed bool

	// Positions pins rooms to precomputed coordinates so the full map
	// matches the minimap geometry. When nil, neato places rooms itself.
	Positions layout.Positions

	// Width and Height set the frame pinned positions map onto, in points.
	// Positions keep their aspect ratio: they scale by the shorter side and
	// center along the longer one. Zero means a posScale square.
	Width  float64
	Height float64
}

// ToDOT converts a dungeon to Graphviz DOT format. The graph is undirected;
// each connection appears exactly once. Output is deterministic: rooms and
// connections are emitted in sorted ID order.
func ToDOT(g *dungeon.Graph, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("graph dungeon {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=filled, fontsize=12, margin=\"0.1,0.05\"];\n")
	fmt.Fprintf(&buf, "  edge [color=%q, penwidth=2];\n", strokeEdge)
	buf.WriteString("\n")

	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = posScale
	}
	if h <= 0 {
		h = posScale
	}

	for _, r := range g.Rooms() {
		label := fmtLabel(g, r, opts.Detailed)
		attrs := fmtAttrs(r, label, opts.Positions, w, h)
		fmt.Fprintf(&buf, "  %q [%s];\n", r.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, r := range g.Rooms() {
		for _, n := range g.NeighborIDs(r.ID) {
			if r.ID < n {
				fmt.Fprintf(&buf, "  %q -- %q;\n", r.ID, n)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(g *dungeon.Graph, r *dungeon.Room, detailed bool) string {
	if !detailed {
		return r.ID
	}
	parts := []string{
		r.ID,
		string(r.Type),
		string(r.State),
		fmt.Sprintf("degree: %d", g.Degree(r.ID)),
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(r *dungeon.Room, label string, pos layout.Positions, w, h float64) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("shape=%s", typeShape(r.Type)),
		fmt.Sprintf("fillcolor=%q", typeFill(r.Type)),
	}
	if r.State == dungeon.StateLocked {
		attrs = append(attrs, "style=\"filled,dashed\"")
	}
	if p, ok := pos[r.ID]; ok {
		// DOT Y grows upward, screen Y downward. The "!" suffix pins the
		// node so neato keeps it in place.
		scale := math.Min(w, h)
		x := p.X*scale + (w-scale)/2
		y := (1-p.Y)*scale + (h-scale)/2
		attrs = append(attrs, fmt.Sprintf("pos=\"%.2f,%.2f!\"", x, y))
	}
	return attrs
}
