package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	"github.com/delvemap/delvemap/pkg/dungeon"
	"github.com/delvemap/delvemap/pkg/layout"
)

// Minimap geometry tuning. Glyph radius shrinks as the room count grows so
// dense dungeons stay readable.
const (
	DefaultMinimapSize = 256

	minimapMargin  = 0.08  // fraction of the edge kept clear around the map
	glyphRadiusMax = 0.045 // fraction of the edge
	glyphRadiusMin = 0.018
	glyphShrinkAt  = 12 // room count where shrinking starts
)

// MinimapOption configures minimap rendering.
type MinimapOption func(*minimapRenderer)

type minimapRenderer struct {
	size       int
	background string
	showLabels bool
}

// WithSize sets the square edge length in pixels (default 256).
func WithSize(px int) MinimapOption {
	return func(r *minimapRenderer) { r.size = px }
}

// WithBackground sets a background fill color (default transparent).
func WithBackground(color string) MinimapOption {
	return func(r *minimapRenderer) { r.background = color }
}

// WithLabels draws room IDs under the glyphs. Only readable for small maps.
func WithLabels() MinimapOption {
	return func(r *minimapRenderer) { r.showLabels = true }
}

// Minimap draws a compact square SVG of the dungeon: connection lines
// first, then one glyph per room, shaped and colored by room type. Rooms
// without a position are skipped. The output needs no Graphviz engine and
// is deterministic for a given graph and positions.
func Minimap(g *dungeon.Graph, pos layout.Positions, opts ...MinimapOption) []byte {
	r := minimapRenderer{size: DefaultMinimapSize}
	for _, opt := range opts {
		opt(&r)
	}

	edge := float64(r.size)
	place := func(p layout.Point) (float64, float64) {
		inner := edge * (1 - 2*minimapMargin)
		return edge*minimapMargin + p.X*inner, edge*minimapMargin + p.Y*inner
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		r.size, r.size, r.size, r.size)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="%d" height="%d" fill=%q/>`+"\n", r.size, r.size, r.background)
	}

	// Connection lines go down first so glyphs draw on top of them.
	for _, room := range g.Rooms() {
		from, ok := pos[room.ID]
		if !ok {
			continue
		}
		for _, n := range g.NeighborIDs(room.ID) {
			to, ok := pos[n]
			if !ok || room.ID >= n {
				continue
			}
			x1, y1 := place(from)
			x2, y2 := place(to)
			fmt.Fprintf(&buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke=%q stroke-width="2"/>`+"\n",
				x1, y1, x2, y2, strokeEdge)
		}
	}

	radius := glyphRadius(edge, g.RoomCount())
	for _, room := range g.Rooms() {
		p, ok := pos[room.ID]
		if !ok {
			continue
		}
		x, y := place(p)
		renderGlyph(&buf, room, x, y, radius)
		if r.showLabels {
			fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" text-anchor="middle">%s</text>`+"\n",
				x, y+radius*2.2, radius*1.4, escapeXML(room.ID))
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func glyphRadius(edge float64, rooms int) float64 {
	r := glyphRadiusMax
	if rooms > glyphShrinkAt {
		r = glyphRadiusMax * float64(glyphShrinkAt) / float64(rooms)
	}
	return edge * math.Max(r, glyphRadiusMin)
}

// renderGlyph draws one room. Shapes follow the DOT mapping: circles for
// normal and shop rooms, a star for start, a box for boss, a diamond for
// treasure. Secret rooms get a dashed outline, locked rooms a thick one.
func renderGlyph(buf *bytes.Buffer, room *dungeon.Room, x, y, r float64) {
	fill := typeFill(room.Type)
	stroke := strokeRoom
	extra := ""
	if room.Type == dungeon.RoomSecret {
		extra = ` stroke-dasharray="3,2"`
	}
	if room.State == dungeon.StateLocked {
		extra += ` stroke-width="2.5"`
	}

	switch room.Type {
	case dungeon.RoomStart:
		fmt.Fprintf(buf, `  <polygon points="%s" fill=%q stroke=%q%s/>`+"\n",
			starPoints(x, y, r), fill, stroke, extra)
	case dungeon.RoomBoss:
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill=%q stroke=%q%s/>`+"\n",
			x-r, y-r, 2*r, 2*r, fill, stroke, extra)
	case dungeon.RoomTreasure:
		fmt.Fprintf(buf, `  <polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f" fill=%q stroke=%q%s/>`+"\n",
			x, y-r*1.2, x+r*1.2, y, x, y+r*1.2, x-r*1.2, y, fill, stroke, extra)
	default:
		fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill=%q stroke=%q%s/>`+"\n",
			x, y, r, fill, stroke, extra)
	}
}

// starPoints builds a five-pointed star centered on (x, y) with outer
// radius r, tip pointing up.
func starPoints(x, y, r float64) string {
	var buf bytes.Buffer
	inner := r * 0.45
	for i := 0; i < 10; i++ {
		radius := r
		if i%2 == 1 {
			radius = inner
		}
		angle := -math.Pi/2 + float64(i)*math.Pi/5
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%.1f,%.1f", x+radius*math.Cos(angle), y+radius*math.Sin(angle))
	}
	return buf.String()
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
