package layout

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/goccy/go-graphviz"

	"github.com/delvemap/delvemap/pkg/dungeon"
	apperrors "github.com/delvemap/delvemap/pkg/errors"
)

// plainFormat asks Graphviz for its line-oriented "plain" output, which
// carries one node record per line with layout coordinates.
const plainFormat = graphviz.Format("plain")

// Graphviz computes positions with the neato engine, which handles
// undirected graphs well. Room coordinates are extracted from Graphviz's
// plain output and normalized to the unit square.
type Graphviz struct {
	once      sync.Once
	available bool
}

// NewGraphviz creates the Graphviz provider.
func NewGraphviz() *Graphviz {
	return &Graphviz{}
}

// Name identifies the provider.
func (p *Graphviz) Name() string { return "graphviz" }

// Available reports whether the embedded Graphviz engine initializes.
// The probe runs once and the result is cached for the provider's lifetime.
func (p *Graphviz) Available() bool {
	p.once.Do(func() {
		gv, err := graphviz.New(context.Background())
		if err != nil {
			return
		}
		defer gv.Close()
		p.available = true
	})
	return p.available
}

// Layout runs neato over the dungeon and returns normalized positions.
func (p *Graphviz) Layout(ctx context.Context, g *dungeon.Graph) (Positions, error) {
	if g.RoomCount() == 0 {
		return Positions{}, nil
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeLayoutUnavailable, err, "initialize graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	graph, err := graphviz.ParseBytes([]byte(layoutDOT(g)))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeLayoutUnavailable, err, "parse layout graph")
	}
	defer graph.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, plainFormat, &buf); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeLayoutUnavailable, err, "compute layout")
	}

	pos := parsePlain(buf.String())
	for _, r := range g.Rooms() {
		if _, ok := pos[r.ID]; !ok {
			return nil, apperrors.New(apperrors.ErrCodeLayoutUnavailable,
				"graphviz output missing room %q", r.ID)
		}
	}
	return normalize(pos), nil
}

// layoutDOT builds the minimal undirected DOT used for coordinate
// computation. Rendering attributes live in pkg/render; this graph only
// needs topology.
func layoutDOT(g *dungeon.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=point];\n")

	for _, r := range g.Rooms() {
		fmt.Fprintf(&buf, "  %q;\n", r.ID)
	}
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

// parsePlain extracts node coordinates from Graphviz plain output. Records
// look like:
//
//	node "room-01" 1.75 2.11 0.05 0.05 ...
//
// Names containing spaces are quoted, so fields are split quote-aware.
func parsePlain(out string) Positions {
	pos := make(Positions)
	for _, line := range strings.Split(out, "\n") {
		fields := splitPlainFields(line)
		if len(fields) < 4 || fields[0] != "node" {
			continue
		}
		x, errX := strconv.ParseFloat(fields[2], 64)
		y, errY := strconv.ParseFloat(fields[3], 64)
		if errX != nil || errY != nil {
			continue
		}
		pos[fields[1]] = Point{X: x, Y: y}
	}
	return pos
}

// splitPlainFields splits a plain-output line on spaces, honoring quoted
// fields and backslash-escaped quotes inside them.
func splitPlainFields(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuote := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case inQuote && c == '\\' && i+1 < len(line) && line[i+1] == '"':
			cur.WriteByte('"')
			i++
		case c == '"':
			inQuote = !inQuote
		case (c == ' ' || c == '\t') && !inQuote:
			if cur.Len() > 0 {
				fields = append(fields, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteByte(c)
		}
	}
	if cur.Len() > 0 {
		fields = append(fields, cur.String())
	}
	return fields
}

// Ensure Graphviz implements Provider.
var _ Provider = (*Graphviz)(nil)
