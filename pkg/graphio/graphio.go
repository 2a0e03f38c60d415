package graphio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/delvemap/delvemap/pkg/dungeon"
)

// Marshal converts a dungeon graph to JSON bytes.
// Rooms and connections are sorted for deterministic output.
func Marshal(g *dungeon.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal deserializes JSON bytes to a wire Graph without building a
// dungeon. Use ToDungeon to validate and construct the graph.
func Unmarshal(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// WriteFile writes a dungeon graph to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(g *dungeon.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTo(g, f)
}

// Write writes a dungeon graph as JSON to an io.Writer.
// Use Marshal for in-memory serialization or WriteFile for files.
func Write(g *dungeon.Graph, w io.Writer) error {
	return writeTo(g, w)
}

// ReadFile reads a JSON file and returns the decoded dungeon graph.
// Returns validation errors for malformed files or structural violations
// (duplicate rooms, connections to unknown rooms).
func ReadFile(path string) (*dungeon.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readFrom(f)
}

// Read decodes a JSON graph from an io.Reader into a dungeon graph.
// Use ReadFile for files or pass bytes.NewReader for in-memory data.
func Read(r io.Reader) (*dungeon.Graph, error) {
	return readFrom(r)
}

func writeTo(g *dungeon.Graph, w io.Writer) error {
	out := FromDungeon(g)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readFrom(r io.Reader) (*dungeon.Graph, error) {
	var data Graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToDungeon(data)
}
