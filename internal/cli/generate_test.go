package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/delvemap/delvemap/pkg/errors"
	"github.com/delvemap/delvemap/pkg/graphio"
)

func TestRunGenerateWritesGraph(t *testing.T) {
	out := filepath.Join(t.TempDir(), "depths.json")

	c := New(io.Discard, LogInfo)
	opts := generateOpts{rooms: 9, seed: 4, output: out}
	if err := c.runGenerate(context.Background(), &opts); err != nil {
		t.Fatalf("runGenerate() error: %v", err)
	}

	g, err := graphio.ReadFile(out)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if g.RoomCount() != 9 {
		t.Errorf("rooms = %d, want 9", g.RoomCount())
	}
	if !g.IsConnected() {
		t.Error("generated dungeon must be connected")
	}
}

func TestRunGenerateReproducible(t *testing.T) {
	dir := t.TempDir()
	c := New(io.Discard, LogInfo)

	paths := []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")}
	for _, p := range paths {
		opts := generateOpts{rooms: 8, seed: 21, output: p}
		if err := c.runGenerate(context.Background(), &opts); err != nil {
			t.Fatalf("runGenerate() error: %v", err)
		}
	}

	a, _ := os.ReadFile(paths[0])
	b, _ := os.ReadFile(paths[1])
	if string(a) != string(b) {
		t.Error("same seed should produce identical graph files")
	}
}

func TestRunGenerateRejectsNegativeRooms(t *testing.T) {
	c := New(io.Discard, LogInfo)
	opts := generateOpts{rooms: -3, output: filepath.Join(t.TempDir(), "x.json")}

	err := c.runGenerate(context.Background(), &opts)
	if !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestRunGenerateFormatsRequireOutput(t *testing.T) {
	c := New(io.Discard, LogInfo)
	opts := generateOpts{formats: "svg"}

	err := c.runGenerate(context.Background(), &opts)
	if !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}
