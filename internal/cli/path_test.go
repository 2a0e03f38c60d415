package cli

import (
	"context"
	"testing"

	apperrors "github.com/delvemap/delvemap/pkg/errors"
)

func TestRunPathDistance(t *testing.T) {
	path := testGraphFile(t, connectedGraph(t))

	opts := pathOpts{from: "entry", to: "lair"}
	if err := runPath(context.Background(), path, &opts); err != nil {
		t.Errorf("runPath() error: %v", err)
	}
}

func TestRunPathDefaultsToStartRoom(t *testing.T) {
	path := testGraphFile(t, connectedGraph(t))

	opts := pathOpts{to: "lair"}
	if err := runPath(context.Background(), path, &opts); err != nil {
		t.Errorf("runPath() error: %v", err)
	}
}

func TestRunPathUnknownRoom(t *testing.T) {
	path := testGraphFile(t, connectedGraph(t))

	opts := pathOpts{from: "entry", to: "throne"}
	err := runPath(context.Background(), path, &opts)
	if !apperrors.Is(err, apperrors.ErrCodeRoomNotFound) {
		t.Errorf("error = %v, want ROOM_NOT_FOUND", err)
	}
}

func TestRunPathNoRouteIsNotAnError(t *testing.T) {
	path := testGraphFile(t, splitGraph(t))

	// The crypt exists but cannot be reached; that is an answer, not a failure.
	opts := pathOpts{from: "entry", to: "crypt"}
	if err := runPath(context.Background(), path, &opts); err != nil {
		t.Errorf("runPath() error: %v", err)
	}
}

func TestRunPathFarthest(t *testing.T) {
	path := testGraphFile(t, connectedGraph(t))

	opts := pathOpts{farthest: true}
	if err := runPath(context.Background(), path, &opts); err != nil {
		t.Errorf("runPath() error: %v", err)
	}
}

func TestRunPathRequiresDestination(t *testing.T) {
	path := testGraphFile(t, connectedGraph(t))

	opts := pathOpts{from: "entry"}
	err := runPath(context.Background(), path, &opts)
	if !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}
