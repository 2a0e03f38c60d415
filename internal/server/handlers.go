package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/delvemap/delvemap/pkg/buildinfo"
	"github.com/delvemap/delvemap/pkg/dungeon"
	"github.com/delvemap/delvemap/pkg/dungeon/gen"
	apperrors "github.com/delvemap/delvemap/pkg/errors"
	"github.com/delvemap/delvemap/pkg/graphio"
	"github.com/delvemap/delvemap/pkg/render"
	"github.com/delvemap/delvemap/pkg/store"
)

// handleHealth reports liveness and the build version.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleList returns the headers of all stored dungeons, newest first.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	snaps, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	headers := make([]Header, len(snaps))
	for i, snap := range snaps {
		headers[i] = headerOf(snap)
	}
	writeJSON(w, http.StatusOK, headers)
}

// readDungeon decodes a request body into a dungeon graph and runs the
// connectivity gate. Disconnected dungeons are rejected with 422 and the
// component lists, so the client can see exactly which rooms are stranded.
// On failure the error response has already been written.
func (s *Server) readDungeon(w http.ResponseWriter, r *http.Request) (*dungeon.Graph, bool) {
	var gj graphio.Graph
	if err := json.NewDecoder(r.Body).Decode(&gj); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode dungeon"))
		return nil, false
	}

	g, err := graphio.ToDungeon(gj)
	if err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidGraph, err, "build dungeon"))
		return nil, false
	}

	if !g.IsConnected() {
		comps := g.Components()
		err := apperrors.New(apperrors.ErrCodeNotConnected,
			"dungeon splits into %d components", len(comps))
		s.writeErrorDetails(w, err, map[string]any{"components": comps})
		return nil, false
	}
	return g, true
}

// handleIngest accepts a serialized graph and stores it as a new dungeon.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	g, ok := s.readDungeon(w, r)
	if !ok {
		return
	}

	snap := store.NewSnapshot(r.URL.Query().Get("name"), 0, g)
	if err := s.store.Put(r.Context(), snap); err != nil {
		s.writeError(w, err)
		return
	}

	s.logger.Info("dungeon stored", "id", snap.ID, "rooms", snap.Stats.Rooms)
	writeJSON(w, http.StatusCreated, headerOf(snap))
}

// handleReplace swaps a stored dungeon's graph for a new one, keeping the
// snapshot identity. The old preview stays up, flagged stale, until the
// next preview request re-renders it.
func (s *Server) handleReplace(w http.ResponseWriter, r *http.Request) {
	id, err := dungeonID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	g, ok := s.readDungeon(w, r)
	if !ok {
		return
	}

	snap, err := s.getSnapshot(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	snap.Graph = graphio.FromDungeon(g)
	snap.Stats = graphio.FromStats(g.Stats())
	if name := r.URL.Query().Get("name"); name != "" {
		snap.Name = name
	}
	if err := s.store.Put(r.Context(), snap); err != nil {
		s.writeError(w, err)
		return
	}
	s.previews.invalidate(id)

	s.logger.Info("dungeon replaced", "id", id, "rooms", snap.Stats.Rooms)
	writeJSON(w, http.StatusOK, headerOf(snap))
}

// handleGenerate runs the generator and stores the result. The body is a
// gen.Options document; an empty body generates with defaults.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var opts gen.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode options"))
		return
	}
	opts.Logger = s.logger

	g, err := gen.Generate(opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	seed, _ := g.Meta()[gen.MetaSeed].(int64)
	snap := store.NewSnapshot(r.URL.Query().Get("name"), seed, g)
	// Reuse the generator's dungeon ID so API paths and graph metadata agree.
	if id, ok := g.Meta()[gen.MetaID].(string); ok && id != "" {
		snap.ID = id
	}
	if err := s.store.Put(r.Context(), snap); err != nil {
		s.writeError(w, err)
		return
	}

	s.logger.Info("dungeon generated", "id", snap.ID, "rooms", snap.Stats.Rooms, "seed", seed)
	writeJSON(w, http.StatusCreated, headerOf(snap))
}

// dungeonID extracts and screens the {id} URL parameter. Screening here
// keeps malformed IDs out of the store layer, so a stray "../x" never
// reaches a Mongo query or a preview key.
func dungeonID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if err := apperrors.ValidateDungeonID(id); err != nil {
		return "", err
	}
	return id, nil
}

// getSnapshot loads a snapshot, translating the store's sentinel into the
// coded error the response envelope carries.
func (s *Server) getSnapshot(ctx context.Context, id string) (*store.Snapshot, error) {
	snap, err := s.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrCodeDungeonNotFound, err, "no dungeon %s", id)
	}
	return snap, err
}

// handleGet returns the full snapshot, graph included.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := dungeonID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	snap, err := s.getSnapshot(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleDelete removes a snapshot and its preview holder.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := dungeonID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			err = apperrors.Wrap(apperrors.ErrCodeDungeonNotFound, err, "no dungeon %s", id)
		}
		s.writeError(w, err)
		return
	}
	s.previews.drop(id)
	w.WriteHeader(http.StatusNoContent)
}

// handleStats returns the statistics block of a stored dungeon.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	id, err := dungeonID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	snap, err := s.getSnapshot(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap.Stats)
}

// handlePreview serves the full-map SVG for a dungeon.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	s.servePreview(w, r, func(p *render.Preview) ([]byte, string) {
		return p.SVG, "image/svg+xml"
	})
}

// handlePreviewPNG serves the square PNG thumbnail for a dungeon.
func (s *Server) handlePreviewPNG(w http.ResponseWriter, r *http.Request) {
	s.servePreview(w, r, func(p *render.Preview) ([]byte, string) {
		return p.PNG, "image/png"
	})
}

// handleMinimap serves the minimap SVG for a dungeon.
func (s *Server) handleMinimap(w http.ResponseWriter, r *http.Request) {
	s.servePreview(w, r, func(p *render.Preview) ([]byte, string) {
		return p.Minimap, "image/svg+xml"
	})
}

// servePreview loads the snapshot, ensures a preview is published, and
// writes the artifact pick selects from it.
func (s *Server) servePreview(w http.ResponseWriter, r *http.Request, pick func(*render.Preview) ([]byte, string)) {
	id, err := dungeonID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	snap, err := s.getSnapshot(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	p, err := s.preview(r.Context(), snap)
	if err != nil {
		s.writeError(w, err)
		return
	}

	data, contentType := pick(p)
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(data)
}
