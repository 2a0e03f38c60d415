package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	apperrors "github.com/delvemap/delvemap/pkg/errors"
	"github.com/delvemap/delvemap/pkg/graphio"
	"github.com/delvemap/delvemap/pkg/store"
)

// Header is the listing view of a snapshot: the bookkeeping fields and
// statistics without the full graph.
type Header struct {
	ID        string        `json:"id"`
	Name      string        `json:"name,omitempty"`
	Seed      int64         `json:"seed,omitempty"`
	Stats     graphio.Stats `json:"stats"`
	CreatedAt time.Time     `json:"created_at"`
}

// headerOf projects a snapshot onto its header.
func headerOf(s *store.Snapshot) Header {
	return Header{
		ID:        s.ID,
		Name:      s.Name,
		Seed:      s.Seed,
		Stats:     s.Stats,
		CreatedAt: s.CreatedAt,
	}
}

// errorBody is the JSON error envelope returned for all failures.
type errorBody struct {
	Error errorInfo `json:"error"`
}

type errorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// writeJSON encodes v with a status code. Encoding failures are logged by
// the caller's middleware via the 500 they produce on a fresh connection;
// here the header is already out, so the error is dropped.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to its HTTP status and writes the JSON envelope.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.writeErrorDetails(w, err, nil)
}

// writeErrorDetails is writeError with an extra machine-readable payload,
// e.g. the component lists of a disconnected dungeon.
func (s *Server) writeErrorDetails(w http.ResponseWriter, err error, details any) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}

	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	writeJSON(w, status, errorBody{Error: errorInfo{
		Code:    string(code),
		Message: apperrors.UserMessage(err),
		Details: details,
	}})
}

// statusFor maps error codes onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case apperrors.Is(err, apperrors.ErrCodeNotConnected):
		return http.StatusUnprocessableEntity
	case apperrors.Is(err, apperrors.ErrCodeInvalidInput),
		apperrors.Is(err, apperrors.ErrCodeInvalidFormat),
		apperrors.Is(err, apperrors.ErrCodeInvalidGraph),
		apperrors.Is(err, apperrors.ErrCodeInvalidRoom):
		return http.StatusBadRequest
	case apperrors.Is(err, apperrors.ErrCodeNotFound),
		apperrors.Is(err, apperrors.ErrCodeRoomNotFound),
		apperrors.Is(err, apperrors.ErrCodeDungeonNotFound):
		return http.StatusNotFound
	case apperrors.Is(err, apperrors.ErrCodeUnsupported):
		return http.StatusMethodNotAllowed
	case apperrors.Is(err, apperrors.ErrCodeLayoutUnavailable):
		return http.StatusServiceUnavailable
	case apperrors.Is(err, apperrors.ErrCodeTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
