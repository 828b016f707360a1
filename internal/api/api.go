// Package api exposes the synced tables over a read-only JSON API using chi.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/wunjo/internal/database"
)

// Reader is the slice of the store the API needs. It is read-only: the
// pipeline owns all writes.
type Reader interface {
	ListGames(ctx context.Context) ([]database.GameRow, error)
	ListScenarios(ctx context.Context) ([]database.ScenarioRow, error)
	ListSchedules(ctx context.Context) ([]database.ScheduleRow, error)
	ListSessions(ctx context.Context) ([]database.SessionRow, error)
	ListDays(ctx context.Context) ([]database.DayRow, error)
}

// Handler holds the API route handlers.
type Handler struct {
	store Reader
}

// NewHandler creates a Handler.
func NewHandler(store Reader) *Handler {
	return &Handler{store: store}
}

// NewRouter creates a chi router with all routes mounted. authEnabled
// controls Bearer token enforcement. sseHandler, if non-nil, is mounted at
// GET /events inside the auth group.
func NewRouter(store Reader, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(store)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Get("/health", h.Health)
	r.Get("/games", h.ListGames)
	r.Get("/scenarios", h.ListScenarios)
	r.Get("/schedules", h.ListSchedules)
	r.Get("/sessions", h.ListSessions)
	r.Get("/days", h.ListDays)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}

// AuthMiddleware returns middleware that validates a Bearer token. When
// enabled is false all requests pass through.
func AuthMiddleware(enabled bool, token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled {
				next.ServeHTTP(w, r)
				return
			}
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != token {
				writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Health handles GET /api/health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListGames handles GET /api/games.
func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.ListGames(r.Context())
	respondList(w, "games", rows, err)
}

// ListScenarios handles GET /api/scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.ListScenarios(r.Context())
	respondList(w, "scenarios", rows, err)
}

// ListSchedules handles GET /api/schedules.
func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.ListSchedules(r.Context())
	respondList(w, "schedules", rows, err)
}

// ListSessions handles GET /api/sessions.
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.ListSessions(r.Context())
	respondList(w, "sessions", rows, err)
}

// ListDays handles GET /api/days.
func (h *Handler) ListDays(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.ListDays(r.Context())
	respondList(w, "days", rows, err)
}

func respondList[T any](w http.ResponseWriter, key string, rows []T, err error) {
	if err != nil {
		slog.Error("list query failed", slog.String("resource", key), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if rows == nil {
		rows = []T{}
	}
	writeJSON(w, http.StatusOK, map[string]any{key: rows})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

type errResponse struct {
	Error string `json:"error"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}
