package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/msomdec/notekeeper/internal/domain"
	"github.com/msomdec/notekeeper/internal/result"
)

type healthStatus struct {
	Status string `json:"status"`
	Users  int    `json:"users"`
}

// HealthHandler reports whether the store is reachable.
type HealthHandler struct {
	db    domain.Database
	users domain.UserRepository
}

func NewHealthHandler(db domain.Database, users domain.UserRepository) *HealthHandler {
	return &HealthHandler{db: db, users: users}
}

// HandleHealthz responds 200 with the active user count, or 503 when the
// store cannot be reached.
func (h *HealthHandler) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		slog.WarnContext(ctx, "health check ping failed", "error", err)
		fail(w, r, result.Business(result.CodeServiceUnavailable, "Database unavailable"))
		return
	}

	n, err := h.users.Count(ctx)
	if err != nil {
		slog.WarnContext(ctx, "health check count failed", "error", err)
		fail(w, r, result.Business(result.CodeServiceUnavailable, "Database unavailable"))
		return
	}

	respond(w, r, result.Success(healthStatus{Status: "ok", Users: n}, "Healthy"), http.StatusOK)
}
