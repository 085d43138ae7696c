package handler

import (
	"net/http"

	"github.com/msomdec/notekeeper/internal/domain"
	"github.com/msomdec/notekeeper/internal/service"
)

// Deps holds what the routes need.
type Deps struct {
	Store        domain.Store
	Auth         *service.AuthService
	Notes        *service.NoteService
	AuthLimiter  Limiter
	CookieSecure bool
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, d Deps) {
	health := NewHealthHandler(d.Store, d.Store.Users())
	authH := NewAuthHandler(d.Auth, d.CookieSecure)
	notes := NewNoteHandler(d.Notes)

	limited := func(h http.HandlerFunc) http.Handler {
		if d.AuthLimiter == nil {
			return h
		}
		return RateLimit(d.AuthLimiter, h)
	}
	optional := func(h http.HandlerFunc) http.Handler { return OptionalAuth(d.Auth, h) }

	mux.HandleFunc("GET /healthz", health.HandleHealthz)

	mux.Handle("POST /api/v1/auth/register", limited(authH.HandleRegister))
	mux.Handle("POST /api/v1/auth/login", limited(authH.HandleLogin))
	mux.HandleFunc("POST /api/v1/auth/logout", authH.HandleLogout)
	mux.Handle("GET /api/v1/auth/profile", RequireAuth(d.Auth, http.HandlerFunc(authH.HandleProfile)))

	mux.Handle("GET /api/v1/notes", optional(notes.HandleList))
	mux.Handle("POST /api/v1/notes", optional(notes.HandleCreate))
	mux.Handle("GET /api/v1/notes/{id}", optional(notes.HandleGet))
	mux.Handle("PUT /api/v1/notes/{id}", optional(notes.HandleUpdate))
	mux.Handle("DELETE /api/v1/notes/{id}", optional(notes.HandleDelete))
}
