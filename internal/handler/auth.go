package handler

import (
	"net/http"
	"time"

	"github.com/msomdec/notekeeper/internal/result"
	"github.com/msomdec/notekeeper/internal/service"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	auth         *service.AuthService
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieSecure: cookieSecure}
}

// HandleRegister processes a JSON registration request.
// POST /api/v1/auth/register
// Request:  {"name":"...","email":"...","phone":"...","password":"..."}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := readJSON(w, r, &req); err != nil {
		badBody(w, r)
		return
	}

	res := h.auth.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	respond(w, r, result.Map(res, toUserDTO), http.StatusCreated)
}

// HandleLogin processes a JSON login request and sets the auth cookie.
// POST /api/v1/auth/login
// Request:  {"email":"...","password":"..."}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(w, r, &req); err != nil {
		badBody(w, r)
		return
	}

	res := h.auth.Login(r.Context(), req.Email, req.Password)
	if session, ok := res.Data(); ok {
		http.SetCookie(w, &http.Cookie{
			Name:     authCookieName,
			Value:    session.Token,
			Path:     "/",
			HttpOnly: true,
			Secure:   h.cookieSecure,
			SameSite: http.SameSiteLaxMode,
			Expires:  session.ExpiresAt,
			MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		})
	}
	respond(w, r, result.Map(res, toSessionDTO), http.StatusOK)
}

// HandleLogout clears the auth cookie.
// POST /api/v1/auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	respond(w, r, result.Done("Logged out successfully"), http.StatusOK)
}

// HandleProfile returns the profile of the authenticated user.
// GET /api/v1/auth/profile
func (h *AuthHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	if userID == nil {
		fail(w, r, result.Unauthorized(""))
		return
	}
	respond(w, r, result.Map(h.auth.GetProfile(r.Context(), *userID), toUserDTO), http.StatusOK)
}
