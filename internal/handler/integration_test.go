package handler_test

import (
	"net/http"
	"net/http/cookiejar"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/notekeeper/internal/handler"
	"github.com/msomdec/notekeeper/internal/service"
)

func TestIntegration_RegisterLoginProfileLogout(t *testing.T) {
	app := newTestApp(t)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := app.srv.Client()
	client.Jar = jar

	// 1. Register a new user.
	resp, env := app.do(t, client, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "Integration User", "email": "integ@example.com", "phone": "555-0100", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.True(t, env.IsSuccess)
	require.Empty(t, env.Errors)
	user := decodeData[handler.UserDTO](t, env)
	require.Equal(t, "integ@example.com", user.Email)
	require.Equal(t, resp.Header.Get("X-Request-ID"), env.RequestID)

	// 2. Registering again with the same email conflicts.
	resp, env = app.do(t, client, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "Someone Else", "email": "integ@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, "EMAIL_ALREADY_EXISTS", env.firstCode())
	require.True(t, len(env.Data) == 0 || string(env.Data) == "null", "failure must not carry data")

	// 3. Login sets the cookie.
	resp, env = app.do(t, client, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "integ@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	session := decodeData[handler.SessionDTO](t, env)
	require.NotEmpty(t, session.Token)
	require.Equal(t, user.ID, session.User.ID)

	// 4. The cookie alone authenticates the profile request.
	resp, env = app.do(t, client, http.MethodGet, "/api/v1/auth/profile", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, user.ID, decodeData[handler.UserDTO](t, env).ID)

	// 5. Logout clears it.
	resp, _ = app.do(t, client, http.MethodPost, "/api/v1/auth/logout", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env = app.do(t, client, http.MethodGet, "/api/v1/auth/profile", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "UNAUTHORIZED", env.firstCode())
}

func TestIntegration_LoginFailuresLookAlike(t *testing.T) {
	app := newTestApp(t)
	registerAndLogin(t, app, "ana", "ana@example.com")

	resp1, env1 := app.do(t, nil, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "ana@example.com", "password": "wrong-password",
	})
	resp2, env2 := app.do(t, nil, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "nobody@example.com", "password": "password123",
	})

	require.Equal(t, http.StatusUnauthorized, resp1.StatusCode)
	require.Equal(t, resp1.StatusCode, resp2.StatusCode)
	require.Equal(t, env1.Message, env2.Message)
	require.Equal(t, env1.Errors, env2.Errors)
	require.Empty(t, resp1.Cookies())
}

func TestIntegration_RegisterValidation(t *testing.T) {
	app := newTestApp(t)

	resp, env := app.do(t, nil, http.MethodPost, "/api/v1/auth/register", "", map[string]string{"email": "bad"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Len(t, env.Errors, 3)
	for _, e := range env.Errors {
		require.Equal(t, "VALIDATION_ERROR", e.Code)
	}

	resp, env = app.do(t, nil, http.MethodPost, "/api/v1/auth/register", "", "{not json")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "BAD_REQUEST", env.firstCode())
}

func TestIntegration_NoteLifecycle(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "writer", "writer@example.com")

	// Create.
	resp, env := app.do(t, nil, http.MethodPost, "/api/v1/notes", token, map[string]string{
		"title": "Shopping", "content": "Buy MILK",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeData[handler.NoteDTO](t, env)
	require.NotNil(t, created.UserID)

	resp, _ = app.do(t, nil, http.MethodPost, "/api/v1/notes", "", map[string]string{
		"title": "Anonymous", "content": "orphan",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Get.
	resp, env = app.do(t, nil, http.MethodGet, "/api/v1/notes/"+created.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Buy MILK", decodeData[handler.NoteDTO](t, env).Content)

	// Search is case-insensitive.
	resp, env = app.do(t, nil, http.MethodGet, "/api/v1/notes?search=milk&sortBy=title_asc", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	found := decodeData[[]handler.NoteDTO](t, env)
	require.Len(t, found, 1)
	require.Equal(t, created.ID, found[0].ID)

	// Strangers may not change an owned note.
	other := registerAndLogin(t, app, "other", "other@example.com")
	resp, env = app.do(t, nil, http.MethodPut, "/api/v1/notes/"+created.ID.String(), other, map[string]string{
		"title": "Hijacked", "content": "x",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, "FORBIDDEN", env.firstCode())

	// Update.
	resp, env = app.do(t, nil, http.MethodPut, "/api/v1/notes/"+created.ID.String(), token, map[string]string{
		"title": "Shopping (weekly)", "content": "Buy milk and eggs",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Shopping (weekly)", decodeData[handler.NoteDTO](t, env).Title)

	// Delete returns the snapshot.
	resp, env = app.do(t, nil, http.MethodDelete, "/api/v1/notes/"+created.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Shopping (weekly)", decodeData[handler.NoteDTO](t, env).Title)

	// Deleted notes are gone from reads and cannot be updated.
	resp, env = app.do(t, nil, http.MethodGet, "/api/v1/notes/"+created.ID.String(), "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "NOT_FOUND", env.firstCode())

	resp, _ = app.do(t, nil, http.MethodPut, "/api/v1/notes/"+created.ID.String(), token, map[string]string{
		"title": "again", "content": "x",
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, env = app.do(t, nil, http.MethodGet, "/api/v1/notes", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	remaining := decodeData[[]handler.NoteDTO](t, env)
	require.Len(t, remaining, 1)
	require.Equal(t, "Anonymous", remaining[0].Title)
}

func TestIntegration_NoteRequestErrors(t *testing.T) {
	app := newTestApp(t)

	resp, env := app.do(t, nil, http.MethodGet, "/api/v1/notes/not-a-uuid", "", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "VALIDATION_ERROR", env.firstCode())
	require.Equal(t, "id", env.Errors[0].Field)

	resp, env = app.do(t, nil, http.MethodGet, "/api/v1/notes/"+uuid.NewString(), "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Note not found", env.Message)

	resp, env = app.do(t, nil, http.MethodPost, "/api/v1/notes", "", map[string]string{"title": ""})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Len(t, env.Errors, 2)

	resp, env = app.do(t, nil, http.MethodGet, "/api/v1/notes", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "[]", string(env.Data))
}

func TestIntegration_AuthRoutesAreRateLimited(t *testing.T) {
	limiter := service.NewRateLimiter(0, 2)
	t.Cleanup(limiter.Close)
	app := newTestApp(t, withLimiter(limiter))

	body := map[string]string{"email": "nobody@example.com", "password": "password123"}
	for i := 0; i < 2; i++ {
		resp, _ := app.do(t, nil, http.MethodPost, "/api/v1/auth/login", "", body)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
	resp, env := app.do(t, nil, http.MethodPost, "/api/v1/auth/login", "", body)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.Equal(t, "RATE_LIMITED", env.firstCode())

	// Note routes are not limited.
	resp, _ = app.do(t, nil, http.MethodGet, "/api/v1/notes", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
