package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/msomdec/notekeeper/internal/handler"
	"github.com/msomdec/notekeeper/internal/repository/sqlite"
	"github.com/msomdec/notekeeper/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests-0123456789"

type testApp struct {
	db    *sqlite.DB
	auth  *service.AuthService
	notes *service.NoteService
	srv   *httptest.Server
}

type appOption func(*handler.Deps)

func withLimiter(l handler.Limiter) appOption {
	return func(d *handler.Deps) { d.AuthLimiter = l }
}

func newTestApp(t *testing.T, opts ...appOption) *testApp {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))
	t.Cleanup(func() { db.Close() })

	app := &testApp{
		db:    db,
		auth:  service.NewAuthService(db.Users(), testJWTSecret, 4, time.Hour),
		notes: service.NewNoteService(db.Notes()),
	}

	deps := handler.Deps{Store: db, Auth: app.auth, Notes: app.notes}
	for _, opt := range opts {
		opt(&deps)
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, deps)
	app.srv = httptest.NewServer(handler.Wrap(mux))
	t.Cleanup(app.srv.Close)
	return app
}

// envelope mirrors the response body with Data left raw.
type envelope struct {
	IsSuccess bool            `json:"isSuccess"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Errors    []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Field   string `json:"field"`
	} `json:"errors"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"requestId"`
}

func (e envelope) firstCode() string {
	if len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0].Code
}

func (a *testApp) do(t *testing.T, client *http.Client, method, path, token string, body any) (*http.Response, envelope) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, a.srv.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if client == nil {
		client = a.srv.Client()
	}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func registerAndLogin(t *testing.T, a *testApp, name, email string) string {
	t.Helper()
	resp, _ := a.do(t, nil, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env := a.do(t, nil, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": email, "password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decodeData[handler.SessionDTO](t, env).Token
}
