package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/msomdec/lamenar/internal/handler"
	"github.com/msomdec/lamenar/internal/repository/sqlite"
	"github.com/msomdec/lamenar/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests-0123456789"

func newTestAuthService(t *testing.T) *service.AuthService {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))
	t.Cleanup(func() { db.Close() })

	auth, err := service.NewAuthService(db.Users(), service.AuthOptions{
		JWTSecret:  testJWTSecret,
		BcryptCost: 4,
	})
	require.NoError(t, err)
	return auth
}

func newTestServer(t *testing.T) (*httptest.Server, *service.AuthService) {
	t.Helper()
	auth := newTestAuthService(t)
	limiter := service.NewTokenBucket(t.Context(), 100, 1000)

	srv := httptest.NewServer(handler.NewHandler(auth, limiter, handler.Options{
		MetricsPath: "/metrics",
		CORSOrigins: []string{"http://localhost:3000"},
	}))
	t.Cleanup(srv.Close)
	return srv, auth
}

func postJSON(t *testing.T, client *http.Client, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := client.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func signupBody(email string) map[string]any {
	return map[string]any{
		"email":        email,
		"password":     "password123",
		"name":         "Jane Doe",
		"department":   "Platform",
		"role":         "Engineer",
		"was_referred": "no",
	}
}
