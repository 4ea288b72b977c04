package server_test

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/catalog-be/internal/auth"
	"github.com/hongminglow/catalog-be/internal/config"
	"github.com/hongminglow/catalog-be/internal/http/respond"
	"github.com/hongminglow/catalog-be/internal/models/dto"
	"github.com/hongminglow/catalog-be/internal/server"
	"github.com/hongminglow/catalog-be/internal/storage/memory"
)

func newServer(t *testing.T, prefix string) *server.Server {
	t.Helper()
	cfg := config.Config{
		Port:        "0",
		PhoneRegion: "US",
		CORSOrigins: []string{"*"},
		PublicPaths: config.DefaultPublicPaths,
		APIPrefix:   prefix,
	}
	tokens, err := auth.NewTokenManager(auth.TokenConfig{
		Secret:     "server-secret",
		Issuer:     "catalog-be-test",
		AccessTTL:  30 * time.Minute,
		RefreshTTL: time.Hour,
	})
	require.NoError(t, err)
	srv, err := server.New(cfg, memory.NewStore(), tokens, auth.NewBcryptHasher(bcrypt.MinCost), zerolog.Nop())
	require.NoError(t, err)
	return srv
}

func call(t *testing.T, h http.Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

var signup = map[string]string{
	"first_name":         "Ada",
	"email":              "a@b.com",
	"phone_number":       "+12015550123",
	"password":           "password1",
	"confirmed_password": "password1",
}

func TestServer_AuthenticationFlow(t *testing.T) {
	t.Parallel()
	h := newServer(t, "").Handler()

	rec := call(t, h, http.MethodGet, "/users/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error_code":4011`)

	rec = call(t, h, http.MethodPost, "/auth/signup", "", signup)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var pair dto.TokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&pair))

	rec = call(t, h, http.MethodGet, "/users/me", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var profile dto.ProfileResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&profile))
	assert.Equal(t, "a@b.com", profile.Email)

	rec = call(t, h, http.MethodGet, "/users/me", pair.RefreshToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error_code":4016`)

	rec = call(t, h, http.MethodPost, "/categories", pair.AccessToken, map[string]string{"name": "Books"})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestServer_PublicPathsSkipTheGate(t *testing.T) {
	t.Parallel()
	h := newServer(t, "").Handler()

	rec := call(t, h, http.MethodPost, "/auth/signin", "", map[string]string{"email": "nobody@b.com", "password": "password1"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body respond.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, respond.CodeInvalidCredential, body.Code, "the handler ran and rejected the credentials")

	rec = call(t, h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestServer_APIPrefix(t *testing.T) {
	t.Parallel()
	h := newServer(t, "/api/v1").Handler()

	rec := call(t, h, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = call(t, h, http.MethodPost, "/api/v1/auth/signup", "", signup)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = call(t, h, http.MethodGet, "/api/v1/categories", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(t, h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Preflight(t *testing.T) {
	t.Parallel()
	h := newServer(t, "").Handler()

	req := httptest.NewRequest(http.MethodOptions, "/categories", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_ServeAndShutdown(t *testing.T) {
	t.Parallel()
	srv := newServer(t, "")
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(l) }()

	resp, err := http.Get("http://" + l.Addr().String() + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json"))

	require.NoError(t, srv.Shutdown(t.Context()))
	assert.NoError(t, <-done)
}
