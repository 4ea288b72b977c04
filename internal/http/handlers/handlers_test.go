package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/catalog-be/internal/auth"
	"github.com/hongminglow/catalog-be/internal/catalog"
	"github.com/hongminglow/catalog-be/internal/http/handlers"
	"github.com/hongminglow/catalog-be/internal/http/respond"
	"github.com/hongminglow/catalog-be/internal/storage/memory"
	"github.com/hongminglow/catalog-be/internal/validation"
)

type fixture struct {
	mux    *http.ServeMux
	store  *memory.Store
	tokens *auth.TokenManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	tokens, err := auth.NewTokenManager(auth.TokenConfig{
		Secret:     "handlers-secret",
		Issuer:     "catalog-be-test",
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 24 * time.Hour,
	})
	require.NoError(t, err)
	svc, err := auth.NewService(store, auth.NewBcryptHasher(bcrypt.MinCost), tokens)
	require.NoError(t, err)
	validate := validation.New("US")

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewAuthHandler(svc, validate).Register(mux)
	handlers.NewProfileHandler(store).Register(mux)
	handlers.NewCatalogHandler(catalog.NewService(store), validate).Register(mux)
	return &fixture{mux: mux, store: store, tokens: tokens}
}

func (f *fixture) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out), rec.Body.String())
	return out
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) respond.ErrorBody {
	t.Helper()
	return decode[respond.ErrorBody](t, rec)
}

func signupBody(email string) map[string]string {
	return map[string]string{
		"first_name":         "Ada",
		"last_name":          "Lovelace",
		"email":              email,
		"phone_number":       "+1 201-555-0123",
		"password":           "password1",
		"confirmed_password": "password1",
	}
}
