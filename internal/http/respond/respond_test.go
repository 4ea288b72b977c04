package respond_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/catalog-be/internal/auth"
	"github.com/hongminglow/catalog-be/internal/http/respond"
	"github.com/hongminglow/catalog-be/internal/storage"
	"github.com/hongminglow/catalog-be/internal/validation"
)

func TestFail(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
		wantMsg    string
	}{
		{name: "field validation", err: validation.Field("email", "is required"), wantStatus: 400, wantCode: respond.CodeValidation, wantMsg: "validation failed"},
		{name: "password rule", err: &auth.ValidationError{Field: "password", Reason: "password too short"}, wantStatus: 400, wantCode: respond.CodeValidation, wantMsg: "password too short"},
		{name: "duplicate identity", err: auth.ErrDuplicateIdentity, wantStatus: 409, wantCode: respond.CodeBusinessRule, wantMsg: "identity already registered"},
		{name: "not found", err: fmt.Errorf("get tag: %w", storage.ErrNotFound), wantStatus: 404, wantCode: respond.CodeNotFound, wantMsg: "record not found"},
		{name: "invalid credentials", err: auth.ErrInvalidCredentials, wantStatus: 401, wantCode: respond.CodeInvalidCredential, wantMsg: "invalid email or password"},
		{name: "expired", err: fmt.Errorf("%w: %w", auth.ErrTokenExpired, errors.New("jwt detail")), wantStatus: 401, wantCode: respond.CodeTokenExpired, wantMsg: "token has expired"},
		{name: "signature", err: auth.ErrTokenSignature, wantStatus: 401, wantCode: respond.CodeTokenSignature, wantMsg: "token signature is invalid"},
		{name: "malformed", err: auth.ErrTokenMalformed, wantStatus: 401, wantCode: respond.CodeTokenMalformed, wantMsg: "token is malformed"},
		{name: "missing subject", err: auth.ErrMissingSubject, wantStatus: 401, wantCode: respond.CodeMissingSubject, wantMsg: "token is missing subject"},
		{name: "wrong kind", err: auth.ErrWrongTokenKind, wantStatus: 401, wantCode: respond.CodeWrongTokenKind, wantMsg: "token kind is not accepted here"},
		{name: "infrastructure", err: &auth.InfrastructureError{Op: "save identity", Err: errors.New("dial tcp: refused")}, wantStatus: 500, wantCode: respond.CodeDatabase, wantMsg: "database error"},
		{name: "unknown", err: errors.New("boom"), wantStatus: 500, wantCode: respond.CodeInternal, wantMsg: "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			respond.Fail(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			var body respond.ErrorBody
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}

func TestFail_DetailsAndLogging(t *testing.T) {
	t.Parallel()

	t.Run("token errors carry a reason", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		respond.Fail(rec, httptest.NewRequest(http.MethodGet, "/", nil), auth.ErrTokenExpired)

		var body map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, map[string]any{"reason": "token has expired"}, body["error_details"])
	})

	t.Run("invalid credentials carry no details", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		respond.Fail(rec, httptest.NewRequest(http.MethodGet, "/", nil), auth.ErrInvalidCredentials)

		var body map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.NotContains(t, body, "error_details")
	})

	t.Run("infrastructure cause is logged but not returned", func(t *testing.T) {
		t.Parallel()
		var logs bytes.Buffer
		logger := zerolog.New(&logs)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(logger.WithContext(req.Context()))
		rec := httptest.NewRecorder()

		respond.Fail(rec, req, &auth.InfrastructureError{Op: "find identity by email", Err: errors.New("dial tcp: refused")})

		assert.NotContains(t, rec.Body.String(), "dial tcp")
		assert.Contains(t, logs.String(), "dial tcp: refused")
		assert.Contains(t, logs.String(), `"level":"error"`)
	})

	t.Run("client cancellation is not a storage failure", func(t *testing.T) {
		t.Parallel()
		var logs bytes.Buffer
		logger := zerolog.New(&logs)
		req := httptest.NewRequest(http.MethodPost, "/auth/signup", nil)
		req = req.WithContext(logger.WithContext(req.Context()))
		rec := httptest.NewRecorder()

		respond.Fail(rec, req, &auth.InfrastructureError{Op: "save identity", Err: context.Canceled})

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var body respond.ErrorBody
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, respond.CodeInternal, body.Code)
		assert.Equal(t, "request cancelled", body.Message)
		assert.Contains(t, logs.String(), `"level":"info"`)
		assert.NotContains(t, logs.String(), `"level":"error"`)
		assert.NotContains(t, logs.String(), "storage failure")
	})
}

func TestJSON(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	respond.JSON(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusCreated, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
