package respond

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/hongminglow/catalog-be/internal/auth"
	"github.com/hongminglow/catalog-be/internal/storage"
	"github.com/hongminglow/catalog-be/internal/validation"
)

// ErrorBody is the shape of every failed response.
type ErrorBody struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Code    int            `json:"error_code"`
	Details map[string]any `json:"error_details,omitempty"`
}

// JSON writes payload as the response body.
func JSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("encode response")
	}
}

// Error writes an error body.
func Error(w http.ResponseWriter, r *http.Request, status, code int, message string, details map[string]any) {
	JSON(w, r, status, ErrorBody{Message: message, Code: code, Details: details})
}

type mapping struct {
	status int
	code   int
}

var sentinels = []struct {
	err error
	mapping
}{
	{auth.ErrDuplicateIdentity, mapping{http.StatusConflict, CodeBusinessRule}},
	{storage.ErrAlreadyExists, mapping{http.StatusConflict, CodeBusinessRule}},
	{storage.ErrNotFound, mapping{http.StatusNotFound, CodeNotFound}},
	{auth.ErrInvalidCredentials, mapping{http.StatusUnauthorized, CodeInvalidCredential}},
	{auth.ErrMissingToken, mapping{http.StatusUnauthorized, CodeMissingToken}},
	{auth.ErrTokenExpired, mapping{http.StatusUnauthorized, CodeTokenExpired}},
	{auth.ErrTokenSignature, mapping{http.StatusUnauthorized, CodeTokenSignature}},
	{auth.ErrTokenMalformed, mapping{http.StatusUnauthorized, CodeTokenMalformed}},
	{auth.ErrMissingSubject, mapping{http.StatusUnauthorized, CodeMissingSubject}},
	{auth.ErrWrongTokenKind, mapping{http.StatusUnauthorized, CodeWrongTokenKind}},
}

// Fail maps err onto a status and error code and writes the error body.
// Expected failures are logged at debug and client cancellations at info.
// Anything else is logged at error and answered with a generic message.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	log := zerolog.Ctx(r.Context())

	var (
		fieldsErr *validation.Error
		authErr   *auth.ValidationError
		infraErr  *auth.InfrastructureError
	)
	switch {
	case errors.Is(err, context.Canceled):
		// The client went away; nobody reads this response.
		log.Info().Err(err).Msg("request cancelled")
		Error(w, r, http.StatusServiceUnavailable, CodeInternal, "request cancelled", nil)
		return
	case errors.As(err, &fieldsErr):
		Error(w, r, http.StatusBadRequest, CodeValidation, "validation failed", map[string]any{"fields": fieldsErr.Fields})
		return
	case errors.As(err, &authErr):
		Error(w, r, http.StatusBadRequest, CodeValidation, authErr.Reason, map[string]any{"field": authErr.Field})
		return
	case errors.As(err, &infraErr):
		log.Error().Err(infraErr.Err).Str("op", infraErr.Op).Msg("storage failure")
		Error(w, r, http.StatusInternalServerError, CodeDatabase, "database error", nil)
		return
	}

	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			log.Debug().Err(err).Int("error_code", s.code).Msg("request rejected")
			var details map[string]any
			if s.status == http.StatusUnauthorized && s.code != CodeInvalidCredential {
				details = map[string]any{"reason": s.err.Error()}
			}
			Error(w, r, s.status, s.code, s.err.Error(), details)
			return
		}
	}

	log.Error().Err(err).Msg("unhandled error")
	Error(w, r, http.StatusInternalServerError, CodeInternal, "internal server error", nil)
}
