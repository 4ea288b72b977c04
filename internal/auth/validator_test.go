package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/catalog-be/internal/auth"
)

func TestValidateRegistration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		password     string
		confirmation string
		wantReason   string
	}{
		{name: "valid", password: "password1", confirmation: "password1"},
		{name: "exactly eight", password: "12345678", confirmation: "12345678"},
		{name: "mismatch", password: "abc1234", confirmation: "xyz9999", wantReason: "passwords do not match"},
		{name: "too short", password: "short1", confirmation: "short1", wantReason: "password too short"},
		{name: "too long", password: strings.Repeat("a", 73), confirmation: strings.Repeat("a", 73), wantReason: "password too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := auth.ValidateRegistration(tt.password, tt.confirmation)
			if tt.wantReason == "" {
				assert.NoError(t, err)
				return
			}
			var verr *auth.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "password", verr.Field)
			assert.Equal(t, tt.wantReason, verr.Reason)
		})
	}
}
