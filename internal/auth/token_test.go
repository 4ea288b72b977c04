package auth_test

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/catalog-be/internal/auth"
)

func newTokenManager(t *testing.T, opts ...auth.TokenOption) *auth.TokenManager {
	t.Helper()
	tokens, err := auth.NewTokenManager(auth.TokenConfig{
		Secret:     "test-secret",
		Algorithm:  "HS256",
		Issuer:     "catalog-be-test",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}, opts...)
	require.NoError(t, err)
	return tokens
}

func TestNewTokenManager(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		cfg     auth.TokenConfig
		wantErr string
	}{
		{name: "defaults algorithm", cfg: auth.TokenConfig{Secret: "s", AccessTTL: time.Minute}},
		{name: "hs512", cfg: auth.TokenConfig{Secret: "s", Algorithm: "HS512", AccessTTL: time.Minute}},
		{name: "missing secret", cfg: auth.TokenConfig{AccessTTL: time.Minute}, wantErr: "secret is required"},
		{name: "asymmetric algorithm", cfg: auth.TokenConfig{Secret: "s", Algorithm: "RS256", AccessTTL: time.Minute}, wantErr: "unsupported signing algorithm"},
		{name: "zero access ttl", cfg: auth.TokenConfig{Secret: "s"}, wantErr: "access token ttl"},
		{name: "sub-second refresh ttl", cfg: auth.TokenConfig{Secret: "s", AccessTTL: time.Minute, RefreshTTL: time.Millisecond}, wantErr: "refresh token ttl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := auth.NewTokenManager(tt.cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestTokenManager_EncodeDecode(t *testing.T) {
	t.Parallel()
	tokens := newTokenManager(t)

	token, err := tokens.Encode(auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-123"}}, time.Hour)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := tokens.Decode(token, true)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "catalog-be-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestTokenManager_EncodeIsNotRepeatable(t *testing.T) {
	t.Parallel()
	tokens := newTokenManager(t)
	claims := auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-123"}}

	first, err := tokens.Encode(claims, time.Hour)
	require.NoError(t, err)
	second, err := tokens.Encode(claims, time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	for _, token := range []string{first, second} {
		decoded, err := tokens.Decode(token, true)
		require.NoError(t, err)
		assert.Equal(t, "user-123", decoded.Subject)
	}
}

func TestTokenManager_EncodeRejectsSubSecondTTL(t *testing.T) {
	t.Parallel()
	_, err := newTokenManager(t).Encode(auth.Claims{}, 500*time.Millisecond)
	assert.Error(t, err)
}

func TestTokenManager_Expired(t *testing.T) {
	t.Parallel()
	now := time.Now()
	tokens := newTokenManager(t, auth.WithClock(func() time.Time { return now }))

	token, err := tokens.IssueAccess("user-123")
	require.NoError(t, err)

	now = now.Add(16 * time.Minute)
	_, err = tokens.Decode(token, true)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)

	claims, err := tokens.Decode(token, false)
	require.NoError(t, err, "unverified decode ignores expiry")
	assert.Equal(t, "user-123", claims.Subject)
}

func TestTokenManager_InvalidSignature(t *testing.T) {
	t.Parallel()
	tokens := newTokenManager(t)
	token, err := tokens.IssueAccess("user-123")
	require.NoError(t, err)

	t.Run("altered signature byte", func(t *testing.T) {
		t.Parallel()
		parts := strings.Split(token, ".")
		sig, err := base64.RawURLEncoding.DecodeString(parts[2])
		require.NoError(t, err)
		sig[0] ^= 0xff
		parts[2] = base64.RawURLEncoding.EncodeToString(sig)

		_, err = tokens.Decode(strings.Join(parts, "."), true)
		assert.ErrorIs(t, err, auth.ErrTokenSignature)
	})

	t.Run("different secret", func(t *testing.T) {
		t.Parallel()
		other, err := auth.NewTokenManager(auth.TokenConfig{Secret: "other-secret", Issuer: "catalog-be-test", AccessTTL: time.Minute})
		require.NoError(t, err)
		_, err = other.Decode(token, true)
		assert.ErrorIs(t, err, auth.ErrTokenSignature)
	})

	t.Run("different algorithm", func(t *testing.T) {
		t.Parallel()
		other, err := auth.NewTokenManager(auth.TokenConfig{Secret: "test-secret", Algorithm: "HS512", Issuer: "catalog-be-test", AccessTTL: time.Minute})
		require.NoError(t, err)
		_, err = other.Decode(token, true)
		assert.ErrorIs(t, err, auth.ErrTokenSignature)
	})

	t.Run("unsigned token", func(t *testing.T) {
		t.Parallel()
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = tokens.Decode(unsigned, true)
		assert.ErrorIs(t, err, auth.ErrTokenSignature)
	})
}

func TestTokenManager_Malformed(t *testing.T) {
	t.Parallel()
	tokens := newTokenManager(t)
	for _, token := range []string{"", "not-a-token", "a.b.c", "a.b"} {
		_, err := tokens.Decode(token, true)
		assert.ErrorIs(t, err, auth.ErrTokenMalformed, "token %q", token)

		_, err = tokens.Decode(token, false)
		assert.ErrorIs(t, err, auth.ErrTokenMalformed, "token %q", token)
	}
}

func TestTokenManager_IssueKinds(t *testing.T) {
	t.Parallel()
	tokens := newTokenManager(t)

	access, err := tokens.IssueAccess("user-123")
	require.NoError(t, err)
	claims, err := tokens.Decode(access, true)
	require.NoError(t, err)
	assert.Equal(t, auth.KindAccess, claims.Kind)

	refresh, err := tokens.IssueRefresh("user-123")
	require.NoError(t, err)
	claims, err = tokens.Decode(refresh, true)
	require.NoError(t, err)
	assert.Equal(t, auth.KindRefresh, claims.Kind)
	assert.Equal(t, 7*24*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))

	noRefresh, err := auth.NewTokenManager(auth.TokenConfig{Secret: "s", AccessTTL: time.Minute})
	require.NoError(t, err)
	assert.False(t, noRefresh.RefreshEnabled())
	_, err = noRefresh.IssueRefresh("user-123")
	assert.Error(t, err)
}
