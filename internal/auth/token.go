package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenKind separates short-lived access tokens from refresh tokens.
type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

// Claims is the payload carried by every token this service signs.
type Claims struct {
	jwt.RegisteredClaims
	Kind TokenKind `json:"kind,omitempty"`
}

// TokenConfig is the immutable signing configuration loaded at startup.
type TokenConfig struct {
	Secret     string
	Algorithm  string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration // zero disables refresh tokens
}

// TokenManager issues and verifies HMAC-signed JWTs. It is read-only after
// construction and safe for concurrent use.
type TokenManager struct {
	secret     []byte
	method     jwt.SigningMethod
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// TokenOption customises a TokenManager.
type TokenOption func(*TokenManager)

// WithClock replaces the wall clock used for issuing and validating tokens.
func WithClock(now func() time.Time) TokenOption {
	return func(t *TokenManager) { t.now = now }
}

// NewTokenManager validates cfg and creates a manager.
func NewTokenManager(cfg TokenConfig, opts ...TokenOption) (*TokenManager, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token secret is required")
	}
	method, err := hmacMethod(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	if cfg.AccessTTL < time.Second {
		return nil, fmt.Errorf("access token ttl must be at least 1s, got %s", cfg.AccessTTL)
	}
	if cfg.RefreshTTL != 0 && cfg.RefreshTTL < time.Second {
		return nil, fmt.Errorf("refresh token ttl must be at least 1s, got %s", cfg.RefreshTTL)
	}

	t := &TokenManager{
		secret:     []byte(cfg.Secret),
		method:     method,
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func hmacMethod(name string) (jwt.SigningMethod, error) {
	switch name {
	case "", "HS256":
		return jwt.SigningMethodHS256, nil
	case "HS384":
		return jwt.SigningMethodHS384, nil
	case "HS512":
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q", name)
	}
}

// AccessTTL returns the lifetime of access tokens.
func (t *TokenManager) AccessTTL() time.Duration { return t.accessTTL }

// RefreshEnabled reports whether refresh tokens are issued.
func (t *TokenManager) RefreshEnabled() bool { return t.refreshTTL > 0 }

// IssueAccess signs an access token for subject.
func (t *TokenManager) IssueAccess(subject string) (string, error) {
	return t.Encode(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: subject}, Kind: KindAccess}, t.accessTTL)
}

// IssueRefresh signs a refresh token for subject.
func (t *TokenManager) IssueRefresh(subject string) (string, error) {
	if !t.RefreshEnabled() {
		return "", errors.New("refresh tokens are disabled")
	}
	return t.Encode(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: subject}, Kind: KindRefresh}, t.refreshTTL)
}

// Encode stamps issued-at and expiry onto claims and signs them. A random
// token ID is added when claims has none, so re-encoding never repeats bytes.
func (t *TokenManager) Encode(claims Claims, ttl time.Duration) (string, error) {
	// Numeric dates have second precision; anything shorter could expire on issue.
	if ttl < time.Second {
		return "", fmt.Errorf("token ttl must be at least 1s, got %s", ttl)
	}
	now := t.now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	if claims.Issuer == "" {
		claims.Issuer = t.issuer
	}
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}

	token := jwt.NewWithClaims(t.method, &claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode parses a token. With verify set, the signature, algorithm, issuer and
// expiry are checked and failures wrap ErrTokenSignature, ErrTokenExpired or
// ErrTokenMalformed. Without verify the claims are returned as-is; such
// claims must never be used to authorize a request.
func (t *TokenManager) Decode(token string, verify bool) (*Claims, error) {
	claims := &Claims{}
	if !verify {
		if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTokenMalformed, err)
		}
		return claims, nil
	}

	if _, err := jwt.ParseWithClaims(token, claims, t.keyFunc, t.parserOptions()...); err != nil {
		return nil, classify(err)
	}
	return claims, nil
}

func (t *TokenManager) keyFunc(token *jwt.Token) (any, error) {
	if token.Method.Alg() != t.method.Alg() {
		return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
	}
	return t.secret, nil
}

func (t *TokenManager) parserOptions() []jwt.ParserOption {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{t.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	}
	if t.issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.issuer))
	}
	return opts
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", ErrTokenSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}
}
