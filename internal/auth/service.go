package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hongminglow/catalog-be/internal/models"
	"github.com/hongminglow/catalog-be/internal/storage"
)

// Registration is the sign-up input after request-shape validation.
type Registration struct {
	FirstName      string
	LastName       string
	Username       string
	PassportSeries string
	PassportNumber string
	Email          string
	Phone          string
	Password       string
	Confirmation   string
}

// Login is the sign-in input.
type Login struct {
	Email    string
	Password string
}

// TokenPair is what a successful authentication hands back to the client.
// RefreshToken is empty when refresh tokens are disabled.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

// Service orchestrates sign-up, sign-in and refresh.
type Service struct {
	identities storage.IdentityStore
	hasher     PasswordHasher
	tokens     *TokenManager
	dummyHash  string
}

// NewService wires the service. It hashes a throwaway password once so that
// sign-in for unknown accounts costs the same as a wrong password.
func NewService(identities storage.IdentityStore, hasher PasswordHasher, tokens *TokenManager) (*Service, error) {
	dummy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &Service{
		identities: identities,
		hasher:     hasher,
		tokens:     tokens,
		dummyHash:  dummy,
	}, nil
}

// SignUp validates the password, rejects known emails, stores the new identity
// and issues tokens bound to it. Tokens are only issued after the store has
// confirmed the insert.
func (s *Service) SignUp(ctx context.Context, reg Registration) (TokenPair, error) {
	if err := ValidateRegistration(reg.Password, reg.Confirmation); err != nil {
		return TokenPair{}, err
	}

	email := strings.TrimSpace(reg.Email)
	_, err := s.identities.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return TokenPair{}, ErrDuplicateIdentity
	case !errors.Is(err, storage.ErrNotFound):
		return TokenPair{}, &InfrastructureError{Op: "find identity by email", Err: err}
	}

	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return TokenPair{}, err
	}
	// Hashing is slow; don't start a write for a request that is already gone.
	if err := ctx.Err(); err != nil {
		return TokenPair{}, &InfrastructureError{Op: "save identity", Err: err}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return TokenPair{}, fmt.Errorf("generate identity id: %w", err)
	}
	created, err := s.identities.Save(ctx, models.Identity{
		ID:             id,
		FirstName:      strings.TrimSpace(reg.FirstName),
		LastName:       strings.TrimSpace(reg.LastName),
		Username:       strings.TrimSpace(reg.Username),
		PassportSeries: strings.TrimSpace(reg.PassportSeries),
		PassportNumber: strings.TrimSpace(reg.PassportNumber),
		Email:          email,
		Phone:          reg.Phone,
		PasswordHash:   hash,
	})
	if err != nil {
		// A concurrent sign-up may win the race past the lookup above.
		if errors.Is(err, storage.ErrAlreadyExists) {
			return TokenPair{}, ErrDuplicateIdentity
		}
		return TokenPair{}, &InfrastructureError{Op: "save identity", Err: err}
	}

	zerolog.Ctx(ctx).Info().Str("user_id", created.ID.String()).Msg("identity registered")
	return s.issue(created.ID.String())
}

// SignIn verifies credentials and issues tokens. Unknown emails and wrong
// passwords both yield ErrInvalidCredentials.
func (s *Service) SignIn(ctx context.Context, login Login) (TokenPair, error) {
	identity, err := s.identities.FindByEmail(ctx, strings.TrimSpace(login.Email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.hasher.Verify(login.Password, s.dummyHash)
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, &InfrastructureError{Op: "find identity by email", Err: err}
	}
	if !s.hasher.Verify(login.Password, identity.PasswordHash) {
		return TokenPair{}, ErrInvalidCredentials
	}
	return s.issue(identity.ID.String())
}

// Refresh exchanges a valid refresh token for a new token pair, provided the
// identity still exists.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if !s.tokens.RefreshEnabled() {
		return TokenPair{}, ErrWrongTokenKind
	}
	claims, err := s.tokens.Decode(refreshToken, true)
	if err != nil {
		return TokenPair{}, err
	}
	if claims.Kind != KindRefresh {
		return TokenPair{}, ErrWrongTokenKind
	}
	if claims.Subject == "" {
		return TokenPair{}, ErrMissingSubject
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return TokenPair{}, fmt.Errorf("%w: subject is not an identity id", ErrTokenMalformed)
	}
	if _, err := s.identities.FindByID(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, &InfrastructureError{Op: "find identity by id", Err: err}
	}
	return s.issue(claims.Subject)
}

func (s *Service) issue(subject string) (TokenPair, error) {
	access, err := s.tokens.IssueAccess(subject)
	if err != nil {
		return TokenPair{}, err
	}
	pair := TokenPair{AccessToken: access, ExpiresIn: s.tokens.AccessTTL()}
	if s.tokens.RefreshEnabled() {
		if pair.RefreshToken, err = s.tokens.IssueRefresh(subject); err != nil {
			return TokenPair{}, err
		}
	}
	return pair, nil
}
