package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/hongminglow/catalog-be/internal/models"
)

// RegisterRequest is the body of POST /auth/signup.
type RegisterRequest struct {
	FirstName         string `json:"first_name" validate:"required,max=100"`
	LastName          string `json:"last_name" validate:"max=100"`
	Username          string `json:"username" validate:"omitempty,min=3,max=50"`
	PassportSeries    string `json:"passport_series" validate:"max=10"`
	PassportNumber    string `json:"passport_number" validate:"max=20"`
	Email             string `json:"email" validate:"required,email,max=255"`
	PhoneNumber       string `json:"phone_number" validate:"required,phone"`
	Password          string `json:"password" validate:"required"`
	ConfirmedPassword string `json:"confirmed_password" validate:"required"`
}

// LoginRequest is the body of POST /auth/signin.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest is the body of POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenResponse is returned by sign-up, sign-in and refresh. ExpiresIn is the
// access token lifetime in seconds.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// ProfileResponse is the public view of an identity.
type ProfileResponse struct {
	ID         uuid.UUID `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name,omitempty"`
	Username   string    `json:"username,omitempty"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone_number"`
	DateJoined time.Time `json:"date_joined"`
}

// NewProfile copies the public fields of identity.
func NewProfile(identity models.Identity) ProfileResponse {
	return ProfileResponse{
		ID:         identity.ID,
		FirstName:  identity.FirstName,
		LastName:   identity.LastName,
		Username:   identity.Username,
		Email:      identity.Email,
		Phone:      identity.Phone,
		DateJoined: identity.CreatedAt,
	}
}
