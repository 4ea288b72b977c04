package models

import (
	"time"

	"github.com/google/uuid"
)

// Identity is a registered account. PasswordHash never leaves the backend.
type Identity struct {
	ID             uuid.UUID `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name,omitempty"`
	Username       string    `json:"username,omitempty"`
	PassportSeries string    `json:"passport_series,omitempty"`
	PassportNumber string    `json:"passport_number,omitempty"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone_number"`
	PasswordHash   string    `json:"-"`
	CreatedAt      time.Time `json:"date_joined"`
}
