package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateIdentity means the email (or another unique field) is already registered.
	ErrDuplicateIdentity = errors.New("identity already registered")
	// ErrInvalidCredentials covers both unknown accounts and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Token failures. Decode wraps the underlying parser error with one of these.
var (
	ErrMissingToken   = errors.New("missing authentication token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenSignature = errors.New("token signature is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrMissingSubject = errors.New("token is missing subject")
	ErrWrongTokenKind = errors.New("token kind is not accepted here")
)

// ValidationError is a client-correctable input defect on a single field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// InfrastructureError wraps a storage failure. Its cause is for operators only.
type InfrastructureError struct {
	Op  string
	Err error
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InfrastructureError) Unwrap() error { return e.Err }
