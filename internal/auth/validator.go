package auth

// Password length bounds. bcrypt ignores input beyond 72 bytes.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// ValidateRegistration applies the password rules for a new account.
func ValidateRegistration(password, confirmation string) error {
	if password != confirmation {
		return &ValidationError{Field: "password", Reason: "passwords do not match"}
	}
	if len(password) < MinPasswordLength {
		return &ValidationError{Field: "password", Reason: "password too short"}
	}
	if len(password) > MaxPasswordLength {
		return &ValidationError{Field: "password", Reason: "password too long"}
	}
	return nil
}
