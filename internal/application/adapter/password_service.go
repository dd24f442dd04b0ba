// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

//go:generate mockgen -destination=mocks/mock_password_service.go -package=mocks -source=password_service.go PasswordService

// PasswordService defines the interface for password hashing and verification.
type PasswordService interface {
	// HashPassword hashes a plain text password using bcrypt.
	HashPassword(password string) (string, error)

	// VerifyPassword compares a plain text password with a hashed password.
	VerifyPassword(hashedPassword, password string) error

	// ValidatePasswordStrength validates if a password meets minimum requirements.
	ValidatePasswordStrength(password string) error
}
