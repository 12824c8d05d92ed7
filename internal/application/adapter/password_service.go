package adapter

// PasswordService hashes and checks user passwords.
type PasswordService interface {
	// HashPassword returns the stored form of a plain text password.
	HashPassword(password string) (string, error)

	// VerifyPassword returns an error when password does not match the stored hash.
	VerifyPassword(hashedPassword, password string) error

	// ValidatePasswordStrength rejects passwords outside the accepted length range.
	ValidatePasswordStrength(password string) error
}
