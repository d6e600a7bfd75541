package helpers

import "golang.org/x/crypto/bcrypt"

// bcrypt only considers the first 72 bytes of input; truncate explicitly so
// hashing and verification agree on what was hashed.
const maxPasswordBytes = 72

func truncatePassword(plain string) []byte {
	b := []byte(plain)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

// HashPassword hashes the plain text password using bcrypt with a random
// per-call salt.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(truncatePassword(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password.
// Malformed hashes are treated as a mismatch, never an error.
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncatePassword(plain)) == nil
}
