package helpers

import "github.com/google/uuid"

// GenerateVerificationToken returns an unguessable one-time token for email
// verification links. UUIDv4 carries 122 bits of randomness from crypto/rand,
// so collisions are not a practical concern.
func GenerateVerificationToken() string {
	return uuid.NewString()
}
