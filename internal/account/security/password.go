package security

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/therishabh/chai-backend/pkg/constant"
)

// PasswordHasher hashes plaintext passwords and verifies candidates against
// stored hashes. Hashing is applied only when the password itself is created
// or changed, never on unrelated record updates.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hashed string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt. The salt is embedded in
// the hash and comparison runs in constant time.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: constant.BcryptCost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

func (h *BcryptHasher) Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
