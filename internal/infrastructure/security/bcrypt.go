package security

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost matches the usual interactive-login setting.
const DefaultBcryptCost = 10

// BcryptHasher implements ports.PasswordHasher using bcrypt. The salt is
// embedded in the encoded digest, so no extra state is needed to verify.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (h *BcryptHasher) Verify(password, encoded string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)) == nil
}
