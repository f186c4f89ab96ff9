package crypto

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/mbickford/accounts-service/internal/common/constants"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

// BcryptHasher is deliberately slow; bcrypt.CompareHashAndPassword is
// constant-time with respect to the candidate password.
type BcryptHasher struct{}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), constants.BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Compare(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
