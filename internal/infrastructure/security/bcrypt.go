package security

import (
	"github.com/baechuer/inventory-service/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher hashes account passwords for the credential store. The cost
// comes from bootstrap (12 in production); anything below bcrypt's minimum
// falls back to the library default.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns the bcrypt digest of password. bcrypt reads only the first
// 72 bytes; request validation caps passwords at that length.
func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", domain.ErrHashFailed(err)
	}
	return string(digest), nil
}

// Compare reports nil when password matches the stored digest.
func (h *BcryptHasher) Compare(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
