// Package auth implements the two cryptographic primitives of the service:
// password hashing (bcrypt) and session token signing/verification (HS256).
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost matches the cost the service has always used; raising it
// only affects newly created hashes.
const DefaultBcryptCost = 10

// ErrEmptyPassword is returned when an empty password is hashed.
var ErrEmptyPassword = errors.New("password cannot be empty")

// PasswordHasher hashes passwords one-way and verifies candidates against
// stored digests.
type PasswordHasher interface {
	// Hash produces a salted digest of the plaintext password.
	Hash(password string) (string, error)

	// Verify checks password against a stored digest. A mismatch is
	// (false, nil); a structurally invalid digest is (false, err) and
	// should be treated as an internal fault, not user input.
	Verify(password, digest string) (bool, error)
}

// BcryptHasher implements PasswordHasher on bcrypt. The salt is generated
// per call and embedded in the digest; comparison time depends only on the
// digest's own cost parameter.
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
	if password == "" {
		return "", ErrEmptyPassword
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(b), nil
}

func (h *BcryptHasher) Verify(password, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	// Anything else means the stored digest is malformed.
	return false, fmt.Errorf("bcrypt compare: %w", err)
}
