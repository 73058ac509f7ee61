package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordChecker verifies the shared admin password. A bcrypt hash takes
// precedence over the plain password when both are configured.
type PasswordChecker struct {
	plain []byte
	hash  []byte
}

func NewPasswordChecker(plain, hash string) *PasswordChecker {
	return &PasswordChecker{plain: []byte(plain), hash: []byte(hash)}
}

func (p *PasswordChecker) Check(candidate string) bool {
	if len(p.hash) > 0 {
		return bcrypt.CompareHashAndPassword(p.hash, []byte(candidate)) == nil
	}
	if len(p.plain) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(p.plain, []byte(candidate)) == 1
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(plain string, cost int) (string, error) {
	if plain == "" {
		return "", errors.New("password must not be empty")
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
