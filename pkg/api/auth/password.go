package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the bcrypt cost used by HashPassword.
const DefaultBcryptCost = 10

// Password length constraints. bcrypt silently truncates input beyond 72
// bytes.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

var (
	// ErrInvalidCredentials is returned for an unknown user or a wrong
	// password. The two cases are indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong  = errors.New("password must be at most 72 bytes")
)

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), DefaultBcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ValidatePassword checks the length constraints.
func ValidatePassword(password string) error {
	switch {
	case len(password) < MinPasswordLength:
		return ErrPasswordTooShort
	case len(password) > MaxPasswordLength:
		return ErrPasswordTooLong
	}
	return nil
}

// Accounts verifies username/password pairs against bcrypt hashes.
type Accounts struct {
	hashes map[string][]byte
	// dummy is compared against for unknown users so that lookups of
	// missing and existing accounts take similar time.
	dummy []byte
}

// NewAccounts builds Accounts from username to bcrypt hash pairs.
func NewAccounts(hashes map[string]string) *Accounts {
	a := &Accounts{hashes: make(map[string][]byte, len(hashes))}
	for user, hash := range hashes {
		a.hashes[user] = []byte(hash)
	}
	a.dummy, _ = bcrypt.GenerateFromPassword([]byte("sharefs-dummy-password"), DefaultBcryptCost)
	return a
}

// Authenticate returns ErrInvalidCredentials unless password matches the
// stored hash for username.
func (a *Accounts) Authenticate(username, password string) error {
	hash, ok := a.hashes[username]
	if !ok {
		_ = bcrypt.CompareHashAndPassword(a.dummy, []byte(password))
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Len returns the number of accounts.
func (a *Accounts) Len() int { return len(a.hashes) }
