// PASSWORD STORAGE:
// The review API has always stored passwords exactly as submitted and
// compared them with plain equality. PasswordService keeps that as the
// default mode so existing records keep working, and can be switched to
// bcrypt (PASSWORD_MODE=bcrypt) for new deployments. The two modes do not
// mix: a bcrypt server cannot verify plain records and vice versa.

package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor used in bcrypt mode.
const defaultCost = 12

// ErrPasswordMismatch is returned by Verify when the password is wrong.
var ErrPasswordMismatch = errors.New("auth: invalid password")

// PasswordService turns submitted passwords into stored values and checks
// login attempts against them.
type PasswordService struct {
	hashed bool
	cost   int
}

// NewPlainPasswordService stores and compares passwords as plain text.
func NewPlainPasswordService() *PasswordService {
	return &PasswordService{}
}

// NewPasswordService stores bcrypt hashes with the default cost (12).
func NewPasswordService() *PasswordService {
	return &PasswordService{hashed: true, cost: defaultCost}
}

// NewPasswordServiceForTest creates a bcrypt PasswordService with a low
// cost (4 is the minimum) so tests in other packages stay fast.
//
// Do NOT use in production.
func NewPasswordServiceForTest(cost int) *PasswordService {
	return &PasswordService{hashed: true, cost: cost}
}

// Hashed reports whether stored values are bcrypt hashes.
func (p *PasswordService) Hashed() bool {
	return p.hashed
}

// Hash returns the value to store for the given plaintext password.
// In plain mode that is the plaintext itself.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if !p.hashed {
		return plaintext, nil
	}
	if len(plaintext) > 72 {
		// bcrypt silently truncates past 72 bytes
		return "", fmt.Errorf("auth: password must be 72 bytes or fewer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify checks a login attempt against a stored value.
// Returns nil on match and ErrPasswordMismatch when they differ.
func (p *PasswordService) Verify(stored, plaintext string) error {
	if !p.hashed {
		if subtle.ConstantTimeCompare([]byte(stored), []byte(plaintext)) != 1 {
			return ErrPasswordMismatch
		}
		return nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}
