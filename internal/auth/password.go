// Package auth — password hashing.
//
// WHY BCRYPT?
// bcrypt is deliberately slow, and that slowness is the security feature:
// it makes offline brute-force expensive. It also generates a random salt
// per call and embeds it in the output, so two users with the same password
// get different hashes and no separate salt column is needed.
//
// Hash format (the full output of bcrypt.GenerateFromPassword):
//
//	$2a$12$<22-char salt><31-char hash>
//	 ^   ^
//	 |   cost (12 rounds → 2^12 iterations)
//	 version
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/campus-portal/internal/apperror"
)

// MinPasswordLength is the shortest password accepted at signup.
const MinPasswordLength = 6

// DefaultCost is the bcrypt work factor used in production.
//
// Cost 12 lands in the low hundreds of milliseconds on commodity hardware —
// negligible for an interactive login, brutal for an attacker hashing
// billions of guesses. Tune it so hashing stays in that range; it is
// injectable through configuration rather than baked in.
const DefaultCost = 12

// PasswordService provides bcrypt hashing and verification.
//
// It is a struct (not free functions) so the cost can be injected: tests
// use the bcrypt minimum (4) to avoid paying hundreds of milliseconds per
// hash without changing any of the logic under test.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a PasswordService with the given bcrypt cost.
// Pass auth.DefaultCost outside of tests.
func NewPasswordService(cost int) *PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &PasswordService{cost: cost}
}

// Hash hashes a plaintext password with bcrypt.
//
// Rejects passwords shorter than MinPasswordLength (a validation error the
// signup form surfaces per-field) and longer than 72 bytes — bcrypt silently
// truncates beyond that, which would quietly weaken long passphrases.
//
// The output is self-contained (salt and cost included); store it directly.
// Hashing the same password twice yields different strings because the salt
// is random per call.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) < MinPasswordLength {
		return "", apperror.ValidationFailed("password",
			fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength))
	}
	if len(plaintext) > 72 {
		return "", apperror.ValidationFailed("password", "Password must be 72 bytes or fewer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored bcrypt hash.
//
// It never returns an error: a mismatch, an empty input, or a garbage hash
// all simply verify as false. bcrypt.CompareHashAndPassword compares in
// constant time, so response timing does not leak how close a guess was.
func (p *PasswordService) Verify(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
