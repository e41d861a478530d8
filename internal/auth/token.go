// Package auth provides session token issuance/verification and password
// hashing for the portal API.
//
// AUTHENTICATION FLOW OVERVIEW:
// 1. User signs up or logs in with email + password
// 2. Server verifies credentials and issues a JWT access token
// 3. The frontend stores the token and attaches it to every API call as
//    an "Authorization: Bearer <token>" header
// 4. Middleware validates the token and puts the userID in the request
//    context for protected handlers
//
// WHY JWT?
// JWT (JSON Web Token) is stateless — the server keeps no session table.
// Everything needed (userID, issued-at, expiry) lives inside the signed
// token, and the HMAC signature makes it tamper-evident. Verification needs
// only the signing secret, never a database lookup.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenIssuer identifies tokens minted by this application. Verification
// rejects tokens carrying any other issuer, so a JWT from some other app
// signed with a leaked shared secret still won't pass.
const tokenIssuer = "campus-portal"

// Sentinel errors returned by Verify. Handlers map both to 401, but they
// stay distinct so logs (and tests) can tell an expired session apart from
// a tampered or malformed token.
var (
	ErrTokenExpired = errors.New("auth: token expired")
	ErrTokenInvalid = errors.New("auth: token invalid")
)

// TokenService issues and verifies signed session tokens.
//
// The secret and lifetime come from configuration, are set once at startup,
// and never change while the process runs. The same secret signs and
// verifies — keep it out of version control.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
}

// NewTokenService creates a TokenService.
//
// The secret must be at least 16 characters; anything shorter makes HS256
// brute-forceable. Generate one with: openssl rand -hex 32
func NewTokenService(secret string, lifetime time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: signing secret must be at least 16 characters")
	}
	if lifetime <= 0 {
		return nil, errors.New("auth: token lifetime must be positive")
	}
	return &TokenService{secret: []byte(secret), lifetime: lifetime}, nil
}

// claims is the JWT payload. jwt.RegisteredClaims carries the standard
// fields; the user's internal ID rides in "sub" (Subject).
type claims struct {
	jwt.RegisteredClaims
}

// Issue creates and signs a session token for the given userID.
//
// The expiry is issuance time plus the configured lifetime. Signing uses
// HS256 (HMAC-SHA256) — symmetric, fast, and fine for a single-server
// deployment.
func (s *TokenService) Issue(userID string) (string, error) {
	return s.IssueWithDuration(userID, s.lifetime)
}

// IssueWithDuration creates a token with a custom expiry duration.
// Used by tests to mint already-expired tokens.
func (s *TokenService) IssueWithDuration(userID string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Verify parses and checks a token string, returning the userID it binds.
//
// Failure modes:
//   - ErrTokenExpired — structurally sound and correctly signed, but past
//     its embedded expiry
//   - ErrTokenInvalid — wrong signature, wrong issuer, wrong algorithm,
//     undecodable structure, or a missing subject
//
// ALGORITHM CONFUSION:
// jwt.WithValidMethods pins the accepted algorithm to HS256 so a token
// claiming alg "none" (or an RS256 token with the public key as HMAC
// secret) is rejected before its signature is even considered.
func (s *TokenService) Verify(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", ErrTokenInvalid
	}

	if c.Subject == "" {
		return "", fmt.Errorf("%w: token has no subject", ErrTokenInvalid)
	}

	return c.Subject, nil
}
