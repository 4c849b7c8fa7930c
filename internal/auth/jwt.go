// Package auth issues and checks session tokens and guards protected routes.
//
// SESSION FLOW:
//  1. POST /users/authenticate checks userName + password
//  2. The server signs a JWT and stores it in the HttpOnly "token" cookie,
//     next to the user id (see cookie.go for the cookie encoding)
//  3. RequireAuth reads that cookie on every non-public request, validates
//     the JWT and puts the caller's user id in the request context
//  4. POST /users/logout clears the cookie. Nothing is revoked server-side:
//     a copied token stays valid until it expires.
//
// TOKEN CLAIMS:
//
//	{"sub":"<userName>","uid":"<user id>","iss":"review-board","iat":...,"exp":...}
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "review-board"

// DefaultTokenTTL is used when NewTokenService gets a non-positive ttl.
const DefaultTokenTTL = 24 * time.Hour

// TokenService handles JWT creation and validation.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService with the given HMAC secret and
// token lifetime.
// Example: JWT_SECRET=$(openssl rand -hex 32)
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// claims is the JWT payload. The subject is the user name; UserID carries
// the record id so the gate can resolve the caller without a lookup.
type claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Generate signs a token for the given user with the service's lifetime.
func (s *TokenService) Generate(userID, userName string) (string, error) {
	return s.GenerateWithDuration(userID, userName, s.ttl)
}

// GenerateWithDuration signs a token with a custom lifetime.
// Used in tests to mint already-expired tokens.
func (s *TokenService) GenerateWithDuration(userID, userName string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a JWT string and returns the user id it
// was issued for.
//
// The signature, algorithm (HS256 only), issuer and expiry are all checked
// by the jwt library.
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: token expired")
		}
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: invalid token claims")
	}

	if c.UserID == "" || c.Subject == "" {
		return "", fmt.Errorf("auth: token has no subject")
	}

	return c.UserID, nil
}
