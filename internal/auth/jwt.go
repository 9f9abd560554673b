// Package auth provides JWT token issuance/verification, password hashing,
// and the ownership guard for the review API.
//
// AUTHENTICATION FLOW OVERVIEW:
// 1. User registers with username/email/password → password is bcrypt-hashed
// 2. User logs in → server verifies the hash and issues a JWT access token
// 3. On subsequent API calls, the client sends "Authorization: Bearer <token>"
// 4. Middleware validates the JWT and hands the Identity to the handler
//
// WHY JWT?
// JWT (JSON Web Token) is stateless — the server doesn't need to store
// session data. Everything needed (user id, username, expiry) is inside the
// signed token, and the HMAC signature ensures nobody can tamper with it
// without the secret key. Verification is a local computation: no database
// lookup, no I/O.
//
// THE FLIP SIDE: a token cannot be revoked before it expires. Each token
// carries a unique "jti" claim so that a denylist keyed by token id could be
// added later without reintroducing server-side sessions.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

// tokenLifetime is fixed at 24 hours. After expiry the client must log in
// again — there is no refresh-token flow.
const tokenLifetime = 24 * time.Hour

const issuer = "review-hub"

// Identity is the verified {id, username} pair derived from a token.
// It is what handlers and services receive after the middleware has
// validated the bearer token; the claims are trusted as-is for the token's
// lifetime.
type Identity struct {
	ID       int64
	Username string
}

// TokenService issues and verifies JWT access tokens.
//
// It holds the HMAC secret key used to sign and verify tokens. The same
// secret must be used for both operations.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
// Example: JWT_SECRET=$(openssl rand -hex 32)
//
// A missing or short secret is a fatal configuration error, not a
// request-level failure — it is the only way token issuance can fail.
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims is the JWT payload: the registered claims plus the username, so
// that verification can rebuild a full Identity without touching the
// database.
//
// The "sub" (Subject) claim carries the numeric user id as a decimal
// string — JWT subjects are strings by definition.
type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Issue creates and signs a new access token for the given identity.
//
// Signing algorithm: HS256 (HMAC-SHA256)
// - Symmetric: same key for signing and verifying
// - Fast and simple — good for single-server deployments
//
// The "jti" claim is a fresh xid: globally unique, sortable by issuance
// time. Nothing consumes it today, but it is the natural key for a token
// denylist if revocation is ever required.
func (s *TokenService) Issue(identity Identity) (string, error) {
	now := time.Now()

	c := claims{
		Username: identity.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(identity.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
			Issuer:    issuer,
			ID:        xid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// issueWithLifetime creates a token with a custom expiry duration.
// Used by the tests in this package to produce already-expired tokens.
func (s *TokenService) issueWithLifetime(identity Identity, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		Username: identity.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(identity.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
			ID:        xid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a JWT string and returns the Identity it
// encodes.
//
// VALIDATION CHECKS (performed by the jwt library):
//   - Signature is valid (wasn't tampered with)
//   - Token is not expired (ExpiresAt is in the future)
//   - Issuer matches (prevents tokens from other apps)
//   - Algorithm is HS256 (prevents algorithm confusion attacks)
//
// Verification is side-effect-free and never consults the database. The
// distinction between "no token presented" and "token present but invalid"
// is the caller's concern — Verify only ever sees a present token.
func (s *TokenService) Verify(tokenStr string) (Identity, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			// Reject tokens that aren't signed with HMAC
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
			return Identity{}, fmt.Errorf("auth: token expired")
		}
		return Identity{}, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("auth: invalid token claims")
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return Identity{}, fmt.Errorf("auth: token has no valid subject")
	}
	if c.Username == "" {
		return Identity{}, fmt.Errorf("auth: token has no username")
	}

	return Identity{ID: userID, Username: c.Username}, nil
}
