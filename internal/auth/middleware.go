package auth

import (
	"context"
	"net/http"
	"strings"
)

// contextKey is an unexported type used for context keys in this package.
//
// WHY A CUSTOM TYPE FOR CONTEXT KEYS?
// context.WithValue uses any as the key type. If you use a plain string,
// ANY package that knows the string can read or shadow your value. Using a
// package-private type prevents collisions: only THIS package can create a
// key of type contextKey, so only this package can read or write Identity
// values in the context.
type contextKey string

const identityKey contextKey = "identity"

// RequireAuth is a middleware that enforces authentication on protected
// routes.
//
// It reads the bearer token from the Authorization header, verifies it, and
// stores the resulting Identity in the request context. The two failure
// modes are part of the HTTP contract and map to DIFFERENT status codes:
//
//   - No token presented at all        → 401 Unauthorized
//   - Token present but fails to verify → 403 Forbidden
//
// The middleware does the verification exactly once; downstream handlers
// read the Identity via IdentityFromContext and pass it on as an explicit
// argument — no service or repository ever digs identity out of a context.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := bearerToken(r)
			if !ok {
				writeAuthError(w, http.StatusUnauthorized,
					`{"error":"unauthorized","message":"Authentication token required"}`)
				return
			}

			identity, err := tokens.Verify(tokenStr)
			if err != nil {
				writeAuthError(w, http.StatusForbidden,
					`{"error":"forbidden","message":"Invalid or expired token"}`)
				return
			}

			// Store the identity in context so handlers can read it
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext retrieves the authenticated identity from the request
// context.
//
// Returns (Identity{}, false) if the request is anonymous. On a route
// protected by RequireAuth it always returns (identity, true).
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok && identity.ID != 0
}

// writeAuthError writes a pre-built JSON error body. The middleware cannot
// import the handler package's response helpers without creating an import
// cycle, so it carries its own minimal writer.
func writeAuthError(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Returns ("", false) when no token is presented — the caller must
// treat that as Unauthenticated, not Forbidden.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		// A malformed header still counts as "no token presented".
		return "", false
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", false
	}
	return token, true
}
