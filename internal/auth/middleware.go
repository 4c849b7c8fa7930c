package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// contextKey is an unexported type so no other package can read or shadow
// the values this package puts in a request context.
type contextKey string

const userIDKey contextKey = "userID"

// PublicPaths are reachable without a session token.
var PublicPaths = []string{
	"/users/authenticate",
	"/users/register",
	"/users/logout",
}

// RequireAuth is a middleware that enforces a valid session on every path
// except the given public ones.
//
// It reads the "token" cookie, validates the JWT inside it and stores the
// caller's user id in the request context. A missing or invalid token stops
// the chain with 401 and the usual {message, type} error body.
func RequireAuth(tokens *TokenService, public ...string) func(http.Handler) http.Handler {
	open := make(map[string]struct{}, len(public))
	for _, p := range public {
		open[strings.TrimSuffix(p, "/")] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := open[strings.TrimSuffix(r.URL.Path, "/")]; ok {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(CookieName)
			if err != nil {
				unauthorized(w, "No authorization token was found")
				return
			}

			userID, err := extractUserID(cookie.Value, tokens)
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}

			ctx := WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext retrieves the authenticated user's ID from the request context.
//
// Returns ("", false) on public routes, where no token was checked.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func extractUserID(cookieValue string, tokens *TokenService) (string, error) {
	s, err := DecodeSession(cookieValue)
	if err != nil {
		return "", err
	}
	return tokens.Validate(s.Token)
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"message": message,
		"type":    "Validation Error",
	})
}
