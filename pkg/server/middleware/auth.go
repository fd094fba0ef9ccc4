// Package middleware holds the HTTP middleware shared by the API routes.
package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gramsetu/contenthub/pkg/identity"
	"github.com/gramsetu/contenthub/pkg/token"
)

// Authenticator is middleware that validates bearer tokens and attaches the
// caller's identity to the request context.
type Authenticator struct {
	Secret []byte
}

// NewAuthenticator creates a new bearer token authenticator middleware.
func NewAuthenticator(secret []byte) *Authenticator {
	return &Authenticator{Secret: secret}
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	body, _ := json.Marshal(map[string]interface{}{
		"success": false,
		"message": message,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write(body)
}

// Middleware returns an HTTP middleware that rejects requests without a valid
// bearer token.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondUnauthorized(w, "Access denied. No token provided")
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			respondUnauthorized(w, "Malformed authorization header")
			return
		}

		id, err := token.Verify(a.Secret, tokenString)
		if err != nil {
			respondUnauthorized(w, "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), id)))
	})
}
