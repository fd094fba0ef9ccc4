// Package token issues and verifies the signed access tokens handed out at
// login. Tokens are HMAC-signed JWTs carrying the user's id, display name and
// role.
package token

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gramsetu/contenthub/pkg/identity"
	"github.com/gramsetu/contenthub/pkg/server/store"
)

// SecretEnvVar names the environment variable holding the signing secret.
const SecretEnvVar = "CONTENTHUB_TOKEN_SECRET"

var (
	// ErrNoSecret is returned when no signing secret is configured.
	ErrNoSecret = errors.New("token: signing secret is not configured")

	// ErrInvalidToken is returned when a token fails signature or claim
	// validation.
	ErrInvalidToken = errors.New("token: invalid token")
)

// Claims is the claim set embedded in issued tokens. The subject claim holds
// the user id.
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// SecretFromEnv reads the signing secret from the environment.
func SecretFromEnv() ([]byte, error) {
	secret := os.Getenv(SecretEnvVar)
	if secret == "" {
		return nil, ErrNoSecret
	}
	return []byte(secret), nil
}

// Issue signs a token for user, valid for ttl from now.
func Issue(secret []byte, user store.User, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", ErrNoSecret
	}

	now := time.Now()
	claims := Claims{
		Name: user.Name,
		Role: user.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Verify validates tokenString and returns the identity it carries.
func Verify(secret []byte, tokenString string) (*identity.Identity, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	role, err := identity.RoleString(claims.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}

	return &identity.Identity{
		UserID: claims.Subject,
		Name:   claims.Name,
		Role:   role,
	}, nil
}
