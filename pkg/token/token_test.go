package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gramsetu/contenthub/pkg/identity"
	"github.com/gramsetu/contenthub/pkg/server/store"
)

var testSecret = []byte("test-secret")

func testUser() store.User {
	return store.User{
		ID:   "8c2f2c1e-6a1d-4f27-9e61-0f6a9c2b7d01",
		Name: "Asha",
		Role: identity.RoleEntrepreneur,
	}
}

func TestIssueAndVerify(t *testing.T) {
	tokenString, err := Issue(testSecret, testUser(), time.Minute)
	require.NoError(t, err)

	id, err := Verify(testSecret, tokenString)
	require.NoError(t, err)
	assert.Equal(t, "8c2f2c1e-6a1d-4f27-9e61-0f6a9c2b7d01", id.UserID)
	assert.Equal(t, "Asha", id.Name)
	assert.Equal(t, identity.RoleEntrepreneur, id.Role)
}

func TestVerify_WrongSecret(t *testing.T) {
	tokenString, err := Issue(testSecret, testUser(), time.Minute)
	require.NoError(t, err)

	_, err = Verify([]byte("other-secret"), tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	tokenString, err := Issue(testSecret, testUser(), -time.Minute)
	require.NoError(t, err)

	_, err = Verify(testSecret, tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := Verify(testSecret, "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_UnexpectedSigningMethod(t *testing.T) {
	// Unsigned tokens must be rejected even though they parse.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Name: "Asha",
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "some-id",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = Verify(testSecret, unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_UnknownRole(t *testing.T) {
	claims := Claims{
		Name: "Asha",
		Role: "superuser",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "some-id",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = Verify(testSecret, tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssue_NoSecret(t *testing.T) {
	_, err := Issue(nil, testUser(), time.Minute)
	assert.ErrorIs(t, err, ErrNoSecret)
}
