package store

import (
	"errors"
	"time"

	"github.com/gramsetu/contenthub/pkg/identity"
)

// ErrUserNotFound is returned when a user doesn't exist
var ErrUserNotFound = errors.New("user not found")

// ErrEmailTaken is returned when registering an already-registered email
var ErrEmailTaken = errors.New("email already registered")

// User represents a registered account.
type User struct {
	ID             string
	Name           string
	Email          string
	PasswordDigest string
	Role           identity.Role
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Identity returns the request identity for this user.
func (u *User) Identity() *identity.Identity {
	return &identity.Identity{
		UserID: u.ID,
		Name:   u.Name,
		Role:   u.Role,
	}
}

// UsersStore abstracts user storage operations
type UsersStore interface {
	// CreateUser persists a new user. Returns ErrEmailTaken if the email is
	// already registered.
	CreateUser(name, email, passwordDigest string, role identity.Role) (*User, error)

	// FetchUser retrieves a user by id.
	// Returns ErrUserNotFound if the id does not resolve.
	FetchUser(id string) (*User, error)

	// FetchUserByEmail retrieves a user by email.
	// Returns ErrUserNotFound if the email is not registered.
	FetchUserByEmail(email string) (*User, error)
}
