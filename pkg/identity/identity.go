package identity

import (
	"context"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"
)

// Identity represents the authenticated caller for a request.
type Identity struct {
	UserID string
	Name   string
	Role   Role
}

// Owns reports whether the identity is the recorded owner of a record.
func (i *Identity) Owns(ownerID string) bool {
	return ownerID != "" && i.UserID == ownerID
}

// CanModify reports whether the identity may update or delete a record owned
// by ownerID. Elevated roles bypass the ownership check.
func (i *Identity) CanModify(ownerID string) bool {
	return i.Role.Elevated() || i.Owns(ownerID)
}

// Get retrieves Identity from context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok
}

// Set stores Identity in context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}
