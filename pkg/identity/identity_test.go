package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Role
		wantErr  bool
	}{
		{
			name:     "user",
			input:    "user",
			expected: RoleUser,
		},
		{
			name:     "entrepreneur",
			input:    "entrepreneur",
			expected: RoleEntrepreneur,
		},
		{
			name:     "admin",
			input:    "admin",
			expected: RoleAdmin,
		},
		{
			name:     "mixed case",
			input:    "Admin",
			expected: RoleAdmin,
		},
		{
			name:    "unknown role",
			input:   "superuser",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := RoleString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, role)
		})
	}
}

func TestRole_Elevated(t *testing.T) {
	assert.True(t, RoleAdmin.Elevated())
	assert.False(t, RoleUser.Elevated())
	assert.False(t, RoleEntrepreneur.Elevated())
}

func TestRole_Registerable(t *testing.T) {
	assert.True(t, RoleUser.Registerable())
	assert.True(t, RoleEntrepreneur.Registerable())
	assert.False(t, RoleAdmin.Registerable())
}

func TestIdentity_CanModify(t *testing.T) {
	tests := []struct {
		name     string
		identity Identity
		ownerID  string
		expected bool
	}{
		{
			name:     "owner may modify",
			identity: Identity{UserID: "u1", Role: RoleUser},
			ownerID:  "u1",
			expected: true,
		},
		{
			name:     "non-owner may not modify",
			identity: Identity{UserID: "u1", Role: RoleUser},
			ownerID:  "u2",
			expected: false,
		},
		{
			name:     "non-owner entrepreneur may not modify",
			identity: Identity{UserID: "u1", Role: RoleEntrepreneur},
			ownerID:  "u2",
			expected: false,
		},
		{
			name:     "admin bypasses ownership",
			identity: Identity{UserID: "u1", Role: RoleAdmin},
			ownerID:  "u2",
			expected: true,
		},
		{
			name:     "empty owner is never owned",
			identity: Identity{UserID: "", Role: RoleUser},
			ownerID:  "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.identity.CanModify(tt.ownerID))
		})
	}
}

func TestContextGetSet(t *testing.T) {
	ctx := context.Background()

	id, ok := Get(ctx)
	assert.False(t, ok)
	assert.Nil(t, id)

	expected := &Identity{UserID: "u1", Name: "Asha", Role: RoleEntrepreneur}
	ctx = Set(ctx, expected)

	id, ok = Get(ctx)
	assert.True(t, ok)
	require.NotNil(t, id)
	assert.Equal(t, expected, id)
}
