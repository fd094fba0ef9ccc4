package gorm

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gramsetu/contenthub/pkg/identity"
	"github.com/gramsetu/contenthub/pkg/server/store"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore using GORM
type UsersStore struct {
	db *gorm.DB
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *gorm.DB) *UsersStore {
	return &UsersStore{db: db}
}

type userRow struct {
	ID             string
	Name           string
	Email          string
	PasswordDigest string
	Role           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CreateUser persists a new user
func (s *UsersStore) CreateUser(name, email, passwordDigest string, role identity.Role) (*store.User, error) {
	id := uuid.NewString()
	tx := s.db.Exec(`
		INSERT INTO users (id, name, email, password_digest, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())
	`, id, name, strings.ToLower(email), passwordDigest, role.String())
	if tx.Error != nil {
		if strings.Contains(tx.Error.Error(), "duplicate key") {
			return nil, store.ErrEmailTaken
		}
		return nil, tx.Error
	}

	return s.FetchUser(id)
}

// FetchUser retrieves a user by id
func (s *UsersStore) FetchUser(id string) (*store.User, error) {
	var row userRow
	tx := s.db.Raw(`
		SELECT id, name, email, password_digest, role, created_at, updated_at
		FROM users WHERE id::text = ?
	`, id).Scan(&row)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, store.ErrUserNotFound
	}

	return row.toUser()
}

// FetchUserByEmail retrieves a user by email
func (s *UsersStore) FetchUserByEmail(email string) (*store.User, error) {
	var row userRow
	tx := s.db.Raw(`
		SELECT id, name, email, password_digest, role, created_at, updated_at
		FROM users WHERE email = ?
	`, strings.ToLower(email)).Scan(&row)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, store.ErrUserNotFound
	}

	return row.toUser()
}

func (row userRow) toUser() (*store.User, error) {
	role, err := identity.RoleString(row.Role)
	if err != nil {
		return nil, err
	}

	return &store.User{
		ID:             row.ID,
		Name:           row.Name,
		Email:          row.Email,
		PasswordDigest: row.PasswordDigest,
		Role:           role,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}, nil
}
