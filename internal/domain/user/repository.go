package user

import (
	"context"

	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*User, error)
	// GetByLogin matches either the username or the email address.
	GetByLogin(ctx context.Context, identifier string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]*User, error)
}

type ListFilter struct {
	Role       *authorization.UserRole
	ActiveOnly bool
	// WithEmail drops accounts without an email address.
	WithEmail bool
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}
