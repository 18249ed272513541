package usecases

import (
	"context"
	"time"

	"github.com/cerberus-dev/cerberus/internal/domain/user"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/auth"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/cache"
)

// MinPasswordLength applies to every password a user picks.
const MinPasswordLength = 8

// SessionStore keeps login sessions server side.
type SessionStore interface {
	Create(ctx context.Context, u cache.SessionUser) (*cache.Session, error)
	UpdateUser(ctx context.Context, id string, u cache.SessionUser) error
	Delete(ctx context.Context, id string) error
}

// ResetTokens issues and verifies password reset links.
type ResetTokens interface {
	Issue(userID uint, passwordHash string) (string, error)
	Verify(token string) (uint, *auth.ResetClaims, error)
	TTL() time.Duration
}

// SessionUserOf is the snapshot stored with a session for u.
func SessionUserOf(u *user.User) cache.SessionUser {
	return cache.SessionUser{
		ID:                 u.ID(),
		Username:           u.Username(),
		Email:              u.Email(),
		DisplayName:        u.DisplayName(),
		Role:               u.Role(),
		MustChangePassword: u.MustChangePassword(),
		PM2Access:          u.PM2Access(),
	}
}
