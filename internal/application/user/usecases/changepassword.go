package usecases

import (
	"context"

	"github.com/cerberus-dev/cerberus/internal/domain/user"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
)

type ChangePasswordCommand struct {
	UserID          uint
	SessionID       string
	CurrentPassword string
	NewPassword     string
}

// ChangePasswordUseCase replaces the password of the logged in user and
// refreshes the session snapshot so the forced-change flag clears at once.
type ChangePasswordUseCase struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	sessions SessionStore
	logger   logger.Interface
}

func NewChangePasswordUseCase(userRepo user.Repository, hasher user.PasswordHasher, sessions SessionStore, logger logger.Interface) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		sessions: sessions,
		logger:   logger,
	}
}

func (uc *ChangePasswordUseCase) Execute(ctx context.Context, cmd ChangePasswordCommand) error {
	if cmd.CurrentPassword == "" || cmd.NewPassword == "" {
		return errors.NewValidationError("missing_fields")
	}
	if len(cmd.NewPassword) < MinPasswordLength {
		return errors.NewValidationError("password_too_short")
	}

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", cmd.UserID, "error", err)
		return errors.NewInternalError("failed to change password")
	}
	if u == nil {
		return errors.NewNotFoundError("not_found")
	}
	if err := uc.hasher.Verify(cmd.CurrentPassword, u.PasswordHash()); err != nil {
		return errors.NewValidationError("wrong_password")
	}

	hash, err := uc.hasher.Hash(cmd.NewPassword)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "user_id", u.ID(), "error", err)
		return errors.NewInternalError("failed to change password")
	}
	u.ChangePassword(hash)
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to save password", "user_id", u.ID(), "error", err)
		return errors.NewInternalError("failed to change password")
	}

	if cmd.SessionID != "" {
		if err := uc.sessions.UpdateUser(ctx, cmd.SessionID, SessionUserOf(u)); err != nil {
			uc.logger.Warnw("failed to refresh session after password change", "user_id", u.ID(), "error", err)
		}
	}

	uc.logger.Infow("password changed", "user_id", u.ID())
	return nil
}
