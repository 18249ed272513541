package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/cerberus-dev/cerberus/internal/application/common"
	domainEmail "github.com/cerberus-dev/cerberus/internal/domain/email"
	"github.com/cerberus-dev/cerberus/internal/domain/user"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/sideeffect"
)

// RequestPasswordResetUseCase mails a reset link. It never reveals whether
// the address belongs to an account.
type RequestPasswordResetUseCase struct {
	userRepo user.Repository
	tokens   ResetTokens
	emails   common.EmailSender
	effects  sideeffect.Runner
	links    common.Links
	logger   logger.Interface
}

func NewRequestPasswordResetUseCase(
	userRepo user.Repository,
	tokens ResetTokens,
	emails common.EmailSender,
	effects sideeffect.Runner,
	links common.Links,
	logger logger.Interface,
) *RequestPasswordResetUseCase {
	return &RequestPasswordResetUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		emails:   emails,
		effects:  effects,
		links:    links,
		logger:   logger,
	}
}

func (uc *RequestPasswordResetUseCase) Execute(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errors.NewValidationError("missing_fields")
	}

	u, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to look up user for password reset", "error", err)
		return nil
	}
	if u == nil || !u.IsActive() {
		uc.logger.Infow("password reset requested for unknown or inactive account")
		return nil
	}

	token, err := uc.tokens.Issue(u.ID(), u.PasswordHash())
	if err != nil {
		uc.logger.Errorw("failed to issue reset token", "user_id", u.ID(), "error", err)
		return nil
	}

	vars := map[string]any{
		"name":      u.DisplayName(),
		"resetUrl":  uc.links.PasswordReset(token),
		"expiresIn": fmt.Sprintf("%d minutos", int(uc.tokens.TTL().Minutes())),
	}
	to := u.Email()
	uc.effects.Go(ctx, "password.reset_email", func(ctx context.Context) error {
		return uc.emails.Send(ctx, domainEmail.CodePasswordReset, to, vars).Err()
	})

	uc.logger.Infow("password reset link issued", "user_id", u.ID())
	return nil
}

type ResetPasswordCommand struct {
	Token       string
	NewPassword string
}

type ResetPasswordUseCase struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	tokens   ResetTokens
	logger   logger.Interface
}

func NewResetPasswordUseCase(userRepo user.Repository, hasher user.PasswordHasher, tokens ResetTokens, logger logger.Interface) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

func (uc *ResetPasswordUseCase) Execute(ctx context.Context, cmd ResetPasswordCommand) error {
	if cmd.Token == "" || cmd.NewPassword == "" {
		return errors.NewValidationError("missing_fields")
	}
	if len(cmd.NewPassword) < MinPasswordLength {
		return errors.NewValidationError("password_too_short")
	}

	userID, claims, err := uc.tokens.Verify(cmd.Token)
	if err != nil {
		uc.logger.Warnw("rejected password reset token", "error", err)
		return errors.NewValidationError("invalid_token")
	}

	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to get user for password reset", "user_id", userID, "error", err)
		return errors.NewInternalError("failed to reset password")
	}
	// A changed hash means the link was already used.
	if u == nil || !u.IsActive() || !claims.MatchesPassword(u.PasswordHash()) {
		return errors.NewValidationError("invalid_token")
	}

	hash, err := uc.hasher.Hash(cmd.NewPassword)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "user_id", u.ID(), "error", err)
		return errors.NewInternalError("failed to reset password")
	}
	u.ChangePassword(hash)
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to save reset password", "user_id", u.ID(), "error", err)
		return errors.NewInternalError("failed to reset password")
	}

	uc.logger.Infow("password reset completed", "user_id", u.ID())
	return nil
}
