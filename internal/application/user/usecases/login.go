package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/cerberus-dev/cerberus/internal/application/user/dto"
	"github.com/cerberus-dev/cerberus/internal/domain/user"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/utils/logutil"
)

const maxLoggedLoginLength = 64

type LoginCommand struct {
	// Login is a username or an email address.
	Login     string
	Password  string
	IPAddress string
}

type LoginResult struct {
	SessionID          string
	User               *dto.UserDTO
	MustChangePassword bool
}

type LoginUseCase struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	sessions SessionStore
	logger   logger.Interface
	now      func() time.Time
}

func NewLoginUseCase(userRepo user.Repository, hasher user.PasswordHasher, sessions SessionStore, logger logger.Interface) *LoginUseCase {
	return &LoginUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	login := strings.TrimSpace(cmd.Login)
	if login == "" || cmd.Password == "" {
		return nil, errors.NewValidationError("missing_fields")
	}

	u, err := uc.userRepo.GetByLogin(ctx, login)
	if err != nil {
		uc.logger.Errorw("failed to get user for login", "error", err)
		return nil, errors.NewInternalError("failed to authenticate")
	}
	if u == nil {
		uc.logger.Warnw("login attempt for unknown account", "login", logutil.TruncateForLog(login, maxLoggedLoginLength), "ip", cmd.IPAddress)
		return nil, errors.NewUnauthorizedError("invalid_credentials")
	}
	if err := uc.hasher.Verify(cmd.Password, u.PasswordHash()); err != nil {
		uc.logger.Warnw("login attempt with wrong password", "user_id", u.ID(), "ip", cmd.IPAddress)
		return nil, errors.NewUnauthorizedError("invalid_credentials")
	}
	if !u.IsActive() {
		return nil, errors.NewForbiddenError("account_disabled")
	}

	u.RecordLogin(uc.now())
	if err := uc.userRepo.Update(ctx, u); err != nil {
		// Login still succeeds, only the timestamp is lost.
		uc.logger.Warnw("failed to record last login", "user_id", u.ID(), "error", err)
	}

	session, err := uc.sessions.Create(ctx, SessionUserOf(u))
	if err != nil {
		uc.logger.Errorw("failed to create session", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to create session")
	}

	uc.logger.Infow("user logged in", "user_id", u.ID(), "role", u.Role(), "ip", cmd.IPAddress)
	return &LoginResult{
		SessionID:          session.ID,
		User:               dto.ToUserDTO(u),
		MustChangePassword: u.MustChangePassword(),
	}, nil
}

type LogoutUseCase struct {
	sessions SessionStore
	logger   logger.Interface
}

func NewLogoutUseCase(sessions SessionStore, logger logger.Interface) *LogoutUseCase {
	return &LogoutUseCase{sessions: sessions, logger: logger}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := uc.sessions.Delete(ctx, sessionID); err != nil {
		uc.logger.Errorw("failed to delete session", "error", err)
		return errors.NewInternalError("failed to logout")
	}
	return nil
}
