package handlers

import (
	"context"
	"net/http"

	"github.com/cerberus-dev/cerberus/internal/application/user/usecases"
)

// Use case interfaces for AuthHandler - enables unit testing with mocks.

type loginUseCase interface {
	Execute(ctx context.Context, cmd usecases.LoginCommand) (*usecases.LoginResult, error)
}

type logoutUseCase interface {
	Execute(ctx context.Context, sessionID string) error
}

type changePasswordUseCase interface {
	Execute(ctx context.Context, cmd usecases.ChangePasswordCommand) error
}

type requestPasswordResetUseCase interface {
	Execute(ctx context.Context, email string) error
}

type resetPasswordUseCase interface {
	Execute(ctx context.Context, cmd usecases.ResetPasswordCommand) error
}

// sessionCookie writes and clears the signed session cookie.
type sessionCookie interface {
	Write(w http.ResponseWriter, r *http.Request, id string) error
	Clear(w http.ResponseWriter, r *http.Request) error
}
