package usecases

import (
	"context"

	"github.com/cerberus-dev/cerberus/internal/application/user/dto"
)

type LoginExecutor interface {
	Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error)
}

type LogoutExecutor interface {
	Execute(ctx context.Context, sessionID string) error
}

type ChangePasswordExecutor interface {
	Execute(ctx context.Context, cmd ChangePasswordCommand) error
}

type RequestPasswordResetExecutor interface {
	Execute(ctx context.Context, email string) error
}

type ResetPasswordExecutor interface {
	Execute(ctx context.Context, cmd ResetPasswordCommand) error
}

type GetUserExecutor interface {
	Execute(ctx context.Context, userID uint) (*dto.UserDTO, error)
}

type ListUsersExecutor interface {
	Execute(ctx context.Context, role string) ([]*dto.UserDTO, error)
}

type ListDirectoryExecutor interface {
	Execute(ctx context.Context) ([]*dto.UserSummaryDTO, error)
}

type CreateUserExecutor interface {
	Execute(ctx context.Context, cmd CreateUserCommand) (*CreateUserResult, error)
}

type UpdateUserExecutor interface {
	Execute(ctx context.Context, cmd UpdateUserCommand) (*dto.UserDTO, error)
}

type DeleteUserExecutor interface {
	Execute(ctx context.Context, actorID, userID uint) error
}

type RecoverUserExecutor interface {
	Execute(ctx context.Context, userID uint) (*RecoverUserResult, error)
}
