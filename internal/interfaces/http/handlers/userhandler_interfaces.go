package handlers

import (
	"context"

	"github.com/cerberus-dev/cerberus/internal/application/user/dto"
	"github.com/cerberus-dev/cerberus/internal/application/user/usecases"
)

// Use case interfaces for UserHandler.

type listUsersUseCase interface {
	Execute(ctx context.Context, role string) ([]*dto.UserDTO, error)
}

type getUserUseCase interface {
	Execute(ctx context.Context, userID uint) (*dto.UserDTO, error)
}

type listDirectoryUseCase interface {
	Execute(ctx context.Context) ([]*dto.UserSummaryDTO, error)
}

type createUserUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateUserCommand) (*usecases.CreateUserResult, error)
}

type updateUserUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateUserCommand) (*dto.UserDTO, error)
}

type deleteUserUseCase interface {
	Execute(ctx context.Context, actorID, userID uint) error
}

type recoverUserUseCase interface {
	Execute(ctx context.Context, userID uint) (*usecases.RecoverUserResult, error)
}
