package handlers

import (
	"context"

	"github.com/cerberus-dev/cerberus/internal/application/clientservice/dto"
	"github.com/cerberus-dev/cerberus/internal/application/clientservice/usecases"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
)

// Use case interfaces for ServiceHandler and StorageHandler.

type listServicesUseCase interface {
	Execute(ctx context.Context, userID uint, role authorization.UserRole) ([]*dto.ServiceDTO, error)
}

type createServiceUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateServiceCommand) (*dto.ServiceDTO, error)
}

type updateServiceUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateServiceCommand) (*dto.ServiceDTO, error)
}

type deleteServiceUseCase interface {
	Execute(ctx context.Context, serviceID uint) error
}

type configureStorageUseCase interface {
	Execute(ctx context.Context, cmd usecases.ConfigureStorageCommand) (*dto.ServiceDTO, error)
}

type storageStatusUseCase interface {
	Execute(ctx context.Context, serviceID uint) (*dto.ServiceDTO, error)
}

type storageOverviewUseCase interface {
	Execute(ctx context.Context) (*dto.OverviewDTO, error)
}

type storageScanner interface {
	ScanService(ctx context.Context, serviceID uint) (*dto.ScanDTO, error)
	ScanAll(ctx context.Context) (*dto.ScanAllDTO, error)
}
