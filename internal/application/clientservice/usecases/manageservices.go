package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cerberus-dev/cerberus/internal/application/clientservice/dto"
	"github.com/cerberus-dev/cerberus/internal/domain/clientservice"
	vo "github.com/cerberus-dev/cerberus/internal/domain/clientservice/valueobjects"
	"github.com/cerberus-dev/cerberus/internal/domain/user"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
)

// ServiceInput is the editable part of a service as sent by the panel.
type ServiceInput struct {
	ServiceName    string
	Domain         string
	Description    string
	ServiceType    string
	Status         string
	StorageLimitMB float64
	StartDate      *time.Time
	EndDate        *time.Time
}

func (in ServiceInput) details() (clientservice.Details, error) {
	status, err := vo.NewServiceStatus(strings.TrimSpace(in.Status))
	if err != nil {
		return clientservice.Details{}, errors.NewValidationError("bad_status")
	}
	return clientservice.Details{
		ServiceName:    in.ServiceName,
		Domain:         strings.TrimSpace(in.Domain),
		Description:    strings.TrimSpace(in.Description),
		ServiceType:    strings.TrimSpace(in.ServiceType),
		Status:         status,
		StorageLimitMB: in.StorageLimitMB,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
	}, nil
}

// ListServicesUseCase returns every service to staff and only their own to
// clients.
type ListServicesUseCase struct {
	serviceRepo clientservice.Repository
}

func NewListServicesUseCase(serviceRepo clientservice.Repository) *ListServicesUseCase {
	return &ListServicesUseCase{serviceRepo: serviceRepo}
}

func (uc *ListServicesUseCase) Execute(ctx context.Context, userID uint, role authorization.UserRole) ([]*dto.ServiceDTO, error) {
	var clientID *uint
	if !role.IsStaff() {
		clientID = &userID
	}
	views, err := uc.serviceRepo.List(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return dto.ToServiceViewDTOs(views), nil
}

type CreateServiceCommand struct {
	ClientID uint
	ServiceInput
}

type CreateServiceUseCase struct {
	serviceRepo clientservice.Repository
	userRepo    user.Repository
	logger      logger.Interface
}

func NewCreateServiceUseCase(serviceRepo clientservice.Repository, userRepo user.Repository, logger logger.Interface) *CreateServiceUseCase {
	return &CreateServiceUseCase{serviceRepo: serviceRepo, userRepo: userRepo, logger: logger}
}

func (uc *CreateServiceUseCase) Execute(ctx context.Context, cmd CreateServiceCommand) (*dto.ServiceDTO, error) {
	if cmd.ClientID == 0 || strings.TrimSpace(cmd.ServiceName) == "" {
		return nil, errors.NewValidationError("missing_fields")
	}
	client, err := uc.userRepo.GetByID(ctx, cmd.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	if client == nil || client.Role() != authorization.RoleClient {
		return nil, errors.NewValidationError("bad_client")
	}

	details, err := cmd.details()
	if err != nil {
		return nil, err
	}
	s, err := clientservice.NewClientService(cmd.ClientID, details)
	if err != nil {
		return nil, errors.NewValidationError("missing_fields", err.Error())
	}
	if err := uc.serviceRepo.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save service: %w", err)
	}

	uc.logger.Infow("client service created", "service_id", s.ID(), "client_id", cmd.ClientID)
	return dto.ToServiceDTO(s), nil
}

type UpdateServiceCommand struct {
	ServiceID uint
	ServiceInput
}

type UpdateServiceUseCase struct {
	serviceRepo clientservice.Repository
	logger      logger.Interface
}

func NewUpdateServiceUseCase(serviceRepo clientservice.Repository, logger logger.Interface) *UpdateServiceUseCase {
	return &UpdateServiceUseCase{serviceRepo: serviceRepo, logger: logger}
}

func (uc *UpdateServiceUseCase) Execute(ctx context.Context, cmd UpdateServiceCommand) (*dto.ServiceDTO, error) {
	s, err := loadService(ctx, uc.serviceRepo, cmd.ServiceID)
	if err != nil {
		return nil, err
	}
	details, err := cmd.details()
	if err != nil {
		return nil, err
	}
	if err := s.UpdateDetails(details); err != nil {
		return nil, errors.NewValidationError("missing_fields", err.Error())
	}
	if err := uc.serviceRepo.Update(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	uc.logger.Infow("client service updated", "service_id", s.ID())
	return dto.ToServiceDTO(s), nil
}

type DeleteServiceUseCase struct {
	serviceRepo clientservice.Repository
	logger      logger.Interface
}

func NewDeleteServiceUseCase(serviceRepo clientservice.Repository, logger logger.Interface) *DeleteServiceUseCase {
	return &DeleteServiceUseCase{serviceRepo: serviceRepo, logger: logger}
}

func (uc *DeleteServiceUseCase) Execute(ctx context.Context, serviceID uint) error {
	if _, err := loadService(ctx, uc.serviceRepo, serviceID); err != nil {
		return err
	}
	if err := uc.serviceRepo.Delete(ctx, serviceID); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	uc.logger.Infow("client service deleted", "service_id", serviceID)
	return nil
}

type ConfigureStorageCommand struct {
	ServiceID      uint
	FolderPath     string
	StorageLimitMB float64
	AlertThreshold int
}

// ConfigureStorageUseCase sets the folder a service is measured on and its
// quota.
type ConfigureStorageUseCase struct {
	serviceRepo clientservice.Repository
	logger      logger.Interface
}

func NewConfigureStorageUseCase(serviceRepo clientservice.Repository, logger logger.Interface) *ConfigureStorageUseCase {
	return &ConfigureStorageUseCase{serviceRepo: serviceRepo, logger: logger}
}

func (uc *ConfigureStorageUseCase) Execute(ctx context.Context, cmd ConfigureStorageCommand) (*dto.ServiceDTO, error) {
	s, err := loadService(ctx, uc.serviceRepo, cmd.ServiceID)
	if err != nil {
		return nil, err
	}
	if err := s.ConfigureStorage(cmd.FolderPath, cmd.StorageLimitMB, cmd.AlertThreshold); err != nil {
		return nil, errors.NewValidationError("bad_threshold", err.Error())
	}
	if err := uc.serviceRepo.Update(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	uc.logger.Infow("storage configured",
		"service_id", s.ID(),
		"folder", s.FolderPath(),
		"limit_mb", s.StorageLimitMB(),
		"threshold", s.AlertThreshold(),
	)
	return dto.ToServiceDTO(s), nil
}

// GetStorageStatusUseCase returns the stored usage of one service without
// scanning.
type GetStorageStatusUseCase struct {
	serviceRepo clientservice.Repository
}

func NewGetStorageStatusUseCase(serviceRepo clientservice.Repository) *GetStorageStatusUseCase {
	return &GetStorageStatusUseCase{serviceRepo: serviceRepo}
}

func (uc *GetStorageStatusUseCase) Execute(ctx context.Context, serviceID uint) (*dto.ServiceDTO, error) {
	s, err := loadService(ctx, uc.serviceRepo, serviceID)
	if err != nil {
		return nil, err
	}
	return dto.ToServiceDTO(s), nil
}

type GetStorageOverviewUseCase struct {
	serviceRepo clientservice.Repository
}

func NewGetStorageOverviewUseCase(serviceRepo clientservice.Repository) *GetStorageOverviewUseCase {
	return &GetStorageOverviewUseCase{serviceRepo: serviceRepo}
}

func (uc *GetStorageOverviewUseCase) Execute(ctx context.Context) (*dto.OverviewDTO, error) {
	views, err := uc.serviceRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := &dto.OverviewDTO{
		Services: dto.ToServiceViewDTOs(views),
		ByStatus: map[string]int{
			vo.StorageOK.String():       0,
			vo.StorageWarning.String():  0,
			vo.StorageDanger.String():   0,
			vo.StorageCritical.String(): 0,
		},
	}
	for _, v := range views {
		out.TotalUsedMB += v.Service.StorageUsedMB()
		out.TotalLimitMB += v.Service.StorageLimitMB()
		out.ByStatus[v.Service.StorageStatus().String()]++
	}
	out.TotalUsedMB = vo.Round2(out.TotalUsedMB)
	out.TotalLimitMB = vo.Round2(out.TotalLimitMB)
	return out, nil
}

func loadService(ctx context.Context, repo clientservice.Repository, id uint) (*clientservice.ClientService, error) {
	s, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.NewNotFoundError("not_found")
	}
	return s, nil
}
