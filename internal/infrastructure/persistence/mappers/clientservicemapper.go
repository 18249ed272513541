package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/cerberus-dev/cerberus/internal/domain/clientservice"
	vo "github.com/cerberus-dev/cerberus/internal/domain/clientservice/valueobjects"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/persistence/models"
)

type ClientServiceMapper interface {
	ToModel(s *clientservice.ClientService) (*models.ClientServiceModel, error)
	ToDomain(model *models.ClientServiceModel) (*clientservice.ClientService, error)
}

type ClientServiceMapperImpl struct{}

func NewClientServiceMapper() ClientServiceMapper {
	return &ClientServiceMapperImpl{}
}

func (m *ClientServiceMapperImpl) ToModel(s *clientservice.ClientService) (*models.ClientServiceModel, error) {
	model := &models.ClientServiceModel{
		ID:             s.ID(),
		ClientID:       s.ClientID(),
		ServiceName:    s.ServiceName(),
		Domain:         s.Domain(),
		Description:    s.Description(),
		ServiceType:    s.ServiceType(),
		Status:         string(s.Status()),
		StorageUsedMB:  s.StorageUsedMB(),
		StorageLimitMB: s.StorageLimitMB(),
		AlertThreshold: s.AlertThreshold(),
		FolderPath:     nullableString(s.FolderPath()),
		LastScanAt:     s.LastScanAt(),
		AlertSentAt:    s.AlertSentAt(),
		StartDate:      s.StartDate(),
		EndDate:        s.EndDate(),
		CreatedAt:      s.CreatedAt(),
		UpdatedAt:      s.UpdatedAt(),
	}
	if r := s.LastScanResult(); r != nil {
		raw, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal scan result: %w", err)
		}
		model.LastScanResult = datatypes.JSON(raw)
	}
	return model, nil
}

func (m *ClientServiceMapperImpl) ToDomain(model *models.ClientServiceModel) (*clientservice.ClientService, error) {
	status, err := vo.NewServiceStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("service %d: %w", model.ID, err)
	}

	var result *clientservice.ScanResult
	if len(model.LastScanResult) > 0 && string(model.LastScanResult) != "null" {
		result = &clientservice.ScanResult{}
		if err := json.Unmarshal(model.LastScanResult, result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal scan result (id=%d): %w", model.ID, err)
		}
	}

	return clientservice.ReconstructClientService(clientservice.State{
		ID:       model.ID,
		ClientID: model.ClientID,
		Details: clientservice.Details{
			ServiceName:    model.ServiceName,
			Domain:         model.Domain,
			Description:    model.Description,
			ServiceType:    model.ServiceType,
			Status:         status,
			StorageLimitMB: model.StorageLimitMB,
			StartDate:      model.StartDate,
			EndDate:        model.EndDate,
		},
		StorageUsedMB:  model.StorageUsedMB,
		AlertThreshold: model.AlertThreshold,
		FolderPath:     derefString(model.FolderPath),
		LastScanAt:     model.LastScanAt,
		LastScanResult: result,
		AlertSentAt:    model.AlertSentAt,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	})
}
