package mappers

import (
	"fmt"

	"github.com/cerberus-dev/cerberus/internal/domain/lead"
	vo "github.com/cerberus-dev/cerberus/internal/domain/lead/valueobjects"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/persistence/models"
)

type LeadMapper interface {
	ToModel(l *lead.Lead) *models.LeadModel
	ToDomain(model *models.LeadModel) (*lead.Lead, error)
}

type LeadMapperImpl struct{}

func NewLeadMapper() LeadMapper {
	return &LeadMapperImpl{}
}

func (m *LeadMapperImpl) ToModel(l *lead.Lead) *models.LeadModel {
	return &models.LeadModel{
		ID:          l.ID(),
		Name:        l.Name(),
		Email:       l.Email(),
		Phone:       nullableString(l.Phone()),
		ProjectType: nullableString(l.ProjectType()),
		Message:     l.Message(),
		Status:      l.Status().String(),
		IsImportant: l.IsImportant(),
		Notes:       l.Notes(),
		CreatedAt:   l.CreatedAt(),
		UpdatedAt:   l.UpdatedAt(),
	}
}

func (m *LeadMapperImpl) ToDomain(model *models.LeadModel) (*lead.Lead, error) {
	status, err := vo.NewLeadStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("lead %d: %w", model.ID, err)
	}
	return lead.ReconstructLead(
		model.ID,
		model.Name,
		model.Email,
		derefString(model.Phone),
		derefString(model.ProjectType),
		model.Message,
		status,
		model.IsImportant,
		model.Notes,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
