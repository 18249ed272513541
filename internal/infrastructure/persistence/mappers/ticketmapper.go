package mappers

import (
	"fmt"

	"github.com/cerberus-dev/cerberus/internal/domain/ticket"
	vo "github.com/cerberus-dev/cerberus/internal/domain/ticket/valueobjects"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between ticket entities and
// persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	MessageToModel(msg *ticket.Message) *models.TicketMessageModel
	MessageToDomain(model *models.TicketMessageModel) *ticket.Message
	AttachmentToModel(a *ticket.Attachment) *models.TicketAttachmentModel
	AttachmentToDomain(model *models.TicketAttachmentModel) ticket.Attachment
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	model := &models.TicketModel{
		ID:         t.ID(),
		Subject:    t.Subject(),
		Status:     t.Status().String(),
		Priority:   t.Priority().String(),
		Category:   t.Category().String(),
		ClientID:   t.ClientID(),
		AssignedTo: t.AssignedTo(),
		ServiceID:  t.ServiceID(),
		CreatedBy:  t.CreatedBy(),
		ClosedAt:   t.ClosedAt(),
		CreatedAt:  t.CreatedAt(),
		UpdatedAt:  t.UpdatedAt(),
	}
	if s := t.ImprovementStatus(); s != nil {
		str := s.String()
		model.ImprovementStatus = &str
	}
	return model
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("ticket %d: %w", model.ID, err)
	}
	priority, err := vo.NewPriority(model.Priority)
	if err != nil {
		return nil, fmt.Errorf("ticket %d: %w", model.ID, err)
	}
	category, err := vo.NewCategory(model.Category)
	if err != nil {
		return nil, fmt.Errorf("ticket %d: %w", model.ID, err)
	}

	var improvement *vo.ImprovementStatus
	if model.ImprovementStatus != nil && *model.ImprovementStatus != "" {
		s, err := vo.NewImprovementStatus(*model.ImprovementStatus)
		if err != nil {
			return nil, fmt.Errorf("ticket %d: %w", model.ID, err)
		}
		improvement = &s
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.Subject,
		status,
		priority,
		category,
		improvement,
		model.ClientID,
		model.AssignedTo,
		model.ServiceID,
		model.CreatedBy,
		model.ClosedAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *TicketMapperImpl) MessageToModel(msg *ticket.Message) *models.TicketMessageModel {
	return &models.TicketMessageModel{
		ID:         msg.ID(),
		TicketID:   msg.TicketID(),
		UserID:     msg.UserID(),
		Message:    msg.Body(),
		IsInternal: msg.IsInternal(),
		CreatedAt:  msg.CreatedAt(),
	}
}

func (m *TicketMapperImpl) MessageToDomain(model *models.TicketMessageModel) *ticket.Message {
	return ticket.ReconstructMessage(model.ID, model.TicketID, model.UserID, model.Message, model.IsInternal, model.CreatedAt)
}

func (m *TicketMapperImpl) AttachmentToModel(a *ticket.Attachment) *models.TicketAttachmentModel {
	return &models.TicketAttachmentModel{
		ID:           a.ID,
		TicketID:     a.TicketID,
		MessageID:    a.MessageID,
		Filename:     a.Filename,
		OriginalName: a.OriginalName,
		FilePath:     a.FilePath,
		FileSize:     a.FileSize,
		MimeType:     a.MimeType,
		UploadedBy:   a.UploadedBy,
		CreatedAt:    a.CreatedAt,
	}
}

func (m *TicketMapperImpl) AttachmentToDomain(model *models.TicketAttachmentModel) ticket.Attachment {
	return ticket.Attachment{
		ID:           model.ID,
		TicketID:     model.TicketID,
		MessageID:    model.MessageID,
		Filename:     model.Filename,
		OriginalName: model.OriginalName,
		FilePath:     model.FilePath,
		FileSize:     model.FileSize,
		MimeType:     model.MimeType,
		UploadedBy:   model.UploadedBy,
		CreatedAt:    model.CreatedAt,
	}
}
