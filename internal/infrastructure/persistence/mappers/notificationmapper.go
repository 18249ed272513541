package mappers

import (
	"github.com/cerberus-dev/cerberus/internal/domain/notification"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/persistence/models"
)

type NotificationMapper interface {
	ToModel(n *notification.Notification) *models.NotificationModel
	ToDomain(model *models.NotificationModel) *notification.Notification
}

type NotificationMapperImpl struct{}

func NewNotificationMapper() NotificationMapper {
	return &NotificationMapperImpl{}
}

func (m *NotificationMapperImpl) ToModel(n *notification.Notification) *models.NotificationModel {
	return &models.NotificationModel{
		ID:           n.ID(),
		Type:         string(n.Type()),
		TargetUserID: n.TargetUserID(),
		ReferenceID:  n.ReferenceID(),
		Title:        n.Title(),
		Body:         n.Body(),
		IsRead:       n.IsRead(),
		CreatedAt:    n.CreatedAt(),
	}
}

func (m *NotificationMapperImpl) ToDomain(model *models.NotificationModel) *notification.Notification {
	return notification.ReconstructNotification(
		model.ID,
		notification.Type(model.Type),
		model.TargetUserID,
		model.ReferenceID,
		model.Title,
		model.Body,
		model.IsRead,
		model.CreatedAt,
	)
}
