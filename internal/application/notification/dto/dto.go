package dto

import (
	"time"

	"github.com/cerberus-dev/cerberus/internal/domain/notification"
)

type NotificationDTO struct {
	ID           uint      `json:"id"`
	Type         string    `json:"type"`
	TargetUserID *uint     `json:"targetUserId"`
	ReferenceID  *uint     `json:"referenceId"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	IsRead       bool      `json:"isRead"`
	CreatedAt    time.Time `json:"createdAt"`
}

func ToNotificationDTO(n *notification.Notification) *NotificationDTO {
	return &NotificationDTO{
		ID:           n.ID(),
		Type:         string(n.Type()),
		TargetUserID: n.TargetUserID(),
		ReferenceID:  n.ReferenceID(),
		Title:        n.Title(),
		Message:      n.Body(),
		IsRead:       n.IsRead(),
		CreatedAt:    n.CreatedAt(),
	}
}

func ToNotificationDTOs(ns []*notification.Notification) []*NotificationDTO {
	out := make([]*NotificationDTO, 0, len(ns))
	for _, n := range ns {
		out = append(out, ToNotificationDTO(n))
	}
	return out
}
