package handlers

import (
	"context"

	"github.com/cerberus-dev/cerberus/internal/application/notification/dto"
	"github.com/cerberus-dev/cerberus/internal/domain/notification"
)

// Use case interfaces for NotificationHandler.

type listNotificationsUseCase interface {
	Execute(ctx context.Context, viewer notification.Viewer, limit int) ([]*dto.NotificationDTO, error)
}

type unreadCountUseCase interface {
	Execute(ctx context.Context, viewer notification.Viewer) (int64, error)
}

type markAllReadUseCase interface {
	Execute(ctx context.Context, viewer notification.Viewer) (int64, error)
}

type notificationActionUseCase interface {
	Execute(ctx context.Context, viewer notification.Viewer, id uint) error
}
