package usecases

import (
	"context"
	"fmt"

	"github.com/cerberus-dev/cerberus/internal/application/notification/dto"
	"github.com/cerberus-dev/cerberus/internal/domain/notification"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// ListNotificationsUseCase returns the viewer's notifications, newest first.
type ListNotificationsUseCase struct {
	repo notification.Repository
}

func NewListNotificationsUseCase(repo notification.Repository) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{repo: repo}
}

func (uc *ListNotificationsUseCase) Execute(ctx context.Context, viewer notification.Viewer, limit int) ([]*dto.NotificationDTO, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	ns, err := uc.repo.ListVisible(ctx, viewer, limit)
	if err != nil {
		return nil, err
	}
	return dto.ToNotificationDTOs(ns), nil
}

type GetUnreadCountUseCase struct {
	repo notification.Repository
}

func NewGetUnreadCountUseCase(repo notification.Repository) *GetUnreadCountUseCase {
	return &GetUnreadCountUseCase{repo: repo}
}

func (uc *GetUnreadCountUseCase) Execute(ctx context.Context, viewer notification.Viewer) (int64, error) {
	return uc.repo.CountUnread(ctx, viewer)
}

type MarkAllReadUseCase struct {
	repo   notification.Repository
	logger logger.Interface
}

func NewMarkAllReadUseCase(repo notification.Repository, logger logger.Interface) *MarkAllReadUseCase {
	return &MarkAllReadUseCase{repo: repo, logger: logger}
}

// Execute returns how many rows changed.
func (uc *MarkAllReadUseCase) Execute(ctx context.Context, viewer notification.Viewer) (int64, error) {
	n, err := uc.repo.MarkAllRead(ctx, viewer)
	if err != nil {
		uc.logger.Errorw("failed to mark notifications read", "user_id", viewer.UserID, "error", err)
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return n, nil
}

type MarkReadUseCase struct {
	repo notification.Repository
}

func NewMarkReadUseCase(repo notification.Repository) *MarkReadUseCase {
	return &MarkReadUseCase{repo: repo}
}

func (uc *MarkReadUseCase) Execute(ctx context.Context, viewer notification.Viewer, id uint) error {
	if _, err := loadVisible(ctx, uc.repo, viewer, id); err != nil {
		return err
	}
	return uc.repo.MarkRead(ctx, id)
}

type DeleteNotificationUseCase struct {
	repo   notification.Repository
	logger logger.Interface
}

func NewDeleteNotificationUseCase(repo notification.Repository, logger logger.Interface) *DeleteNotificationUseCase {
	return &DeleteNotificationUseCase{repo: repo, logger: logger}
}

func (uc *DeleteNotificationUseCase) Execute(ctx context.Context, viewer notification.Viewer, id uint) error {
	if _, err := loadVisible(ctx, uc.repo, viewer, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	uc.logger.Infow("notification deleted", "id", id, "user_id", viewer.UserID)
	return nil
}

// loadVisible hides rows outside the viewer's set behind a 404, so ids of
// other users' notifications are not confirmed.
func loadVisible(ctx context.Context, repo notification.Repository, viewer notification.Viewer, id uint) (*notification.Notification, error) {
	n, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil || !n.VisibleTo(viewer) {
		return nil, errors.NewNotFoundError("not_found")
	}
	return n, nil
}
