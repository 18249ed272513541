package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/cerberus-dev/cerberus/internal/domain/notification"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/persistence/mappers"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/persistence/models"
	"github.com/cerberus-dev/cerberus/internal/shared/db"
)

type NotificationRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.NotificationMapper
}

func NewNotificationRepository(db *gorm.DB) notification.Repository {
	return &NotificationRepositoryImpl{
		db:     db,
		mapper: mappers.NewNotificationMapper(),
	}
}

func (r *NotificationRepositoryImpl) Create(ctx context.Context, n *notification.Notification) error {
	model := r.mapper.ToModel(n)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	if err := n.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set notification ID: %w", err)
	}
	return nil
}

// GetByID returns nil, nil when no row matches.
func (r *NotificationRepositoryImpl) GetByID(ctx context.Context, id uint) (*notification.Notification, error) {
	var model models.NotificationModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get notification by ID: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// visible limits q to rows addressed to the viewer, plus broadcasts for
// staff.
func visible(q *gorm.DB, v notification.Viewer) *gorm.DB {
	if v.SeesBroadcasts() {
		return q.Where("(target_user_id = ? OR target_user_id IS NULL)", v.UserID)
	}
	return q.Where("target_user_id = ?", v.UserID)
}

func (r *NotificationRepositoryImpl) ListVisible(ctx context.Context, v notification.Viewer, limit int) ([]*notification.Notification, error) {
	var ms []models.NotificationModel
	q := visible(db.GetTxFromContext(ctx, r.db).Model(&models.NotificationModel{}), v)
	if err := q.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	out := make([]*notification.Notification, 0, len(ms))
	for i := range ms {
		out = append(out, r.mapper.ToDomain(&ms[i]))
	}
	return out, nil
}

func (r *NotificationRepositoryImpl) CountUnread(ctx context.Context, v notification.Viewer) (int64, error) {
	var count int64
	q := visible(db.GetTxFromContext(ctx, r.db).Model(&models.NotificationModel{}), v)
	if err := q.Where("is_read = ?", false).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (r *NotificationRepositoryImpl) MarkAllRead(ctx context.Context, v notification.Viewer) (int64, error) {
	q := visible(db.GetTxFromContext(ctx, r.db).Model(&models.NotificationModel{}), v)
	result := q.Where("is_read = ?", false).Update("is_read", true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *NotificationRepositoryImpl) MarkRead(ctx context.Context, id uint) error {
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.NotificationModel{}).
		Where("id = ?", id).
		Update("is_read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (r *NotificationRepositoryImpl) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.NotificationModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

func (r *NotificationRepositoryImpl) DeleteByReference(ctx context.Context, referenceID uint, types ...notification.Type) error {
	q := db.GetTxFromContext(ctx, r.db).Where("reference_id = ?", referenceID)
	if len(types) > 0 {
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = string(t)
		}
		q = q.Where("type IN ?", names)
	}
	if err := q.Delete(&models.NotificationModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete notifications by reference: %w", err)
	}
	return nil
}
