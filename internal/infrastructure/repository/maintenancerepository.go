package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/cerberus-dev/cerberus/internal/domain/content"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/persistence/mappers"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/persistence/models"
	"github.com/cerberus-dev/cerberus/internal/shared/db"
)

type MaintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) content.MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

func (r *MaintenanceRepository) ListActive(ctx context.Context, now time.Time) ([]*content.MaintenanceNotice, error) {
	now = now.UTC()
	var ms []models.MaintenanceNoticeModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("is_active = ?", true).
		Where("start_at <= ?", now).
		Where("(end_at IS NULL OR end_at >= ?)", now).
		Order("start_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active maintenance notices: %w", err)
	}
	out := make([]*content.MaintenanceNotice, 0, len(ms))
	for i := range ms {
		out = append(out, mappers.MaintenanceToDomain(&ms[i]))
	}
	return out, nil
}

func (r *MaintenanceRepository) ListAll(ctx context.Context) ([]*content.MaintenanceNotice, error) {
	var rows []struct {
		models.MaintenanceNoticeModel `gorm:"embedded"`
		CreatorName                   *string
	}
	err := db.GetTxFromContext(ctx, r.db).
		Table(models.MaintenanceNoticeModel{}.TableName() + " AS n").
		Select("n.*, " + displayNameExpr("u") + " AS creator_name").
		Joins("LEFT JOIN admin_users u ON u.id = n.created_by").
		Order("n.created_at DESC").
		Order("n.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance notices: %w", err)
	}
	out := make([]*content.MaintenanceNotice, 0, len(rows))
	for i := range rows {
		n := mappers.MaintenanceToDomain(&rows[i].MaintenanceNoticeModel)
		n.CreatorName = deref(rows[i].CreatorName)
		out = append(out, n)
	}
	return out, nil
}

// GetByID returns nil, nil when no row matches.
func (r *MaintenanceRepository) GetByID(ctx context.Context, id uint) (*content.MaintenanceNotice, error) {
	var model models.MaintenanceNoticeModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get maintenance notice: %w", err)
	}
	return mappers.MaintenanceToDomain(&model), nil
}

func (r *MaintenanceRepository) Create(ctx context.Context, n *content.MaintenanceNotice) error {
	model := mappers.MaintenanceToModel(n)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create maintenance notice: %w", err)
	}
	n.ID = model.ID
	n.CreatedAt = model.CreatedAt
	return nil
}

func (r *MaintenanceRepository) Update(ctx context.Context, n *content.MaintenanceNotice) error {
	model := mappers.MaintenanceToModel(n)
	if err := updateAll(db.GetTxFromContext(ctx, r.db), model, model.ID); err != nil {
		return fmt.Errorf("failed to update maintenance notice: %w", err)
	}
	return nil
}

func (r *MaintenanceRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.MaintenanceNoticeModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete maintenance notice: %w", err)
	}
	return nil
}
