package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/cerberus-dev/cerberus/internal/domain/lead"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/persistence/mappers"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/persistence/models"
	"github.com/cerberus-dev/cerberus/internal/shared/db"
)

type LeadRepository struct {
	db     *gorm.DB
	mapper mappers.LeadMapper
}

func NewLeadRepository(db *gorm.DB) lead.Repository {
	return &LeadRepository{db: db, mapper: mappers.NewLeadMapper()}
}

func (r *LeadRepository) Create(ctx context.Context, l *lead.Lead) error {
	model := r.mapper.ToModel(l)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}
	return l.SetID(model.ID)
}

func (r *LeadRepository) Update(ctx context.Context, l *lead.Lead) error {
	model := r.mapper.ToModel(l)
	if err := updateAll(db.GetTxFromContext(ctx, r.db), model, model.ID); err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.LeadModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	return nil
}

// GetByID returns nil, nil when no row matches.
func (r *LeadRepository) GetByID(ctx context.Context, id uint) (*lead.Lead, error) {
	var model models.LeadModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *LeadRepository) List(ctx context.Context) ([]*lead.Lead, error) {
	var ms []models.LeadModel
	err := db.GetTxFromContext(ctx, r.db).
		Order("is_important DESC").
		Order("created_at DESC").
		Order("id DESC").
		Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	out := make([]*lead.Lead, 0, len(ms))
	for i := range ms {
		l, err := r.mapper.ToDomain(&ms[i])
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *LeadRepository) Summary(ctx context.Context) (*lead.Summary, error) {
	var row struct {
		Total     int64
		New       int64 `gorm:"column:new_count"`
		Replied   int64
		Closed    int64
		Important int64
	}
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.LeadModel{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = 'new' THEN 1 ELSE 0 END), 0) AS new_count,
			COALESCE(SUM(CASE WHEN status = 'replied' THEN 1 ELSE 0 END), 0) AS replied,
			COALESCE(SUM(CASE WHEN status = 'closed' THEN 1 ELSE 0 END), 0) AS closed,
			COALESCE(SUM(CASE WHEN is_important THEN 1 ELSE 0 END), 0) AS important`).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize leads: %w", err)
	}
	return &lead.Summary{
		Total:     row.Total,
		New:       row.New,
		Replied:   row.Replied,
		Closed:    row.Closed,
		Important: row.Important,
	}, nil
}
