package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/cerberus-dev/cerberus/internal/domain/content"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/persistence/mappers"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/persistence/models"
	"github.com/cerberus-dev/cerberus/internal/shared/db"
)

type TechnologyRepository struct {
	db *gorm.DB
}

func NewTechnologyRepository(db *gorm.DB) content.TechnologyRepository {
	return &TechnologyRepository{db: db}
}

func (r *TechnologyRepository) list(ctx context.Context, activeOnly bool) ([]*content.Technology, error) {
	q := db.GetTxFromContext(ctx, r.db).Model(&models.TechnologyModel{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var ms []models.TechnologyModel
	if err := q.Order("category ASC").Order("sort_order ASC").Order("name ASC").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to list technologies: %w", err)
	}
	out := make([]*content.Technology, 0, len(ms))
	for i := range ms {
		out = append(out, mappers.TechnologyToDomain(&ms[i]))
	}
	return out, nil
}

func (r *TechnologyRepository) ListActive(ctx context.Context) ([]*content.Technology, error) {
	return r.list(ctx, true)
}

func (r *TechnologyRepository) ListAll(ctx context.Context) ([]*content.Technology, error) {
	return r.list(ctx, false)
}

// GetByID returns nil, nil when no row matches.
func (r *TechnologyRepository) GetByID(ctx context.Context, id uint) (*content.Technology, error) {
	var model models.TechnologyModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get technology: %w", err)
	}
	return mappers.TechnologyToDomain(&model), nil
}

func (r *TechnologyRepository) Create(ctx context.Context, t *content.Technology) error {
	model := mappers.TechnologyToModel(t)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create technology: %w", err)
	}
	t.ID = model.ID
	t.CreatedAt = model.CreatedAt
	return nil
}

func (r *TechnologyRepository) Update(ctx context.Context, t *content.Technology) error {
	model := mappers.TechnologyToModel(t)
	if err := updateAll(db.GetTxFromContext(ctx, r.db), model, model.ID); err != nil {
		return fmt.Errorf("failed to update technology: %w", err)
	}
	return nil
}

func (r *TechnologyRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.TechnologyModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete technology: %w", err)
	}
	return nil
}
