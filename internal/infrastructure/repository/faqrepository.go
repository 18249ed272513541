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

type FaqRepository struct {
	db *gorm.DB
}

func NewFaqRepository(db *gorm.DB) content.FaqRepository {
	return &FaqRepository{db: db}
}

func (r *FaqRepository) List(ctx context.Context, category string, publishedOnly bool) ([]*content.FaqItem, error) {
	q := db.GetTxFromContext(ctx, r.db).Model(&models.FaqItemModel{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if publishedOnly {
		q = q.Where("is_published = ?", true)
	}
	var ms []models.FaqItemModel
	if err := q.Order("category ASC").Order("sort_order ASC").Order("id ASC").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to list faq items: %w", err)
	}
	out := make([]*content.FaqItem, 0, len(ms))
	for i := range ms {
		out = append(out, mappers.FaqToDomain(&ms[i]))
	}
	return out, nil
}

// GetByID returns nil, nil when no row matches.
func (r *FaqRepository) GetByID(ctx context.Context, id uint) (*content.FaqItem, error) {
	var model models.FaqItemModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get faq item: %w", err)
	}
	return mappers.FaqToDomain(&model), nil
}

func (r *FaqRepository) Create(ctx context.Context, f *content.FaqItem) error {
	model := mappers.FaqToModel(f)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create faq item: %w", err)
	}
	f.ID = model.ID
	f.CreatedAt = model.CreatedAt
	f.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *FaqRepository) Update(ctx context.Context, f *content.FaqItem) error {
	model := mappers.FaqToModel(f)
	if err := updateAll(db.GetTxFromContext(ctx, r.db), model, model.ID); err != nil {
		return fmt.Errorf("failed to update faq item: %w", err)
	}
	return nil
}

func (r *FaqRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.FaqItemModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete faq item: %w", err)
	}
	return nil
}
