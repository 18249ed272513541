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

type requirementRow struct {
	models.ProjectRequirementModel `gorm:"embedded"`
	ClientName                     *string
	CreatorName                    *string
}

type RequirementRepository struct {
	db *gorm.DB
}

func NewRequirementRepository(db *gorm.DB) content.RequirementRepository {
	return &RequirementRepository{db: db}
}

func (r *RequirementRepository) query(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db).
		Table(models.ProjectRequirementModel{}.TableName() + " AS r").
		Select("r.*, " + displayNameExpr("c") + " AS client_name, " + displayNameExpr("u") + " AS creator_name").
		Joins("LEFT JOIN admin_users c ON c.id = r.client_id").
		Joins("LEFT JOIN admin_users u ON u.id = r.created_by")
}

func (r *RequirementRepository) scan(q *gorm.DB) ([]*content.ProjectRequirement, error) {
	var rows []requirementRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load project requirements: %w", err)
	}
	out := make([]*content.ProjectRequirement, 0, len(rows))
	for i := range rows {
		req, err := mappers.RequirementToDomain(&rows[i].ProjectRequirementModel)
		if err != nil {
			return nil, fmt.Errorf("requirement %d: %w", rows[i].ID, err)
		}
		req.ClientName = deref(rows[i].ClientName)
		req.CreatorName = deref(rows[i].CreatorName)
		out = append(out, req)
	}
	return out, nil
}

func (r *RequirementRepository) List(ctx context.Context, status *content.RequirementStatus) ([]*content.ProjectRequirement, error) {
	q := r.query(ctx)
	if status != nil {
		q = q.Where("r.status = ?", string(*status))
	}
	return r.scan(q.Order("r.created_at DESC").Order("r.id DESC"))
}

// GetByID returns nil, nil when no row matches.
func (r *RequirementRepository) GetByID(ctx context.Context, id uint) (*content.ProjectRequirement, error) {
	reqs, err := r.scan(r.query(ctx).Where("r.id = ?", id).Limit(1))
	if err != nil || len(reqs) == 0 {
		return nil, err
	}
	return reqs[0], nil
}

func (r *RequirementRepository) Create(ctx context.Context, req *content.ProjectRequirement) error {
	model, err := mappers.RequirementToModel(req)
	if err != nil {
		return fmt.Errorf("failed to map project requirement: %w", err)
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create project requirement: %w", err)
	}
	req.ID = model.ID
	req.CreatedAt = model.CreatedAt
	req.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *RequirementRepository) Update(ctx context.Context, req *content.ProjectRequirement) error {
	model, err := mappers.RequirementToModel(req)
	if err != nil {
		return fmt.Errorf("failed to map project requirement: %w", err)
	}
	if err := updateAll(db.GetTxFromContext(ctx, r.db), model, model.ID); err != nil {
		return fmt.Errorf("failed to update project requirement: %w", err)
	}
	return nil
}

func (r *RequirementRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.ProjectRequirementModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete project requirement: %w", err)
	}
	return nil
}
