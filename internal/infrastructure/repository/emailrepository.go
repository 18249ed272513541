package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cerberus-dev/cerberus/internal/domain/email"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/persistence/mappers"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/persistence/models"
	"github.com/cerberus-dev/cerberus/internal/shared/db"
)

type EmailTemplateRepository struct {
	db *gorm.DB
}

func NewEmailTemplateRepository(db *gorm.DB) email.TemplateRepository {
	return &EmailTemplateRepository{db: db}
}

func (r *EmailTemplateRepository) List(ctx context.Context) ([]*email.Template, error) {
	var ms []models.EmailTemplateModel
	if err := db.GetTxFromContext(ctx, r.db).Order("code ASC").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to list email templates: %w", err)
	}
	out := make([]*email.Template, 0, len(ms))
	for i := range ms {
		out = append(out, mappers.EmailTemplateToDomain(&ms[i]))
	}
	return out, nil
}

func (r *EmailTemplateRepository) GetByCode(ctx context.Context, code string) (*email.Template, error) {
	var model models.EmailTemplateModel
	if err := db.GetTxFromContext(ctx, r.db).Where("code = ?", code).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get email template: %w", err)
	}
	return mappers.EmailTemplateToDomain(&model), nil
}

// Upsert inserts the override or replaces the existing one for the same code.
func (r *EmailTemplateRepository) Upsert(ctx context.Context, t *email.Template) error {
	model := &models.EmailTemplateModel{
		Code:        t.Code,
		Name:        t.Name,
		Subject:     t.Subject,
		HTMLContent: t.HTMLContent,
		IsActive:    t.IsActive,
	}
	err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "subject", "html_content", "is_active", "updated_at"}),
		}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert email template: %w", err)
	}
	saved, err := r.GetByCode(ctx, t.Code)
	if err != nil {
		return err
	}
	if saved != nil {
		*t = *saved
	}
	return nil
}

type EmailLogRepository struct {
	db *gorm.DB
}

func NewEmailLogRepository(db *gorm.DB) email.LogRepository {
	return &EmailLogRepository{db: db}
}

func (r *EmailLogRepository) Create(ctx context.Context, l *email.Log) error {
	model, err := mappers.EmailLogToModel(l)
	if err != nil {
		return fmt.Errorf("failed to map email log: %w", err)
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create email log: %w", err)
	}
	l.ID = model.ID
	return nil
}

func (r *EmailLogRepository) ListRecent(ctx context.Context, limit int) ([]*email.Log, error) {
	var ms []models.EmailLogModel
	err := db.GetTxFromContext(ctx, r.db).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list email logs: %w", err)
	}
	out := make([]*email.Log, 0, len(ms))
	for i := range ms {
		out = append(out, mappers.EmailLogToDomain(&ms[i]))
	}
	return out, nil
}
