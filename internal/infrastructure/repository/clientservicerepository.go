package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/cerberus-dev/cerberus/internal/domain/clientservice"
	vo "github.com/cerberus-dev/cerberus/internal/domain/clientservice/valueobjects"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/persistence/mappers"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/persistence/models"
	"github.com/cerberus-dev/cerberus/internal/shared/db"
)

type serviceRow struct {
	models.ClientServiceModel `gorm:"embedded"`
	ClientUsername            *string
	ClientName                *string
	ClientEmail               *string
	ClientCompany             *string
}

type ClientServiceRepository struct {
	db     *gorm.DB
	mapper mappers.ClientServiceMapper
}

func NewClientServiceRepository(db *gorm.DB) clientservice.Repository {
	return &ClientServiceRepository{db: db, mapper: mappers.NewClientServiceMapper()}
}

func (r *ClientServiceRepository) Create(ctx context.Context, s *clientservice.ClientService) error {
	model, err := r.mapper.ToModel(s)
	if err != nil {
		return err
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create client service: %w", err)
	}
	return s.SetID(model.ID)
}

func (r *ClientServiceRepository) Update(ctx context.Context, s *clientservice.ClientService) error {
	model, err := r.mapper.ToModel(s)
	if err != nil {
		return err
	}
	if err := updateAll(db.GetTxFromContext(ctx, r.db), model, model.ID); err != nil {
		return fmt.Errorf("failed to update client service: %w", err)
	}
	return nil
}

func (r *ClientServiceRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.ClientServiceModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete client service: %w", err)
	}
	return nil
}

// GetByID returns nil, nil when no row matches.
func (r *ClientServiceRepository) GetByID(ctx context.Context, id uint) (*clientservice.ClientService, error) {
	var model models.ClientServiceModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get client service: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *ClientServiceRepository) baseQuery(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db).
		Table(models.ClientServiceModel{}.TableName() + " AS s").
		Select(`s.*,
			c.username AS client_username,
			` + displayNameExpr("c") + ` AS client_name,
			c.email AS client_email,
			c.company AS client_company`).
		Joins("LEFT JOIN admin_users c ON c.id = s.client_id")
}

func (r *ClientServiceRepository) List(ctx context.Context, clientID *uint) ([]*clientservice.ServiceView, error) {
	q := r.baseQuery(ctx)
	if clientID != nil {
		q = q.Where("s.client_id = ?", *clientID)
	}
	var rows []serviceRow
	if err := q.Order("s.created_at DESC").Order("s.id DESC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list client services: %w", err)
	}
	return r.toViews(rows)
}

func (r *ClientServiceRepository) ListScannable(ctx context.Context) ([]*clientservice.ServiceView, error) {
	var rows []serviceRow
	err := r.baseQuery(ctx).
		Where("s.status = ?", string(vo.ServiceActive)).
		Where("s.folder_path IS NOT NULL AND s.folder_path <> ''").
		Order("s.storage_used_mb DESC").
		Order("s.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list scannable services: %w", err)
	}
	return r.toViews(rows)
}

func (r *ClientServiceRepository) toViews(rows []serviceRow) ([]*clientservice.ServiceView, error) {
	out := make([]*clientservice.ServiceView, 0, len(rows))
	for i := range rows {
		s, err := r.mapper.ToDomain(&rows[i].ClientServiceModel)
		if err != nil {
			return nil, err
		}
		out = append(out, &clientservice.ServiceView{
			Service:        s,
			ClientUsername: deref(rows[i].ClientUsername),
			ClientName:     deref(rows[i].ClientName),
			ClientEmail:    deref(rows[i].ClientEmail),
			ClientCompany:  deref(rows[i].ClientCompany),
		})
	}
	return out, nil
}
