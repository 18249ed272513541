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

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) content.ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) list(ctx context.Context, publishedOnly bool) ([]*content.Project, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := tx.Model(&models.ProjectModel{})
	if publishedOnly {
		q = q.Where("is_published = ?", true)
	}
	var ms []models.ProjectModel
	if err := q.Order("date DESC").Order("created_at DESC").Order("id DESC").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	projects := make([]*content.Project, 0, len(ms))
	for i := range ms {
		projects = append(projects, mappers.ProjectToDomain(&ms[i]))
	}
	if err := r.attachChildren(tx, projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectRepository) ListPublished(ctx context.Context) ([]*content.Project, error) {
	return r.list(ctx, true)
}

func (r *ProjectRepository) ListAll(ctx context.Context) ([]*content.Project, error) {
	return r.list(ctx, false)
}

// attachChildren loads technologies and images for all projects in two
// queries.
func (r *ProjectRepository) attachChildren(tx *gorm.DB, projects []*content.Project) error {
	if len(projects) == 0 {
		return nil
	}
	ids := make([]uint, len(projects))
	byID := make(map[uint]*content.Project, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
		byID[p.ID] = p
		p.Technologies = []content.ProjectTechnology{}
		p.Images = []content.ProjectImage{}
	}

	var techs []models.ProjectTechnologyModel
	if err := tx.Where("project_id IN ?", ids).Order("id ASC").Find(&techs).Error; err != nil {
		return fmt.Errorf("failed to load project technologies: %w", err)
	}
	for _, t := range techs {
		p := byID[t.ProjectID]
		p.Technologies = append(p.Technologies, content.ProjectTechnology{TechName: t.TechName, TechIcon: t.TechIcon})
	}

	var imgs []models.ProjectImageModel
	if err := tx.Where("project_id IN ?", ids).Order("sort_order ASC").Order("id ASC").Find(&imgs).Error; err != nil {
		return fmt.Errorf("failed to load project images: %w", err)
	}
	for _, img := range imgs {
		p := byID[img.ProjectID]
		p.Images = append(p.Images, content.ProjectImage{
			ID:        img.ID,
			ProjectID: img.ProjectID,
			URL:       img.URL,
			Caption:   img.Caption,
			SortOrder: img.SortOrder,
			CreatedAt: img.CreatedAt,
		})
	}
	return nil
}

func (r *ProjectRepository) getOne(ctx context.Context, where string, args ...any) (*content.Project, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	var model models.ProjectModel
	if err := tx.Where(where, args...).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	p := mappers.ProjectToDomain(&model)
	if err := r.attachChildren(tx, []*content.Project{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// GetPublishedBySlug returns nil, nil when no published project matches.
func (r *ProjectRepository) GetPublishedBySlug(ctx context.Context, slug string) (*content.Project, error) {
	return r.getOne(ctx, "slug = ? AND is_published = ?", slug, true)
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uint) (*content.Project, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *ProjectRepository) Create(ctx context.Context, p *content.Project) error {
	model := mappers.ProjectToModel(p)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *content.Project) error {
	model := mappers.ProjectToModel(p)
	if err := updateAll(db.GetTxFromContext(ctx, r.db), model, model.ID); err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

// ReplaceTechnologies deletes then reinserts the rows. Run it inside the
// same transaction as the project update.
func (r *ProjectRepository) ReplaceTechnologies(ctx context.Context, projectID uint, techs []content.ProjectTechnology) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectTechnologyModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear project technologies: %w", err)
	}
	if len(techs) == 0 {
		return nil
	}
	rows := make([]models.ProjectTechnologyModel, len(techs))
	for i, t := range techs {
		rows[i] = models.ProjectTechnologyModel{ProjectID: projectID, TechName: t.TechName, TechIcon: t.TechIcon}
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to insert project technologies: %w", err)
	}
	return nil
}

func (r *ProjectRepository) AddImage(ctx context.Context, img *content.ProjectImage) error {
	model := &models.ProjectImageModel{
		ProjectID: img.ProjectID,
		URL:       img.URL,
		Caption:   img.Caption,
		SortOrder: img.SortOrder,
		CreatedAt: img.CreatedAt,
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to add project image: %w", err)
	}
	img.ID = model.ID
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id uint) ([]string, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	var urls []string
	if err := tx.Model(&models.ProjectImageModel{}).Where("project_id = ?", id).Pluck("url", &urls).Error; err != nil {
		return nil, fmt.Errorf("failed to load project images: %w", err)
	}
	if err := tx.Where("project_id = ?", id).Delete(&models.ProjectImageModel{}).Error; err != nil {
		return nil, fmt.Errorf("failed to delete project images: %w", err)
	}
	if err := tx.Where("project_id = ?", id).Delete(&models.ProjectTechnologyModel{}).Error; err != nil {
		return nil, fmt.Errorf("failed to delete project technologies: %w", err)
	}
	if err := tx.Delete(&models.ProjectModel{}, id).Error; err != nil {
		return nil, fmt.Errorf("failed to delete project: %w", err)
	}
	return urls, nil
}
