package content

import (
	"context"
	stderrors "errors"
	"mime/multipart"
	"strings"

	"github.com/cerberus-dev/cerberus/internal/application/content/dto"
	"github.com/cerberus-dev/cerberus/internal/domain/content"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/storage"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
	"github.com/cerberus-dev/cerberus/internal/shared/i18n"
)

func (s *ServiceDDD) ListPublishedProjects(ctx context.Context, lang i18n.Lang) ([]*dto.ProjectDTO, error) {
	projects, err := s.projects.ListPublished(ctx)
	if err != nil {
		s.logger.Errorw("failed to list projects", "error", err)
		return nil, errors.NewInternalError("failed to list projects")
	}
	out := make([]*dto.ProjectDTO, 0, len(projects))
	for _, p := range projects {
		out = append(out, dto.ToProjectDTO(p, lang, false))
	}
	return out, nil
}

func (s *ServiceDDD) GetPublishedProject(ctx context.Context, slug string, lang i18n.Lang) (*dto.ProjectDTO, error) {
	p, err := s.projects.GetPublishedBySlug(ctx, slug)
	if err != nil {
		s.logger.Errorw("failed to get project", "slug", slug, "error", err)
		return nil, errors.NewInternalError("failed to get project")
	}
	if p == nil {
		return nil, errors.NewNotFoundError("not_found")
	}
	return dto.ToProjectDTO(p, lang, false), nil
}

func (s *ServiceDDD) ListAllProjects(ctx context.Context) ([]*dto.ProjectDTO, error) {
	projects, err := s.projects.ListAll(ctx)
	if err != nil {
		s.logger.Errorw("failed to list projects", "error", err)
		return nil, errors.NewInternalError("failed to list projects")
	}
	out := make([]*dto.ProjectDTO, 0, len(projects))
	for _, p := range projects {
		out = append(out, dto.ToProjectDTO(p, i18n.ES, true))
	}
	return out, nil
}

func (s *ServiceDDD) GetProject(ctx context.Context, id uint) (*dto.ProjectDTO, error) {
	p, err := s.projectByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToProjectDTO(p, i18n.ES, true), nil
}

// CreateProject stores the project and its technologies in one transaction.
func (s *ServiceDDD) CreateProject(ctx context.Context, req dto.ProjectRequest) (*dto.ProjectDTO, error) {
	p := &content.Project{}
	applyProject(p, req)
	if err := p.Validate(); err != nil {
		return nil, errors.NewValidationError("invalid_project", err.Error())
	}

	err := s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := s.projects.Create(txCtx, p); err != nil {
			return err
		}
		return s.projects.ReplaceTechnologies(txCtx, p.ID, p.Technologies)
	})
	if err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("slug_taken")
		}
		s.logger.Errorw("failed to create project", "error", err)
		return nil, errors.NewInternalError("failed to create project")
	}
	s.logger.Infow("project created", "project_id", p.ID)
	return dto.ToProjectDTO(p, i18n.ES, true), nil
}

// UpdateProject replaces the project fields and its whole technology list.
func (s *ServiceDDD) UpdateProject(ctx context.Context, id uint, req dto.ProjectRequest) (*dto.ProjectDTO, error) {
	p, err := s.projectByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyProject(p, req)
	if err := p.Validate(); err != nil {
		return nil, errors.NewValidationError("invalid_project", err.Error())
	}

	err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := s.projects.Update(txCtx, p); err != nil {
			return err
		}
		return s.projects.ReplaceTechnologies(txCtx, p.ID, p.Technologies)
	})
	if err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("slug_taken")
		}
		s.logger.Errorw("failed to update project", "project_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update project")
	}
	return dto.ToProjectDTO(p, i18n.ES, true), nil
}

// DeleteProject removes the project rows, then its image files.
func (s *ServiceDDD) DeleteProject(ctx context.Context, id uint) error {
	if _, err := s.projectByID(ctx, id); err != nil {
		return err
	}
	var urls []string
	err := s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		urls, err = s.projects.Delete(txCtx, id)
		return err
	})
	if err != nil {
		s.logger.Errorw("failed to delete project", "project_id", id, "error", err)
		return errors.NewInternalError("failed to delete project")
	}
	for _, u := range urls {
		if err := s.uploads.Remove(u); err != nil {
			s.logger.Warnw("failed to remove project image", "url", u, "error", err)
		}
	}
	s.logger.Infow("project deleted", "project_id", id, "images", len(urls))
	return nil
}

// UploadProjectImage stores an image file and appends it to the gallery.
func (s *ServiceDDD) UploadProjectImage(ctx context.Context, projectID uint, fh *multipart.FileHeader, caption string) (*dto.ProjectImageDTO, error) {
	if fh == nil {
		return nil, errors.NewValidationError("missing_file")
	}
	p, err := s.projectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	stored, err := s.uploads.Save(storage.CategoryProjects, fh, storage.ImageExtensions)
	if err != nil {
		return nil, uploadError(err)
	}

	img := &content.ProjectImage{
		ProjectID: p.ID,
		URL:       stored.URL,
		Caption:   strings.TrimSpace(caption),
		SortOrder: len(p.Images),
		CreatedAt: s.now().UTC(),
	}
	if err := s.projects.AddImage(ctx, img); err != nil {
		if rmErr := s.uploads.Remove(stored.URL); rmErr != nil {
			s.logger.Warnw("failed to remove orphaned upload", "url", stored.URL, "error", rmErr)
		}
		s.logger.Errorw("failed to save project image", "project_id", p.ID, "error", err)
		return nil, errors.NewInternalError("failed to save image")
	}
	s.logger.Infow("project image uploaded", "project_id", p.ID, "image_id", img.ID, "size", stored.Size)
	return dto.ToProjectImageDTO(img), nil
}

func (s *ServiceDDD) projectByID(ctx context.Context, id uint) (*content.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		s.logger.Errorw("failed to get project", "project_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get project")
	}
	if p == nil {
		return nil, errors.NewNotFoundError("not_found")
	}
	return p, nil
}

func applyProject(p *content.Project, req dto.ProjectRequest) {
	p.Title = strings.TrimSpace(req.Title)
	p.TitleEn = strings.TrimSpace(req.TitleEn)
	p.Slug = strings.TrimSpace(req.Slug)
	p.Summary = req.Summary
	p.SummaryEn = req.SummaryEn
	p.Description = req.Description
	p.DescriptionEn = req.DescriptionEn
	p.ClientName = strings.TrimSpace(req.ClientName)
	p.URL = strings.TrimSpace(req.URL)
	p.CoverImage = req.CoverImage
	p.Date = req.Date
	p.IsPublished = req.IsPublished
	p.IsFeatured = req.IsFeatured
	p.Technologies = make([]content.ProjectTechnology, 0, len(req.Technologies))
	for _, t := range req.Technologies {
		p.Technologies = append(p.Technologies, content.ProjectTechnology{
			TechName: strings.TrimSpace(t.Name),
			TechIcon: strings.TrimSpace(t.Icon),
		})
	}
}

func uploadError(err error) error {
	switch {
	case stderrors.Is(err, storage.ErrFileTooLarge):
		return errors.NewValidationError("file_too_large")
	case stderrors.Is(err, storage.ErrFileTypeRejected), stderrors.Is(err, storage.ErrContentMismatched):
		return errors.NewValidationError("file_type_not_allowed")
	case stderrors.Is(err, storage.ErrFileEmpty):
		return errors.NewValidationError("missing_file")
	default:
		return errors.NewInternalError("failed to store upload")
	}
}

// ---- technologies ----

func (s *ServiceDDD) ListActiveTechnologies(ctx context.Context, lang i18n.Lang) ([]*dto.TechnologyDTO, error) {
	techs, err := s.technologies.ListActive(ctx)
	if err != nil {
		s.logger.Errorw("failed to list technologies", "error", err)
		return nil, errors.NewInternalError("failed to list technologies")
	}
	out := make([]*dto.TechnologyDTO, 0, len(techs))
	for _, t := range techs {
		out = append(out, dto.ToTechnologyDTO(t, lang, false))
	}
	return out, nil
}

func (s *ServiceDDD) ListAllTechnologies(ctx context.Context) ([]*dto.TechnologyDTO, error) {
	techs, err := s.technologies.ListAll(ctx)
	if err != nil {
		s.logger.Errorw("failed to list technologies", "error", err)
		return nil, errors.NewInternalError("failed to list technologies")
	}
	out := make([]*dto.TechnologyDTO, 0, len(techs))
	for _, t := range techs {
		out = append(out, dto.ToTechnologyDTO(t, i18n.ES, true))
	}
	return out, nil
}

func (s *ServiceDDD) CreateTechnology(ctx context.Context, req dto.TechnologyRequest) (*dto.TechnologyDTO, error) {
	t := &content.Technology{IsActive: true, CreatedAt: s.now().UTC()}
	applyTechnology(t, req)
	if err := t.Validate(); err != nil {
		return nil, errors.NewValidationError("missing_fields", err.Error())
	}
	if err := s.technologies.Create(ctx, t); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("technology_exists")
		}
		s.logger.Errorw("failed to create technology", "error", err)
		return nil, errors.NewInternalError("failed to create technology")
	}
	return dto.ToTechnologyDTO(t, i18n.ES, true), nil
}

func (s *ServiceDDD) UpdateTechnology(ctx context.Context, id uint, req dto.TechnologyRequest) (*dto.TechnologyDTO, error) {
	t, err := s.technologies.GetByID(ctx, id)
	if err != nil {
		s.logger.Errorw("failed to get technology", "technology_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get technology")
	}
	if t == nil {
		return nil, errors.NewNotFoundError("not_found")
	}
	applyTechnology(t, req)
	if err := t.Validate(); err != nil {
		return nil, errors.NewValidationError("missing_fields", err.Error())
	}
	if err := s.technologies.Update(ctx, t); err != nil {
		s.logger.Errorw("failed to update technology", "technology_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update technology")
	}
	return dto.ToTechnologyDTO(t, i18n.ES, true), nil
}

func (s *ServiceDDD) DeleteTechnology(ctx context.Context, id uint) error {
	if err := s.technologies.Delete(ctx, id); err != nil {
		s.logger.Errorw("failed to delete technology", "technology_id", id, "error", err)
		return errors.NewInternalError("failed to delete technology")
	}
	return nil
}

func applyTechnology(t *content.Technology, req dto.TechnologyRequest) {
	t.Name = strings.TrimSpace(req.Name)
	t.Category = strings.TrimSpace(req.Category)
	t.IconURL = strings.TrimSpace(req.IconURL)
	t.Description = req.Description
	t.DescriptionEn = req.DescriptionEn
	t.SortOrder = req.SortOrder
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
}
