package content

import (
	"context"
	"mime/multipart"

	"github.com/cerberus-dev/cerberus/internal/application/content/dto"
	domain "github.com/cerberus-dev/cerberus/internal/domain/content"
	"github.com/cerberus-dev/cerberus/internal/shared/i18n"
)

// Service slices of the content application service, one per handler.

type blogService interface {
	ListPublishedPosts(ctx context.Context, categorySlug string, limit int, lang i18n.Lang) ([]*dto.PostDTO, error)
	GetPublishedPost(ctx context.Context, slug string, lang i18n.Lang) (*dto.PostDTO, error)
	ListCategories(ctx context.Context, lang i18n.Lang) ([]*dto.CategoryDTO, error)
	CreateCategory(ctx context.Context, req dto.CategoryRequest) (*dto.CategoryDTO, error)
	ListApprovedComments(ctx context.Context, slug string) ([]*dto.CommentDTO, error)
	SubmitComment(ctx context.Context, slug string, req dto.CommentRequest) (*dto.CommentDTO, error)
	ListAllPosts(ctx context.Context) ([]*dto.PostDTO, error)
	GetPost(ctx context.Context, id uint) (*dto.PostDTO, error)
	CreatePost(ctx context.Context, authorID uint, req dto.PostRequest) (*dto.PostDTO, error)
	UpdatePost(ctx context.Context, id uint, req dto.PostRequest) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, id uint) error
	ListPendingComments(ctx context.Context) ([]*dto.CommentDTO, error)
	ApproveComment(ctx context.Context, id uint) error
	DeleteComment(ctx context.Context, id uint) error
}

type projectService interface {
	ListPublishedProjects(ctx context.Context, lang i18n.Lang) ([]*dto.ProjectDTO, error)
	GetPublishedProject(ctx context.Context, slug string, lang i18n.Lang) (*dto.ProjectDTO, error)
	ListAllProjects(ctx context.Context) ([]*dto.ProjectDTO, error)
	GetProject(ctx context.Context, id uint) (*dto.ProjectDTO, error)
	CreateProject(ctx context.Context, req dto.ProjectRequest) (*dto.ProjectDTO, error)
	UpdateProject(ctx context.Context, id uint, req dto.ProjectRequest) (*dto.ProjectDTO, error)
	DeleteProject(ctx context.Context, id uint) error
	UploadProjectImage(ctx context.Context, projectID uint, fh *multipart.FileHeader, caption string) (*dto.ProjectImageDTO, error)

	ListActiveTechnologies(ctx context.Context, lang i18n.Lang) ([]*dto.TechnologyDTO, error)
	ListAllTechnologies(ctx context.Context) ([]*dto.TechnologyDTO, error)
	CreateTechnology(ctx context.Context, req dto.TechnologyRequest) (*dto.TechnologyDTO, error)
	UpdateTechnology(ctx context.Context, id uint, req dto.TechnologyRequest) (*dto.TechnologyDTO, error)
	DeleteTechnology(ctx context.Context, id uint) error
}

type maintenanceService interface {
	ListActiveMaintenance(ctx context.Context) ([]*dto.MaintenanceDTO, error)
	ListAllMaintenance(ctx context.Context) ([]*dto.MaintenanceDTO, error)
	CreateMaintenance(ctx context.Context, creatorID uint, req dto.MaintenanceRequest) (*dto.MaintenanceCreatedDTO, error)
	UpdateMaintenance(ctx context.Context, id uint, req dto.MaintenanceRequest) (*dto.MaintenanceDTO, error)
	DeleteMaintenance(ctx context.Context, id uint) error
}

type faqService interface {
	ListPublishedFaq(ctx context.Context, category string, lang i18n.Lang) ([]*dto.FaqDTO, error)
	FaqCategories() []domain.FaqCategory
	ListAllFaq(ctx context.Context) ([]*dto.FaqDTO, error)
	CreateFaq(ctx context.Context, req dto.FaqRequest) (*dto.FaqDTO, error)
	UpdateFaq(ctx context.Context, id uint, req dto.FaqRequest) (*dto.FaqDTO, error)
	DeleteFaq(ctx context.Context, id uint) error
}

type requirementService interface {
	RequirementOptions() domain.RequirementOptions
	ListRequirements(ctx context.Context, status string) ([]*dto.RequirementDTO, error)
	GetRequirement(ctx context.Context, id uint) (*dto.RequirementDTO, error)
	CreateRequirement(ctx context.Context, creatorID uint, req dto.RequirementRequest) (*dto.RequirementDTO, error)
	UpdateRequirement(ctx context.Context, id uint, req dto.RequirementRequest) (*dto.RequirementDTO, error)
	DeleteRequirement(ctx context.Context, id uint) error
	ConvertRequirement(ctx context.Context, id uint) (*dto.ConvertResultDTO, error)
}
