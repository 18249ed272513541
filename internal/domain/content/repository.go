package content

import (
	"context"
	"time"
)

type BlogRepository interface {
	ListPublished(ctx context.Context, categorySlug string, limit int) ([]*BlogPost, error)
	ListAll(ctx context.Context) ([]*BlogPost, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*BlogPost, error)
	GetPostByID(ctx context.Context, id uint) (*BlogPost, error)
	CreatePost(ctx context.Context, p *BlogPost) error
	UpdatePost(ctx context.Context, p *BlogPost) error
	// DeletePost removes the post and its comments.
	DeletePost(ctx context.Context, id uint) error

	ListCategories(ctx context.Context) ([]*BlogCategory, error)
	CreateCategory(ctx context.Context, c *BlogCategory) error

	ListApprovedComments(ctx context.Context, postID uint) ([]*BlogComment, error)
	ListPendingComments(ctx context.Context) ([]*BlogComment, error)
	CreateComment(ctx context.Context, c *BlogComment) error
	ApproveComment(ctx context.Context, id uint) error
	DeleteComment(ctx context.Context, id uint) error
}

type ProjectRepository interface {
	ListPublished(ctx context.Context) ([]*Project, error)
	ListAll(ctx context.Context) ([]*Project, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*Project, error)
	GetByID(ctx context.Context, id uint) (*Project, error)
	Create(ctx context.Context, p *Project) error
	Update(ctx context.Context, p *Project) error
	// ReplaceTechnologies swaps the technology rows of a project.
	ReplaceTechnologies(ctx context.Context, projectID uint, techs []ProjectTechnology) error
	AddImage(ctx context.Context, img *ProjectImage) error
	// Delete removes the project with its technologies and images and
	// returns the image URLs that were attached.
	Delete(ctx context.Context, id uint) ([]string, error)
}

type TechnologyRepository interface {
	ListActive(ctx context.Context) ([]*Technology, error)
	ListAll(ctx context.Context) ([]*Technology, error)
	GetByID(ctx context.Context, id uint) (*Technology, error)
	Create(ctx context.Context, t *Technology) error
	Update(ctx context.Context, t *Technology) error
	Delete(ctx context.Context, id uint) error
}

type MaintenanceRepository interface {
	ListActive(ctx context.Context, now time.Time) ([]*MaintenanceNotice, error)
	ListAll(ctx context.Context) ([]*MaintenanceNotice, error)
	GetByID(ctx context.Context, id uint) (*MaintenanceNotice, error)
	Create(ctx context.Context, n *MaintenanceNotice) error
	Update(ctx context.Context, n *MaintenanceNotice) error
	Delete(ctx context.Context, id uint) error
}

type FaqRepository interface {
	// List orders by category then sort order. Empty category means all.
	List(ctx context.Context, category string, publishedOnly bool) ([]*FaqItem, error)
	GetByID(ctx context.Context, id uint) (*FaqItem, error)
	Create(ctx context.Context, f *FaqItem) error
	Update(ctx context.Context, f *FaqItem) error
	Delete(ctx context.Context, id uint) error
}

type RequirementRepository interface {
	List(ctx context.Context, status *RequirementStatus) ([]*ProjectRequirement, error)
	GetByID(ctx context.Context, id uint) (*ProjectRequirement, error)
	Create(ctx context.Context, r *ProjectRequirement) error
	Update(ctx context.Context, r *ProjectRequirement) error
	Delete(ctx context.Context, id uint) error
}
