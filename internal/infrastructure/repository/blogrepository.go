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

type blogPostRow struct {
	models.BlogPostModel `gorm:"embedded"`
	CategoryName         *string
	CategorySlug         *string
}

type BlogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) content.BlogRepository {
	return &BlogRepository{db: db}
}

func (r *BlogRepository) postQuery(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db).
		Table(models.BlogPostModel{}.TableName() + " AS p").
		Select("p.*, c.name AS category_name, c.slug AS category_slug").
		Joins("LEFT JOIN blog_categories c ON c.id = p.category_id")
}

func (r *BlogRepository) scanPosts(q *gorm.DB) ([]*content.BlogPost, error) {
	var rows []blogPostRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load blog posts: %w", err)
	}
	out := make([]*content.BlogPost, 0, len(rows))
	for i := range rows {
		p := mappers.BlogPostToDomain(&rows[i].BlogPostModel)
		p.CategoryName = deref(rows[i].CategoryName)
		p.CategorySlug = deref(rows[i].CategorySlug)
		out = append(out, p)
	}
	return out, nil
}

func (r *BlogRepository) ListPublished(ctx context.Context, categorySlug string, limit int) ([]*content.BlogPost, error) {
	q := r.postQuery(ctx).Where("p.is_published = ?", true)
	if categorySlug != "" {
		q = q.Where("c.slug = ?", categorySlug)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	return r.scanPosts(q.Order("p.created_at DESC").Order("p.id DESC"))
}

func (r *BlogRepository) ListAll(ctx context.Context) ([]*content.BlogPost, error) {
	return r.scanPosts(r.postQuery(ctx).Order("p.created_at DESC").Order("p.id DESC"))
}

// GetPublishedBySlug returns nil, nil when no published post matches.
func (r *BlogRepository) GetPublishedBySlug(ctx context.Context, slug string) (*content.BlogPost, error) {
	posts, err := r.scanPosts(r.postQuery(ctx).Where("p.slug = ? AND p.is_published = ?", slug, true).Limit(1))
	if err != nil || len(posts) == 0 {
		return nil, err
	}
	return posts[0], nil
}

func (r *BlogRepository) GetPostByID(ctx context.Context, id uint) (*content.BlogPost, error) {
	posts, err := r.scanPosts(r.postQuery(ctx).Where("p.id = ?", id).Limit(1))
	if err != nil || len(posts) == 0 {
		return nil, err
	}
	return posts[0], nil
}

func (r *BlogRepository) CreatePost(ctx context.Context, p *content.BlogPost) error {
	model := mappers.BlogPostToModel(p)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create blog post: %w", err)
	}
	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *BlogRepository) UpdatePost(ctx context.Context, p *content.BlogPost) error {
	model := mappers.BlogPostToModel(p)
	if err := updateAll(db.GetTxFromContext(ctx, r.db), model, model.ID); err != nil {
		return fmt.Errorf("failed to update blog post: %w", err)
	}
	return nil
}

func (r *BlogRepository) DeletePost(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("post_id = ?", id).Delete(&models.BlogCommentModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete blog comments: %w", err)
	}
	if err := tx.Delete(&models.BlogPostModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete blog post: %w", err)
	}
	return nil
}

func (r *BlogRepository) ListCategories(ctx context.Context) ([]*content.BlogCategory, error) {
	var rows []struct {
		models.BlogCategoryModel `gorm:"embedded"`
		PostCount                int64
	}
	err := db.GetTxFromContext(ctx, r.db).
		Table(models.BlogCategoryModel{}.TableName()+" AS c").
		Select(`c.*, (SELECT COUNT(*) FROM blog_posts p
			WHERE p.category_id = c.id AND p.is_published = ?) AS post_count`, true).
		Order("c.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list blog categories: %w", err)
	}
	out := make([]*content.BlogCategory, 0, len(rows))
	for _, row := range rows {
		out = append(out, &content.BlogCategory{
			ID:        row.ID,
			Name:      row.Name,
			NameEn:    row.NameEn,
			Slug:      row.Slug,
			PostCount: row.PostCount,
		})
	}
	return out, nil
}

func (r *BlogRepository) CreateCategory(ctx context.Context, c *content.BlogCategory) error {
	model := &models.BlogCategoryModel{Name: c.Name, NameEn: c.NameEn, Slug: c.Slug}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create blog category: %w", err)
	}
	c.ID = model.ID
	return nil
}

func (r *BlogRepository) listComments(ctx context.Context, where string, args ...any) ([]*content.BlogComment, error) {
	var ms []models.BlogCommentModel
	err := db.GetTxFromContext(ctx, r.db).
		Where(where, args...).
		Order("created_at DESC").
		Order("id DESC").
		Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list blog comments: %w", err)
	}
	out := make([]*content.BlogComment, 0, len(ms))
	for i := range ms {
		out = append(out, mappers.BlogCommentToDomain(&ms[i]))
	}
	return out, nil
}

func (r *BlogRepository) ListApprovedComments(ctx context.Context, postID uint) ([]*content.BlogComment, error) {
	return r.listComments(ctx, "post_id = ? AND is_approved = ?", postID, true)
}

func (r *BlogRepository) ListPendingComments(ctx context.Context) ([]*content.BlogComment, error) {
	return r.listComments(ctx, "is_approved = ?", false)
}

func (r *BlogRepository) CreateComment(ctx context.Context, c *content.BlogComment) error {
	model := &models.BlogCommentModel{
		PostID:     c.PostID,
		AuthorName: c.AuthorName,
		Comment:    c.Comment,
		IsApproved: c.IsApproved,
		CreatedAt:  c.CreatedAt,
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create blog comment: %w", err)
	}
	c.ID = model.ID
	return nil
}

func (r *BlogRepository) ApproveComment(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.BlogCommentModel{}).
		Where("id = ?", id).
		Update("is_approved", true)
	if result.Error != nil {
		return fmt.Errorf("failed to approve blog comment: %w", result.Error)
	}
	return nil
}

func (r *BlogRepository) DeleteComment(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.BlogCommentModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete blog comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return content.ErrNotFound
	}
	return nil
}
