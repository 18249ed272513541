package content

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/cerberus-dev/cerberus/internal/application/content/dto"
	"github.com/cerberus-dev/cerberus/internal/domain/content"
	"github.com/cerberus-dev/cerberus/internal/domain/notification"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
	"github.com/cerberus-dev/cerberus/internal/shared/i18n"
)

// ListPublishedPosts returns published posts, newest first.
func (s *ServiceDDD) ListPublishedPosts(ctx context.Context, categorySlug string, limit int, lang i18n.Lang) ([]*dto.PostDTO, error) {
	if limit <= 0 {
		limit = DefaultPostLimit
	}
	if limit > MaxPostLimit {
		limit = MaxPostLimit
	}
	posts, err := s.blog.ListPublished(ctx, strings.TrimSpace(categorySlug), limit)
	if err != nil {
		s.logger.Errorw("failed to list blog posts", "error", err)
		return nil, errors.NewInternalError("failed to list posts")
	}
	out := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, dto.ToPostDTO(p, lang, false, false))
	}
	return out, nil
}

// GetPublishedPost returns one post with its body rendered to HTML.
func (s *ServiceDDD) GetPublishedPost(ctx context.Context, slug string, lang i18n.Lang) (*dto.PostDTO, error) {
	p, err := s.publishedPost(ctx, slug)
	if err != nil {
		return nil, err
	}
	out := dto.ToPostDTO(p, lang, true, false)
	html, err := s.markdown.Render(out.Content)
	if err != nil {
		s.logger.Warnw("failed to render blog post", "post_id", p.ID, "error", err)
	} else {
		out.ContentHTML = html
	}
	return out, nil
}

func (s *ServiceDDD) ListCategories(ctx context.Context, lang i18n.Lang) ([]*dto.CategoryDTO, error) {
	cats, err := s.blog.ListCategories(ctx)
	if err != nil {
		s.logger.Errorw("failed to list blog categories", "error", err)
		return nil, errors.NewInternalError("failed to list categories")
	}
	out := make([]*dto.CategoryDTO, 0, len(cats))
	for _, c := range cats {
		out = append(out, dto.ToCategoryDTO(c, lang))
	}
	return out, nil
}

func (s *ServiceDDD) CreateCategory(ctx context.Context, req dto.CategoryRequest) (*dto.CategoryDTO, error) {
	c := &content.BlogCategory{Name: strings.TrimSpace(req.Name), NameEn: strings.TrimSpace(req.NameEn), Slug: req.Slug}
	if err := c.Validate(); err != nil {
		return nil, errors.NewValidationError("bad_category", err.Error())
	}
	if err := s.blog.CreateCategory(ctx, c); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("slug_taken")
		}
		s.logger.Errorw("failed to create blog category", "error", err)
		return nil, errors.NewInternalError("failed to create category")
	}
	return dto.ToCategoryDTO(c, i18n.ES), nil
}

func (s *ServiceDDD) ListApprovedComments(ctx context.Context, slug string) ([]*dto.CommentDTO, error) {
	p, err := s.publishedPost(ctx, slug)
	if err != nil {
		return nil, err
	}
	comments, err := s.blog.ListApprovedComments(ctx, p.ID)
	if err != nil {
		s.logger.Errorw("failed to list comments", "post_id", p.ID, "error", err)
		return nil, errors.NewInternalError("failed to list comments")
	}
	return dto.ToCommentDTOs(comments), nil
}

// SubmitComment stores a comment pending moderation and tells staff.
func (s *ServiceDDD) SubmitComment(ctx context.Context, slug string, req dto.CommentRequest) (*dto.CommentDTO, error) {
	p, err := s.publishedPost(ctx, slug)
	if err != nil {
		return nil, err
	}
	c, err := content.NewBlogComment(p.ID, req.AuthorName, req.Comment)
	if err != nil {
		if content.IsCommentInputError(err) {
			return nil, errors.NewValidationError("missing_fields")
		}
		return nil, errors.NewValidationError(err.Error())
	}
	if err := s.blog.CreateComment(ctx, c); err != nil {
		s.logger.Errorw("failed to create comment", "post_id", p.ID, "error", err)
		return nil, errors.NewInternalError("failed to create comment")
	}

	postID, title, author := p.ID, p.Title, c.AuthorName
	s.effects.Go(ctx, "blog.comment_notification", func(ctx context.Context) error {
		n, err := notification.NewNotification(notification.TypeComment, nil, &postID,
			"Nuevo comentario", fmt.Sprintf("%s comentó en \"%s\"", author, title))
		if err != nil {
			return err
		}
		return s.notifications.Create(ctx, n)
	})

	s.logger.Infow("blog comment submitted", "post_id", p.ID, "comment_id", c.ID)
	return dto.ToCommentDTO(c), nil
}

// ---- admin ----

func (s *ServiceDDD) ListAllPosts(ctx context.Context) ([]*dto.PostDTO, error) {
	posts, err := s.blog.ListAll(ctx)
	if err != nil {
		s.logger.Errorw("failed to list blog posts", "error", err)
		return nil, errors.NewInternalError("failed to list posts")
	}
	out := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, dto.ToPostDTO(p, i18n.ES, false, true))
	}
	return out, nil
}

func (s *ServiceDDD) GetPost(ctx context.Context, id uint) (*dto.PostDTO, error) {
	p, err := s.postByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToPostDTO(p, i18n.ES, true, true), nil
}

func (s *ServiceDDD) CreatePost(ctx context.Context, authorID uint, req dto.PostRequest) (*dto.PostDTO, error) {
	p := &content.BlogPost{AuthorID: &authorID}
	applyPost(p, req)
	if err := p.Validate(s.now()); err != nil {
		return nil, errors.NewValidationError("invalid_post", err.Error())
	}
	if err := s.blog.CreatePost(ctx, p); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("slug_taken")
		}
		s.logger.Errorw("failed to create blog post", "error", err)
		return nil, errors.NewInternalError("failed to create post")
	}
	s.logger.Infow("blog post created", "post_id", p.ID, "author_id", authorID)
	return dto.ToPostDTO(p, i18n.ES, true, true), nil
}

func (s *ServiceDDD) UpdatePost(ctx context.Context, id uint, req dto.PostRequest) (*dto.PostDTO, error) {
	p, err := s.postByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyPost(p, req)
	if err := p.Validate(s.now()); err != nil {
		return nil, errors.NewValidationError("invalid_post", err.Error())
	}
	if err := s.blog.UpdatePost(ctx, p); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("slug_taken")
		}
		s.logger.Errorw("failed to update blog post", "post_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update post")
	}
	return dto.ToPostDTO(p, i18n.ES, true, true), nil
}

func (s *ServiceDDD) DeletePost(ctx context.Context, id uint) error {
	if _, err := s.postByID(ctx, id); err != nil {
		return err
	}
	if err := s.blog.DeletePost(ctx, id); err != nil {
		s.logger.Errorw("failed to delete blog post", "post_id", id, "error", err)
		return errors.NewInternalError("failed to delete post")
	}
	s.logger.Infow("blog post deleted", "post_id", id)
	return nil
}

func (s *ServiceDDD) ListPendingComments(ctx context.Context) ([]*dto.CommentDTO, error) {
	comments, err := s.blog.ListPendingComments(ctx)
	if err != nil {
		s.logger.Errorw("failed to list pending comments", "error", err)
		return nil, errors.NewInternalError("failed to list comments")
	}
	return dto.ToCommentDTOs(comments), nil
}

func (s *ServiceDDD) ApproveComment(ctx context.Context, id uint) error {
	if err := s.blog.ApproveComment(ctx, id); err != nil {
		s.logger.Errorw("failed to approve comment", "comment_id", id, "error", err)
		return errors.NewInternalError("failed to approve comment")
	}
	return nil
}

func (s *ServiceDDD) DeleteComment(ctx context.Context, id uint) error {
	if err := s.blog.DeleteComment(ctx, id); err != nil {
		if stderrors.Is(err, content.ErrNotFound) {
			return errors.NewNotFoundError("not_found")
		}
		s.logger.Errorw("failed to delete comment", "comment_id", id, "error", err)
		return errors.NewInternalError("failed to delete comment")
	}
	return nil
}

func (s *ServiceDDD) publishedPost(ctx context.Context, slug string) (*content.BlogPost, error) {
	p, err := s.blog.GetPublishedBySlug(ctx, slug)
	if err != nil {
		s.logger.Errorw("failed to get blog post", "slug", slug, "error", err)
		return nil, errors.NewInternalError("failed to get post")
	}
	if p == nil {
		return nil, errors.NewNotFoundError("not_found")
	}
	return p, nil
}

func (s *ServiceDDD) postByID(ctx context.Context, id uint) (*content.BlogPost, error) {
	p, err := s.blog.GetPostByID(ctx, id)
	if err != nil {
		s.logger.Errorw("failed to get blog post", "post_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get post")
	}
	if p == nil {
		return nil, errors.NewNotFoundError("not_found")
	}
	return p, nil
}

func applyPost(p *content.BlogPost, req dto.PostRequest) {
	p.Title = strings.TrimSpace(req.Title)
	p.TitleEn = strings.TrimSpace(req.TitleEn)
	p.Slug = strings.TrimSpace(req.Slug)
	p.Excerpt = req.Excerpt
	p.ExcerptEn = req.ExcerptEn
	p.Content = req.Content
	p.ContentEn = req.ContentEn
	p.CoverImage = req.CoverImage
	p.CategoryID = req.CategoryID
	if !req.IsPublished {
		p.PublishedAt = nil
	}
	p.IsPublished = req.IsPublished
}
