package content

import (
	"github.com/gin-gonic/gin"

	"github.com/cerberus-dev/cerberus/internal/application/content/dto"
	"github.com/cerberus-dev/cerberus/internal/shared/constants"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/utils"
)

const (
	defaultPostLimit = 20
	maxPostLimit     = 100
)

type BlogHandler struct {
	service blogService
	logger  logger.Interface
}

func NewBlogHandler(service blogService, logger logger.Interface) *BlogHandler {
	return &BlogHandler{service: service, logger: logger}
}

// ListPosts handles GET /api/blog/posts?category=&limit=&lang=
func (h *BlogHandler) ListPosts(c *gin.Context) {
	limit := utils.QueryInt(c, "limit", defaultPostLimit, maxPostLimit)
	posts, err := h.service.ListPublishedPosts(c.Request.Context(), c.Query("category"), limit, langOf(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"posts": posts})
}

// GetPost handles GET /api/blog/posts/:slug
func (h *BlogHandler) GetPost(c *gin.Context) {
	post, err := h.service.GetPublishedPost(c.Request.Context(), c.Param("slug"), langOf(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"post": post})
}

// ListCategories handles GET /api/blog/categories
func (h *BlogHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context(), langOf(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"categories": categories})
}

// ListComments handles GET /api/blog/posts/:slug/comments
func (h *BlogHandler) ListComments(c *gin.Context) {
	comments, err := h.service.ListApprovedComments(c.Request.Context(), c.Param("slug"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"comments": comments})
}

// SubmitComment handles POST /api/blog/posts/:slug/comments. Comments
// wait for moderation before they are listed.
func (h *BlogHandler) SubmitComment(c *gin.Context) {
	var req dto.CommentRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	comment, err := h.service.SubmitComment(c.Request.Context(), c.Param("slug"), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"comment": comment})
}

// AdminListPosts handles GET /api/admin/blog/posts
func (h *BlogHandler) AdminListPosts(c *gin.Context) {
	posts, err := h.service.ListAllPosts(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"posts": posts})
}

// AdminGetPost handles GET /api/admin/blog/posts/:id
func (h *BlogHandler) AdminGetPost(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	post, err := h.service.GetPost(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"post": post})
}

// CreatePost handles POST /api/admin/blog/posts
func (h *BlogHandler) CreatePost(c *gin.Context) {
	var req dto.PostRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create post", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	post, err := h.service.CreatePost(c.Request.Context(), c.GetUint(constants.ContextKeyUserID), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"post": post})
}

// UpdatePost handles PUT /api/admin/blog/posts/:id
func (h *BlogHandler) UpdatePost(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req dto.PostRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	post, err := h.service.UpdatePost(c.Request.Context(), id, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"post": post})
}

// DeletePost handles DELETE /api/admin/blog/posts/:id
func (h *BlogHandler) DeletePost(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.service.DeletePost(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c)
}

// CreateCategory handles POST /api/admin/blog/categories
func (h *BlogHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	category, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"category": category})
}

// PendingComments handles GET /api/admin/blog/comments
func (h *BlogHandler) PendingComments(c *gin.Context) {
	comments, err := h.service.ListPendingComments(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"comments": comments})
}

// ApproveComment handles POST /api/admin/blog/comments/:id/approve
func (h *BlogHandler) ApproveComment(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.service.ApproveComment(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c)
}

// DeleteComment handles DELETE /api/admin/blog/comments/:id
func (h *BlogHandler) DeleteComment(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.service.DeleteComment(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c)
}
