package content

import (
	"github.com/gin-gonic/gin"

	"github.com/cerberus-dev/cerberus/internal/application/content/dto"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/utils"
)

// ProjectHandler serves the portfolio: projects, their images and the
// technology catalog.
type ProjectHandler struct {
	service projectService
	logger  logger.Interface
}

func NewProjectHandler(service projectService, logger logger.Interface) *ProjectHandler {
	return &ProjectHandler{service: service, logger: logger}
}

// ListProjects handles GET /api/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.service.ListPublishedProjects(c.Request.Context(), langOf(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"projects": projects})
}

// GetProject handles GET /api/projects/:slug
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.service.GetPublishedProject(c.Request.Context(), c.Param("slug"), langOf(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"project": project})
}

// ListTechnologies handles GET /api/technologies
func (h *ProjectHandler) ListTechnologies(c *gin.Context) {
	techs, err := h.service.ListActiveTechnologies(c.Request.Context(), langOf(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"technologies": techs})
}

func (h *ProjectHandler) AdminListProjects(c *gin.Context) {
	projects, err := h.service.ListAllProjects(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"projects": projects})
}

func (h *ProjectHandler) AdminGetProject(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	project, err := h.service.GetProject(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"project": project})
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.ProjectRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create project", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	project, err := h.service.CreateProject(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"project": project})
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req dto.ProjectRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	project, err := h.service.UpdateProject(c.Request.Context(), id, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"project": project})
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.service.DeleteProject(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c)
}

// UploadImage handles POST /api/admin/projects/:id/images (multipart
// field "image", optional "caption").
func (h *ProjectHandler) UploadImage(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("missing_file"))
		return
	}
	image, err := h.service.UploadProjectImage(c.Request.Context(), id, file, c.PostForm("caption"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"image": image})
}

func (h *ProjectHandler) AdminListTechnologies(c *gin.Context) {
	techs, err := h.service.ListAllTechnologies(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"technologies": techs})
}

func (h *ProjectHandler) CreateTechnology(c *gin.Context) {
	var req dto.TechnologyRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	tech, err := h.service.CreateTechnology(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"technology": tech})
}

func (h *ProjectHandler) UpdateTechnology(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req dto.TechnologyRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	tech, err := h.service.UpdateTechnology(c.Request.Context(), id, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"technology": tech})
}

func (h *ProjectHandler) DeleteTechnology(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.service.DeleteTechnology(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c)
}
