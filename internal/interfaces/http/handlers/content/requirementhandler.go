package content

import (
	"github.com/gin-gonic/gin"

	"github.com/cerberus-dev/cerberus/internal/application/content/dto"
	"github.com/cerberus-dev/cerberus/internal/shared/constants"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/utils"
)

// RequirementHandler manages project requirement intakes and their
// conversion into client accounts.
type RequirementHandler struct {
	service requirementService
	logger  logger.Interface
}

func NewRequirementHandler(service requirementService, logger logger.Interface) *RequirementHandler {
	return &RequirementHandler{service: service, logger: logger}
}

// Options handles GET /api/admin/requirements/options
func (h *RequirementHandler) Options(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{"options": h.service.RequirementOptions()})
}

// List handles GET /api/admin/requirements?status=
func (h *RequirementHandler) List(c *gin.Context) {
	reqs, err := h.service.ListRequirements(c.Request.Context(), c.Query("status"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"requirements": reqs})
}

func (h *RequirementHandler) Get(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	req, err := h.service.GetRequirement(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"requirement": req})
}

func (h *RequirementHandler) Create(c *gin.Context) {
	var body dto.RequirementRequest
	if err := utils.BindJSON(c, &body); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	req, err := h.service.CreateRequirement(c.Request.Context(), c.GetUint(constants.ContextKeyUserID), body)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"requirement": req})
}

func (h *RequirementHandler) Update(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var body dto.RequirementRequest
	if err := utils.BindJSON(c, &body); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	req, err := h.service.UpdateRequirement(c.Request.Context(), id, body)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"requirement": req})
}

func (h *RequirementHandler) Delete(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.service.DeleteRequirement(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c)
}

// Convert handles POST /api/admin/requirements/:id/convert. It creates
// the client account and returns its temporary password once.
func (h *RequirementHandler) Convert(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	result, err := h.service.ConvertRequirement(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"result": result})
}
