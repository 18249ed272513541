package handlers

import (
	"github.com/gin-gonic/gin"

	appemail "github.com/cerberus-dev/cerberus/internal/application/email"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/utils"
)

type EmailHandler struct {
	service emailAdminService
	logger  logger.Interface
}

type TestEmailRequest struct {
	To string `json:"to" binding:"required,email"`
}

func NewEmailHandler(service emailAdminService, logger logger.Interface) *EmailHandler {
	return &EmailHandler{service: service, logger: logger}
}

// ListTemplates handles GET /api/emails/templates
func (h *EmailHandler) ListTemplates(c *gin.Context) {
	templates, err := h.service.ListTemplates(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"templates": templates})
}

// GetTemplate handles GET /api/emails/templates/:code
func (h *EmailHandler) GetTemplate(c *gin.Context) {
	tpl, err := h.service.GetTemplate(c.Request.Context(), c.Param("code"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"template": tpl})
}

// UpsertTemplate handles PUT /api/emails/templates/:code. The stored row
// overrides the built-in template with the same code.
func (h *EmailHandler) UpsertTemplate(c *gin.Context) {
	var req appemail.TemplateRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	tpl, err := h.service.UpsertTemplate(c.Request.Context(), c.Param("code"), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	h.logger.Infow("email template saved", "code", c.Param("code"))
	utils.SuccessResponse(c, gin.H{"template": tpl})
}

// TestTemplate handles POST /api/emails/templates/:code/test
func (h *EmailHandler) TestTemplate(c *gin.Context) {
	var req TestEmailRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	result, err := h.service.TestTemplate(c.Request.Context(), c.Param("code"), req.To)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"result": result})
}

// SendTest handles POST /api/emails/test
func (h *EmailHandler) SendTest(c *gin.Context) {
	var req TestEmailRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	result, err := h.service.SendTest(c.Request.Context(), req.To)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"result": result})
}

// ListLogs handles GET /api/emails/logs?limit=
func (h *EmailHandler) ListLogs(c *gin.Context) {
	limit := utils.QueryInt(c, "limit", appemail.DefaultLogLimit, appemail.MaxLogLimit)
	logs, err := h.service.ListLogs(c.Request.Context(), limit)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"logs": logs})
}
