package content

import (
	"github.com/gin-gonic/gin"

	"github.com/cerberus-dev/cerberus/internal/application/content/dto"
	"github.com/cerberus-dev/cerberus/internal/shared/constants"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/utils"
)

type MaintenanceHandler struct {
	service maintenanceService
	logger  logger.Interface
}

func NewMaintenanceHandler(service maintenanceService, logger logger.Interface) *MaintenanceHandler {
	return &MaintenanceHandler{service: service, logger: logger}
}

// ListActive handles GET /api/maintenance/active
func (h *MaintenanceHandler) ListActive(c *gin.Context) {
	notices, err := h.service.ListActiveMaintenance(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"notices": notices})
}

// ListAll handles GET /api/admin/maintenance
func (h *MaintenanceHandler) ListAll(c *gin.Context) {
	notices, err := h.service.ListAllMaintenance(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"notices": notices})
}

// Create handles POST /api/admin/maintenance. With send_email set every
// active client is mailed the notice.
func (h *MaintenanceHandler) Create(c *gin.Context) {
	var req dto.MaintenanceRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	result, err := h.service.CreateMaintenance(c.Request.Context(), c.GetUint(constants.ContextKeyUserID), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"notice":          result.Notice,
		"emailRecipients": result.EmailRecipients,
	})
}

func (h *MaintenanceHandler) Update(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req dto.MaintenanceRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	notice, err := h.service.UpdateMaintenance(c.Request.Context(), id, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"notice": notice})
}

func (h *MaintenanceHandler) Delete(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.service.DeleteMaintenance(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c)
}
