package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/cerberus-dev/cerberus/internal/application/clientservice/usecases"
	"github.com/cerberus-dev/cerberus/internal/interfaces/http/middleware"
	"github.com/cerberus-dev/cerberus/internal/shared/constants"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/utils"
)

// ServiceHandler manages client services. Clients only ever see their own.
type ServiceHandler struct {
	listUC   listServicesUseCase
	createUC createServiceUseCase
	updateUC updateServiceUseCase
	deleteUC deleteServiceUseCase
	logger   logger.Interface
}

func NewServiceHandler(
	listUC listServicesUseCase,
	createUC createServiceUseCase,
	updateUC updateServiceUseCase,
	deleteUC deleteServiceUseCase,
	logger logger.Interface,
) *ServiceHandler {
	return &ServiceHandler{
		listUC:   listUC,
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		logger:   logger,
	}
}

type ServiceRequest struct {
	ClientID       uint    `json:"client_id"`
	ServiceName    string  `json:"service_name" binding:"notblank,max=200"`
	Domain         string  `json:"domain" binding:"max=255"`
	Description    string  `json:"description"`
	ServiceType    string  `json:"service_type" binding:"max=50"`
	Status         string  `json:"status"`
	StorageLimitMB float64 `json:"storage_limit_mb" binding:"gte=0"`
	StartDate      *string `json:"start_date"`
	EndDate        *string `json:"end_date"`
}

func (r *ServiceRequest) input() (usecases.ServiceInput, error) {
	start, err := parseOptionalTime("start_date", r.StartDate)
	if err != nil {
		return usecases.ServiceInput{}, err
	}
	end, err := parseOptionalTime("end_date", r.EndDate)
	if err != nil {
		return usecases.ServiceInput{}, err
	}
	return usecases.ServiceInput{
		ServiceName:    r.ServiceName,
		Domain:         r.Domain,
		Description:    r.Description,
		ServiceType:    r.ServiceType,
		Status:         r.Status,
		StorageLimitMB: r.StorageLimitMB,
		StartDate:      start,
		EndDate:        end,
	}, nil
}

// ListServices handles GET /api/services
func (h *ServiceHandler) ListServices(c *gin.Context) {
	services, err := h.listUC.Execute(c.Request.Context(), c.GetUint(constants.ContextKeyUserID), middleware.CurrentRole(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"services": services})
}

// CreateService handles POST /api/services
func (h *ServiceHandler) CreateService(c *gin.Context) {
	var req ServiceRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	in, err := req.input()
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	service, err := h.createUC.Execute(c.Request.Context(), usecases.CreateServiceCommand{
		ClientID:     req.ClientID,
		ServiceInput: in,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"service": service})
}

// UpdateService handles PUT /api/services/:id
func (h *ServiceHandler) UpdateService(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req ServiceRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	in, err := req.input()
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	service, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateServiceCommand{
		ServiceID:    id,
		ServiceInput: in,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"service": service})
}

// DeleteService handles DELETE /api/services/:id
func (h *ServiceHandler) DeleteService(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.deleteUC.Execute(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c)
}
