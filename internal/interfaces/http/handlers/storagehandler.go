package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/cerberus-dev/cerberus/internal/application/clientservice/usecases"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/utils"
)

// StorageHandler exposes the storage scanner. The same handler backs the
// admin routes and the key-guarded internal routes.
type StorageHandler struct {
	scanner     storageScanner
	configureUC configureStorageUseCase
	statusUC    storageStatusUseCase
	overviewUC  storageOverviewUseCase
	logger      logger.Interface
}

func NewStorageHandler(
	scanner storageScanner,
	configureUC configureStorageUseCase,
	statusUC storageStatusUseCase,
	overviewUC storageOverviewUseCase,
	logger logger.Interface,
) *StorageHandler {
	return &StorageHandler{
		scanner:     scanner,
		configureUC: configureUC,
		statusUC:    statusUC,
		overviewUC:  overviewUC,
		logger:      logger,
	}
}

type ConfigureStorageRequest struct {
	FolderPath     string  `json:"folder_path"`
	StorageLimitMB float64 `json:"storage_limit_mb" binding:"gte=0"`
	AlertThreshold int     `json:"alert_threshold"`
}

// ScanService handles POST /api/storage/scan/:serviceId
func (h *StorageHandler) ScanService(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "serviceId")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	result, err := h.scanner.ScanService(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"scan": result})
}

// ScanAll handles POST /api/storage/scan-all
func (h *StorageHandler) ScanAll(c *gin.Context) {
	result, err := h.scanner.ScanAll(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"scanned": result.Scanned,
		"failed":  result.Failed,
		"alerts":  result.Alerts,
		"results": result.Results,
		"errors":  result.Errors,
	})
}

// Configure handles POST /api/storage/configure/:serviceId
func (h *StorageHandler) Configure(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "serviceId")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req ConfigureStorageRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	service, err := h.configureUC.Execute(c.Request.Context(), usecases.ConfigureStorageCommand{
		ServiceID:      id,
		FolderPath:     req.FolderPath,
		StorageLimitMB: req.StorageLimitMB,
		AlertThreshold: req.AlertThreshold,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"service": service})
}

// Status handles GET /internal/storage/status/:serviceId
func (h *StorageHandler) Status(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "serviceId")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	service, err := h.statusUC.Execute(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"service": service})
}

// Overview handles GET /api/storage/overview
func (h *StorageHandler) Overview(c *gin.Context) {
	overview, err := h.overviewUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"overview": overview})
}
