package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/cerberus-dev/cerberus/internal/interfaces/http/handlers"
	"github.com/cerberus-dev/cerberus/internal/interfaces/http/middleware"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
)

type ServiceRouteConfig struct {
	ServiceHandler       *handlers.ServiceHandler
	StorageHandler       *handlers.StorageHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupServiceRoutes mounts client services and the admin storage screens.
func SetupServiceRoutes(api *gin.RouterGroup, cfg *ServiceRouteConfig) {
	perm := cfg.PermissionMiddleware

	services := api.Group("/services")
	services.Use(cfg.AuthMiddleware.RequireAuth())
	{
		services.GET("", perm.RequirePermission(authorization.ResourceService, authorization.ActionRead), cfg.ServiceHandler.ListServices)
		services.POST("", perm.RequirePermission(authorization.ResourceService, authorization.ActionWrite), cfg.ServiceHandler.CreateService)
		services.PUT("/:id", perm.RequirePermission(authorization.ResourceService, authorization.ActionWrite), cfg.ServiceHandler.UpdateService)
		services.DELETE("/:id", perm.RequirePermission(authorization.ResourceService, authorization.ActionWrite), cfg.ServiceHandler.DeleteService)
	}

	read := perm.RequirePermission(authorization.ResourceStorage, authorization.ActionRead)
	write := perm.RequirePermission(authorization.ResourceStorage, authorization.ActionWrite)

	storage := api.Group("/storage")
	storage.Use(cfg.AuthMiddleware.RequireAuth())
	{
		storage.GET("/overview", read, cfg.StorageHandler.Overview)
		storage.GET("/status/:serviceId", read, cfg.StorageHandler.Status)
		storage.POST("/scan-all", write, cfg.StorageHandler.ScanAll)
		storage.POST("/scan/:serviceId", write, cfg.StorageHandler.ScanService)
		storage.POST("/configure/:serviceId", write, cfg.StorageHandler.Configure)
	}
}

// InternalRouteConfig holds the key-guarded routes for co-located
// processes.
type InternalRouteConfig struct {
	StorageHandler *handlers.StorageHandler
	Guard          gin.HandlerFunc
}

func SetupInternalRoutes(engine *gin.Engine, cfg *InternalRouteConfig) {
	internal := engine.Group("/internal")
	internal.Use(cfg.Guard)
	{
		internal.POST("/storage/scan-all", cfg.StorageHandler.ScanAll)
		internal.POST("/storage/scan/:serviceId", cfg.StorageHandler.ScanService)
		internal.GET("/storage/status/:serviceId", cfg.StorageHandler.Status)
	}
}
