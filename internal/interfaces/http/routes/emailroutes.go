package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/cerberus-dev/cerberus/internal/interfaces/http/handlers"
	"github.com/cerberus-dev/cerberus/internal/interfaces/http/middleware"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
)

type EmailRouteConfig struct {
	EmailHandler         *handlers.EmailHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupEmailRoutes(api *gin.RouterGroup, cfg *EmailRouteConfig) {
	read := cfg.PermissionMiddleware.RequirePermission(authorization.ResourceEmail, authorization.ActionRead)
	write := cfg.PermissionMiddleware.RequirePermission(authorization.ResourceEmail, authorization.ActionWrite)

	emails := api.Group("/emails")
	emails.Use(cfg.AuthMiddleware.RequireAuth())
	{
		emails.GET("/templates", read, cfg.EmailHandler.ListTemplates)
		emails.GET("/templates/:code", read, cfg.EmailHandler.GetTemplate)
		emails.PUT("/templates/:code", write, cfg.EmailHandler.UpsertTemplate)
		emails.POST("/templates/:code/test", write, cfg.EmailHandler.TestTemplate)
		emails.GET("/logs", read, cfg.EmailHandler.ListLogs)
		emails.POST("/test", write, cfg.EmailHandler.SendTest)
	}
}
