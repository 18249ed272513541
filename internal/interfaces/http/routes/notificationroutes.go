package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/cerberus-dev/cerberus/internal/interfaces/http/handlers"
	"github.com/cerberus-dev/cerberus/internal/interfaces/http/middleware"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
)

type NotificationRouteConfig struct {
	NotificationHandler  *handlers.NotificationHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupNotificationRoutes(api *gin.RouterGroup, cfg *NotificationRouteConfig) {
	read := cfg.PermissionMiddleware.RequirePermission(authorization.ResourceNotification, authorization.ActionRead)
	write := cfg.PermissionMiddleware.RequirePermission(authorization.ResourceNotification, authorization.ActionWrite)

	notifications := api.Group("/notifications")
	notifications.Use(cfg.AuthMiddleware.RequireAuth())
	{
		notifications.GET("", read, cfg.NotificationHandler.ListNotifications)
		notifications.GET("/unread-count", read, cfg.NotificationHandler.UnreadCount)
		notifications.POST("/read-all", write, cfg.NotificationHandler.MarkAllRead)
		notifications.POST("/:id/read", write, cfg.NotificationHandler.MarkRead)
		notifications.DELETE("/:id", write, cfg.NotificationHandler.DeleteNotification)
	}
}
