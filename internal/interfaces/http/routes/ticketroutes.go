package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "github.com/cerberus-dev/cerberus/internal/interfaces/http/handlers/ticket"
	"github.com/cerberus-dev/cerberus/internal/interfaces/http/middleware"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
)

type TicketRouteConfig struct {
	TicketHandler        *tickethandlers.TicketHandler
	RoomHandler          *tickethandlers.RoomHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupTicketRoutes(api *gin.RouterGroup, cfg *TicketRouteConfig) {
	perm := cfg.PermissionMiddleware

	tickets := api.Group("/tickets")
	tickets.Use(cfg.AuthMiddleware.RequireAuth())
	{
		// Specific paths before /:id.
		tickets.GET("/ws", perm.RequirePermission(authorization.ResourceTicket, authorization.ActionRead), cfg.RoomHandler.Connect)
		tickets.GET("/stats", perm.RequirePermission(authorization.ResourceTicket, authorization.ActionRead), cfg.TicketHandler.GetStats)

		tickets.GET("", perm.RequirePermission(authorization.ResourceTicket, authorization.ActionRead), cfg.TicketHandler.ListTickets)
		tickets.POST("", perm.RequirePermission(authorization.ResourceTicket, authorization.ActionWrite), cfg.TicketHandler.CreateTicket)

		tickets.POST("/:id/messages", perm.RequirePermission(authorization.ResourceTicket, authorization.ActionWrite), cfg.TicketHandler.AddMessage)
		tickets.POST("/:id/attachments", perm.RequirePermission(authorization.ResourceTicket, authorization.ActionWrite), cfg.TicketHandler.UploadAttachment)
		assign := perm.RequirePermission(authorization.ResourceTicket, authorization.ActionAssign)
		tickets.POST("/:id/assign-me", assign, cfg.TicketHandler.AssignTicket)
		// Older clients still post to /assign.
		tickets.POST("/:id/assign", assign, cfg.TicketHandler.AssignTicket)
		tickets.POST("/:id/close", cfg.TicketHandler.CloseTicket)
		tickets.POST("/:id/improvement-status", perm.RequireStaff(), cfg.TicketHandler.ChangeImprovementStatus)

		tickets.GET("/:id", perm.RequirePermission(authorization.ResourceTicket, authorization.ActionRead), cfg.TicketHandler.GetTicket)
		tickets.PUT("/:id", perm.RequireAdmin(), cfg.TicketHandler.UpdateTicket)
		tickets.DELETE("/:id", perm.RequireAdmin(), cfg.TicketHandler.DeleteTicket)
	}
}
