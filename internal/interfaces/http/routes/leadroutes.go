package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/cerberus-dev/cerberus/internal/interfaces/http/handlers"
	"github.com/cerberus-dev/cerberus/internal/interfaces/http/middleware"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
)

type LeadRouteConfig struct {
	LeadHandler          *handlers.LeadHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	ContactLimiter       *middleware.RateLimiter
}

// SetupPublicLeadRoutes mounts the contact form.
func SetupPublicLeadRoutes(api *gin.RouterGroup, cfg *LeadRouteConfig) {
	api.POST("/contact", cfg.ContactLimiter.Limit(), cfg.LeadHandler.SubmitContact)
}

// SetupLeadRoutes mounts the staff lead inbox.
func SetupLeadRoutes(api *gin.RouterGroup, cfg *LeadRouteConfig) {
	read := cfg.PermissionMiddleware.RequirePermission(authorization.ResourceLead, authorization.ActionRead)
	write := cfg.PermissionMiddleware.RequirePermission(authorization.ResourceLead, authorization.ActionWrite)

	leads := api.Group("/leads")
	leads.Use(cfg.AuthMiddleware.RequireAuth())
	{
		leads.GET("", read, cfg.LeadHandler.ListLeads)
		leads.GET("/summary", read, cfg.LeadHandler.GetSummary)

		leads.POST("/:id/important", write, cfg.LeadHandler.ToggleImportant)
		leads.POST("/:id/status", write, cfg.LeadHandler.ChangeStatus)
		leads.POST("/:id/notes", write, cfg.LeadHandler.UpdateNotes)

		leads.GET("/:id", read, cfg.LeadHandler.GetLead)
		leads.DELETE("/:id", write, cfg.LeadHandler.DeleteLead)
	}
}
