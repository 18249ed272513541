package routes

import (
	"github.com/gin-gonic/gin"

	contenthandlers "github.com/cerberus-dev/cerberus/internal/interfaces/http/handlers/content"
	"github.com/cerberus-dev/cerberus/internal/interfaces/http/middleware"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
)

type ContentRouteConfig struct {
	BlogHandler          *contenthandlers.BlogHandler
	ProjectHandler       *contenthandlers.ProjectHandler
	MaintenanceHandler   *contenthandlers.MaintenanceHandler
	FaqHandler           *contenthandlers.FaqHandler
	RequirementHandler   *contenthandlers.RequirementHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	CommentLimiter       *middleware.RateLimiter
}

// SetupPublicContentRoutes mounts the marketing site API.
func SetupPublicContentRoutes(api *gin.RouterGroup, cfg *ContentRouteConfig) {
	blog := api.Group("/blog")
	{
		blog.GET("/categories", cfg.BlogHandler.ListCategories)
		blog.GET("/posts", cfg.BlogHandler.ListPosts)
		blog.GET("/posts/:slug", cfg.BlogHandler.GetPost)
		blog.GET("/posts/:slug/comments", cfg.BlogHandler.ListComments)
		blog.POST("/posts/:slug/comments", cfg.CommentLimiter.Limit(), cfg.BlogHandler.SubmitComment)
	}

	api.GET("/projects", cfg.ProjectHandler.ListProjects)
	api.GET("/projects/:slug", cfg.ProjectHandler.GetProject)
	api.GET("/technologies", cfg.ProjectHandler.ListTechnologies)

	api.GET("/faq", cfg.FaqHandler.List)
	api.GET("/faq/categories", cfg.FaqHandler.Categories)
}

// SetupContentRoutes mounts the session-gated content screens.
func SetupContentRoutes(api *gin.RouterGroup, cfg *ContentRouteConfig) {
	perm := cfg.PermissionMiddleware

	api.GET("/maintenance/active", cfg.AuthMiddleware.RequireAuth(), cfg.MaintenanceHandler.ListActive)

	admin := api.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth())

	content := admin.Group("")
	content.Use(perm.RequirePermission(authorization.ResourceContent, authorization.ActionWrite))
	{
		content.GET("/blog/posts", cfg.BlogHandler.AdminListPosts)
		content.POST("/blog/posts", cfg.BlogHandler.CreatePost)
		content.GET("/blog/posts/:id", cfg.BlogHandler.AdminGetPost)
		content.PUT("/blog/posts/:id", cfg.BlogHandler.UpdatePost)
		content.DELETE("/blog/posts/:id", cfg.BlogHandler.DeletePost)
		content.POST("/blog/categories", cfg.BlogHandler.CreateCategory)
		content.GET("/blog/comments", cfg.BlogHandler.PendingComments)
		content.POST("/blog/comments/:id/approve", cfg.BlogHandler.ApproveComment)
		content.DELETE("/blog/comments/:id", cfg.BlogHandler.DeleteComment)

		content.GET("/projects", cfg.ProjectHandler.AdminListProjects)
		content.POST("/projects", cfg.ProjectHandler.CreateProject)
		content.POST("/projects/:id/images", cfg.ProjectHandler.UploadImage)
		content.GET("/projects/:id", cfg.ProjectHandler.AdminGetProject)
		content.PUT("/projects/:id", cfg.ProjectHandler.UpdateProject)
		content.DELETE("/projects/:id", cfg.ProjectHandler.DeleteProject)

		content.GET("/technologies", cfg.ProjectHandler.AdminListTechnologies)
		content.POST("/technologies", cfg.ProjectHandler.CreateTechnology)
		content.PUT("/technologies/:id", cfg.ProjectHandler.UpdateTechnology)
		content.DELETE("/technologies/:id", cfg.ProjectHandler.DeleteTechnology)

		content.GET("/maintenance", cfg.MaintenanceHandler.ListAll)
		content.POST("/maintenance", cfg.MaintenanceHandler.Create)
		content.PUT("/maintenance/:id", cfg.MaintenanceHandler.Update)
		content.DELETE("/maintenance/:id", cfg.MaintenanceHandler.Delete)

		content.GET("/faq", cfg.FaqHandler.AdminList)
		content.POST("/faq", cfg.FaqHandler.Create)
		content.PUT("/faq/:id", cfg.FaqHandler.Update)
		content.DELETE("/faq/:id", cfg.FaqHandler.Delete)
	}

	read := perm.RequirePermission(authorization.ResourceRequirement, authorization.ActionRead)
	write := perm.RequirePermission(authorization.ResourceRequirement, authorization.ActionWrite)

	requirements := admin.Group("/requirements")
	{
		requirements.GET("/options", read, cfg.RequirementHandler.Options)
		requirements.GET("", read, cfg.RequirementHandler.List)
		requirements.POST("", write, cfg.RequirementHandler.Create)
		requirements.POST("/:id/convert", perm.RequireAdmin(), cfg.RequirementHandler.Convert)
		requirements.GET("/:id", read, cfg.RequirementHandler.Get)
		requirements.PUT("/:id", write, cfg.RequirementHandler.Update)
		requirements.DELETE("/:id", perm.RequireAdmin(), cfg.RequirementHandler.Delete)
	}
}
