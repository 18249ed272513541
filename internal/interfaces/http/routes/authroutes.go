package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/cerberus-dev/cerberus/internal/interfaces/http/handlers"
	"github.com/cerberus-dev/cerberus/internal/interfaces/http/middleware"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
)

// AuthRouteConfig holds dependencies for authentication and user routes.
type AuthRouteConfig struct {
	AuthHandler          *handlers.AuthHandler
	UserHandler          *handlers.UserHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	LoginLimiter         *middleware.RateLimiter
}

// SetupAuthRoutes mounts /auth, /session, /users and the staff directories.
func SetupAuthRoutes(api *gin.RouterGroup, cfg *AuthRouteConfig) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", cfg.LoginLimiter.Limit(), cfg.AuthHandler.Login)
		auth.POST("/logout", cfg.AuthMiddleware.OptionalAuth(), cfg.AuthHandler.Logout)
		auth.POST("/change-password", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.ChangePassword)
		auth.POST("/password/forgot", cfg.LoginLimiter.Limit(), cfg.AuthHandler.ForgotPassword)
		auth.POST("/password/reset", cfg.LoginLimiter.Limit(), cfg.AuthHandler.ResetPassword)
	}

	api.GET("/session", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.Session)

	perm := cfg.PermissionMiddleware
	users := api.Group("/users")
	users.Use(cfg.AuthMiddleware.RequireAuth())
	{
		users.GET("", perm.RequirePermission(authorization.ResourceUser, authorization.ActionRead), cfg.UserHandler.ListUsers)
		users.POST("", perm.RequirePermission(authorization.ResourceUser, authorization.ActionWrite), cfg.UserHandler.CreateUser)

		users.POST("/:id/recover", perm.RequirePermission(authorization.ResourceUser, authorization.ActionWrite), cfg.UserHandler.RecoverUser)

		users.GET("/:id", perm.RequirePermission(authorization.ResourceUser, authorization.ActionRead), cfg.UserHandler.GetUser)
		users.PUT("/:id", perm.RequirePermission(authorization.ResourceUser, authorization.ActionWrite), cfg.UserHandler.UpdateUser)
		users.DELETE("/:id", perm.RequirePermission(authorization.ResourceUser, authorization.ActionWrite), cfg.UserHandler.DeleteUser)
	}

	api.GET("/support-staff", cfg.AuthMiddleware.RequireAuth(), perm.RequireStaff(), cfg.UserHandler.ListSupportStaff)
	api.GET("/clients", cfg.AuthMiddleware.RequireAuth(), perm.RequireStaff(), cfg.UserHandler.ListClients)
}
