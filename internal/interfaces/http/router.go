package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/cerberus-dev/cerberus/internal/infrastructure/database"
	"github.com/cerberus-dev/cerberus/internal/interfaces/http/middleware"
	"github.com/cerberus-dev/cerberus/internal/interfaces/http/routes"
)

// SetupRoutes configures all HTTP routes.
func (c *Container) SetupRoutes() {
	cfg := c.cfg
	h := c.hdlrs
	engine := c.engine

	if len(cfg.Server.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
			c.log.Warnw("invalid trusted proxies, ignoring", "error", err)
		}
	}
	engine.MaxMultipartMemory = cfg.Uploads.MaxBytes

	engine.Use(middleware.Recovery(c.log))
	engine.Use(middleware.RequestLogger(c.log, "/health", cfg.Uploads.PublicPrefix))
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	engine.GET("/health", h.healthHandler.Health)
	engine.Static(cfg.Uploads.PublicPrefix, cfg.Uploads.Dir)

	authRoutes := &routes.AuthRouteConfig{
		AuthHandler:          h.authHandler,
		UserHandler:          h.userHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
		LoginLimiter:         c.loginLimiter,
	}
	leadRoutes := &routes.LeadRouteConfig{
		LeadHandler:          h.leadHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
		ContactLimiter:       c.contactLimiter,
	}
	contentRoutes := &routes.ContentRouteConfig{
		BlogHandler:          h.blogHandler,
		ProjectHandler:       h.projectHandler,
		MaintenanceHandler:   h.maintenanceHandler,
		FaqHandler:           h.faqHandler,
		RequirementHandler:   h.requirementHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
		CommentLimiter:       c.commentLimiter,
	}

	// Public site API
	public := engine.Group("/api")
	routes.SetupPublicLeadRoutes(public, leadRoutes)
	routes.SetupPublicContentRoutes(public, contentRoutes)

	// Back office API, optionally under a private prefix
	api := engine.Group(cfg.Server.GetAdminPath() + "/api")
	routes.SetupAuthRoutes(api, authRoutes)
	routes.SetupLeadRoutes(api, leadRoutes)
	routes.SetupTicketRoutes(api, &routes.TicketRouteConfig{
		TicketHandler:        h.ticketHandler,
		RoomHandler:          h.roomHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
	routes.SetupServiceRoutes(api, &routes.ServiceRouteConfig{
		ServiceHandler:       h.serviceHandler,
		StorageHandler:       h.storageHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
	routes.SetupNotificationRoutes(api, &routes.NotificationRouteConfig{
		NotificationHandler:  h.notificationHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
	routes.SetupContentRoutes(api, contentRoutes)
	routes.SetupEmailRoutes(api, &routes.EmailRouteConfig{
		EmailHandler:         h.emailHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupInternalRoutes(engine, &routes.InternalRouteConfig{
		StorageHandler: h.storageHandler,
		Guard:          middleware.InternalAPI(cfg.InternalAPI.APIKey, c.log),
	})
}

// GetEngine returns the Gin engine.
func (c *Container) GetEngine() http.Handler {
	return c.engine
}

// StartScheduler starts the storage scan job.
func (c *Container) StartScheduler() {
	c.schedulerManager.Start()
}

// Shutdown releases background work in reverse start order. The HTTP server
// must already be stopped.
func (c *Container) Shutdown(ctx context.Context) error {
	var errs []error

	if c.schedulerManager != nil {
		if err := c.schedulerManager.Stop(); err != nil {
			errs = append(errs, err)
		}
	}

	// Queued emails and notifications finish before their stores close.
	if c.effects != nil {
		if err := c.effects.Wait(ctx); err != nil {
			c.log.Warnw("side effects still running at shutdown", "error", err)
		}
	}

	if c.ticketHub != nil {
		c.ticketHub.Shutdown()
	}

	c.ticketBusCancelMu.Lock()
	if c.ticketBusCancel != nil {
		c.ticketBusCancel()
		c.ticketBusCancel = nil
	}
	c.ticketBusCancelMu.Unlock()

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if err := database.Close(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
