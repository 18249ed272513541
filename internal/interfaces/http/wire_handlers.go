package http

import (
	"context"

	"github.com/cerberus-dev/cerberus/internal/infrastructure/database"
	"github.com/cerberus-dev/cerberus/internal/interfaces/http/handlers"
	contentHandlers "github.com/cerberus-dev/cerberus/internal/interfaces/http/handlers/content"
	ticketHandlers "github.com/cerberus-dev/cerberus/internal/interfaces/http/handlers/ticket"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	healthHandler *handlers.HealthHandler

	// User & Auth
	authHandler *handlers.AuthHandler
	userHandler *handlers.UserHandler

	leadHandler         *handlers.LeadHandler
	notificationHandler *handlers.NotificationHandler

	// Tickets
	ticketHandler *ticketHandlers.TicketHandler
	roomHandler   *ticketHandlers.RoomHandler

	// Client services & storage
	serviceHandler *handlers.ServiceHandler
	storageHandler *handlers.StorageHandler

	// Content
	blogHandler        *contentHandlers.BlogHandler
	projectHandler     *contentHandlers.ProjectHandler
	maintenanceHandler *contentHandlers.MaintenanceHandler
	faqHandler         *contentHandlers.FaqHandler
	requirementHandler *contentHandlers.RequirementHandler

	emailHandler *handlers.EmailHandler
}

// ============================================================
// Section 6: Handlers
// ============================================================

func (c *Container) initHandlers() {
	ucs := c.ucs
	log := c.log

	c.hdlrs = &allHandlers{
		healthHandler: handlers.NewHealthHandler(map[string]handlers.Pinger{
			"database": func(ctx context.Context) error { return database.Ping(ctx, c.db) },
			"redis":    func(ctx context.Context) error { return c.redis.Ping(ctx).Err() },
		}, log),

		authHandler: handlers.NewAuthHandler(
			ucs.login, ucs.logout, ucs.changePassword, ucs.requestReset, ucs.resetPassword,
			c.sessionCookie, log,
		),
		userHandler: handlers.NewUserHandler(
			ucs.listUsers, ucs.getUser, ucs.listSupport, ucs.listClients,
			ucs.createUser, ucs.updateUser, ucs.deleteUser, ucs.recoverUser, log,
		),

		leadHandler: handlers.NewLeadHandler(
			ucs.submitLead, ucs.listLeads, ucs.getLead, ucs.leadSummary,
			ucs.toggleImportant, ucs.changeStatus, ucs.updateNotes, ucs.deleteLead, log,
		),
		notificationHandler: handlers.NewNotificationHandler(
			ucs.listNotifications, ucs.unreadCount, ucs.markAllRead, ucs.markRead, ucs.deleteNotification, log,
		),

		ticketHandler: ticketHandlers.NewTicketHandler(ticketHandlers.UseCases{
			Create:            ucs.createTicket,
			List:              ucs.listTickets,
			Stats:             ucs.ticketStats,
			Get:               ucs.getTicket,
			AddMessage:        ucs.addMessage,
			Assign:            ucs.assignTicket,
			Update:            ucs.updateTicket,
			Close:             ucs.closeTicket,
			Delete:            ucs.deleteTicket,
			ImprovementStatus: ucs.improvementStatus,
			UploadAttachment:  ucs.uploadAttachment,
		}, log),
		roomHandler: ticketHandlers.NewRoomHandler(c.ticketHub, ucs.canAccessTicket, c.cfg.Server.AllowedOrigins, log),

		serviceHandler: handlers.NewServiceHandler(ucs.listServices, ucs.createService, ucs.updateService, ucs.deleteService, log),
		storageHandler: handlers.NewStorageHandler(ucs.scanStorage, ucs.configureStorage, ucs.storageStatus, ucs.storageOverview, log),

		blogHandler:        contentHandlers.NewBlogHandler(ucs.contentService, log),
		projectHandler:     contentHandlers.NewProjectHandler(ucs.contentService, log),
		maintenanceHandler: contentHandlers.NewMaintenanceHandler(ucs.contentService, log),
		faqHandler:         contentHandlers.NewFaqHandler(ucs.contentService, log),
		requirementHandler: contentHandlers.NewRequirementHandler(ucs.contentService, log),

		emailHandler: handlers.NewEmailHandler(ucs.emailAdmin, log),
	}
}
