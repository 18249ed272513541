package http

import (
	serviceUsecases "github.com/cerberus-dev/cerberus/internal/application/clientservice/usecases"
	"github.com/cerberus-dev/cerberus/internal/application/common"
	contentApp "github.com/cerberus-dev/cerberus/internal/application/content"
	emailApp "github.com/cerberus-dev/cerberus/internal/application/email"
	leadUsecases "github.com/cerberus-dev/cerberus/internal/application/lead/usecases"
	notificationUsecases "github.com/cerberus-dev/cerberus/internal/application/notification/usecases"
	ticketUsecases "github.com/cerberus-dev/cerberus/internal/application/ticket/usecases"
	userUsecases "github.com/cerberus-dev/cerberus/internal/application/user/usecases"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/cache"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/catalog"
	sharedDB "github.com/cerberus-dev/cerberus/internal/shared/db"
	"github.com/cerberus-dev/cerberus/internal/shared/services/markdown"
)

const markdownCacheSize = 256

// allUseCases holds every use case and application service.
type allUseCases struct {
	// User & Auth
	login          *userUsecases.LoginUseCase
	logout         *userUsecases.LogoutUseCase
	changePassword *userUsecases.ChangePasswordUseCase
	requestReset   *userUsecases.RequestPasswordResetUseCase
	resetPassword  *userUsecases.ResetPasswordUseCase
	listUsers      *userUsecases.ListUsersUseCase
	getUser        *userUsecases.GetUserUseCase
	listSupport    *userUsecases.ListDirectoryUseCase
	listClients    *userUsecases.ListDirectoryUseCase
	createUser     *userUsecases.CreateUserUseCase
	updateUser     *userUsecases.UpdateUserUseCase
	deleteUser     *userUsecases.DeleteUserUseCase
	recoverUser    *userUsecases.RecoverUserUseCase

	// Leads
	submitLead      *leadUsecases.SubmitLeadUseCase
	listLeads       *leadUsecases.ListLeadsUseCase
	getLead         *leadUsecases.GetLeadUseCase
	leadSummary     *leadUsecases.GetLeadSummaryUseCase
	toggleImportant *leadUsecases.ToggleLeadImportantUseCase
	changeStatus    *leadUsecases.ChangeLeadStatusUseCase
	updateNotes     *leadUsecases.UpdateLeadNotesUseCase
	deleteLead      *leadUsecases.DeleteLeadUseCase

	// Tickets
	createTicket      *ticketUsecases.CreateTicketUseCase
	listTickets       *ticketUsecases.ListTicketsUseCase
	ticketStats       *ticketUsecases.GetTicketStatsUseCase
	getTicket         *ticketUsecases.GetTicketUseCase
	canAccessTicket   *ticketUsecases.CanAccessTicketUseCase
	addMessage        *ticketUsecases.AddMessageUseCase
	assignTicket      *ticketUsecases.AssignTicketUseCase
	updateTicket      *ticketUsecases.UpdateTicketUseCase
	closeTicket       *ticketUsecases.CloseTicketUseCase
	deleteTicket      *ticketUsecases.DeleteTicketUseCase
	improvementStatus *ticketUsecases.ChangeImprovementStatusUseCase
	uploadAttachment  *ticketUsecases.UploadAttachmentUseCase

	// Notifications
	listNotifications  *notificationUsecases.ListNotificationsUseCase
	unreadCount        *notificationUsecases.GetUnreadCountUseCase
	markAllRead        *notificationUsecases.MarkAllReadUseCase
	markRead           *notificationUsecases.MarkReadUseCase
	deleteNotification *notificationUsecases.DeleteNotificationUseCase

	// Client services & storage
	listServices     *serviceUsecases.ListServicesUseCase
	createService    *serviceUsecases.CreateServiceUseCase
	updateService    *serviceUsecases.UpdateServiceUseCase
	deleteService    *serviceUsecases.DeleteServiceUseCase
	configureStorage *serviceUsecases.ConfigureStorageUseCase
	storageStatus    *serviceUsecases.GetStorageStatusUseCase
	storageOverview  *serviceUsecases.GetStorageOverviewUseCase
	scanStorage      *serviceUsecases.ScanStorageUseCase

	// Application services
	contentService *contentApp.ServiceDDD
	emailAdmin     *emailApp.ServiceDDD
}

// ============================================================
// Section 4: Use cases
// ============================================================

func (c *Container) initUseCases() error {
	cfg := c.cfg
	log := c.log
	repos := c.repos
	tx := sharedDB.NewTransactionManager(c.db)
	policy := c.enforcer
	links := common.Links{
		BaseURL:   cfg.Server.BaseURL,
		PortalURL: cfg.App.PortalURL,
		LoginURL:  cfg.App.LoginURL,
		AdminPath: cfg.Server.GetAdminPath(),
	}
	emails := c.emailService
	effects := c.effects

	md, err := markdown.NewRenderer(markdownCacheSize)
	if err != nil {
		return err
	}
	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	c.ucs = &allUseCases{
		login:          userUsecases.NewLoginUseCase(repos.userRepo, c.hasher, c.sessionStore, log),
		logout:         userUsecases.NewLogoutUseCase(c.sessionStore, log),
		changePassword: userUsecases.NewChangePasswordUseCase(repos.userRepo, c.hasher, c.sessionStore, log),
		requestReset:   userUsecases.NewRequestPasswordResetUseCase(repos.userRepo, c.resetTokens, emails, effects, links, log),
		resetPassword:  userUsecases.NewResetPasswordUseCase(repos.userRepo, c.hasher, c.resetTokens, log),
		listUsers:      userUsecases.NewListUsersUseCase(repos.userRepo, log),
		getUser:        userUsecases.NewGetUserUseCase(repos.userRepo, log),
		listSupport:    userUsecases.NewListSupportStaffUseCase(repos.userRepo, log),
		listClients:    userUsecases.NewListClientsUseCase(repos.userRepo, log),
		createUser:     userUsecases.NewCreateUserUseCase(repos.userRepo, c.hasher, emails, effects, links, log),
		updateUser:     userUsecases.NewUpdateUserUseCase(repos.userRepo, c.hasher, log),
		deleteUser:     userUsecases.NewDeleteUserUseCase(repos.userRepo, log),
		recoverUser:    userUsecases.NewRecoverUserUseCase(repos.userRepo, c.hasher, emails, effects, links, log),

		submitLead:      leadUsecases.NewSubmitLeadUseCase(repos.leadRepo, repos.notificationRepo, emails, effects, links, log),
		listLeads:       leadUsecases.NewListLeadsUseCase(repos.leadRepo, log),
		getLead:         leadUsecases.NewGetLeadUseCase(repos.leadRepo),
		leadSummary:     leadUsecases.NewGetLeadSummaryUseCase(repos.leadRepo),
		toggleImportant: leadUsecases.NewToggleLeadImportantUseCase(repos.leadRepo, log),
		changeStatus:    leadUsecases.NewChangeLeadStatusUseCase(repos.leadRepo, log),
		updateNotes:     leadUsecases.NewUpdateLeadNotesUseCase(repos.leadRepo),
		deleteLead:      leadUsecases.NewDeleteLeadUseCase(repos.leadRepo, repos.notificationRepo, tx, log),

		createTicket: ticketUsecases.NewCreateTicketUseCase(
			repos.ticketRepo, repos.ticketMessageRepo, repos.userRepo, repos.notificationRepo,
			emails, effects, tx, links, log,
		),
		listTickets:     ticketUsecases.NewListTicketsUseCase(repos.ticketRepo, log),
		ticketStats:     ticketUsecases.NewGetTicketStatsUseCase(repos.ticketRepo),
		getTicket:       ticketUsecases.NewGetTicketUseCase(repos.ticketRepo, repos.ticketMessageRepo, repos.attachmentRepo, policy),
		canAccessTicket: ticketUsecases.NewCanAccessTicketUseCase(repos.ticketRepo),
		addMessage: ticketUsecases.NewAddMessageUseCase(
			repos.ticketRepo, repos.ticketMessageRepo, repos.userRepo, repos.notificationRepo,
			c.ticketHub, emails, effects, tx, policy, links, log,
		),
		assignTicket:      ticketUsecases.NewAssignTicketUseCase(repos.ticketRepo, policy, log),
		updateTicket:      ticketUsecases.NewUpdateTicketUseCase(repos.ticketRepo, repos.userRepo, c.ticketHub, effects, log),
		closeTicket:       ticketUsecases.NewCloseTicketUseCase(repos.ticketRepo, repos.userRepo, c.ticketHub, emails, effects, policy, links, log),
		deleteTicket:      ticketUsecases.NewDeleteTicketUseCase(repos.ticketRepo, c.uploads, tx, log),
		improvementStatus: ticketUsecases.NewChangeImprovementStatusUseCase(repos.ticketRepo, repos.userRepo, emails, effects, links, log),
		uploadAttachment:  ticketUsecases.NewUploadAttachmentUseCase(repos.ticketRepo, repos.attachmentRepo, c.uploads, log),

		listNotifications:  notificationUsecases.NewListNotificationsUseCase(repos.notificationRepo),
		unreadCount:        notificationUsecases.NewGetUnreadCountUseCase(repos.notificationRepo),
		markAllRead:        notificationUsecases.NewMarkAllReadUseCase(repos.notificationRepo, log),
		markRead:           notificationUsecases.NewMarkReadUseCase(repos.notificationRepo),
		deleteNotification: notificationUsecases.NewDeleteNotificationUseCase(repos.notificationRepo, log),

		listServices:     serviceUsecases.NewListServicesUseCase(repos.serviceRepo),
		createService:    serviceUsecases.NewCreateServiceUseCase(repos.serviceRepo, repos.userRepo, log),
		updateService:    serviceUsecases.NewUpdateServiceUseCase(repos.serviceRepo, log),
		deleteService:    serviceUsecases.NewDeleteServiceUseCase(repos.serviceRepo, log),
		configureStorage: serviceUsecases.NewConfigureStorageUseCase(repos.serviceRepo, log),
		storageStatus:    serviceUsecases.NewGetStorageStatusUseCase(repos.serviceRepo),
		storageOverview:  serviceUsecases.NewGetStorageOverviewUseCase(repos.serviceRepo),
		scanStorage: serviceUsecases.NewScanStorageUseCase(
			repos.serviceRepo, repos.userRepo, repos.notificationRepo, c.scanner,
			emails, effects, cfg.Storage.AlertCooldown(), cfg.App.PortalURL, log,
		).WithAlertLock(cache.NewStorageAlertLock(c.redis)),

		contentService: contentApp.NewServiceDDD(contentApp.Deps{
			Blog:          repos.blogRepo,
			Projects:      repos.projectRepo,
			Technologies:  repos.technologyRepo,
			Maintenance:   repos.maintenanceRepo,
			Faq:           repos.faqRepo,
			Requirements:  repos.requirementRepo,
			Users:         repos.userRepo,
			Notifications: repos.notificationRepo,
			Hasher:        c.hasher,
			Emails:        emails,
			Bulk:          emails,
			Uploads:       c.uploads,
			Markdown:      md,
			Catalog:       cat,
			Effects:       effects,
			TxManager:     tx,
			Links:         links,
			Logger:        log,
		}),
		emailAdmin: emailApp.NewServiceDDD(repos.emailTemplateRepo, repos.emailLogRepo, emails, log),
	}

	return nil
}
