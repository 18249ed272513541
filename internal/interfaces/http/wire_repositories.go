package http

import (
	"gorm.io/gorm"

	"github.com/cerberus-dev/cerberus/internal/domain/clientservice"
	"github.com/cerberus-dev/cerberus/internal/domain/content"
	"github.com/cerberus-dev/cerberus/internal/domain/email"
	"github.com/cerberus-dev/cerberus/internal/domain/lead"
	"github.com/cerberus-dev/cerberus/internal/domain/notification"
	"github.com/cerberus-dev/cerberus/internal/domain/user"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/repository"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
// Types match the return types of the repository constructors.
type repositories struct {
	userRepo          user.Repository
	leadRepo          lead.Repository
	notificationRepo  notification.Repository
	serviceRepo       clientservice.Repository
	ticketRepo        *repository.TicketRepository
	ticketMessageRepo *repository.TicketMessageRepository
	attachmentRepo    *repository.TicketAttachmentRepository
	blogRepo          content.BlogRepository
	projectRepo       content.ProjectRepository
	technologyRepo    content.TechnologyRepository
	maintenanceRepo   content.MaintenanceRepository
	faqRepo           content.FaqRepository
	requirementRepo   content.RequirementRepository
	emailTemplateRepo email.TemplateRepository
	emailLogRepo      email.LogRepository
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		userRepo:          repository.NewUserRepository(db, log),
		leadRepo:          repository.NewLeadRepository(db),
		notificationRepo:  repository.NewNotificationRepository(db),
		serviceRepo:       repository.NewClientServiceRepository(db),
		ticketRepo:        repository.NewTicketRepository(db),
		ticketMessageRepo: repository.NewTicketMessageRepository(db),
		attachmentRepo:    repository.NewTicketAttachmentRepository(db),
		blogRepo:          repository.NewBlogRepository(db),
		projectRepo:       repository.NewProjectRepository(db),
		technologyRepo:    repository.NewTechnologyRepository(db),
		maintenanceRepo:   repository.NewMaintenanceRepository(db),
		faqRepo:           repository.NewFaqRepository(db),
		requirementRepo:   repository.NewRequirementRepository(db),
		emailTemplateRepo: repository.NewEmailTemplateRepository(db),
		emailLogRepo:      repository.NewEmailLogRepository(db),
	}
}
