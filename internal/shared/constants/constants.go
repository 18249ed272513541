package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Context keys set by the session middleware
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeySession   = "session"
	ContextKeySessionID = "session_id"
	ContextKeyRequestID = "request_id"

	HeaderInternalAPIKey = "X-Internal-Api-Key"
	HeaderRequestID      = "X-Request-ID"

	// Database table names
	TableUsers               = "admin_users"
	TableLeads               = "leads"
	TableTickets             = "tickets"
	TableTicketMessages      = "ticket_messages"
	TableTicketAttachments   = "ticket_attachments"
	TableClientServices      = "client_services"
	TableNotifications       = "admin_notifications"
	TableBlogPosts           = "blog_posts"
	TableBlogCategories      = "blog_categories"
	TableBlogComments        = "blog_comments"
	TableProjects            = "projects"
	TableProjectTechnologies = "project_technologies"
	TableProjectImages       = "project_images"
	TableTechnologies        = "technologies"
	TableMaintenanceNotices  = "maintenance_notices"
	TableFaqItems            = "faq_items"
	TableProjectRequirements = "project_requirements"
	TableEmailTemplates      = "email_templates"
	TableEmailLogs           = "email_logs"
	TableCasbinRules         = "casbin_rule"

	// List caps
	DefaultNotificationLimit = 50
	MaxNotificationLimit     = 200
	DefaultEmailLogLimit     = 100
	MaxEmailLogLimit         = 500
)
