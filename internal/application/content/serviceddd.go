// Package content serves the marketing site and knowledge base: blog,
// projects, technologies, maintenance notices, FAQ and project
// requirements.
package content

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/cerberus-dev/cerberus/internal/application/common"
	"github.com/cerberus-dev/cerberus/internal/domain/content"
	"github.com/cerberus-dev/cerberus/internal/domain/notification"
	"github.com/cerberus-dev/cerberus/internal/domain/user"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/email"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/storage"
	"github.com/cerberus-dev/cerberus/internal/shared/db"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/services/markdown"
	"github.com/cerberus-dev/cerberus/internal/shared/sideeffect"
)

const (
	DefaultPostLimit = 20
	MaxPostLimit     = 100
)

// UploadStore saves and removes public uploads.
type UploadStore interface {
	Save(category string, fh *multipart.FileHeader, allowed []string) (*storage.StoredFile, error)
	Remove(url string) error
}

// BulkMailer sends one template to many recipients.
type BulkMailer interface {
	SendBulk(ctx context.Context, code string, recipients []email.Recipient, vars map[string]any) email.BulkResult
}

// Catalog exposes the fixed option lists.
type Catalog interface {
	RequirementOptions() content.RequirementOptions
	FaqCategories() []content.FaqCategory
	IsFaqCategory(value string) bool
}

// Deps wires ServiceDDD.
type Deps struct {
	Blog          content.BlogRepository
	Projects      content.ProjectRepository
	Technologies  content.TechnologyRepository
	Maintenance   content.MaintenanceRepository
	Faq           content.FaqRepository
	Requirements  content.RequirementRepository
	Users         user.Repository
	Notifications notification.Repository
	Hasher        user.PasswordHasher
	Emails        common.EmailSender
	Bulk          BulkMailer
	Uploads       UploadStore
	Markdown      markdown.Renderer
	Catalog       Catalog
	Effects       sideeffect.Runner
	TxManager     db.TxRunner
	Links         common.Links
	Logger        logger.Interface
}

// ServiceDDD aggregates the content operations.
type ServiceDDD struct {
	blog          content.BlogRepository
	projects      content.ProjectRepository
	technologies  content.TechnologyRepository
	maintenance   content.MaintenanceRepository
	faq           content.FaqRepository
	requirements  content.RequirementRepository
	users         user.Repository
	notifications notification.Repository
	hasher        user.PasswordHasher
	emails        common.EmailSender
	bulk          BulkMailer
	uploads       UploadStore
	markdown      markdown.Renderer
	catalog       Catalog
	effects       sideeffect.Runner
	txManager     db.TxRunner
	links         common.Links
	logger        logger.Interface
	now           func() time.Time
	tempPassword  func() (string, error)
}

func NewServiceDDD(d Deps) *ServiceDDD {
	return &ServiceDDD{
		blog:          d.Blog,
		projects:      d.Projects,
		technologies:  d.Technologies,
		maintenance:   d.Maintenance,
		faq:           d.Faq,
		requirements:  d.Requirements,
		users:         d.Users,
		notifications: d.Notifications,
		hasher:        d.Hasher,
		emails:        d.Emails,
		bulk:          d.Bulk,
		uploads:       d.Uploads,
		markdown:      d.Markdown,
		catalog:       d.Catalog,
		effects:       d.Effects,
		txManager:     d.TxManager,
		links:         d.Links,
		logger:        d.Logger,
		now:           time.Now,
		tempPassword:  generateTemporaryPassword,
	}
}
