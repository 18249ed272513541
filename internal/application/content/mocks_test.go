package content

import (
	"context"
	"errors"
	"mime/multipart"
	"sync"

	"github.com/cerberus-dev/cerberus/internal/domain/content"
	"github.com/cerberus-dev/cerberus/internal/domain/notification"
	"github.com/cerberus-dev/cerberus/internal/domain/user"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/email"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/storage"
	"github.com/cerberus-dev/cerberus/internal/shared/sideeffect"
)

// Each fake embeds its interface; methods a test does not expect panic.

type fakeBlogRepo struct {
	content.BlogRepository
	posts    []*content.BlogPost
	comments []*content.BlogComment
}

func (f *fakeBlogRepo) GetPublishedBySlug(_ context.Context, slug string) (*content.BlogPost, error) {
	for _, p := range f.posts {
		if p.Slug == slug && p.IsPublished {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeBlogRepo) CreateComment(_ context.Context, c *content.BlogComment) error {
	c.ID = uint(len(f.comments) + 1)
	f.comments = append(f.comments, c)
	return nil
}

type fakeProjectRepo struct {
	content.ProjectRepository
	projects     map[uint]*content.Project
	replaced     map[uint][]content.ProjectTechnology
	addImageErr  error
	deletedURLs  []string
	replaceCalls int
}

func (f *fakeProjectRepo) GetByID(_ context.Context, id uint) (*content.Project, error) {
	return f.projects[id], nil
}

func (f *fakeProjectRepo) Create(_ context.Context, p *content.Project) error {
	if f.projects == nil {
		f.projects = make(map[uint]*content.Project)
	}
	p.ID = uint(len(f.projects) + 1)
	f.projects[p.ID] = p
	return nil
}

func (f *fakeProjectRepo) ReplaceTechnologies(_ context.Context, id uint, techs []content.ProjectTechnology) error {
	if f.replaced == nil {
		f.replaced = make(map[uint][]content.ProjectTechnology)
	}
	f.replaceCalls++
	f.replaced[id] = techs
	return nil
}

func (f *fakeProjectRepo) AddImage(_ context.Context, img *content.ProjectImage) error {
	if f.addImageErr != nil {
		return f.addImageErr
	}
	img.ID = 99
	return nil
}

func (f *fakeProjectRepo) Delete(_ context.Context, id uint) ([]string, error) {
	delete(f.projects, id)
	return f.deletedURLs, nil
}

type fakeMaintenanceRepo struct {
	content.MaintenanceRepository
	created []*content.MaintenanceNotice
}

func (f *fakeMaintenanceRepo) Create(_ context.Context, n *content.MaintenanceNotice) error {
	n.ID = uint(len(f.created) + 1)
	f.created = append(f.created, n)
	return nil
}

type fakeFaqRepo struct {
	content.FaqRepository
	items []*content.FaqItem
}

func (f *fakeFaqRepo) List(_ context.Context, category string, publishedOnly bool) ([]*content.FaqItem, error) {
	var out []*content.FaqItem
	for _, it := range f.items {
		if (category == "" || it.Category == category) && (!publishedOnly || it.IsPublished) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeFaqRepo) Create(_ context.Context, it *content.FaqItem) error {
	it.ID = uint(len(f.items) + 1)
	f.items = append(f.items, it)
	return nil
}

type fakeRequirementRepo struct {
	content.RequirementRepository
	items   map[uint]*content.ProjectRequirement
	updates int
}

func (f *fakeRequirementRepo) GetByID(_ context.Context, id uint) (*content.ProjectRequirement, error) {
	return f.items[id], nil
}

func (f *fakeRequirementRepo) Update(_ context.Context, r *content.ProjectRequirement) error {
	f.updates++
	f.items[r.ID] = r
	return nil
}

type fakeUserRepo struct {
	user.Repository
	users  []*user.User
	exists bool
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	if err := u.SetID(uint(len(f.users) + 100)); err != nil {
		return err
	}
	f.users = append(f.users, u)
	return nil
}

func (f *fakeUserRepo) ExistsByUsernameOrEmail(context.Context, string, string) (bool, error) {
	return f.exists, nil
}

func (f *fakeUserRepo) List(_ context.Context, filter user.ListFilter) ([]*user.User, error) {
	var out []*user.User
	for _, u := range f.users {
		if filter.Role != nil && u.Role() != *filter.Role {
			continue
		}
		if filter.WithEmail && u.Email() == "" {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

type fakeNotificationRepo struct {
	notification.Repository
	created []*notification.Notification
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *notification.Notification) error {
	f.created = append(f.created, n)
	return nil
}

type fakeUploads struct {
	saved   []string
	removed []string
}

func (f *fakeUploads) Save(category string, fh *multipart.FileHeader, _ []string) (*storage.StoredFile, error) {
	url := "/uploads/" + category + "/" + fh.Filename
	f.saved = append(f.saved, url)
	return &storage.StoredFile{FileName: fh.Filename, URL: url, Size: fh.Size}, nil
}

func (f *fakeUploads) Remove(url string) error {
	f.removed = append(f.removed, url)
	return nil
}

type fakeBulk struct {
	code       string
	recipients []email.Recipient
}

func (f *fakeBulk) SendBulk(_ context.Context, code string, recipients []email.Recipient, _ map[string]any) email.BulkResult {
	f.code = code
	f.recipients = recipients
	return email.BulkResult{Sent: len(recipients)}
}

type sentEmail struct {
	Code string
	To   string
	Vars map[string]any
}

type fakeEmails struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (f *fakeEmails) Send(_ context.Context, code, to string, vars map[string]any) sideeffect.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentEmail{Code: code, To: to, Vars: vars})
	return sideeffect.Success("email:" + code)
}

func (f *fakeEmails) SendToAdmin(ctx context.Context, code string, vars map[string]any) sideeffect.Result {
	return f.Send(ctx, code, "admin@example.com", vars)
}

func (f *fakeEmails) SendAdmin(context.Context, string, string, string, string) sideeffect.Result {
	return sideeffect.Failure("email:admin", errors.New("not expected"))
}

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hash:" + p, nil }
func (plainHasher) Verify(string, string) error   { return nil }
