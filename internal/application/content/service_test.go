package content

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerberus-dev/cerberus/internal/application/common"
	"github.com/cerberus-dev/cerberus/internal/application/content/dto"
	"github.com/cerberus-dev/cerberus/internal/domain/content"
	domainEmail "github.com/cerberus-dev/cerberus/internal/domain/email"
	"github.com/cerberus-dev/cerberus/internal/domain/notification"
	"github.com/cerberus-dev/cerberus/internal/domain/user"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/catalog"
	"github.com/cerberus-dev/cerberus/internal/shared/db"
	apperrors "github.com/cerberus-dev/cerberus/internal/shared/errors"
	"github.com/cerberus-dev/cerberus/internal/shared/i18n"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/services/markdown"
	"github.com/cerberus-dev/cerberus/internal/shared/sideeffect"
)

type fixture struct {
	svc          *ServiceDDD
	runner       *sideeffect.SyncRunner
	blog         *fakeBlogRepo
	projects     *fakeProjectRepo
	maintenance  *fakeMaintenanceRepo
	faq          *fakeFaqRepo
	requirements *fakeRequirementRepo
	users        *fakeUserRepo
	notes        *fakeNotificationRepo
	uploads      *fakeUploads
	bulk         *fakeBulk
	emails       *fakeEmails
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	md, err := markdown.NewRenderer(16)
	require.NoError(t, err)
	cat, err := catalog.Load()
	require.NoError(t, err)

	f := &fixture{
		runner:       sideeffect.NewSyncRunner(logger.NewNopLogger()),
		blog:         &fakeBlogRepo{},
		projects:     &fakeProjectRepo{},
		maintenance:  &fakeMaintenanceRepo{},
		faq:          &fakeFaqRepo{},
		requirements: &fakeRequirementRepo{items: map[uint]*content.ProjectRequirement{}},
		users:        &fakeUserRepo{},
		notes:        &fakeNotificationRepo{},
		uploads:      &fakeUploads{},
		bulk:         &fakeBulk{},
		emails:       &fakeEmails{},
	}
	f.svc = NewServiceDDD(Deps{
		Blog:          f.blog,
		Projects:      f.projects,
		Maintenance:   f.maintenance,
		Faq:           f.faq,
		Requirements:  f.requirements,
		Users:         f.users,
		Notifications: f.notes,
		Hasher:        plainHasher{},
		Emails:        f.emails,
		Bulk:          f.bulk,
		Uploads:       f.uploads,
		Markdown:      md,
		Catalog:       cat,
		Effects:       f.runner,
		TxManager:     db.NoopTxRunner{},
		Links:         common.Links{LoginURL: "https://example.test/login"},
		Logger:        logger.NewNopLogger(),
	})
	f.svc.tempPassword = func() (string, error) { return "Temp-123456", nil }
	return f
}

func appMessage(t *testing.T, err error) string {
	t.Helper()
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr, "expected AppError, got %v", err)
	return appErr.Message
}

func TestGetPublishedPost_LocalisesAndRenders(t *testing.T) {
	f := newFixture(t)
	f.blog.posts = []*content.BlogPost{{
		ID: 1, Slug: "hola", Title: "Hola", TitleEn: "Hello",
		Content: "**negrita**", ContentEn: "", IsPublished: true,
	}}

	post, err := f.svc.GetPublishedPost(context.Background(), "hola", i18n.EN)
	require.NoError(t, err)
	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, "**negrita**", post.Content, "falls back to spanish body")
	assert.Contains(t, post.ContentHTML, "<strong>negrita</strong>")
	assert.Nil(t, post.Translations)

	_, err = f.svc.GetPublishedPost(context.Background(), "missing", i18n.ES)
	assert.Equal(t, "not_found", appMessage(t, err))
}

func TestSubmitComment(t *testing.T) {
	f := newFixture(t)
	f.blog.posts = []*content.BlogPost{{ID: 4, Slug: "post", Title: "Post", IsPublished: true}}

	c, err := f.svc.SubmitComment(context.Background(), "post", dto.CommentRequest{AuthorName: " Ana ", Comment: "Buen post"})
	require.NoError(t, err)
	assert.False(t, c.IsApproved)
	assert.Equal(t, "Ana", c.AuthorName)

	require.Len(t, f.notes.created, 1)
	assert.Equal(t, notification.TypeComment, f.notes.created[0].Type())
	assert.True(t, f.notes.created[0].IsBroadcast())
	assert.Equal(t, []string{"blog.comment_notification"}, f.runner.Names())

	_, err = f.svc.SubmitComment(context.Background(), "post", dto.CommentRequest{AuthorName: "Ana"})
	assert.Equal(t, "missing_fields", appMessage(t, err))
}

func TestCreateProject_ReplacesTechnologies(t *testing.T) {
	f := newFixture(t)

	p, err := f.svc.CreateProject(context.Background(), dto.ProjectRequest{
		Title:        "Tienda Acme",
		Technologies: []dto.TechnologyRef{{Name: "Go"}, {Name: "Go"}, {Name: " "}, {Name: "Vue"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "tienda-acme", p.Slug)
	assert.Equal(t, 1, f.projects.replaceCalls)
	assert.Equal(t, []content.ProjectTechnology{{TechName: "Go"}, {TechName: "Vue"}}, f.projects.replaced[p.ID])
}

func TestUploadProjectImage_RemovesFileWhenInsertFails(t *testing.T) {
	f := newFixture(t)
	f.projects.projects = map[uint]*content.Project{1: {ID: 1, Title: "P"}}
	f.projects.addImageErr = errors.New("db down")

	_, err := f.svc.UploadProjectImage(context.Background(), 1, &multipart.FileHeader{Filename: "a.png", Size: 10}, "")
	require.Error(t, err)
	assert.Equal(t, []string{"/uploads/projects/a.png"}, f.uploads.removed)

	f.projects.addImageErr = nil
	img, err := f.svc.UploadProjectImage(context.Background(), 1, &multipart.FileHeader{Filename: "b.png", Size: 10}, " portada ")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/projects/b.png", img.URL)
	assert.Equal(t, "portada", img.Caption)
}

func TestDeleteProject_RemovesImages(t *testing.T) {
	f := newFixture(t)
	f.projects.projects = map[uint]*content.Project{1: {ID: 1, Title: "P"}}
	f.projects.deletedURLs = []string{"/uploads/projects/x.png"}

	require.NoError(t, f.svc.DeleteProject(context.Background(), 1))
	assert.Equal(t, []string{"/uploads/projects/x.png"}, f.uploads.removed)
}

func TestCreateMaintenance_MailsClients(t *testing.T) {
	f := newFixture(t)
	client, err := user.ReconstructUser(user.UserData{ID: 1, Username: "c", Email: "c@example.com", Role: "client", IsActive: true})
	require.NoError(t, err)
	staff, err := user.ReconstructUser(user.UserData{ID: 2, Username: "s", Email: "s@example.com", Role: "support", IsActive: true})
	require.NoError(t, err)
	f.users.users = []*user.User{client, staff}

	start := time.Now().Add(time.Hour)
	out, err := f.svc.CreateMaintenance(context.Background(), 7, dto.MaintenanceRequest{
		Title: "Ventana", Message: "Actualizamos servidores", StartAt: &start, SendEmail: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.EmailRecipients)
	assert.Equal(t, uint(7), out.Notice.CreatedBy)
	assert.Equal(t, domainEmail.CodeMaintenanceNotice, f.bulk.code)
	require.Len(t, f.bulk.recipients, 1)
	assert.Equal(t, "c@example.com", f.bulk.recipients[0].Email)

	_, err = f.svc.CreateMaintenance(context.Background(), 7, dto.MaintenanceRequest{Title: "x"})
	assert.Equal(t, "invalid_notice", appMessage(t, err))
}

func TestFaq(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateFaq(context.Background(), dto.FaqRequest{Question: "¿?", Answer: "a", Category: "nope"})
	assert.Equal(t, "bad_category", appMessage(t, err))

	created, err := f.svc.CreateFaq(context.Background(), dto.FaqRequest{Question: "¿Cómo?", Answer: "Con *markdown*"})
	require.NoError(t, err)
	assert.Equal(t, content.DefaultFaqCategory, created.Category)

	items, err := f.svc.ListPublishedFaq(context.Background(), "general", i18n.ES)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Contains(t, items[0].AnswerHTML, "<em>markdown</em>")
}

func TestConvertRequirement(t *testing.T) {
	f := newFixture(t)
	f.requirements.items[3] = &content.ProjectRequirement{
		ID: 3, ContactName: "Luis", ContactEmail: "Luis@Example.com", CompanyName: "Acme",
		BusinessType: "Otro", ProjectType: "Landing Page", Status: content.RequirementApproved,
	}

	out, err := f.svc.ConvertRequirement(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "converted", out.Requirement.Status)
	assert.Equal(t, "luis@example.com", out.Username)
	assert.Equal(t, "Temp-123456", out.TemporaryPassword)
	require.Len(t, f.users.users, 1)
	assert.True(t, f.users.users[0].MustChangePassword())
	assert.Equal(t, "client", f.users.users[0].Role().String())
	require.NotNil(t, out.Requirement.ConvertedToClientID)
	assert.Equal(t, out.ClientID, *out.Requirement.ConvertedToClientID)

	require.Len(t, f.emails.sent, 1)
	assert.Equal(t, domainEmail.CodeUserCreated, f.emails.sent[0].Code)

	_, err = f.svc.ConvertRequirement(context.Background(), 3)
	assert.Equal(t, "already_converted", appMessage(t, err))
}

func TestConvertRequirement_ExistingUser(t *testing.T) {
	f := newFixture(t)
	f.users.exists = true
	f.requirements.items[1] = &content.ProjectRequirement{ID: 1, ContactName: "A", ContactEmail: "a@bee.com", BusinessType: "x", ProjectType: "y", Status: content.RequirementDraft}

	_, err := f.svc.ConvertRequirement(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.GetAppError(err).Code)
	assert.Equal(t, "user_exists", appMessage(t, err))
	assert.Zero(t, f.requirements.updates)
}
