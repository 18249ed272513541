package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerberus-dev/cerberus/internal/domain/content"
	"github.com/cerberus-dev/cerberus/internal/domain/email"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
)

func TestBlogRepository(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewBlogRepository(gdb)
	ctx := context.Background()

	cat := &content.BlogCategory{Name: "Diseño", Slug: "diseno"}
	require.NoError(t, repo.CreateCategory(ctx, cat))

	published := &content.BlogPost{Title: "Publicado", Slug: "publicado", Content: "x", CategoryID: &cat.ID, IsPublished: true}
	draft := &content.BlogPost{Title: "Borrador", Slug: "borrador", Content: "x", CategoryID: &cat.ID}
	require.NoError(t, repo.CreatePost(ctx, published))
	require.NoError(t, repo.CreatePost(ctx, draft))

	posts, err := repo.ListPublished(ctx, "diseno", 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Diseño", posts[0].CategoryName)

	posts, err = repo.ListPublished(ctx, "otra", 10)
	require.NoError(t, err)
	assert.Empty(t, posts)

	cats, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, int64(1), cats[0].PostCount)

	missing, err := repo.GetPublishedBySlug(ctx, "borrador")
	require.NoError(t, err)
	assert.Nil(t, missing)

	c, err := content.NewBlogComment(published.ID, "Ana", "Muy bueno")
	require.NoError(t, err)
	require.NoError(t, repo.CreateComment(ctx, c))

	approved, err := repo.ListApprovedComments(ctx, published.ID)
	require.NoError(t, err)
	assert.Empty(t, approved)

	require.NoError(t, repo.ApproveComment(ctx, c.ID))
	approved, err = repo.ListApprovedComments(ctx, published.ID)
	require.NoError(t, err)
	assert.Len(t, approved, 1)

	require.NoError(t, repo.DeletePost(ctx, published.ID))
	assert.ErrorIs(t, repo.DeleteComment(ctx, c.ID), content.ErrNotFound)
}

func TestProjectRepository_ReplaceTechnologies(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewProjectRepository(gdb)
	ctx := context.Background()

	p := &content.Project{Title: "Tienda", Slug: "tienda", IsPublished: true}
	require.NoError(t, repo.Create(ctx, p))
	require.NoError(t, repo.ReplaceTechnologies(ctx, p.ID, []content.ProjectTechnology{{TechName: "Go"}, {TechName: "MySQL"}}))
	require.NoError(t, repo.ReplaceTechnologies(ctx, p.ID, []content.ProjectTechnology{{TechName: "Redis", TechIcon: "redis.svg"}}))
	require.NoError(t, repo.AddImage(ctx, &content.ProjectImage{ProjectID: p.ID, URL: "/uploads/projects/a.png"}))

	got, err := repo.GetPublishedBySlug(ctx, "tienda")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []content.ProjectTechnology{{TechName: "Redis", TechIcon: "redis.svg"}}, got.Technologies)
	require.Len(t, got.Images, 1)

	urls, err := repo.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/projects/a.png"}, urls)
}

func TestMaintenanceRepository_ListActive(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewMaintenanceRepository(gdb)
	ctx := context.Background()
	admin := createUser(t, gdb, "admin", authorization.RoleAdmin)
	now := time.Now().UTC()
	past := now.Add(-time.Hour)

	for _, n := range []*content.MaintenanceNotice{
		{Title: "abierto", Message: "m", StartAt: now.Add(-2 * time.Hour), IsActive: true, CreatedBy: admin.ID()},
		{Title: "terminado", Message: "m", StartAt: now.Add(-3 * time.Hour), EndAt: &past, IsActive: true, CreatedBy: admin.ID()},
		{Title: "futuro", Message: "m", StartAt: now.Add(time.Hour), IsActive: true, CreatedBy: admin.ID()},
		{Title: "inactivo", Message: "m", StartAt: now.Add(-time.Hour), IsActive: false, CreatedBy: admin.ID()},
	} {
		require.NoError(t, repo.Create(ctx, n))
	}

	active, err := repo.ListActive(ctx, now)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "abierto", active[0].Title)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Name admin", all[0].CreatorName)
}

func TestRequirementRepository_RoundTrip(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewRequirementRepository(gdb)
	ctx := context.Background()
	staff := createUser(t, gdb, "soporte", authorization.RoleSupport)

	req := &content.ProjectRequirement{
		ContactName:  "Ana",
		ContactEmail: "ana@x.mx",
		BusinessType: "Restaurante",
		ProjectType:  "Landing Page",
		Sections:     []string{"Inicio", "Contacto"},
		Technologies: []string{"WordPress"},
		CreatedBy:    staff.ID(),
	}
	require.NoError(t, req.Validate())
	require.NoError(t, repo.Create(ctx, req))

	got, err := repo.GetByID(ctx, req.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"Inicio", "Contacto"}, got.Sections)
	assert.Equal(t, "Name soporte", got.CreatorName)

	converted := content.RequirementConverted
	list, err := repo.List(ctx, &converted)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEmailTemplateRepository_Upsert(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewEmailTemplateRepository(gdb)
	ctx := context.Background()

	tpl, err := email.NewTemplate(email.CodeTicketClosed, "", "Cerrado", "<p>v1</p>", true)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, tpl))

	tpl2, err := email.NewTemplate(email.CodeTicketClosed, "", "", "<p>v2</p>", false)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, tpl2))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "<p>v2</p>", all[0].HTMLContent)
	assert.False(t, all[0].IsActive)

	none, err := repo.GetByCode(ctx, email.CodeUserCreated)
	require.NoError(t, err)
	assert.Nil(t, none)

	logs := NewEmailLogRepository(gdb)
	require.NoError(t, logs.Create(ctx, email.NewSentLog(email.CodeTicketClosed, "a@x.mx", "Cerrado", map[string]any{"ticketId": 3}, time.Now())))
	recent, err := logs.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, email.LogSent, recent[0].Status)
	assert.EqualValues(t, 3, recent[0].Payload["ticketId"])
}
