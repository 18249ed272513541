package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cerberus-dev/cerberus/internal/domain/notification"
	"github.com/cerberus-dev/cerberus/internal/domain/ticket"
	vo "github.com/cerberus-dev/cerberus/internal/domain/ticket/valueobjects"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/persistence/models"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
)

func newTicket(t *testing.T, repo *TicketRepository, subject string, p vo.Priority, clientID uint) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket(subject, vo.CategorySupport, p, clientID, clientID, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), tk))
	return tk
}

func subjects(views []*ticket.TicketView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.Ticket.Subject()
	}
	return out
}

func TestTicketRepository_ListOrdersByPriorityThenNewest(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()
	client := createUser(t, gdb, "cliente", authorization.RoleClient)
	admin := createUser(t, gdb, "admin", authorization.RoleAdmin)

	newTicket(t, repo, "low-1", vo.PriorityLow, client.ID())
	newTicket(t, repo, "urgent-1", vo.PriorityUrgent, client.ID())
	newTicket(t, repo, "medium-1", vo.PriorityMedium, client.ID())
	newTicket(t, repo, "high-1", vo.PriorityHigh, client.ID())
	newTicket(t, repo, "urgent-2", vo.PriorityUrgent, client.ID())

	views, err := repo.List(ctx, ticket.ListFilter{Scope: ticket.Scope{UserID: admin.ID(), Role: authorization.RoleAdmin, Now: time.Now()}})
	require.NoError(t, err)
	assert.Equal(t, []string{"urgent-2", "urgent-1", "high-1", "medium-1", "low-1"}, subjects(views))
	assert.Equal(t, "Name cliente", views[0].ClientName)
	assert.Equal(t, "cliente@example.mx", views[0].ClientEmail)
}

func TestTicketRepository_ListVisibility(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()
	now := time.Now().UTC()

	client := createUser(t, gdb, "cliente", authorization.RoleClient)
	other := createUser(t, gdb, "otro", authorization.RoleClient)
	support := createUser(t, gdb, "soporte", authorization.RoleSupport)
	colleague := createUser(t, gdb, "colega", authorization.RoleSupport)

	unassigned := newTicket(t, repo, "unassigned", vo.PriorityMedium, client.ID())
	mine := newTicket(t, repo, "mine", vo.PriorityMedium, client.ID())
	require.NoError(t, mine.Claim(support.ID()))
	require.NoError(t, repo.Update(ctx, mine))
	theirs := newTicket(t, repo, "theirs", vo.PriorityMedium, other.ID())
	require.NoError(t, theirs.Claim(colleague.ID()))
	require.NoError(t, repo.Update(ctx, theirs))

	oldClosed := newTicket(t, repo, "old-closed", vo.PriorityMedium, client.ID())
	oldClosed.Close(now.Add(-8 * 24 * time.Hour))
	require.NoError(t, repo.Update(ctx, oldClosed))
	recentClosed := newTicket(t, repo, "recent-closed", vo.PriorityMedium, client.ID())
	recentClosed.Close(now.Add(-2 * 24 * time.Hour))
	require.NoError(t, repo.Update(ctx, recentClosed))

	t.Run("support sees unassigned and own", func(t *testing.T) {
		views, err := repo.List(ctx, ticket.ListFilter{Scope: ticket.Scope{UserID: support.ID(), Role: authorization.RoleSupport, Now: now}})
		require.NoError(t, err)
		got := subjects(views)
		assert.Contains(t, got, "unassigned")
		assert.Contains(t, got, "mine")
		assert.NotContains(t, got, "theirs")
		for _, v := range views {
			if v.Ticket.ID() == mine.ID() {
				assert.Equal(t, "Name soporte", v.AssignedName)
			}
		}
	})

	t.Run("client sees own minus old closed", func(t *testing.T) {
		views, err := repo.List(ctx, ticket.ListFilter{Scope: ticket.Scope{UserID: client.ID(), Role: authorization.RoleClient, Now: now}})
		require.NoError(t, err)
		got := subjects(views)
		assert.ElementsMatch(t, []string{"unassigned", "mine", "recent-closed"}, got)
	})

	t.Run("status filter", func(t *testing.T) {
		closed := vo.StatusClosed
		views, err := repo.List(ctx, ticket.ListFilter{
			Scope:  ticket.Scope{Role: authorization.RoleAdmin, Now: now},
			Status: &closed,
		})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"old-closed", "recent-closed"}, subjects(views))
	})

	t.Run("stats follow scope", func(t *testing.T) {
		stats, err := repo.Stats(ctx, ticket.Scope{Role: authorization.RoleAdmin, Now: now})
		require.NoError(t, err)
		assert.Equal(t, int64(5), stats.Total)
		assert.Equal(t, int64(2), stats.Closed)
		assert.Equal(t, int64(2), stats.InProgress)
		assert.Equal(t, int64(1), stats.New)

		stats, err = repo.Stats(ctx, ticket.Scope{UserID: client.ID(), Role: authorization.RoleClient, Now: now})
		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.Total)
	})

	_ = unassigned
}

func countRows(t *testing.T, gdb *gorm.DB, model any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gdb.Model(model).Where(where, args...).Count(&n).Error)
	return n
}

func TestTicketRepository_DeleteCascade(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	repo := NewTicketRepository(gdb)
	msgs := NewTicketMessageRepository(gdb)
	atts := NewTicketAttachmentRepository(gdb)
	notes := NewNotificationRepository(gdb)

	client := createUser(t, gdb, "cliente", authorization.RoleClient)
	tk := newTicket(t, repo, "borrar", vo.PriorityHigh, client.ID())
	keep := newTicket(t, repo, "conservar", vo.PriorityHigh, client.ID())

	for _, id := range []uint{tk.ID(), keep.ID()} {
		m, err := ticket.NewMessage(id, client.ID(), "hola", false)
		require.NoError(t, err)
		require.NoError(t, msgs.Create(ctx, m))
		require.NoError(t, atts.Create(ctx, &ticket.Attachment{
			TicketID: id, Filename: "f.png", OriginalName: "f.png", FilePath: "/uploads/tickets/f.png", FileSize: 10, UploadedBy: client.ID(),
		}))
		ref := id
		n, err := notification.NewNotification(notification.TypeTicket, nil, &ref, "Nuevo ticket", "")
		require.NoError(t, err)
		require.NoError(t, notes.Create(ctx, n))
	}

	removed, err := repo.DeleteCascade(ctx, tk.ID())
	require.NoError(t, err)
	require.Len(t, removed, 1)
	assert.Equal(t, "/uploads/tickets/f.png", removed[0].FilePath)

	assert.Zero(t, countRows(t, gdb, &models.TicketModel{}, "id = ?", tk.ID()))
	assert.Zero(t, countRows(t, gdb, &models.TicketMessageModel{}, "ticket_id = ?", tk.ID()))
	assert.Zero(t, countRows(t, gdb, &models.TicketAttachmentModel{}, "ticket_id = ?", tk.ID()))
	assert.Zero(t, countRows(t, gdb, &models.NotificationModel{}, "reference_id = ?", tk.ID()))

	assert.Equal(t, int64(1), countRows(t, gdb, &models.TicketMessageModel{}, "ticket_id = ?", keep.ID()))
	assert.Equal(t, int64(1), countRows(t, gdb, &models.NotificationModel{}, "reference_id = ?", keep.ID()))

	got, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTicketMessageRepository_ListByTicket(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	repo := NewTicketRepository(gdb)
	msgs := NewTicketMessageRepository(gdb)

	client := createUser(t, gdb, "cliente", authorization.RoleClient)
	support := createUser(t, gdb, "soporte", authorization.RoleSupport)
	tk := newTicket(t, repo, "hilo", vo.PriorityMedium, client.ID())

	for _, m := range []struct {
		author   uint
		body     string
		internal bool
	}{
		{client.ID(), "primero", false},
		{support.ID(), "nota interna", true},
		{support.ID(), "respuesta", false},
	} {
		msg, err := ticket.NewMessage(tk.ID(), m.author, m.body, m.internal)
		require.NoError(t, err)
		require.NoError(t, msgs.Create(ctx, msg))
	}

	all, err := msgs.ListByTicket(ctx, tk.ID(), true)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "primero", all[0].Message.Body())
	assert.Equal(t, "support", all[1].Role)
	assert.Equal(t, "Name soporte", all[1].DisplayName)

	public, err := msgs.ListByTicket(ctx, tk.ID(), false)
	require.NoError(t, err)
	require.Len(t, public, 2)
	assert.Equal(t, "respuesta", public[1].Message.Body())

	details, err := repo.GetDetails(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(3), details.MessageCount)
}

func TestTicketRepository_ClaimIfUnassigned(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()
	client := createUser(t, gdb, "cliente", authorization.RoleClient)
	staffA := createUser(t, gdb, "soporte-a", authorization.RoleSupport)
	staffB := createUser(t, gdb, "soporte-b", authorization.RoleSupport)
	tk := newTicket(t, repo, "claim", vo.PriorityMedium, client.ID())

	ok, err := repo.ClaimIfUnassigned(ctx, tk.ID(), staffA.ID())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ClaimIfUnassigned(ctx, tk.ID(), staffB.ID())
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := repo.GetByIDForUpdate(ctx, tk.ID())
	require.NoError(t, err)
	assert.True(t, stored.IsAssignedTo(staffA.ID()))
	assert.Equal(t, vo.StatusInProgress, stored.Status())

	ok, err = repo.ClaimIfUnassigned(ctx, 9999, staffA.ID())
	require.NoError(t, err)
	assert.False(t, ok)

	missing, err := repo.GetByIDForUpdate(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
