package usecases

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerberus-dev/cerberus/internal/application/common"
	"github.com/cerberus-dev/cerberus/internal/application/ticket/dto"
	domainEmail "github.com/cerberus-dev/cerberus/internal/domain/email"
	"github.com/cerberus-dev/cerberus/internal/domain/notification"
	"github.com/cerberus-dev/cerberus/internal/domain/ticket"
	vo "github.com/cerberus-dev/cerberus/internal/domain/ticket/valueobjects"
	"github.com/cerberus-dev/cerberus/internal/domain/user"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/services"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/storage"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
	"github.com/cerberus-dev/cerberus/internal/shared/db"
	apperrors "github.com/cerberus-dev/cerberus/internal/shared/errors"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/sideeffect"
)

const (
	clientID  uint = 10
	supportID uint = 20
	otherID   uint = 21
	adminID   uint = 1
)

var (
	clientActor  = Actor{UserID: clientID, Role: authorization.RoleClient, DisplayName: "Cliente"}
	supportActor = Actor{UserID: supportID, Role: authorization.RoleSupport, DisplayName: "Soporte"}
	otherActor   = Actor{UserID: otherID, Role: authorization.RoleSupport, DisplayName: "Otro"}
	adminActor   = Actor{UserID: adminID, Role: authorization.RoleAdmin, DisplayName: "Admin"}
	testLinks    = common.Links{BaseURL: "https://example.test", PortalURL: "https://example.test/cliente"}
	testPolicy   = authorization.NewStaticPolicy(authorization.DefaultCapabilities())
)

func testUser(t *testing.T, id uint, role authorization.UserRole) *user.User {
	t.Helper()
	u, err := user.ReconstructUser(user.UserData{
		ID:       id,
		Username: role.String() + "-user",
		Email:    role.String() + "@example.test",
		Role:     role.String(),
		IsActive: true,
	})
	require.NoError(t, err)
	return u
}

func testUsers(t *testing.T) *mockUserRepository {
	return newMockUserRepository(
		testUser(t, clientID, authorization.RoleClient),
		testUser(t, supportID, authorization.RoleSupport),
		testUser(t, otherID, authorization.RoleSupport),
		testUser(t, adminID, authorization.RoleAdmin),
	)
}

func existingTicket(t *testing.T, id uint, status vo.TicketStatus, assignedTo *uint) *ticket.Ticket {
	t.Helper()
	now := time.Now().UTC()
	tk, err := ticket.ReconstructTicket(id, "Sitio caído", status, vo.PriorityHigh, vo.CategorySupport,
		nil, clientID, assignedTo, nil, clientID, nil, now, now)
	require.NoError(t, err)
	return tk
}

type addMessageFixture struct {
	tickets     *mockTicketRepository
	messages    *mockMessageRepository
	notes       *mockNotificationRepository
	emails      *mockEmailSender
	broadcaster *mockBroadcaster
	runner      *sideeffect.SyncRunner
	uc          *AddMessageUseCase
}

func newAddMessageFixture(t *testing.T, tk *ticket.Ticket) *addMessageFixture {
	f := &addMessageFixture{
		tickets:     newMockTicketRepository(tk),
		messages:    &mockMessageRepository{},
		notes:       &mockNotificationRepository{},
		emails:      &mockEmailSender{},
		broadcaster: &mockBroadcaster{},
		runner:      sideeffect.NewSyncRunner(logger.NewNopLogger()),
	}
	f.uc = NewAddMessageUseCase(f.tickets, f.messages, testUsers(t), f.notes, f.broadcaster,
		f.emails, f.runner, db.NoopTxRunner{}, testPolicy, testLinks, logger.NewNopLogger())
	return f
}

func TestAddMessage_StatusFollowsAuthor(t *testing.T) {
	staff := supportID
	tests := []struct {
		name     string
		actor    Actor
		internal bool
		from     vo.TicketStatus
		want     vo.TicketStatus
	}{
		{"client reply", clientActor, false, vo.StatusWaitingClient, vo.StatusWaitingSupport},
		{"client on new ticket", clientActor, false, vo.StatusNew, vo.StatusWaitingSupport},
		{"staff reply", supportActor, false, vo.StatusWaitingSupport, vo.StatusWaitingClient},
		{"staff internal note", supportActor, true, vo.StatusWaitingSupport, vo.StatusWaitingSupport},
		{"client on closed ticket", clientActor, false, vo.StatusClosed, vo.StatusClosed},
		{"staff on closed ticket", supportActor, false, vo.StatusClosed, vo.StatusClosed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAddMessageFixture(t, existingTicket(t, 5, tt.from, &staff))

			res, err := f.uc.Execute(context.Background(), AddMessageCommand{
				Actor:      tt.actor,
				TicketID:   5,
				Message:    "hola",
				IsInternal: tt.internal,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want.String(), res.Status)
			assert.Equal(t, tt.want, f.tickets.tickets[5].Status())
			require.Len(t, f.messages.created, 1)
		})
	}
}

func TestAddMessage_StaffAutoAssigns(t *testing.T) {
	f := newAddMessageFixture(t, existingTicket(t, 5, vo.StatusNew, nil))

	res, err := f.uc.Execute(context.Background(), AddMessageCommand{Actor: supportActor, TicketID: 5, Message: "lo reviso"})
	require.NoError(t, err)
	assert.True(t, res.AutoAssigned)
	assert.True(t, f.tickets.tickets[5].IsAssignedTo(supportID))
}

func TestAddMessage_StaffReplyReachesClient(t *testing.T) {
	staff := supportID
	f := newAddMessageFixture(t, existingTicket(t, 5, vo.StatusWaitingSupport, &staff))

	_, err := f.uc.Execute(context.Background(), AddMessageCommand{Actor: supportActor, TicketID: 5, Message: "listo"})
	require.NoError(t, err)

	require.Len(t, f.broadcaster.calls, 2)
	assert.Equal(t, services.TicketEventNewMessage, f.broadcaster.calls[0].Event)
	assert.Equal(t, services.TicketEventStatusChanged, f.broadcaster.calls[1].Event)

	require.Len(t, f.notes.created, 1)
	assert.Equal(t, notification.TypeTicketMessage, f.notes.created[0].Type())
	assert.Equal(t, clientID, *f.notes.created[0].TargetUserID())

	require.Len(t, f.emails.sent, 1)
	assert.Equal(t, domainEmail.CodeTicketResponse, f.emails.sent[0].Code)
	assert.Equal(t, "client@example.test", f.emails.sent[0].To)
}

func TestAddMessage_ClientReplyReachesAssignee(t *testing.T) {
	staff := supportID
	f := newAddMessageFixture(t, existingTicket(t, 5, vo.StatusWaitingClient, &staff))

	_, err := f.uc.Execute(context.Background(), AddMessageCommand{Actor: clientActor, TicketID: 5, Message: "gracias"})
	require.NoError(t, err)

	require.Len(t, f.notes.created, 1)
	assert.Equal(t, supportID, *f.notes.created[0].TargetUserID())
	require.Len(t, f.emails.sent, 1)
	assert.Equal(t, "support@example.test", f.emails.sent[0].To)
}

func TestAddMessage_InternalNoteSkipsClient(t *testing.T) {
	staff := supportID
	f := newAddMessageFixture(t, existingTicket(t, 5, vo.StatusWaitingSupport, &staff))

	_, err := f.uc.Execute(context.Background(), AddMessageCommand{Actor: supportActor, TicketID: 5, Message: "nota", IsInternal: true})
	require.NoError(t, err)

	require.Len(t, f.broadcaster.calls, 1)
	assert.Equal(t, services.TicketEventNewMessage, f.broadcaster.calls[0].Event)
	payload, ok := f.broadcaster.calls[0].Data.(*dto.RoomMessageDTO)
	require.True(t, ok)
	assert.True(t, payload.IsInternal)
	assert.Empty(t, f.notes.created)
	assert.Empty(t, f.emails.sent)
}

func TestAddMessage_Rejections(t *testing.T) {
	f := newAddMessageFixture(t, existingTicket(t, 5, vo.StatusNew, nil))

	_, err := f.uc.Execute(context.Background(), AddMessageCommand{Actor: clientActor, TicketID: 5, Message: "x", IsInternal: true})
	assert.Equal(t, 403, apperrors.GetAppError(err).Code)

	foreign := Actor{UserID: 99, Role: authorization.RoleClient}
	_, err = f.uc.Execute(context.Background(), AddMessageCommand{Actor: foreign, TicketID: 5, Message: "x"})
	assert.Equal(t, 403, apperrors.GetAppError(err).Code)

	_, err = f.uc.Execute(context.Background(), AddMessageCommand{Actor: clientActor, TicketID: 404, Message: "x"})
	assert.True(t, apperrors.IsNotFoundError(err))

	_, err = f.uc.Execute(context.Background(), AddMessageCommand{Actor: clientActor, TicketID: 5, Message: "  "})
	assert.True(t, apperrors.IsValidationError(err))
	assert.Empty(t, f.messages.created)
}

func TestAssignTicket_SecondClaimConflicts(t *testing.T) {
	repo := newMockTicketRepository(existingTicket(t, 7, vo.StatusNew, nil))
	uc := NewAssignTicketUseCase(repo, testPolicy, logger.NewNopLogger())

	out, err := uc.Execute(context.Background(), supportActor, 7)
	require.NoError(t, err)
	assert.Equal(t, supportID, *out.AssignedTo)
	assert.Equal(t, vo.StatusInProgress.String(), out.Status)

	_, err = uc.Execute(context.Background(), otherActor, 7)
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	assert.Equal(t, 409, appErr.Code)
	assert.Equal(t, "already_assigned", appErr.Message)
	assert.True(t, repo.tickets[7].IsAssignedTo(supportID))

	// claiming your own ticket again is fine
	_, err = uc.Execute(context.Background(), supportActor, 7)
	assert.NoError(t, err)

	_, err = uc.Execute(context.Background(), clientActor, 7)
	assert.Equal(t, 403, apperrors.GetAppError(err).Code)
}

func TestAssignTicket_StaleReadStillConflicts(t *testing.T) {
	other := otherID
	repo := newMockTicketRepository(existingTicket(t, 7, vo.StatusInProgress, &other))
	stale := existingTicket(t, 7, vo.StatusNew, nil)
	reads := 0
	repo.GetByIDFunc = func(_ context.Context, id uint) (*ticket.Ticket, error) {
		reads++
		if reads == 1 {
			return stale, nil
		}
		return repo.tickets[id], nil
	}
	uc := NewAssignTicketUseCase(repo, testPolicy, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), supportActor, 7)
	require.Error(t, err)
	assert.Equal(t, 409, apperrors.GetAppError(err).Code)
	assert.True(t, repo.tickets[7].IsAssignedTo(otherID))
}

func TestAddMessage_KeepsClaimMadeAfterVisibilityCheck(t *testing.T) {
	other := otherID
	f := newAddMessageFixture(t, existingTicket(t, 5, vo.StatusInProgress, &other))
	stale := existingTicket(t, 5, vo.StatusNew, nil)
	f.tickets.GetByIDFunc = func(context.Context, uint) (*ticket.Ticket, error) { return stale, nil }

	res, err := f.uc.Execute(context.Background(), AddMessageCommand{Actor: supportActor, TicketID: 5, Message: "lo reviso"})
	require.NoError(t, err)
	assert.False(t, res.AutoAssigned)
	assert.True(t, f.tickets.tickets[5].IsAssignedTo(otherID))
	assert.Equal(t, vo.StatusWaitingClient, f.tickets.tickets[5].Status())
}

func TestCreateTicket(t *testing.T) {
	tickets := newMockTicketRepository()
	messages := &mockMessageRepository{}
	notes := &mockNotificationRepository{}
	emails := &mockEmailSender{}
	runner := sideeffect.NewSyncRunner(logger.NewNopLogger())
	uc := NewCreateTicketUseCase(tickets, messages, testUsers(t), notes, emails, runner,
		db.NoopTxRunner{}, testLinks, logger.NewNopLogger())

	res, err := uc.Execute(context.Background(), CreateTicketCommand{
		Actor:   clientActor,
		Subject: "No carga el sitio",
		Message: "Desde ayer",
	})
	require.NoError(t, err)
	assert.Equal(t, vo.StatusNew.String(), res.Ticket.Status)
	assert.Equal(t, vo.CategorySupport.String(), res.Ticket.Category)
	assert.Equal(t, vo.PriorityMedium.String(), res.Ticket.Priority)
	assert.Equal(t, clientID, res.Ticket.ClientID)

	require.Len(t, messages.created, 1)
	assert.Equal(t, res.Ticket.ID, messages.created[0].TicketID())

	require.Len(t, notes.created, 1)
	assert.True(t, notes.created[0].IsBroadcast())
	assert.ElementsMatch(t, []string{domainEmail.CodeTicketCreated, domainEmail.CodeTicketClientConfirmation}, emails.codes())
}

func TestCreateTicket_StaffMustNameClient(t *testing.T) {
	uc := NewCreateTicketUseCase(newMockTicketRepository(), &mockMessageRepository{}, testUsers(t),
		&mockNotificationRepository{}, &mockEmailSender{}, sideeffect.NewSyncRunner(logger.NewNopLogger()),
		db.NoopTxRunner{}, testLinks, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), CreateTicketCommand{Actor: supportActor, Subject: "s", Message: "m"})
	assert.True(t, apperrors.IsValidationError(err))

	staffID := supportID
	_, err = uc.Execute(context.Background(), CreateTicketCommand{Actor: adminActor, Subject: "s", Message: "m", ClientID: &staffID})
	assert.Equal(t, "bad_client", apperrors.GetAppError(err).Message)

	client := clientID
	res, err := uc.Execute(context.Background(), CreateTicketCommand{
		Actor: adminActor, Subject: "s", Message: "m", ClientID: &client, Category: "improvement",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Ticket.ImprovementStatus)
	assert.Equal(t, "pending", *res.Ticket.ImprovementStatus)
	assert.Equal(t, adminID, res.Ticket.CreatedBy)
}

func TestGetTicket_HidesInternalFromClients(t *testing.T) {
	tickets := newMockTicketRepository(existingTicket(t, 3, vo.StatusNew, nil))
	messages := &mockMessageRepository{}
	uc := NewGetTicketUseCase(tickets, messages, &mockAttachmentRepository{}, testPolicy)

	_, err := uc.Execute(context.Background(), GetTicketQuery{Actor: clientActor, TicketID: 3})
	require.NoError(t, err)
	require.NotNil(t, messages.includeInternal)
	assert.False(t, *messages.includeInternal)

	_, err = uc.Execute(context.Background(), GetTicketQuery{Actor: supportActor, TicketID: 3})
	require.NoError(t, err)
	assert.True(t, *messages.includeInternal)

	_, err = uc.Execute(context.Background(), GetTicketQuery{Actor: Actor{UserID: 77, Role: authorization.RoleClient}, TicketID: 3})
	assert.Equal(t, 403, apperrors.GetAppError(err).Code)
}

func TestListTickets_ScopeAndFilters(t *testing.T) {
	var got ticket.ListFilter
	repo := newMockTicketRepository()
	repo.ListFunc = func(_ context.Context, f ticket.ListFilter) ([]*ticket.TicketView, error) {
		got = f
		return nil, nil
	}
	uc := NewListTicketsUseCase(repo, logger.NewNopLogger())

	other := uint(99)
	_, err := uc.Execute(context.Background(), ListTicketsQuery{Actor: clientActor, Status: "closed", ClientID: &other})
	require.NoError(t, err)
	assert.Equal(t, clientID, got.UserID)
	assert.Equal(t, authorization.RoleClient, got.Role)
	assert.Nil(t, got.ClientID)
	require.NotNil(t, got.Status)
	assert.Equal(t, vo.StatusClosed, *got.Status)

	_, err = uc.Execute(context.Background(), ListTicketsQuery{Actor: adminActor, ClientID: &other})
	require.NoError(t, err)
	assert.Equal(t, &other, got.ClientID)

	_, err = uc.Execute(context.Background(), ListTicketsQuery{Actor: adminActor, Status: "bogus"})
	assert.Equal(t, "bad_status", apperrors.GetAppError(err).Message)
}

func TestUpdateTicket_ReopenClearsClosedAt(t *testing.T) {
	tk := existingTicket(t, 4, vo.StatusWaitingClient, nil)
	repo := newMockTicketRepository(tk)
	broadcaster := &mockBroadcaster{}
	uc := NewUpdateTicketUseCase(repo, testUsers(t), broadcaster, sideeffect.NewSyncRunner(logger.NewNopLogger()), logger.NewNopLogger())

	closed := "closed"
	out, err := uc.Execute(context.Background(), UpdateTicketCommand{TicketID: 4, Status: &closed})
	require.NoError(t, err)
	assert.NotNil(t, out.ClosedAt)

	open := "in_progress"
	urgent := "urgent"
	staff := otherID
	out, err = uc.Execute(context.Background(), UpdateTicketCommand{TicketID: 4, Status: &open, Priority: &urgent, AssignedTo: &staff})
	require.NoError(t, err)
	assert.Nil(t, out.ClosedAt)
	assert.Equal(t, "urgent", out.Priority)
	assert.Equal(t, otherID, *out.AssignedTo)
	assert.Len(t, broadcaster.calls, 2)

	bad := clientID
	_, err = uc.Execute(context.Background(), UpdateTicketCommand{TicketID: 4, AssignedTo: &bad})
	assert.Equal(t, "bad_assignee", apperrors.GetAppError(err).Message)
}

func TestCloseTicket_EmailsClient(t *testing.T) {
	repo := newMockTicketRepository(existingTicket(t, 8, vo.StatusWaitingClient, nil))
	emails := &mockEmailSender{}
	uc := NewCloseTicketUseCase(repo, testUsers(t), &mockBroadcaster{}, emails,
		sideeffect.NewSyncRunner(logger.NewNopLogger()), testPolicy, testLinks, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), clientActor, 8)
	assert.Equal(t, 403, apperrors.GetAppError(err).Code)

	out, err := uc.Execute(context.Background(), supportActor, 8)
	require.NoError(t, err)
	assert.Equal(t, "closed", out.Status)
	assert.NotNil(t, out.ClosedAt)
	assert.Equal(t, []string{domainEmail.CodeTicketClosed}, emails.codes())
}

func TestDeleteTicket_RemovesFiles(t *testing.T) {
	repo := newMockTicketRepository(existingTicket(t, 6, vo.StatusClosed, nil))
	repo.DeleteCascadeFunc = func(context.Context, uint) ([]ticket.Attachment, error) {
		return []ticket.Attachment{{FilePath: "/uploads/tickets/a.pdf"}, {FilePath: "/uploads/tickets/b.png"}}, nil
	}
	uploads := &mockUploadStore{}
	uc := NewDeleteTicketUseCase(repo, uploads, db.NoopTxRunner{}, logger.NewNopLogger())

	require.NoError(t, uc.Execute(context.Background(), 6))
	assert.Equal(t, []string{"/uploads/tickets/a.pdf", "/uploads/tickets/b.png"}, uploads.removed)
	assert.NotContains(t, repo.tickets, uint(6))

	assert.True(t, apperrors.IsNotFoundError(uc.Execute(context.Background(), 6)))
}

func TestChangeImprovementStatus(t *testing.T) {
	now := time.Now()
	pending := vo.ImprovementPending
	tk, err := ticket.ReconstructTicket(9, "Nuevo módulo", vo.StatusInProgress, vo.PriorityLow, vo.CategoryImprovement,
		&pending, clientID, nil, nil, clientID, nil, now, now)
	require.NoError(t, err)

	emails := &mockEmailSender{}
	uc := NewChangeImprovementStatusUseCase(newMockTicketRepository(tk, existingTicket(t, 2, vo.StatusNew, nil)),
		testUsers(t), emails, sideeffect.NewSyncRunner(logger.NewNopLogger()), testLinks, logger.NewNopLogger())

	out, err := uc.Execute(context.Background(), ChangeImprovementStatusCommand{Actor: supportActor, TicketID: 9, Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", *out.ImprovementStatus)
	assert.Equal(t, []string{domainEmail.CodeImprovementStatus}, emails.codes())

	_, err = uc.Execute(context.Background(), ChangeImprovementStatusCommand{Actor: supportActor, TicketID: 2, Status: "completed"})
	assert.Equal(t, "not_improvement", apperrors.GetAppError(err).Message)

	_, err = uc.Execute(context.Background(), ChangeImprovementStatusCommand{Actor: supportActor, TicketID: 9, Status: "done"})
	assert.Equal(t, "bad_status", apperrors.GetAppError(err).Message)
}

func TestUploadAttachment(t *testing.T) {
	repo := newMockTicketRepository(existingTicket(t, 5, vo.StatusNew, nil))
	attachments := &mockAttachmentRepository{}
	uploads := &mockUploadStore{}
	uc := NewUploadAttachmentUseCase(repo, attachments, uploads, logger.NewNopLogger())

	fh := &multipart.FileHeader{Filename: "factura.pdf", Size: 2048}
	out, err := uc.Execute(context.Background(), UploadAttachmentCommand{Actor: clientActor, TicketID: 5, File: fh})
	require.NoError(t, err)
	assert.Equal(t, "factura.pdf", out.OriginalName)
	assert.Equal(t, "/uploads/tickets/ticket-1.pdf", out.URL)
	require.Len(t, attachments.created, 1)

	uploads.saveErr = storage.ErrFileTypeRejected
	_, err = uc.Execute(context.Background(), UploadAttachmentCommand{Actor: clientActor, TicketID: 5, File: fh})
	assert.Equal(t, "file_type_not_allowed", apperrors.GetAppError(err).Message)

	uploads.saveErr = nil
	attachments.fail = true
	_, err = uc.Execute(context.Background(), UploadAttachmentCommand{Actor: clientActor, TicketID: 5, File: fh})
	require.Error(t, err)
	assert.Len(t, uploads.removed, 1)
}
