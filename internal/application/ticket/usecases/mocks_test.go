package usecases

import (
	"context"
	"errors"
	"mime/multipart"
	"sync"

	"github.com/cerberus-dev/cerberus/internal/domain/notification"
	"github.com/cerberus-dev/cerberus/internal/domain/ticket"
	"github.com/cerberus-dev/cerberus/internal/domain/user"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/storage"
	"github.com/cerberus-dev/cerberus/internal/shared/sideeffect"
)

type mockTicketRepository struct {
	tickets map[uint]*ticket.Ticket

	UpdateFunc        func(ctx context.Context, t *ticket.Ticket) error
	GetByIDFunc       func(ctx context.Context, id uint) (*ticket.Ticket, error)
	ListFunc          func(ctx context.Context, filter ticket.ListFilter) ([]*ticket.TicketView, error)
	StatsFunc         func(ctx context.Context, scope ticket.Scope) (*ticket.Stats, error)
	DeleteCascadeFunc func(ctx context.Context, id uint) ([]ticket.Attachment, error)

	mu      sync.Mutex
	updates int
}

func newMockTicketRepository(tickets ...*ticket.Ticket) *mockTicketRepository {
	m := &mockTicketRepository{tickets: make(map[uint]*ticket.Ticket)}
	for _, t := range tickets {
		m.tickets[t.ID()] = t
	}
	return m
}

func (m *mockTicketRepository) Create(_ context.Context, t *ticket.Ticket) error {
	id := uint(len(m.tickets) + 1)
	if err := t.SetID(id); err != nil {
		return err
	}
	m.tickets[id] = t
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	m.updates++
	m.tickets[t.ID()] = t
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return m.tickets[id], nil
}

func (m *mockTicketRepository) GetByIDForUpdate(_ context.Context, id uint) (*ticket.Ticket, error) {
	return m.tickets[id], nil
}

func (m *mockTicketRepository) ClaimIfUnassigned(_ context.Context, id, staffID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tickets[id]
	if !ok {
		return false, nil
	}
	if err := t.Claim(staffID); err != nil {
		return false, nil
	}
	m.updates++
	return true, nil
}

func (m *mockTicketRepository) GetDetails(_ context.Context, id uint) (*ticket.TicketView, error) {
	t, ok := m.tickets[id]
	if !ok {
		return nil, nil
	}
	return &ticket.TicketView{Ticket: t}, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.ListFilter) ([]*ticket.TicketView, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockTicketRepository) Stats(ctx context.Context, scope ticket.Scope) (*ticket.Stats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, scope)
	}
	return &ticket.Stats{}, nil
}

func (m *mockTicketRepository) DeleteCascade(ctx context.Context, id uint) ([]ticket.Attachment, error) {
	delete(m.tickets, id)
	if m.DeleteCascadeFunc != nil {
		return m.DeleteCascadeFunc(ctx, id)
	}
	return nil, nil
}

type mockMessageRepository struct {
	CreateFunc func(ctx context.Context, msg *ticket.Message) error

	created         []*ticket.Message
	includeInternal *bool
}

func (m *mockMessageRepository) Create(ctx context.Context, msg *ticket.Message) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, msg)
	}
	m.created = append(m.created, msg)
	return msg.SetID(uint(len(m.created)))
}

func (m *mockMessageRepository) ListByTicket(_ context.Context, ticketID uint, includeInternal bool) ([]*ticket.MessageView, error) {
	m.includeInternal = &includeInternal
	var out []*ticket.MessageView
	for _, msg := range m.created {
		if msg.TicketID() != ticketID || (msg.IsInternal() && !includeInternal) {
			continue
		}
		out = append(out, &ticket.MessageView{Message: msg})
	}
	return out, nil
}

type mockAttachmentRepository struct {
	created []*ticket.Attachment
	fail    bool
}

func (m *mockAttachmentRepository) Create(_ context.Context, a *ticket.Attachment) error {
	if m.fail {
		return errors.New("db down")
	}
	m.created = append(m.created, a)
	a.ID = uint(len(m.created))
	return nil
}

func (m *mockAttachmentRepository) ListByTicket(context.Context, uint) ([]*ticket.AttachmentView, error) {
	return nil, nil
}

type mockUserRepository struct {
	users map[uint]*user.User
}

func newMockUserRepository(users ...*user.User) *mockUserRepository {
	m := &mockUserRepository{users: make(map[uint]*user.User)}
	for _, u := range users {
		m.users[u.ID()] = u
	}
	return m
}

func (m *mockUserRepository) Create(context.Context, *user.User) error { return nil }
func (m *mockUserRepository) Update(context.Context, *user.User) error { return nil }
func (m *mockUserRepository) Delete(context.Context, uint) error       { return nil }

func (m *mockUserRepository) GetByID(_ context.Context, id uint) (*user.User, error) {
	return m.users[id], nil
}

func (m *mockUserRepository) GetByIDs(_ context.Context, ids []uint) ([]*user.User, error) {
	var out []*user.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepository) GetByLogin(context.Context, string) (*user.User, error) { return nil, nil }
func (m *mockUserRepository) GetByEmail(context.Context, string) (*user.User, error) { return nil, nil }

func (m *mockUserRepository) ExistsByUsernameOrEmail(context.Context, string, string) (bool, error) {
	return false, nil
}

func (m *mockUserRepository) List(context.Context, user.ListFilter) ([]*user.User, error) {
	return nil, nil
}

type mockNotificationRepository struct {
	created []*notification.Notification
}

func (m *mockNotificationRepository) Create(_ context.Context, n *notification.Notification) error {
	m.created = append(m.created, n)
	return nil
}

func (m *mockNotificationRepository) GetByID(context.Context, uint) (*notification.Notification, error) {
	return nil, nil
}

func (m *mockNotificationRepository) ListVisible(context.Context, notification.Viewer, int) ([]*notification.Notification, error) {
	return nil, nil
}

func (m *mockNotificationRepository) CountUnread(context.Context, notification.Viewer) (int64, error) {
	return 0, nil
}

func (m *mockNotificationRepository) MarkAllRead(context.Context, notification.Viewer) (int64, error) {
	return 0, nil
}

func (m *mockNotificationRepository) MarkRead(context.Context, uint) error { return nil }
func (m *mockNotificationRepository) Delete(context.Context, uint) error   { return nil }

func (m *mockNotificationRepository) DeleteByReference(context.Context, uint, ...notification.Type) error {
	return nil
}

type sentEmail struct {
	Code string
	To   string
}

type mockEmailSender struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (m *mockEmailSender) Send(_ context.Context, code, to string, _ map[string]any) sideeffect.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentEmail{Code: code, To: to})
	return sideeffect.Success("email:" + code)
}

func (m *mockEmailSender) SendToAdmin(ctx context.Context, code string, vars map[string]any) sideeffect.Result {
	return m.Send(ctx, code, "admin", vars)
}

func (m *mockEmailSender) SendAdmin(ctx context.Context, subject, _, _, _ string) sideeffect.Result {
	return m.Send(ctx, "notification", "admin", map[string]any{"subject": subject})
}

func (m *mockEmailSender) codes() []string {
	out := make([]string, 0, len(m.sent))
	for _, s := range m.sent {
		out = append(out, s.Code)
	}
	return out
}

type broadcastCall struct {
	TicketID uint
	Event    string
	Data     any
}

type mockBroadcaster struct {
	calls []broadcastCall
}

func (m *mockBroadcaster) BroadcastTicket(_ context.Context, ticketID uint, event string, data any) error {
	m.calls = append(m.calls, broadcastCall{TicketID: ticketID, Event: event, Data: data})
	return nil
}

type mockUploadStore struct {
	saved   []string
	removed []string
	saveErr error
}

func (m *mockUploadStore) Save(category string, fh *multipart.FileHeader, _ []string) (*storage.StoredFile, error) {
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	url := "/uploads/" + category + "/ticket-1.pdf"
	m.saved = append(m.saved, url)
	return &storage.StoredFile{
		FileName:     "ticket-1.pdf",
		OriginalName: fh.Filename,
		URL:          url,
		MimeType:     "application/pdf",
		Size:         fh.Size,
	}, nil
}

func (m *mockUploadStore) Remove(url string) error {
	m.removed = append(m.removed, url)
	return nil
}
