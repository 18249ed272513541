package usecases

import (
	"context"
	"sort"
	"sync"

	"github.com/cerberus-dev/cerberus/internal/domain/clientservice"
	"github.com/cerberus-dev/cerberus/internal/domain/notification"
	"github.com/cerberus-dev/cerberus/internal/domain/user"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/storage"
	"github.com/cerberus-dev/cerberus/internal/shared/sideeffect"
)

type mockServiceRepository struct {
	mu       sync.Mutex
	services map[uint]*clientservice.ClientService
	updates  int
	listed   *uint
}

func newMockServiceRepository(services ...*clientservice.ClientService) *mockServiceRepository {
	m := &mockServiceRepository{services: make(map[uint]*clientservice.ClientService)}
	for _, s := range services {
		m.services[s.ID()] = s
	}
	return m
}

func (m *mockServiceRepository) Create(_ context.Context, s *clientservice.ClientService) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uint(len(m.services) + 1)
	if err := s.SetID(id); err != nil {
		return err
	}
	m.services[id] = s
	return nil
}

func (m *mockServiceRepository) Update(_ context.Context, s *clientservice.ClientService) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	m.services[s.ID()] = s
	return nil
}

func (m *mockServiceRepository) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.services, id)
	return nil
}

func (m *mockServiceRepository) GetByID(_ context.Context, id uint) (*clientservice.ClientService, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.services[id], nil
}

func (m *mockServiceRepository) sorted() []*clientservice.ClientService {
	out := make([]*clientservice.ClientService, 0, len(m.services))
	for _, s := range m.services {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func (m *mockServiceRepository) List(_ context.Context, clientID *uint) ([]*clientservice.ServiceView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listed = clientID
	var out []*clientservice.ServiceView
	for _, s := range m.sorted() {
		if clientID != nil && s.ClientID() != *clientID {
			continue
		}
		out = append(out, &clientservice.ServiceView{Service: s})
	}
	return out, nil
}

func (m *mockServiceRepository) ListScannable(_ context.Context) ([]*clientservice.ServiceView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*clientservice.ServiceView
	for _, s := range m.sorted() {
		if s.IsScannable() {
			out = append(out, &clientservice.ServiceView{Service: s})
		}
	}
	return out, nil
}

type mockMeasurer struct {
	mu     sync.Mutex
	usages map[string]*storage.Usage
	calls  int
	block  chan struct{}
}

func (m *mockMeasurer) Measure(_ context.Context, root string) (*storage.Usage, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.block != nil {
		<-m.block
	}
	u, ok := m.usages[root]
	if !ok {
		return nil, storage.ErrFolderNotFound
	}
	return u, nil
}

type mockUserRepository struct {
	users map[uint]*user.User
}

func (m *mockUserRepository) Create(context.Context, *user.User) error { return nil }
func (m *mockUserRepository) Update(context.Context, *user.User) error { return nil }
func (m *mockUserRepository) Delete(context.Context, uint) error       { return nil }

func (m *mockUserRepository) GetByID(_ context.Context, id uint) (*user.User, error) {
	return m.users[id], nil
}

func (m *mockUserRepository) GetByIDs(context.Context, []uint) ([]*user.User, error) { return nil, nil }
func (m *mockUserRepository) GetByLogin(context.Context, string) (*user.User, error) { return nil, nil }
func (m *mockUserRepository) GetByEmail(context.Context, string) (*user.User, error) { return nil, nil }

func (m *mockUserRepository) ExistsByUsernameOrEmail(context.Context, string, string) (bool, error) {
	return false, nil
}

func (m *mockUserRepository) List(context.Context, user.ListFilter) ([]*user.User, error) {
	return nil, nil
}

type mockNotificationRepository struct {
	mu      sync.Mutex
	created []*notification.Notification
}

func (m *mockNotificationRepository) Create(_ context.Context, n *notification.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
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
	Vars map[string]any
}

type mockEmailSender struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (m *mockEmailSender) Send(_ context.Context, code, to string, vars map[string]any) sideeffect.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentEmail{Code: code, To: to, Vars: vars})
	return sideeffect.Success("email:" + code)
}

func (m *mockEmailSender) SendToAdmin(ctx context.Context, code string, vars map[string]any) sideeffect.Result {
	return m.Send(ctx, code, "admin", vars)
}

func (m *mockEmailSender) SendAdmin(ctx context.Context, subject, _, _, _ string) sideeffect.Result {
	return m.Send(ctx, "notification", "admin", map[string]any{"subject": subject})
}
