package usecases

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/cerberus-dev/cerberus/internal/domain/user"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/cache"
	"github.com/cerberus-dev/cerberus/internal/shared/sideeffect"
)

type mockUserRepository struct {
	mu      sync.Mutex
	users   map[uint]*user.User
	nextID  uint
	deleted []uint

	UpdateFunc func(ctx context.Context, u *user.User) error
}

func newMockUserRepository(users ...*user.User) *mockUserRepository {
	m := &mockUserRepository{users: make(map[uint]*user.User)}
	for _, u := range users {
		m.users[u.ID()] = u
		if u.ID() > m.nextID {
			m.nextID = u.ID()
		}
	}
	return m
}

func (m *mockUserRepository) Create(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	if err := u.SetID(m.nextID); err != nil {
		return err
	}
	m.users[u.ID()] = u
	return nil
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, u)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID()] = u
	return nil
}

func (m *mockUserRepository) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockUserRepository) GetByID(_ context.Context, id uint) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id], nil
}

func (m *mockUserRepository) GetByIDs(_ context.Context, ids []uint) ([]*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*user.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepository) GetByLogin(_ context.Context, identifier string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username() == identifier || strings.EqualFold(u.Email(), identifier) {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) GetByEmail(_ context.Context, email string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email(), email) {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username() == username || (email != "" && strings.EqualFold(u.Email(), email)) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepository) List(_ context.Context, filter user.ListFilter) ([]*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*user.User
	for id := uint(1); id <= m.nextID; id++ {
		u, ok := m.users[id]
		if !ok {
			continue
		}
		if filter.Role != nil && u.Role() != *filter.Role {
			continue
		}
		if filter.ActiveOnly && !u.IsActive() {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

// plainHasher prefixes passwords so tests can read them back.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hash:" + password, nil }

func (plainHasher) Verify(password, hash string) error {
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type mockSessionStore struct {
	created []cache.SessionUser
	updated map[string]cache.SessionUser
	deleted []string
	fail    bool
}

func (m *mockSessionStore) Create(_ context.Context, u cache.SessionUser) (*cache.Session, error) {
	if m.fail {
		return nil, errors.New("redis down")
	}
	m.created = append(m.created, u)
	return &cache.Session{ID: "sid-1", User: u}, nil
}

func (m *mockSessionStore) UpdateUser(_ context.Context, id string, u cache.SessionUser) error {
	if m.updated == nil {
		m.updated = make(map[string]cache.SessionUser)
	}
	m.updated[id] = u
	return nil
}

func (m *mockSessionStore) Delete(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
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
	return m.Send(ctx, code, "admin@example.com", vars)
}

func (m *mockEmailSender) SendAdmin(ctx context.Context, subject, _, _, _ string) sideeffect.Result {
	return m.Send(ctx, "admin", "admin@example.com", map[string]any{"subject": subject})
}
