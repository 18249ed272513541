package usecases

import (
	"context"
	"errors"
	"sync"

	"github.com/cerberus-dev/cerberus/internal/domain/lead"
	"github.com/cerberus-dev/cerberus/internal/domain/notification"
	"github.com/cerberus-dev/cerberus/internal/shared/sideeffect"
)

type mockLeadRepository struct {
	CreateFunc  func(ctx context.Context, l *lead.Lead) error
	UpdateFunc  func(ctx context.Context, l *lead.Lead) error
	DeleteFunc  func(ctx context.Context, id uint) error
	GetByIDFunc func(ctx context.Context, id uint) (*lead.Lead, error)
	ListFunc    func(ctx context.Context) ([]*lead.Lead, error)
	SummaryFunc func(ctx context.Context) (*lead.Summary, error)

	created []*lead.Lead
	updated []*lead.Lead
}

func (m *mockLeadRepository) Create(ctx context.Context, l *lead.Lead) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, l)
	}
	m.created = append(m.created, l)
	return l.SetID(uint(len(m.created)))
}

func (m *mockLeadRepository) Update(ctx context.Context, l *lead.Lead) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, l)
	}
	m.updated = append(m.updated, l)
	return nil
}

func (m *mockLeadRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockLeadRepository) GetByID(ctx context.Context, id uint) (*lead.Lead, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockLeadRepository) List(ctx context.Context) ([]*lead.Lead, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockLeadRepository) Summary(ctx context.Context) (*lead.Summary, error) {
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx)
	}
	return &lead.Summary{}, nil
}

type mockNotificationRepository struct {
	CreateFunc func(ctx context.Context, n *notification.Notification) error

	created          []*notification.Notification
	deletedReference []uint
}

func (m *mockNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, n)
	}
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

func (m *mockNotificationRepository) Delete(context.Context, uint) error { return nil }

func (m *mockNotificationRepository) DeleteByReference(_ context.Context, referenceID uint, _ ...notification.Type) error {
	m.deletedReference = append(m.deletedReference, referenceID)
	return nil
}

type sentEmail struct {
	Code string
	To   string
	Vars map[string]any
}

type mockEmailSender struct {
	mu    sync.Mutex
	fail  bool
	sent  []sentEmail
	admin []string
}

func (m *mockEmailSender) Send(_ context.Context, code, to string, vars map[string]any) sideeffect.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return sideeffect.Failure("email:"+code, errors.New("smtp down"))
	}
	m.sent = append(m.sent, sentEmail{Code: code, To: to, Vars: vars})
	return sideeffect.Success("email:" + code)
}

func (m *mockEmailSender) SendToAdmin(ctx context.Context, code string, vars map[string]any) sideeffect.Result {
	return m.Send(ctx, code, "admin@example.com", vars)
}

func (m *mockEmailSender) SendAdmin(_ context.Context, subject, _, _, _ string) sideeffect.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return sideeffect.Failure("email:admin", errors.New("smtp down"))
	}
	m.admin = append(m.admin, subject)
	return sideeffect.Success("email:admin")
}
