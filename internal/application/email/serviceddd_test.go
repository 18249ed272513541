package email

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/cerberus-dev/cerberus/internal/domain/email"
	apperrors "github.com/cerberus-dev/cerberus/internal/shared/errors"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/sideeffect"
)

type memTemplates struct {
	saved map[string]*domain.Template
}

func (m *memTemplates) List(context.Context) ([]*domain.Template, error) {
	out := make([]*domain.Template, 0, len(m.saved))
	for _, t := range m.saved {
		out = append(out, t)
	}
	return out, nil
}

func (m *memTemplates) GetByCode(_ context.Context, code string) (*domain.Template, error) {
	return m.saved[code], nil
}

func (m *memTemplates) Upsert(_ context.Context, t *domain.Template) error {
	m.saved[t.Code] = t
	return nil
}

type memLogs struct {
	limit int
}

func (m *memLogs) Create(context.Context, *domain.Log) error { return nil }

func (m *memLogs) ListRecent(_ context.Context, limit int) ([]*domain.Log, error) {
	m.limit = limit
	return []*domain.Log{{ID: 1, TemplateCode: "user-created", Status: domain.LogSent}}, nil
}

type stubSender struct {
	verifyErr error
	sent      []string
	vars      map[string]any
}

func (s *stubSender) Send(_ context.Context, code, to string, vars map[string]any) sideeffect.Result {
	s.sent = append(s.sent, code+"->"+to)
	s.vars = vars
	return sideeffect.Success("email:" + code)
}

func (s *stubSender) Verify(context.Context) error { return s.verifyErr }

func (s *stubSender) Default(code string) (string, error) { return "<p>default " + code + "</p>", nil }

func newService() (*ServiceDDD, *memTemplates, *memLogs, *stubSender) {
	tpl := &memTemplates{saved: map[string]*domain.Template{}}
	logs := &memLogs{}
	sender := &stubSender{}
	return NewServiceDDD(tpl, logs, sender, logger.NewNopLogger()), tpl, logs, sender
}

func TestListTemplates_MergesOverrides(t *testing.T) {
	svc, tpl, _, _ := newService()
	tpl.saved[domain.CodeTicketClosed] = &domain.Template{Code: domain.CodeTicketClosed, Subject: "Cerrado", HTMLContent: "<p>x</p>", IsActive: true}

	views, err := svc.ListTemplates(context.Background())
	require.NoError(t, err)
	require.Len(t, views, len(domain.Catalog()))
	for _, v := range views {
		if v.Code == domain.CodeTicketClosed {
			assert.True(t, v.IsSaved)
			assert.Equal(t, "Cerrado", v.Subject)
		} else {
			assert.False(t, v.IsSaved, v.Code)
		}
	}
}

func TestGetTemplate_FillsDefaultBody(t *testing.T) {
	svc, _, _, _ := newService()

	v, err := svc.GetTemplate(context.Background(), domain.CodeUserCreated)
	require.NoError(t, err)
	assert.True(t, v.IsDefault)
	assert.Equal(t, "<p>default user-created</p>", v.HTMLContent)

	_, err = svc.GetTemplate(context.Background(), "nope")
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestUpsertTemplate(t *testing.T) {
	svc, tpl, _, _ := newService()

	_, err := svc.UpsertTemplate(context.Background(), "nope", TemplateRequest{})
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.GetAppError(err).Code)

	v, err := svc.UpsertTemplate(context.Background(), domain.CodeLeadAutoReply, TemplateRequest{HTMLContent: "<p>hola</p>"})
	require.NoError(t, err)
	assert.True(t, v.IsSaved)
	assert.True(t, v.IsActive)
	assert.NotEmpty(t, tpl.saved[domain.CodeLeadAutoReply].Subject, "blank subject falls back to the built-in one")
}

func TestTestTemplate_UsesSampleVars(t *testing.T) {
	svc, _, _, sender := newService()

	res, err := svc.TestTemplate(context.Background(), domain.CodeStorageWarning, "ops@example.com")
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, []string{"storage-warning->ops@example.com"}, sender.sent)
	for _, key := range []string{"clientName", "serviceName", "percentage", "usedMb", "limitMb", "portalUrl"} {
		assert.Contains(t, sender.vars, key)
	}
}

func TestSendTest_StopsWhenSMTPFails(t *testing.T) {
	svc, _, _, sender := newService()
	sender.verifyErr = errors.New("dial tcp: refused")

	res, err := svc.SendTest(context.Background(), "ops@example.com")
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Contains(t, res.Reason, "refused")
	assert.Empty(t, sender.sent)
}

func TestListLogs_ClampsLimit(t *testing.T) {
	svc, _, logs, _ := newService()

	_, err := svc.ListLogs(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultLogLimit, logs.limit)

	out, err := svc.ListLogs(context.Background(), 10_000)
	require.NoError(t, err)
	assert.Equal(t, MaxLogLimit, logs.limit)
	assert.Equal(t, "sent", out[0].Status)
}
