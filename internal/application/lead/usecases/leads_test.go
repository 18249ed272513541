package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerberus-dev/cerberus/internal/application/common"
	domainEmail "github.com/cerberus-dev/cerberus/internal/domain/email"
	"github.com/cerberus-dev/cerberus/internal/domain/lead"
	vo "github.com/cerberus-dev/cerberus/internal/domain/lead/valueobjects"
	"github.com/cerberus-dev/cerberus/internal/domain/notification"
	"github.com/cerberus-dev/cerberus/internal/shared/db"
	apperrors "github.com/cerberus-dev/cerberus/internal/shared/errors"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/sideeffect"
)

func newSubmit(leads *mockLeadRepository, notes *mockNotificationRepository, mail *mockEmailSender) (*SubmitLeadUseCase, *sideeffect.SyncRunner) {
	runner := sideeffect.NewSyncRunner(logger.NewNopLogger())
	uc := NewSubmitLeadUseCase(leads, notes, mail, runner, common.Links{BaseURL: "https://example.test"}, logger.NewNopLogger())
	return uc, runner
}

func existingLead(t *testing.T, id uint) *lead.Lead {
	t.Helper()
	l, err := lead.ReconstructLead(id, "Ana", "ana@example.com", "", "web", "hola", vo.StatusNew, false, "", time.Now(), time.Now())
	require.NoError(t, err)
	return l
}

func TestSubmitLead_PersistsAndFiresEffects(t *testing.T) {
	leads := &mockLeadRepository{}
	notes := &mockNotificationRepository{}
	mail := &mockEmailSender{}
	uc, runner := newSubmit(leads, notes, mail)

	res, err := uc.Execute(context.Background(), SubmitLeadCommand{
		Name:        " Ana ",
		Email:       "ana@example.com",
		ProjectType: "Landing Page",
		Message:     "Necesito un sitio",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), res.LeadID)

	require.Len(t, leads.created, 1)
	assert.Equal(t, vo.StatusNew, leads.created[0].Status())
	assert.Equal(t, "Ana", leads.created[0].Name())

	require.Len(t, notes.created, 1)
	assert.Equal(t, notification.TypeLead, notes.created[0].Type())
	assert.True(t, notes.created[0].IsBroadcast())

	require.Len(t, mail.sent, 1)
	assert.Equal(t, domainEmail.CodeLeadAutoReply, mail.sent[0].Code)
	assert.Equal(t, "ana@example.com", mail.sent[0].To)
	assert.Len(t, mail.admin, 1)
	assert.Equal(t, []string{"lead.notification", "lead.auto_reply", "lead.admin_email"}, runner.Names())
}

func TestSubmitLead_SucceedsWhenEffectsFail(t *testing.T) {
	leads := &mockLeadRepository{}
	notes := &mockNotificationRepository{
		CreateFunc: func(context.Context, *notification.Notification) error { return errors.New("db down") },
	}
	mail := &mockEmailSender{fail: true}
	uc, runner := newSubmit(leads, notes, mail)

	res, err := uc.Execute(context.Background(), SubmitLeadCommand{Name: "A", Email: "a@b.c", Message: "m"})
	require.NoError(t, err)
	assert.NotZero(t, res.LeadID)
	assert.Len(t, leads.created, 1)

	for _, r := range runner.Results() {
		assert.False(t, r.OK, r.Name)
		assert.NotEmpty(t, r.Reason)
	}
}

func TestSubmitLead_MissingMessage(t *testing.T) {
	leads := &mockLeadRepository{}
	uc, runner := newSubmit(leads, &mockNotificationRepository{}, &mockEmailSender{})

	_, err := uc.Execute(context.Background(), SubmitLeadCommand{Name: "A", Email: "a@b.c", Message: "   "})
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "missing_fields", appErr.Message)
	assert.Empty(t, leads.created)
	assert.Empty(t, runner.Results())
}

func TestChangeLeadStatus(t *testing.T) {
	l := existingLead(t, 3)
	repo := &mockLeadRepository{GetByIDFunc: func(context.Context, uint) (*lead.Lead, error) { return l, nil }}
	uc := NewChangeLeadStatusUseCase(repo, logger.NewNopLogger())

	out, err := uc.Execute(context.Background(), ChangeLeadStatusCommand{LeadID: 3, Status: "replied"})
	require.NoError(t, err)
	assert.Equal(t, "replied", out.Status)

	_, err = uc.Execute(context.Background(), ChangeLeadStatusCommand{LeadID: 3, Status: "archived"})
	assert.Equal(t, "bad_status", apperrors.GetAppError(err).Message)
}

func TestToggleLeadImportant(t *testing.T) {
	l := existingLead(t, 3)
	repo := &mockLeadRepository{GetByIDFunc: func(context.Context, uint) (*lead.Lead, error) { return l, nil }}
	uc := NewToggleLeadImportantUseCase(repo, logger.NewNopLogger())

	important, err := uc.Execute(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, important)

	important, err = uc.Execute(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, important)
	assert.Len(t, repo.updated, 2)
}

func TestDeleteLead(t *testing.T) {
	var deleted uint
	repo := &mockLeadRepository{
		GetByIDFunc: func(_ context.Context, id uint) (*lead.Lead, error) {
			if id == 9 {
				return nil, nil
			}
			return existingLead(t, id), nil
		},
		DeleteFunc: func(_ context.Context, id uint) error { deleted = id; return nil },
	}
	notes := &mockNotificationRepository{}
	uc := NewDeleteLeadUseCase(repo, notes, db.NoopTxRunner{}, logger.NewNopLogger())

	require.NoError(t, uc.Execute(context.Background(), 4))
	assert.Equal(t, uint(4), deleted)
	assert.Equal(t, []uint{4}, notes.deletedReference)

	err := uc.Execute(context.Background(), 9)
	assert.True(t, apperrors.IsNotFoundError(err))
}
