package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/cerberus-dev/cerberus/internal/application/common"
	domainEmail "github.com/cerberus-dev/cerberus/internal/domain/email"
	"github.com/cerberus-dev/cerberus/internal/domain/lead"
	"github.com/cerberus-dev/cerberus/internal/domain/notification"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/sideeffect"
)

type SubmitLeadCommand struct {
	Name        string
	Email       string
	Phone       string
	ProjectType string
	Message     string
}

type SubmitLeadResult struct {
	LeadID uint
}

// SubmitLeadUseCase is the public contact form. Only the lead row is part of
// the workflow; the staff notification and both emails are side effects.
type SubmitLeadUseCase struct {
	leadRepo         lead.Repository
	notificationRepo notification.Repository
	emails           common.EmailSender
	effects          sideeffect.Runner
	links            common.Links
	logger           logger.Interface
}

func NewSubmitLeadUseCase(
	leadRepo lead.Repository,
	notificationRepo notification.Repository,
	emails common.EmailSender,
	effects sideeffect.Runner,
	links common.Links,
	logger logger.Interface,
) *SubmitLeadUseCase {
	return &SubmitLeadUseCase{
		leadRepo:         leadRepo,
		notificationRepo: notificationRepo,
		emails:           emails,
		effects:          effects,
		links:            links,
		logger:           logger,
	}
}

func (uc *SubmitLeadUseCase) Execute(ctx context.Context, cmd SubmitLeadCommand) (*SubmitLeadResult, error) {
	if strings.TrimSpace(cmd.Name) == "" || strings.TrimSpace(cmd.Email) == "" || strings.TrimSpace(cmd.Message) == "" {
		return nil, errors.NewValidationError("missing_fields")
	}

	newLead, err := lead.NewLead(cmd.Name, cmd.Email, cmd.Phone, cmd.ProjectType, cmd.Message)
	if err != nil {
		return nil, errors.NewValidationError("missing_fields", err.Error())
	}

	if err := uc.leadRepo.Create(ctx, newLead); err != nil {
		uc.logger.Errorw("failed to save lead", "error", err)
		return nil, fmt.Errorf("failed to save lead: %w", err)
	}

	uc.logger.Infow("lead received", "lead_id", newLead.ID(), "project_type", newLead.ProjectType())

	uc.dispatchEffects(ctx, newLead)

	return &SubmitLeadResult{LeadID: newLead.ID()}, nil
}

func (uc *SubmitLeadUseCase) dispatchEffects(ctx context.Context, l *lead.Lead) {
	leadID := l.ID()

	uc.effects.Go(ctx, "lead.notification", func(ctx context.Context) error {
		n, err := notification.NewNotification(
			notification.TypeLead,
			nil,
			&leadID,
			fmt.Sprintf("Nuevo contacto: %s", l.Name()),
			fmt.Sprintf("%s (%s) escribió: %s", l.Name(), l.Email(), excerpt(l.Message(), 160)),
		)
		if err != nil {
			return err
		}
		return uc.notificationRepo.Create(ctx, n)
	})

	uc.effects.Go(ctx, "lead.auto_reply", func(ctx context.Context) error {
		return uc.emails.Send(ctx, domainEmail.CodeLeadAutoReply, l.Email(), map[string]any{
			"name":        l.Name(),
			"projectType": l.ProjectType(),
			"message":     l.Message(),
		}).Err()
	})

	uc.effects.Go(ctx, "lead.admin_email", func(ctx context.Context) error {
		body := fmt.Sprintf("Nombre: %s\nEmail: %s\nTeléfono: %s\nTipo de proyecto: %s\n\n%s",
			l.Name(), l.Email(), l.Phone(), l.ProjectType(), l.Message())
		return uc.emails.SendAdmin(ctx,
			fmt.Sprintf("Nuevo contacto: %s", l.Name()),
			"Nuevo mensaje del formulario de contacto",
			body,
			uc.links.Leads(),
		).Err()
	})
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
