package usecases

import (
	"context"
	"fmt"

	"github.com/cerberus-dev/cerberus/internal/application/common"
	"github.com/cerberus-dev/cerberus/internal/application/ticket/dto"
	domainEmail "github.com/cerberus-dev/cerberus/internal/domain/email"
	"github.com/cerberus-dev/cerberus/internal/domain/notification"
	"github.com/cerberus-dev/cerberus/internal/domain/ticket"
	vo "github.com/cerberus-dev/cerberus/internal/domain/ticket/valueobjects"
	"github.com/cerberus-dev/cerberus/internal/domain/user"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
	"github.com/cerberus-dev/cerberus/internal/shared/db"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/sideeffect"
)

type CreateTicketCommand struct {
	Actor    Actor
	Subject  string
	Message  string
	Category string
	Priority string
	// ServiceID links the ticket to one of the client's services.
	ServiceID *uint
	// ClientID is honoured for staff only; clients always open tickets for
	// themselves.
	ClientID *uint
}

type CreateTicketResult struct {
	Ticket *dto.TicketDTO
}

// CreateTicketUseCase opens a ticket with its first message in one
// transaction, then notifies staff and emails both sides.
type CreateTicketUseCase struct {
	ticketRepo       ticket.TicketRepository
	messageRepo      ticket.MessageRepository
	userRepo         user.Repository
	notificationRepo notification.Repository
	emails           common.EmailSender
	effects          sideeffect.Runner
	txManager        db.TxRunner
	links            common.Links
	logger           logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	userRepo user.Repository,
	notificationRepo notification.Repository,
	emails common.EmailSender,
	effects sideeffect.Runner,
	txManager db.TxRunner,
	links common.Links,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo:       ticketRepo,
		messageRepo:      messageRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		emails:           emails,
		effects:          effects,
		txManager:        txManager,
		links:            links,
		logger:           logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	category, err := vo.NewCategory(cmd.Category)
	if err != nil {
		return nil, errors.NewValidationError("bad_category")
	}
	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return nil, errors.NewValidationError("bad_priority")
	}

	clientID := cmd.Actor.UserID
	if cmd.Actor.Role.IsStaff() {
		if cmd.ClientID == nil || *cmd.ClientID == 0 {
			return nil, errors.NewValidationError("missing_fields", "client_id is required")
		}
		clientID = *cmd.ClientID
	}

	client, err := uc.userRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	if client == nil || client.Role() != authorization.RoleClient {
		return nil, errors.NewValidationError("bad_client")
	}

	t, err := ticket.NewTicket(cmd.Subject, category, priority, clientID, cmd.Actor.UserID, cmd.ServiceID)
	if err != nil {
		return nil, errors.NewValidationError("missing_fields", err.Error())
	}
	first, err := ticket.NewMessage(0, cmd.Actor.UserID, cmd.Message, false)
	if err != nil {
		return nil, errors.NewValidationError("missing_fields", err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Create(txCtx, t); err != nil {
			return fmt.Errorf("failed to save ticket: %w", err)
		}
		first.BindTicket(t.ID())
		if err := uc.messageRepo.Create(txCtx, first); err != nil {
			return fmt.Errorf("failed to save first message: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to create ticket", "client_id", clientID, "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket created",
		"ticket_id", t.ID(),
		"client_id", clientID,
		"category", category,
		"priority", priority,
	)

	uc.dispatchEffects(ctx, t, client, first.Body())

	return &CreateTicketResult{Ticket: dto.ToTicketDTO(t)}, nil
}

func (uc *CreateTicketUseCase) dispatchEffects(ctx context.Context, t *ticket.Ticket, client *user.User, body string) {
	ticketID := t.ID()
	vars := map[string]any{
		"ticketId": ticketID,
		"subject":  t.Subject(),
		"category": t.Category().String(),
		"priority": t.Priority().String(),
		"message":  body,
	}

	uc.effects.Go(ctx, "ticket.notification", func(ctx context.Context) error {
		n, err := notification.NewNotification(
			notification.TypeTicket,
			nil,
			&ticketID,
			fmt.Sprintf("Nuevo ticket #%d", ticketID),
			fmt.Sprintf("%s: %s", client.DisplayName(), t.Subject()),
		)
		if err != nil {
			return err
		}
		return uc.notificationRepo.Create(ctx, n)
	})

	uc.effects.Go(ctx, "ticket.admin_email", func(ctx context.Context) error {
		staffVars := cloneVars(vars)
		staffVars["ticketUrl"] = uc.links.StaffTicket(ticketID)
		return uc.emails.SendToAdmin(ctx, domainEmail.CodeTicketCreated, staffVars).Err()
	})

	if client.Email() == "" {
		return
	}
	uc.effects.Go(ctx, "ticket.client_confirmation", func(ctx context.Context) error {
		clientVars := cloneVars(vars)
		clientVars["ticketUrl"] = uc.links.ClientTicket(ticketID)
		clientVars["clientName"] = client.DisplayName()
		return uc.emails.Send(ctx, domainEmail.CodeTicketClientConfirmation, client.Email(), clientVars).Err()
	})
}

func cloneVars(vars map[string]any) map[string]any {
	out := make(map[string]any, len(vars)+2)
	for k, v := range vars {
		out[k] = v
	}
	return out
}
