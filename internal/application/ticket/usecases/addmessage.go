package usecases

import (
	"context"
	"fmt"

	"github.com/cerberus-dev/cerberus/internal/application/common"
	"github.com/cerberus-dev/cerberus/internal/application/ticket/dto"
	domainEmail "github.com/cerberus-dev/cerberus/internal/domain/email"
	"github.com/cerberus-dev/cerberus/internal/domain/notification"
	"github.com/cerberus-dev/cerberus/internal/domain/ticket"
	"github.com/cerberus-dev/cerberus/internal/domain/user"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/services"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
	"github.com/cerberus-dev/cerberus/internal/shared/db"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/sideeffect"
)

type AddMessageCommand struct {
	Actor      Actor
	TicketID   uint
	Message    string
	IsInternal bool
}

type AddMessageResult struct {
	Message      *dto.RoomMessageDTO
	Status       string
	AutoAssigned bool
}

// AddMessageUseCase appends a message to a ticket thread. The message, the
// status change and any auto-assignment are written in one transaction; the
// room broadcast, notification and email to the counterpart are side
// effects.
type AddMessageUseCase struct {
	ticketRepo       ticket.TicketRepository
	messageRepo      ticket.MessageRepository
	userRepo         user.Repository
	notificationRepo notification.Repository
	broadcaster      common.TicketBroadcaster
	emails           common.EmailSender
	effects          sideeffect.Runner
	txManager        db.TxRunner
	policy           authorization.Policy
	links            common.Links
	logger           logger.Interface
}

func NewAddMessageUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	userRepo user.Repository,
	notificationRepo notification.Repository,
	broadcaster common.TicketBroadcaster,
	emails common.EmailSender,
	effects sideeffect.Runner,
	txManager db.TxRunner,
	policy authorization.Policy,
	links common.Links,
	logger logger.Interface,
) *AddMessageUseCase {
	return &AddMessageUseCase{
		ticketRepo:       ticketRepo,
		messageRepo:      messageRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		broadcaster:      broadcaster,
		emails:           emails,
		effects:          effects,
		txManager:        txManager,
		policy:           policy,
		links:            links,
		logger:           logger,
	}
}

func (uc *AddMessageUseCase) Execute(ctx context.Context, cmd AddMessageCommand) (*AddMessageResult, error) {
	if err := requireCapability(ctx, uc.policy, cmd.Actor, authorization.ResourceTicket, authorization.ActionWrite); err != nil {
		return nil, err
	}
	if cmd.IsInternal {
		if !cmd.Actor.Role.IsStaff() {
			return nil, errors.NewForbiddenError("forbidden")
		}
		if err := requireCapability(ctx, uc.policy, cmd.Actor, authorization.ResourceTicketInternal, authorization.ActionWrite); err != nil {
			return nil, err
		}
	}

	t, err := loadVisibleTicket(ctx, uc.ticketRepo, cmd.TicketID, cmd.Actor)
	if err != nil {
		return nil, err
	}

	msg, err := ticket.NewMessage(t.ID(), cmd.Actor.UserID, cmd.Message, cmd.IsInternal)
	if err != nil {
		return nil, errors.NewValidationError("missing_fields", err.Error())
	}

	var outcome ticket.MessageOutcome
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		// Re-read under the row lock so a claim or status change that landed
		// after the visibility check is not overwritten.
		locked, err := uc.ticketRepo.GetByIDForUpdate(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}
		if locked == nil {
			return errors.NewNotFoundError("not_found")
		}
		t = locked

		if err := uc.messageRepo.Create(txCtx, msg); err != nil {
			return fmt.Errorf("failed to save message: %w", err)
		}
		outcome = t.RecordMessage(cmd.Actor.UserID, cmd.Actor.Role, cmd.IsInternal)
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return fmt.Errorf("failed to update ticket: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to add ticket message", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket message added",
		"ticket_id", t.ID(),
		"message_id", msg.ID(),
		"author_id", cmd.Actor.UserID,
		"internal", cmd.IsInternal,
		"status", t.Status(),
		"status_changed", outcome.StatusChanged,
		"auto_assigned", outcome.AutoAssigned,
	)

	payload := &dto.RoomMessageDTO{
		ID:          msg.ID(),
		TicketID:    t.ID(),
		Message:     msg.Body(),
		IsInternal:  msg.IsInternal(),
		UserID:      cmd.Actor.UserID,
		DisplayName: cmd.Actor.DisplayName,
		Role:        cmd.Actor.Role.String(),
		Status:      t.Status().String(),
		CreatedAt:   msg.CreatedAt(),
	}

	uc.dispatchEffects(ctx, t, cmd, payload, outcome)

	return &AddMessageResult{
		Message:      payload,
		Status:       t.Status().String(),
		AutoAssigned: outcome.AutoAssigned,
	}, nil
}

func (uc *AddMessageUseCase) dispatchEffects(ctx context.Context, t *ticket.Ticket, cmd AddMessageCommand, payload *dto.RoomMessageDTO, outcome ticket.MessageOutcome) {
	ticketID := t.ID()

	uc.effects.Go(ctx, "ticket.broadcast", func(ctx context.Context) error {
		if err := uc.broadcaster.BroadcastTicket(ctx, ticketID, services.TicketEventNewMessage, payload); err != nil {
			return err
		}
		if !outcome.StatusChanged {
			return nil
		}
		return uc.broadcaster.BroadcastTicket(ctx, ticketID, services.TicketEventStatusChanged, map[string]any{
			"ticketId":       ticketID,
			"status":         payload.Status,
			"previousStatus": outcome.PreviousStatus.String(),
		})
	})

	if cmd.IsInternal {
		return
	}

	vars := map[string]any{
		"ticketId":      ticketID,
		"subject":       t.Subject(),
		"responderName": cmd.Actor.DisplayName,
		"message":       payload.Message,
	}
	title := fmt.Sprintf("Nueva respuesta en ticket #%d", ticketID)
	body := fmt.Sprintf("%s: %s", cmd.Actor.DisplayName, excerpt(payload.Message, 160))

	if cmd.Actor.Role.IsStaff() {
		clientID := t.ClientID()
		uc.effects.Go(ctx, "ticket.client_notification", func(ctx context.Context) error {
			return uc.notify(ctx, &clientID, ticketID, title, body)
		})
		uc.effects.Go(ctx, "ticket.client_email", func(ctx context.Context) error {
			client, err := uc.userRepo.GetByID(ctx, clientID)
			if err != nil {
				return err
			}
			if client == nil {
				return fmt.Errorf("client %d not found", clientID)
			}
			clientVars := cloneVars(vars)
			clientVars["ticketUrl"] = uc.links.ClientTicket(ticketID)
			return uc.emails.Send(ctx, domainEmail.CodeTicketResponse, client.Email(), clientVars).Err()
		})
		return
	}

	// A client wrote: the assignee is the counterpart, or all staff when the
	// ticket is still unassigned.
	staffVars := cloneVars(vars)
	staffVars["ticketUrl"] = uc.links.StaffTicket(ticketID)

	if !t.IsAssigned() {
		uc.effects.Go(ctx, "ticket.staff_notification", func(ctx context.Context) error {
			return uc.notify(ctx, nil, ticketID, title, body)
		})
		uc.effects.Go(ctx, "ticket.staff_email", func(ctx context.Context) error {
			return uc.emails.SendToAdmin(ctx, domainEmail.CodeTicketResponse, staffVars).Err()
		})
		return
	}

	assigneeID := *t.AssignedTo()
	uc.effects.Go(ctx, "ticket.staff_notification", func(ctx context.Context) error {
		return uc.notify(ctx, &assigneeID, ticketID, title, body)
	})
	uc.effects.Go(ctx, "ticket.staff_email", func(ctx context.Context) error {
		staff, err := uc.userRepo.GetByID(ctx, assigneeID)
		if err != nil {
			return err
		}
		if staff == nil {
			return fmt.Errorf("assignee %d not found", assigneeID)
		}
		return uc.emails.Send(ctx, domainEmail.CodeTicketResponse, staff.Email(), staffVars).Err()
	})
}

func (uc *AddMessageUseCase) notify(ctx context.Context, target *uint, ticketID uint, title, body string) error {
	n, err := notification.NewNotification(notification.TypeTicketMessage, target, &ticketID, title, body)
	if err != nil {
		return err
	}
	return uc.notificationRepo.Create(ctx, n)
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
