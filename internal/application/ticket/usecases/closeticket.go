package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/cerberus-dev/cerberus/internal/application/common"
	"github.com/cerberus-dev/cerberus/internal/application/ticket/dto"
	domainEmail "github.com/cerberus-dev/cerberus/internal/domain/email"
	"github.com/cerberus-dev/cerberus/internal/domain/ticket"
	"github.com/cerberus-dev/cerberus/internal/domain/user"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/services"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/sideeffect"
)

// CloseTicketUseCase is the staff close action. The client is emailed.
type CloseTicketUseCase struct {
	ticketRepo  ticket.TicketRepository
	userRepo    user.Repository
	broadcaster common.TicketBroadcaster
	emails      common.EmailSender
	effects     sideeffect.Runner
	policy      authorization.Policy
	links       common.Links
	logger      logger.Interface
	now         func() time.Time
}

func NewCloseTicketUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	broadcaster common.TicketBroadcaster,
	emails common.EmailSender,
	effects sideeffect.Runner,
	policy authorization.Policy,
	links common.Links,
	logger logger.Interface,
) *CloseTicketUseCase {
	return &CloseTicketUseCase{
		ticketRepo:  ticketRepo,
		userRepo:    userRepo,
		broadcaster: broadcaster,
		emails:      emails,
		effects:     effects,
		policy:      policy,
		links:       links,
		logger:      logger,
		now:         time.Now,
	}
}

func (uc *CloseTicketUseCase) Execute(ctx context.Context, actor Actor, ticketID uint) (*dto.TicketDTO, error) {
	if !actor.Role.IsStaff() {
		return nil, errors.NewForbiddenError("forbidden")
	}
	if err := requireCapability(ctx, uc.policy, actor, authorization.ResourceTicket, authorization.ActionClose); err != nil {
		return nil, err
	}

	t, err := loadTicket(ctx, uc.ticketRepo, ticketID)
	if err != nil {
		return nil, err
	}
	previous := t.Status()
	t.Close(uc.now())

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to close ticket: %w", err)
	}

	uc.logger.Infow("ticket closed", "ticket_id", ticketID, "closed_by", actor.UserID)

	clientID := t.ClientID()
	subject := t.Subject()

	uc.effects.Go(ctx, "ticket.broadcast", func(ctx context.Context) error {
		return uc.broadcaster.BroadcastTicket(ctx, ticketID, services.TicketEventStatusChanged, map[string]any{
			"ticketId":       ticketID,
			"status":         t.Status().String(),
			"previousStatus": previous.String(),
		})
	})
	uc.effects.Go(ctx, "ticket.closed_email", func(ctx context.Context) error {
		client, err := uc.userRepo.GetByID(ctx, clientID)
		if err != nil {
			return err
		}
		if client == nil {
			return fmt.Errorf("client %d not found", clientID)
		}
		return uc.emails.Send(ctx, domainEmail.CodeTicketClosed, client.Email(), map[string]any{
			"ticketId":  ticketID,
			"subject":   subject,
			"ticketUrl": uc.links.ClientTicket(ticketID),
		}).Err()
	})

	return dto.ToTicketDTO(t), nil
}
