package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/cerberus-dev/cerberus/internal/application/common"
	"github.com/cerberus-dev/cerberus/internal/application/ticket/dto"
	"github.com/cerberus-dev/cerberus/internal/domain/ticket"
	vo "github.com/cerberus-dev/cerberus/internal/domain/ticket/valueobjects"
	"github.com/cerberus-dev/cerberus/internal/domain/user"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/services"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/sideeffect"
)

// UpdateTicketCommand is the administrative edit. Nil fields are left
// unchanged; AssignedTo pointing at zero clears the assignee.
type UpdateTicketCommand struct {
	TicketID   uint
	Status     *string
	Priority   *string
	AssignedTo *uint
}

type UpdateTicketUseCase struct {
	ticketRepo  ticket.TicketRepository
	userRepo    user.Repository
	broadcaster common.TicketBroadcaster
	effects     sideeffect.Runner
	logger      logger.Interface
	now         func() time.Time
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	broadcaster common.TicketBroadcaster,
	effects sideeffect.Runner,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo:  ticketRepo,
		userRepo:    userRepo,
		broadcaster: broadcaster,
		effects:     effects,
		logger:      logger,
		now:         time.Now,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error) {
	t, err := loadTicket(ctx, uc.ticketRepo, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	previous := t.Status()

	if cmd.Status != nil {
		status, err := vo.NewTicketStatus(*cmd.Status)
		if err != nil {
			return nil, errors.NewValidationError("bad_status")
		}
		if err := t.SetStatus(status, uc.now()); err != nil {
			return nil, errors.NewValidationError("bad_status")
		}
	}
	if cmd.Priority != nil {
		priority, err := vo.NewPriority(*cmd.Priority)
		if err != nil {
			return nil, errors.NewValidationError("bad_priority")
		}
		if err := t.ChangePriority(priority); err != nil {
			return nil, errors.NewValidationError("bad_priority")
		}
	}
	if cmd.AssignedTo != nil {
		if *cmd.AssignedTo != 0 {
			staff, err := uc.userRepo.GetByID(ctx, *cmd.AssignedTo)
			if err != nil {
				return nil, fmt.Errorf("failed to load assignee: %w", err)
			}
			if staff == nil || !staff.IsStaff() {
				return nil, errors.NewValidationError("bad_assignee")
			}
		}
		t.Reassign(cmd.AssignedTo)
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	uc.logger.Infow("ticket updated", "ticket_id", t.ID(), "status", t.Status(), "priority", t.Priority())

	if t.Status() != previous {
		ticketID := t.ID()
		status := t.Status().String()
		uc.effects.Go(ctx, "ticket.broadcast", func(ctx context.Context) error {
			return uc.broadcaster.BroadcastTicket(ctx, ticketID, services.TicketEventStatusChanged, map[string]any{
				"ticketId":       ticketID,
				"status":         status,
				"previousStatus": previous.String(),
			})
		})
	}

	return dto.ToTicketDTO(t), nil
}
