package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/cerberus-dev/cerberus/internal/application/ticket/dto"
	"github.com/cerberus-dev/cerberus/internal/domain/ticket"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
)

// AssignTicketUseCase lets a staff member claim a ticket. Claiming a ticket
// held by someone else is a conflict, never a silent reassignment.
type AssignTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	policy     authorization.Policy
	logger     logger.Interface
}

func NewAssignTicketUseCase(ticketRepo ticket.TicketRepository, policy authorization.Policy, logger logger.Interface) *AssignTicketUseCase {
	return &AssignTicketUseCase{ticketRepo: ticketRepo, policy: policy, logger: logger}
}

func (uc *AssignTicketUseCase) Execute(ctx context.Context, actor Actor, ticketID uint) (*dto.TicketDTO, error) {
	if !actor.Role.IsStaff() {
		return nil, errors.NewForbiddenError("forbidden")
	}
	if err := requireCapability(ctx, uc.policy, actor, authorization.ResourceTicket, authorization.ActionAssign); err != nil {
		return nil, err
	}

	t, err := loadTicket(ctx, uc.ticketRepo, ticketID)
	if err != nil {
		return nil, err
	}
	if err := t.Claim(actor.UserID); err != nil {
		if stderrors.Is(err, ticket.ErrAlreadyAssigned) {
			return nil, uc.conflict(ticketID, actor.UserID, t)
		}
		return nil, errors.NewValidationError(err.Error())
	}

	// The in-memory check above can be stale; the conditional write decides.
	claimed, err := uc.ticketRepo.ClaimIfUnassigned(ctx, ticketID, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to claim ticket: %w", err)
	}

	current, err := loadTicket(ctx, uc.ticketRepo, ticketID)
	if err != nil {
		return nil, err
	}
	if !claimed && !current.IsAssignedTo(actor.UserID) {
		return nil, uc.conflict(ticketID, actor.UserID, current)
	}

	uc.logger.Infow("ticket claimed", "ticket_id", ticketID, "user_id", actor.UserID)
	return dto.ToTicketDTO(current), nil
}

func (uc *AssignTicketUseCase) conflict(ticketID, userID uint, t *ticket.Ticket) error {
	var holder uint
	if t.AssignedTo() != nil {
		holder = *t.AssignedTo()
	}
	uc.logger.Warnw("ticket claim rejected",
		"ticket_id", ticketID,
		"user_id", userID,
		"assigned_to", holder,
	)
	return errors.NewConflictError("already_assigned")
}
