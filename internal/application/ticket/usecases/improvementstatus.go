package usecases

import (
	"context"
	"fmt"

	"github.com/cerberus-dev/cerberus/internal/application/common"
	"github.com/cerberus-dev/cerberus/internal/application/ticket/dto"
	domainEmail "github.com/cerberus-dev/cerberus/internal/domain/email"
	"github.com/cerberus-dev/cerberus/internal/domain/ticket"
	vo "github.com/cerberus-dev/cerberus/internal/domain/ticket/valueobjects"
	"github.com/cerberus-dev/cerberus/internal/domain/user"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/sideeffect"
)

type ChangeImprovementStatusCommand struct {
	Actor    Actor
	TicketID uint
	Status   string
}

// ChangeImprovementStatusUseCase moves an improvement request through
// pending, in_progress and completed and tells the client.
type ChangeImprovementStatusUseCase struct {
	ticketRepo ticket.TicketRepository
	userRepo   user.Repository
	emails     common.EmailSender
	effects    sideeffect.Runner
	links      common.Links
	logger     logger.Interface
}

func NewChangeImprovementStatusUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	emails common.EmailSender,
	effects sideeffect.Runner,
	links common.Links,
	logger logger.Interface,
) *ChangeImprovementStatusUseCase {
	return &ChangeImprovementStatusUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		emails:     emails,
		effects:    effects,
		links:      links,
		logger:     logger,
	}
}

func (uc *ChangeImprovementStatusUseCase) Execute(ctx context.Context, cmd ChangeImprovementStatusCommand) (*dto.TicketDTO, error) {
	if !cmd.Actor.Role.IsStaff() {
		return nil, errors.NewForbiddenError("forbidden")
	}
	status, err := vo.NewImprovementStatus(cmd.Status)
	if err != nil {
		return nil, errors.NewValidationError("bad_status")
	}

	t, err := loadTicket(ctx, uc.ticketRepo, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	if t.Category() != vo.CategoryImprovement {
		return nil, errors.NewValidationError("not_improvement")
	}

	old := ""
	if s := t.ImprovementStatus(); s != nil {
		old = s.String()
	}
	if err := t.ChangeImprovementStatus(status); err != nil {
		return nil, errors.NewValidationError("bad_status")
	}
	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	uc.logger.Infow("improvement status changed", "ticket_id", t.ID(), "from", old, "to", status)

	if old != status.String() {
		ticketID := t.ID()
		clientID := t.ClientID()
		subject := t.Subject()
		uc.effects.Go(ctx, "ticket.improvement_email", func(ctx context.Context) error {
			client, err := uc.userRepo.GetByID(ctx, clientID)
			if err != nil {
				return err
			}
			if client == nil {
				return fmt.Errorf("client %d not found", clientID)
			}
			return uc.emails.Send(ctx, domainEmail.CodeImprovementStatus, client.Email(), map[string]any{
				"ticketId":  ticketID,
				"subject":   subject,
				"oldStatus": old,
				"newStatus": status.String(),
				"ticketUrl": uc.links.ClientTicket(ticketID),
			}).Err()
		})
	}

	return dto.ToTicketDTO(t), nil
}
