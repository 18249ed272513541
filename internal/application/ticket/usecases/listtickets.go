package usecases

import (
	"context"
	"time"

	"github.com/cerberus-dev/cerberus/internal/application/ticket/dto"
	"github.com/cerberus-dev/cerberus/internal/domain/ticket"
	vo "github.com/cerberus-dev/cerberus/internal/domain/ticket/valueobjects"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
)

type ListTicketsQuery struct {
	Actor    Actor
	Status   string
	ClientID *uint
}

// ListTicketsUseCase returns the actor's visible tickets, most urgent first.
type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
	now        func() time.Time
}

func NewListTicketsUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{ticketRepo: ticketRepo, logger: logger, now: time.Now}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) ([]*dto.TicketDTO, error) {
	filter := ticket.ListFilter{
		Scope: ticket.Scope{UserID: query.Actor.UserID, Role: query.Actor.Role, Now: uc.now().UTC()},
	}
	if query.Status != "" {
		status, err := vo.NewTicketStatus(query.Status)
		if err != nil {
			return nil, errors.NewValidationError("bad_status")
		}
		filter.Status = &status
	}
	if query.ClientID != nil && query.Actor.Role.IsStaff() {
		filter.ClientID = query.ClientID
	}

	views, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "user_id", query.Actor.UserID, "error", err)
		return nil, err
	}
	return dto.ToTicketViewDTOs(views), nil
}

type GetTicketStatsUseCase struct {
	ticketRepo ticket.TicketRepository
	now        func() time.Time
}

func NewGetTicketStatsUseCase(ticketRepo ticket.TicketRepository) *GetTicketStatsUseCase {
	return &GetTicketStatsUseCase{ticketRepo: ticketRepo, now: time.Now}
}

func (uc *GetTicketStatsUseCase) Execute(ctx context.Context, actor Actor) (*dto.StatsDTO, error) {
	stats, err := uc.ticketRepo.Stats(ctx, ticket.Scope{UserID: actor.UserID, Role: actor.Role, Now: uc.now().UTC()})
	if err != nil {
		return nil, err
	}
	return dto.ToStatsDTO(stats), nil
}
