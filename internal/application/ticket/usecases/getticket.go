package usecases

import (
	"context"

	"github.com/cerberus-dev/cerberus/internal/application/ticket/dto"
	"github.com/cerberus-dev/cerberus/internal/domain/ticket"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
)

type GetTicketQuery struct {
	Actor    Actor
	TicketID uint
}

// GetTicketUseCase loads the ticket page. Internal notes are only returned
// to actors allowed to read them.
type GetTicketUseCase struct {
	ticketRepo     ticket.TicketRepository
	messageRepo    ticket.MessageRepository
	attachmentRepo ticket.AttachmentRepository
	policy         authorization.Policy
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	attachmentRepo ticket.AttachmentRepository,
	policy authorization.Policy,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo:     ticketRepo,
		messageRepo:    messageRepo,
		attachmentRepo: attachmentRepo,
		policy:         policy,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDetailDTO, error) {
	view, err := uc.ticketRepo.GetDetails(ctx, query.TicketID)
	if err != nil {
		return nil, err
	}
	if view == nil || view.Ticket == nil {
		return nil, errors.NewNotFoundError("not_found")
	}
	if !view.Ticket.VisibleTo(query.Actor.UserID, query.Actor.Role) {
		return nil, errors.NewForbiddenError("forbidden")
	}

	includeInternal := query.Actor.Role.IsStaff() &&
		uc.policy.Can(ctx, query.Actor.Role, authorization.ResourceTicketInternal, authorization.ActionRead)

	messages, err := uc.messageRepo.ListByTicket(ctx, query.TicketID, includeInternal)
	if err != nil {
		return nil, err
	}
	attachments, err := uc.attachmentRepo.ListByTicket(ctx, query.TicketID)
	if err != nil {
		return nil, err
	}

	return &dto.TicketDetailDTO{
		Ticket:      dto.ToTicketViewDTO(view),
		Messages:    dto.ToMessageDTOs(messages),
		Attachments: dto.ToAttachmentDTOs(attachments),
	}, nil
}

// CanAccessTicketUseCase answers whether an actor may watch a ticket room.
type CanAccessTicketUseCase struct {
	ticketRepo ticket.TicketRepository
}

func NewCanAccessTicketUseCase(ticketRepo ticket.TicketRepository) *CanAccessTicketUseCase {
	return &CanAccessTicketUseCase{ticketRepo: ticketRepo}
}

func (uc *CanAccessTicketUseCase) Execute(ctx context.Context, actor Actor, ticketID uint) error {
	_, err := loadVisibleTicket(ctx, uc.ticketRepo, ticketID, actor)
	return err
}
