package usecases

import (
	"context"

	"github.com/cerberus-dev/cerberus/internal/application/ticket/dto"
)

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) ([]*dto.TicketDTO, error)
}

type GetTicketStatsExecutor interface {
	Execute(ctx context.Context, actor Actor) (*dto.StatsDTO, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDetailDTO, error)
}

type CanAccessTicketExecutor interface {
	Execute(ctx context.Context, actor Actor, ticketID uint) error
}

type AddMessageExecutor interface {
	Execute(ctx context.Context, cmd AddMessageCommand) (*AddMessageResult, error)
}

type AssignTicketExecutor interface {
	Execute(ctx context.Context, actor Actor, ticketID uint) (*dto.TicketDTO, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error)
}

type CloseTicketExecutor interface {
	Execute(ctx context.Context, actor Actor, ticketID uint) (*dto.TicketDTO, error)
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, ticketID uint) error
}

type ChangeImprovementStatusExecutor interface {
	Execute(ctx context.Context, cmd ChangeImprovementStatusCommand) (*dto.TicketDTO, error)
}

type UploadAttachmentExecutor interface {
	Execute(ctx context.Context, cmd UploadAttachmentCommand) (*dto.AttachmentDTO, error)
}
