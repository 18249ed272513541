package handlers

import (
	"context"

	"github.com/cerberus-dev/cerberus/internal/application/lead/dto"
	"github.com/cerberus-dev/cerberus/internal/application/lead/usecases"
)

// Use case interfaces for LeadHandler.

type submitLeadUseCase interface {
	Execute(ctx context.Context, cmd usecases.SubmitLeadCommand) (*usecases.SubmitLeadResult, error)
}

type listLeadsUseCase interface {
	Execute(ctx context.Context) ([]*dto.LeadDTO, error)
}

type getLeadUseCase interface {
	Execute(ctx context.Context, leadID uint) (*dto.LeadDTO, error)
}

type getLeadSummaryUseCase interface {
	Execute(ctx context.Context) (*dto.SummaryDTO, error)
}

type toggleLeadImportantUseCase interface {
	Execute(ctx context.Context, leadID uint) (bool, error)
}

type changeLeadStatusUseCase interface {
	Execute(ctx context.Context, cmd usecases.ChangeLeadStatusCommand) (*dto.LeadDTO, error)
}

type updateLeadNotesUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateLeadNotesCommand) (*dto.LeadDTO, error)
}

type deleteLeadUseCase interface {
	Execute(ctx context.Context, leadID uint) error
}
