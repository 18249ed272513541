package usecases

import (
	"context"
	"fmt"

	"github.com/cerberus-dev/cerberus/internal/application/lead/dto"
	"github.com/cerberus-dev/cerberus/internal/domain/lead"
	vo "github.com/cerberus-dev/cerberus/internal/domain/lead/valueobjects"
	"github.com/cerberus-dev/cerberus/internal/domain/notification"
	"github.com/cerberus-dev/cerberus/internal/shared/db"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
)

type ListLeadsUseCase struct {
	leadRepo lead.Repository
	logger   logger.Interface
}

func NewListLeadsUseCase(leadRepo lead.Repository, logger logger.Interface) *ListLeadsUseCase {
	return &ListLeadsUseCase{leadRepo: leadRepo, logger: logger}
}

func (uc *ListLeadsUseCase) Execute(ctx context.Context) ([]*dto.LeadDTO, error) {
	leads, err := uc.leadRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list leads", "error", err)
		return nil, err
	}
	return dto.ToLeadDTOs(leads), nil
}

type GetLeadUseCase struct {
	leadRepo lead.Repository
}

func NewGetLeadUseCase(leadRepo lead.Repository) *GetLeadUseCase {
	return &GetLeadUseCase{leadRepo: leadRepo}
}

func (uc *GetLeadUseCase) Execute(ctx context.Context, leadID uint) (*dto.LeadDTO, error) {
	l, err := loadLead(ctx, uc.leadRepo, leadID)
	if err != nil {
		return nil, err
	}
	return dto.ToLeadDTO(l), nil
}

type GetLeadSummaryUseCase struct {
	leadRepo lead.Repository
}

func NewGetLeadSummaryUseCase(leadRepo lead.Repository) *GetLeadSummaryUseCase {
	return &GetLeadSummaryUseCase{leadRepo: leadRepo}
}

func (uc *GetLeadSummaryUseCase) Execute(ctx context.Context) (*dto.SummaryDTO, error) {
	s, err := uc.leadRepo.Summary(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToSummaryDTO(s), nil
}

// ToggleLeadImportantUseCase flips the importance flag. Concurrent toggles
// are last-write-wins.
type ToggleLeadImportantUseCase struct {
	leadRepo lead.Repository
	logger   logger.Interface
}

func NewToggleLeadImportantUseCase(leadRepo lead.Repository, logger logger.Interface) *ToggleLeadImportantUseCase {
	return &ToggleLeadImportantUseCase{leadRepo: leadRepo, logger: logger}
}

func (uc *ToggleLeadImportantUseCase) Execute(ctx context.Context, leadID uint) (bool, error) {
	l, err := loadLead(ctx, uc.leadRepo, leadID)
	if err != nil {
		return false, err
	}
	important := l.ToggleImportant()
	if err := uc.leadRepo.Update(ctx, l); err != nil {
		return false, fmt.Errorf("failed to update lead: %w", err)
	}
	uc.logger.Infow("lead importance toggled", "lead_id", leadID, "important", important)
	return important, nil
}

type ChangeLeadStatusCommand struct {
	LeadID uint
	Status string
}

type ChangeLeadStatusUseCase struct {
	leadRepo lead.Repository
	logger   logger.Interface
}

func NewChangeLeadStatusUseCase(leadRepo lead.Repository, logger logger.Interface) *ChangeLeadStatusUseCase {
	return &ChangeLeadStatusUseCase{leadRepo: leadRepo, logger: logger}
}

func (uc *ChangeLeadStatusUseCase) Execute(ctx context.Context, cmd ChangeLeadStatusCommand) (*dto.LeadDTO, error) {
	status, err := vo.NewLeadStatus(cmd.Status)
	if err != nil {
		return nil, errors.NewValidationError("bad_status")
	}
	l, err := loadLead(ctx, uc.leadRepo, cmd.LeadID)
	if err != nil {
		return nil, err
	}
	if err := l.ChangeStatus(status); err != nil {
		return nil, errors.NewValidationError("bad_status")
	}
	if err := uc.leadRepo.Update(ctx, l); err != nil {
		return nil, fmt.Errorf("failed to update lead: %w", err)
	}
	uc.logger.Infow("lead status changed", "lead_id", cmd.LeadID, "status", status)
	return dto.ToLeadDTO(l), nil
}

type UpdateLeadNotesCommand struct {
	LeadID uint
	Notes  string
}

type UpdateLeadNotesUseCase struct {
	leadRepo lead.Repository
}

func NewUpdateLeadNotesUseCase(leadRepo lead.Repository) *UpdateLeadNotesUseCase {
	return &UpdateLeadNotesUseCase{leadRepo: leadRepo}
}

func (uc *UpdateLeadNotesUseCase) Execute(ctx context.Context, cmd UpdateLeadNotesCommand) (*dto.LeadDTO, error) {
	l, err := loadLead(ctx, uc.leadRepo, cmd.LeadID)
	if err != nil {
		return nil, err
	}
	l.UpdateNotes(cmd.Notes)
	if err := uc.leadRepo.Update(ctx, l); err != nil {
		return nil, fmt.Errorf("failed to update lead: %w", err)
	}
	return dto.ToLeadDTO(l), nil
}

// DeleteLeadUseCase removes a lead and the notifications pointing at it.
type DeleteLeadUseCase struct {
	leadRepo         lead.Repository
	notificationRepo notification.Repository
	txManager        db.TxRunner
	logger           logger.Interface
}

func NewDeleteLeadUseCase(
	leadRepo lead.Repository,
	notificationRepo notification.Repository,
	txManager db.TxRunner,
	logger logger.Interface,
) *DeleteLeadUseCase {
	return &DeleteLeadUseCase{
		leadRepo:         leadRepo,
		notificationRepo: notificationRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

func (uc *DeleteLeadUseCase) Execute(ctx context.Context, leadID uint) error {
	if _, err := loadLead(ctx, uc.leadRepo, leadID); err != nil {
		return err
	}

	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.notificationRepo.DeleteByReference(ctx, leadID, notification.TypeLead); err != nil {
			return err
		}
		return uc.leadRepo.Delete(ctx, leadID)
	})
	if err != nil {
		uc.logger.Errorw("failed to delete lead", "lead_id", leadID, "error", err)
		return fmt.Errorf("failed to delete lead: %w", err)
	}

	uc.logger.Infow("lead deleted", "lead_id", leadID)
	return nil
}

func loadLead(ctx context.Context, repo lead.Repository, id uint) (*lead.Lead, error) {
	l, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, errors.NewNotFoundError("not_found")
	}
	return l, nil
}
