package usecases

import (
	"context"
	"fmt"

	"github.com/cerberus-dev/cerberus/internal/domain/ticket"
	"github.com/cerberus-dev/cerberus/internal/shared/db"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
)

// DeleteTicketUseCase removes a ticket with its messages, attachments and
// notifications, then deletes the attachment files.
type DeleteTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	uploads    UploadStore
	txManager  db.TxRunner
	logger     logger.Interface
}

func NewDeleteTicketUseCase(ticketRepo ticket.TicketRepository, uploads UploadStore, txManager db.TxRunner, logger logger.Interface) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{ticketRepo: ticketRepo, uploads: uploads, txManager: txManager, logger: logger}
}

func (uc *DeleteTicketUseCase) Execute(ctx context.Context, ticketID uint) error {
	if _, err := loadTicket(ctx, uc.ticketRepo, ticketID); err != nil {
		return err
	}

	var removed []ticket.Attachment
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		removed, err = uc.ticketRepo.DeleteCascade(txCtx, ticketID)
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to delete ticket", "ticket_id", ticketID, "error", err)
		return fmt.Errorf("failed to delete ticket: %w", err)
	}

	// Files go last; a leftover file is harmless, a dangling row is not.
	for _, a := range removed {
		if err := uc.uploads.Remove(a.FilePath); err != nil {
			uc.logger.Warnw("failed to remove attachment file", "ticket_id", ticketID, "path", a.FilePath, "error", err)
		}
	}

	uc.logger.Infow("ticket deleted", "ticket_id", ticketID, "attachments", len(removed))
	return nil
}
