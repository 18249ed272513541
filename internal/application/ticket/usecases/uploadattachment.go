package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/cerberus-dev/cerberus/internal/application/ticket/dto"
	"github.com/cerberus-dev/cerberus/internal/domain/ticket"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/storage"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
)

type UploadAttachmentCommand struct {
	Actor     Actor
	TicketID  uint
	MessageID *uint
	File      *multipart.FileHeader
}

// UploadAttachmentUseCase stores a file on a ticket the actor can open.
type UploadAttachmentUseCase struct {
	ticketRepo     ticket.TicketRepository
	attachmentRepo ticket.AttachmentRepository
	uploads        UploadStore
	logger         logger.Interface
}

func NewUploadAttachmentUseCase(
	ticketRepo ticket.TicketRepository,
	attachmentRepo ticket.AttachmentRepository,
	uploads UploadStore,
	logger logger.Interface,
) *UploadAttachmentUseCase {
	return &UploadAttachmentUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		uploads:        uploads,
		logger:         logger,
	}
}

func (uc *UploadAttachmentUseCase) Execute(ctx context.Context, cmd UploadAttachmentCommand) (*dto.AttachmentDTO, error) {
	if cmd.File == nil {
		return nil, errors.NewValidationError("missing_file")
	}
	if _, err := loadVisibleTicket(ctx, uc.ticketRepo, cmd.TicketID, cmd.Actor); err != nil {
		return nil, err
	}

	stored, err := uc.uploads.Save(storage.CategoryTickets, cmd.File, storage.AttachmentExtensions)
	if err != nil {
		return nil, uploadError(err)
	}

	a := &ticket.Attachment{
		TicketID:     cmd.TicketID,
		MessageID:    cmd.MessageID,
		Filename:     stored.FileName,
		OriginalName: stored.OriginalName,
		FilePath:     stored.URL,
		FileSize:     stored.Size,
		MimeType:     stored.MimeType,
		UploadedBy:   cmd.Actor.UserID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.attachmentRepo.Create(ctx, a); err != nil {
		if rmErr := uc.uploads.Remove(stored.URL); rmErr != nil {
			uc.logger.Warnw("failed to remove orphaned upload", "path", stored.URL, "error", rmErr)
		}
		return nil, fmt.Errorf("failed to save attachment: %w", err)
	}

	uc.logger.Infow("ticket attachment uploaded", "ticket_id", cmd.TicketID, "attachment_id", a.ID, "size", a.FileSize)
	return dto.ToAttachmentDTO(a, cmd.Actor.DisplayName), nil
}

// uploadError maps storage rejections to client errors.
func uploadError(err error) error {
	switch {
	case stderrors.Is(err, storage.ErrFileTooLarge):
		return errors.NewValidationError("file_too_large")
	case stderrors.Is(err, storage.ErrFileTypeRejected), stderrors.Is(err, storage.ErrContentMismatched):
		return errors.NewValidationError("file_type_not_allowed")
	case stderrors.Is(err, storage.ErrFileEmpty):
		return errors.NewValidationError("missing_file")
	default:
		return fmt.Errorf("failed to store upload: %w", err)
	}
}
