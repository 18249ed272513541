package usecases

import (
	"context"
	"mime/multipart"

	"github.com/cerberus-dev/cerberus/internal/domain/ticket"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/storage"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
)

// Actor is the authenticated user a ticket operation runs for.
type Actor struct {
	UserID      uint
	Role        authorization.UserRole
	DisplayName string
}

// UploadStore saves and removes uploaded files.
type UploadStore interface {
	Save(category string, fh *multipart.FileHeader, allowed []string) (*storage.StoredFile, error)
	Remove(url string) error
}

func loadTicket(ctx context.Context, repo ticket.TicketRepository, id uint) (*ticket.Ticket, error) {
	t, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.NewNotFoundError("not_found")
	}
	return t, nil
}

// loadVisibleTicket loads a ticket and rejects actors who may not open it.
func loadVisibleTicket(ctx context.Context, repo ticket.TicketRepository, id uint, actor Actor) (*ticket.Ticket, error) {
	t, err := loadTicket(ctx, repo, id)
	if err != nil {
		return nil, err
	}
	if !t.VisibleTo(actor.UserID, actor.Role) {
		return nil, errors.NewForbiddenError("forbidden")
	}
	return t, nil
}

func requireCapability(ctx context.Context, policy authorization.Policy, actor Actor, res authorization.Resource, act authorization.Action) error {
	if policy == nil || policy.Can(ctx, actor.Role, res, act) {
		return nil
	}
	return errors.NewForbiddenError("forbidden")
}
