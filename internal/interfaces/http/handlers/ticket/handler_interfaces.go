package ticket

import (
	"context"

	"github.com/cerberus-dev/cerberus/internal/application/ticket/usecases"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/services"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
)

// Use case bundle for TicketHandler. Each field is the executor interface
// of one operation so tests can stub them independently.
type UseCases struct {
	Create            usecases.CreateTicketExecutor
	List              usecases.ListTicketsExecutor
	Stats             usecases.GetTicketStatsExecutor
	Get               usecases.GetTicketExecutor
	AddMessage        usecases.AddMessageExecutor
	Assign            usecases.AssignTicketExecutor
	Update            usecases.UpdateTicketExecutor
	Close             usecases.CloseTicketExecutor
	Delete            usecases.DeleteTicketExecutor
	ImprovementStatus usecases.ChangeImprovementStatusExecutor
	UploadAttachment  usecases.UploadAttachmentExecutor
}

// roomHub is the part of the ticket hub the socket handler drives.
type roomHub interface {
	Register(userID uint, role authorization.UserRole) *services.RoomConn
	Unregister(conn *services.RoomConn)
	Join(conn *services.RoomConn, ticketID uint)
	Leave(conn *services.RoomConn, ticketID uint)
}

type roomAccess interface {
	Execute(ctx context.Context, actor usecases.Actor, ticketID uint) error
}
