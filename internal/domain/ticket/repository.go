package ticket

import (
	"context"
	"time"

	vo "github.com/cerberus-dev/cerberus/internal/domain/ticket/valueobjects"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
)

type TicketRepository interface {
	Create(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, id uint) (*Ticket, error)
	// GetByIDForUpdate loads the ticket and holds its row lock until the
	// surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id uint) (*Ticket, error)
	// ClaimIfUnassigned assigns the ticket to staffID in one conditional
	// write: only while it is unassigned or already held by staffID. A new
	// ticket moves to in_progress. It reports false when the row did not
	// qualify.
	ClaimIfUnassigned(ctx context.Context, id, staffID uint) (bool, error)
	// GetDetails loads the ticket with joined display fields.
	GetDetails(ctx context.Context, id uint) (*TicketView, error)
	// List applies the role visibility rules and sorts by priority rank, then
	// newest first.
	List(ctx context.Context, filter ListFilter) ([]*TicketView, error)
	Stats(ctx context.Context, scope Scope) (*Stats, error)
	// DeleteCascade removes the ticket, its messages, attachments and
	// notifications that reference it.
	DeleteCascade(ctx context.Context, id uint) ([]Attachment, error)
}

type MessageRepository interface {
	Create(ctx context.Context, m *Message) error
	// ListByTicket returns the thread oldest first. Internal notes are
	// dropped unless includeInternal is set.
	ListByTicket(ctx context.Context, ticketID uint, includeInternal bool) ([]*MessageView, error)
}

type AttachmentRepository interface {
	Create(ctx context.Context, a *Attachment) error
	ListByTicket(ctx context.Context, ticketID uint) ([]*AttachmentView, error)
}

// Scope is the viewer a listing is computed for.
type Scope struct {
	UserID uint
	Role   authorization.UserRole
	// Now anchors the seven-day cutoff for closed tickets in client lists.
	Now time.Time
}

type ListFilter struct {
	Scope
	Status   *vo.TicketStatus
	ClientID *uint
}

// TicketView is a ticket plus the names the list and detail screens show.
type TicketView struct {
	Ticket         *Ticket
	ClientUsername string
	ClientName     string
	ClientEmail    string
	ClientCompany  string
	AssignedName   string
	ServiceName    string
	ServiceDomain  string
	MessageCount   int64
}

type MessageView struct {
	Message     *Message
	Username    string
	DisplayName string
	Role        string
}

type AttachmentView struct {
	Attachment
	Username    string
	DisplayName string
}

type Stats struct {
	Total          int64
	New            int64
	InProgress     int64
	WaitingClient  int64
	WaitingSupport int64
	Closed         int64
}
