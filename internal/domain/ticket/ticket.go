package ticket

import (
	"errors"
	"fmt"
	"strings"
	"time"

	vo "github.com/cerberus-dev/cerberus/internal/domain/ticket/valueobjects"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
)

// ClosedVisibleToClient is how long a closed ticket stays in a client's list.
const ClosedVisibleToClient = 7 * 24 * time.Hour

var ErrAlreadyAssigned = errors.New("ticket is already assigned to another staff member")

type Ticket struct {
	id                uint
	subject           string
	status            vo.TicketStatus
	priority          vo.Priority
	category          vo.Category
	improvementStatus *vo.ImprovementStatus
	clientID          uint
	assignedTo        *uint
	serviceID         *uint
	createdBy         uint
	closedAt          *time.Time
	createdAt         time.Time
	updatedAt         time.Time
}

// NewTicket opens a ticket in status new. Improvement tickets start with
// improvement status pending.
func NewTicket(
	subject string,
	category vo.Category,
	priority vo.Priority,
	clientID uint,
	createdBy uint,
	serviceID *uint,
) (*Ticket, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, fmt.Errorf("subject is required")
	}
	if len(subject) > 200 {
		return nil, fmt.Errorf("subject exceeds maximum length of 200 characters")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if clientID == 0 {
		return nil, fmt.Errorf("client ID is required")
	}

	now := time.Now().UTC()
	t := &Ticket{
		subject:   subject,
		status:    vo.StatusNew,
		priority:  priority,
		category:  category,
		clientID:  clientID,
		serviceID: serviceID,
		createdBy: createdBy,
		createdAt: now,
		updatedAt: now,
	}
	if category == vo.CategoryImprovement {
		pending := vo.ImprovementPending
		t.improvementStatus = &pending
	}
	return t, nil
}

func ReconstructTicket(
	id uint,
	subject string,
	status vo.TicketStatus,
	priority vo.Priority,
	category vo.Category,
	improvementStatus *vo.ImprovementStatus,
	clientID uint,
	assignedTo *uint,
	serviceID *uint,
	createdBy uint,
	closedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category")
	}
	return &Ticket{
		id:                id,
		subject:           subject,
		status:            status,
		priority:          priority,
		category:          category,
		improvementStatus: improvementStatus,
		clientID:          clientID,
		assignedTo:        assignedTo,
		serviceID:         serviceID,
		createdBy:         createdBy,
		closedAt:          closedAt,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (t *Ticket) ID() uint                                 { return t.id }
func (t *Ticket) Subject() string                          { return t.subject }
func (t *Ticket) Status() vo.TicketStatus                  { return t.status }
func (t *Ticket) Priority() vo.Priority                    { return t.priority }
func (t *Ticket) Category() vo.Category                    { return t.category }
func (t *Ticket) ImprovementStatus() *vo.ImprovementStatus { return t.improvementStatus }
func (t *Ticket) ClientID() uint                           { return t.clientID }
func (t *Ticket) AssignedTo() *uint                        { return t.assignedTo }
func (t *Ticket) ServiceID() *uint                         { return t.serviceID }
func (t *Ticket) CreatedBy() uint                          { return t.createdBy }
func (t *Ticket) ClosedAt() *time.Time                     { return t.closedAt }
func (t *Ticket) CreatedAt() time.Time                     { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time                     { return t.updatedAt }

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Ticket) IsAssigned() bool {
	return t.assignedTo != nil && *t.assignedTo != 0
}

func (t *Ticket) IsAssignedTo(userID uint) bool {
	return t.IsAssigned() && *t.assignedTo == userID
}

// MessageOutcome reports what RecordMessage changed on the ticket.
type MessageOutcome struct {
	PreviousStatus vo.TicketStatus
	StatusChanged  bool
	AutoAssigned   bool
}

// RecordMessage applies the consequences of a new message to the ticket.
//
// The status follows the author: a client reply means staff owes an answer
// (waiting_support), a visible staff reply means the client does
// (waiting_client), and an internal note changes nothing. A closed ticket
// keeps its status; only an explicit update reopens it. Staff replying to an
// unassigned ticket take it over.
func (t *Ticket) RecordMessage(authorID uint, authorRole authorization.UserRole, isInternal bool) MessageOutcome {
	out := MessageOutcome{PreviousStatus: t.status}

	if authorRole.IsStaff() && !t.IsAssigned() {
		id := authorID
		t.assignedTo = &id
		out.AutoAssigned = true
	}

	if !t.status.IsClosed() {
		next := t.status
		switch {
		case authorRole.IsClient():
			next = vo.StatusWaitingSupport
		case authorRole.IsStaff() && !isInternal:
			next = vo.StatusWaitingClient
		}
		if next != t.status {
			t.status = next
			out.StatusChanged = true
		}
	}

	t.updatedAt = time.Now().UTC()
	return out
}

// Claim assigns the ticket to staffID. Claiming a ticket held by someone else
// fails with ErrAlreadyAssigned; a new ticket moves to in_progress.
func (t *Ticket) Claim(staffID uint) error {
	if staffID == 0 {
		return fmt.Errorf("staff ID cannot be zero")
	}
	if t.IsAssigned() && *t.assignedTo != staffID {
		return ErrAlreadyAssigned
	}
	id := staffID
	t.assignedTo = &id
	if t.status.IsNew() {
		t.status = vo.StatusInProgress
	}
	t.updatedAt = time.Now().UTC()
	return nil
}

// Close stamps the close time. Closing twice keeps the first stamp.
func (t *Ticket) Close(now time.Time) {
	if t.status.IsClosed() && t.closedAt != nil {
		return
	}
	t.status = vo.StatusClosed
	at := now.UTC()
	t.closedAt = &at
	t.updatedAt = at
}

// SetStatus is the administrative override. Entering closed stamps closedAt,
// leaving closed clears it.
func (t *Ticket) SetStatus(status vo.TicketStatus, now time.Time) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid status: %s", status)
	}
	if status.IsClosed() {
		t.Close(now)
		return nil
	}
	t.status = status
	t.closedAt = nil
	t.updatedAt = now.UTC()
	return nil
}

func (t *Ticket) ChangePriority(p vo.Priority) error {
	if !p.IsValid() {
		return fmt.Errorf("invalid priority: %s", p)
	}
	t.priority = p
	t.updatedAt = time.Now().UTC()
	return nil
}

// Reassign sets or clears (nil or zero) the assignee without the claim check.
func (t *Ticket) Reassign(staffID *uint) {
	if staffID == nil || *staffID == 0 {
		t.assignedTo = nil
	} else {
		id := *staffID
		t.assignedTo = &id
	}
	t.updatedAt = time.Now().UTC()
}

func (t *Ticket) ChangeImprovementStatus(s vo.ImprovementStatus) error {
	if !s.IsValid() {
		return fmt.Errorf("invalid improvement status: %s", s)
	}
	t.improvementStatus = &s
	t.updatedAt = time.Now().UTC()
	return nil
}

// VisibleTo decides whether a user may open the ticket. Staff may open any
// ticket; clients only their own.
func (t *Ticket) VisibleTo(userID uint, role authorization.UserRole) bool {
	if role.IsStaff() {
		return true
	}
	return t.clientID == userID
}

// HiddenFromClientList reports whether a closed ticket aged out of the
// client's ticket list.
func (t *Ticket) HiddenFromClientList(now time.Time) bool {
	if !t.status.IsClosed() || t.closedAt == nil {
		return false
	}
	return now.Sub(*t.closedAt) > ClosedVisibleToClient
}
