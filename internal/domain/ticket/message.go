package ticket

import (
	"fmt"
	"strings"
	"time"
)

// Message is one entry of a ticket thread. Messages are append-only.
type Message struct {
	id         uint
	ticketID   uint
	userID     uint
	body       string
	isInternal bool
	createdAt  time.Time
}

func NewMessage(ticketID, userID uint, body string, isInternal bool) (*Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("message is required")
	}
	if len(body) > 20000 {
		return nil, fmt.Errorf("message exceeds maximum length of 20000 characters")
	}
	if userID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	return &Message{
		ticketID:   ticketID,
		userID:     userID,
		body:       body,
		isInternal: isInternal,
		createdAt:  time.Now().UTC(),
	}, nil
}

func ReconstructMessage(id, ticketID, userID uint, body string, isInternal bool, createdAt time.Time) *Message {
	return &Message{
		id:         id,
		ticketID:   ticketID,
		userID:     userID,
		body:       body,
		isInternal: isInternal,
		createdAt:  createdAt,
	}
}

func (m *Message) ID() uint             { return m.id }
func (m *Message) TicketID() uint       { return m.ticketID }
func (m *Message) UserID() uint         { return m.userID }
func (m *Message) Body() string         { return m.body }
func (m *Message) IsInternal() bool     { return m.isInternal }
func (m *Message) CreatedAt() time.Time { return m.createdAt }

func (m *Message) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("message ID is already set")
	}
	m.id = id
	return nil
}

// BindTicket sets the ticket of a message created before its ticket had an ID.
func (m *Message) BindTicket(ticketID uint) {
	m.ticketID = ticketID
}

// Attachment is an uploaded file referenced from a ticket or one of its
// messages.
type Attachment struct {
	ID           uint
	TicketID     uint
	MessageID    *uint
	Filename     string
	OriginalName string
	FilePath     string
	FileSize     int64
	MimeType     string
	UploadedBy   uint
	CreatedAt    time.Time
}
