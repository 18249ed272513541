// Package notification models back-office notifications. A notification
// either targets one user or, with no target, is a broadcast shown to every
// staff member.
package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
)

type Type string

const (
	TypeLead          Type = "lead"
	TypeTicket        Type = "ticket"
	TypeTicketMessage Type = "ticket_message"
	TypeStorage       Type = "storage"
	TypeComment       Type = "comment"
	TypeSystem        Type = "system"
)

var validTypes = map[Type]bool{
	TypeLead:          true,
	TypeTicket:        true,
	TypeTicketMessage: true,
	TypeStorage:       true,
	TypeComment:       true,
	TypeSystem:        true,
}

func (t Type) IsValid() bool {
	return validTypes[t]
}

type Notification struct {
	id           uint
	nType        Type
	targetUserID *uint
	referenceID  *uint
	title        string
	body         string
	isRead       bool
	createdAt    time.Time
}

// NewNotification builds a notification for targetUserID, or a broadcast
// when targetUserID is nil.
func NewNotification(nType Type, targetUserID *uint, referenceID *uint, title, body string) (*Notification, error) {
	if !nType.IsValid() {
		return nil, fmt.Errorf("invalid notification type: %s", nType)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		title = title[:200]
	}
	if targetUserID != nil && *targetUserID == 0 {
		targetUserID = nil
	}
	return &Notification{
		nType:        nType,
		targetUserID: targetUserID,
		referenceID:  referenceID,
		title:        title,
		body:         body,
		createdAt:    time.Now().UTC(),
	}, nil
}

func ReconstructNotification(id uint, nType Type, targetUserID, referenceID *uint, title, body string, isRead bool, createdAt time.Time) *Notification {
	return &Notification{
		id:           id,
		nType:        nType,
		targetUserID: targetUserID,
		referenceID:  referenceID,
		title:        title,
		body:         body,
		isRead:       isRead,
		createdAt:    createdAt,
	}
}

func (n *Notification) ID() uint             { return n.id }
func (n *Notification) Type() Type           { return n.nType }
func (n *Notification) TargetUserID() *uint  { return n.targetUserID }
func (n *Notification) ReferenceID() *uint   { return n.referenceID }
func (n *Notification) Title() string        { return n.title }
func (n *Notification) Body() string         { return n.body }
func (n *Notification) IsRead() bool         { return n.isRead }
func (n *Notification) CreatedAt() time.Time { return n.createdAt }
func (n *Notification) IsBroadcast() bool    { return n.targetUserID == nil }

func (n *Notification) SetID(id uint) error {
	if n.id != 0 {
		return fmt.Errorf("notification ID is already set")
	}
	n.id = id
	return nil
}

// Viewer is whoever reads the notification list.
type Viewer struct {
	UserID uint
	Role   authorization.UserRole
}

// SeesBroadcasts reports whether broadcast rows belong to the viewer's set.
// Broadcasts are staff announcements; clients only see rows aimed at them.
func (v Viewer) SeesBroadcasts() bool {
	return v.Role.IsStaff()
}

// VisibleTo reports whether the notification is in the viewer's set.
func (n *Notification) VisibleTo(v Viewer) bool {
	if n.IsBroadcast() {
		return v.SeesBroadcasts()
	}
	return *n.targetUserID == v.UserID
}
