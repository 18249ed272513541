package lead

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/cerberus-dev/cerberus/internal/domain/lead/valueobjects"
)

// Lead is a public contact-form submission.
type Lead struct {
	id          uint
	name        string
	email       string
	phone       string
	projectType string
	message     string
	status      vo.LeadStatus
	important   bool
	notes       string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewLead trims every field and rejects blank required ones. New leads start
// in status new.
func NewLead(name, email, phone, projectType, message string) (*Lead, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)
	if name == "" || email == "" || message == "" {
		return nil, fmt.Errorf("name, email and message are required")
	}
	if len(message) > 10000 {
		return nil, fmt.Errorf("message exceeds maximum length of 10000 characters")
	}

	now := time.Now().UTC()
	return &Lead{
		name:        name,
		email:       email,
		phone:       strings.TrimSpace(phone),
		projectType: strings.TrimSpace(projectType),
		message:     message,
		status:      vo.StatusNew,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructLead(
	id uint,
	name, email, phone, projectType, message string,
	status vo.LeadStatus,
	important bool,
	notes string,
	createdAt, updatedAt time.Time,
) (*Lead, error) {
	if id == 0 {
		return nil, fmt.Errorf("lead ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}
	return &Lead{
		id:          id,
		name:        name,
		email:       email,
		phone:       phone,
		projectType: projectType,
		message:     message,
		status:      status,
		important:   important,
		notes:       notes,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (l *Lead) ID() uint              { return l.id }
func (l *Lead) Name() string          { return l.name }
func (l *Lead) Email() string         { return l.email }
func (l *Lead) Phone() string         { return l.phone }
func (l *Lead) ProjectType() string   { return l.projectType }
func (l *Lead) Message() string       { return l.message }
func (l *Lead) Status() vo.LeadStatus { return l.status }
func (l *Lead) IsImportant() bool     { return l.important }
func (l *Lead) Notes() string         { return l.notes }
func (l *Lead) CreatedAt() time.Time  { return l.createdAt }
func (l *Lead) UpdatedAt() time.Time  { return l.updatedAt }

func (l *Lead) SetID(id uint) error {
	if l.id != 0 {
		return fmt.Errorf("lead ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("lead ID cannot be zero")
	}
	l.id = id
	return nil
}

// ToggleImportant flips the flag and returns the new value.
func (l *Lead) ToggleImportant() bool {
	l.important = !l.important
	l.updatedAt = time.Now().UTC()
	return l.important
}

func (l *Lead) ChangeStatus(status vo.LeadStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid status: %s", status)
	}
	l.status = status
	l.updatedAt = time.Now().UTC()
	return nil
}

func (l *Lead) UpdateNotes(notes string) {
	l.notes = notes
	l.updatedAt = time.Now().UTC()
}
