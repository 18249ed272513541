package dto

import (
	"time"

	"github.com/cerberus-dev/cerberus/internal/domain/ticket"
)

type TicketDTO struct {
	ID                uint       `json:"id"`
	Subject           string     `json:"subject"`
	Status            string     `json:"status"`
	Priority          string     `json:"priority"`
	Category          string     `json:"category"`
	ImprovementStatus *string    `json:"improvementStatus"`
	ClientID          uint       `json:"clientId"`
	AssignedTo        *uint      `json:"assignedTo"`
	ServiceID         *uint      `json:"serviceId"`
	CreatedBy         uint       `json:"createdBy"`
	ClosedAt          *time.Time `json:"closedAt"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`

	ClientUsername string `json:"clientUsername,omitempty"`
	ClientName     string `json:"clientName,omitempty"`
	ClientEmail    string `json:"clientEmail,omitempty"`
	ClientCompany  string `json:"clientCompany,omitempty"`
	AssignedName   string `json:"assignedName,omitempty"`
	ServiceName    string `json:"serviceName,omitempty"`
	ServiceDomain  string `json:"serviceDomain,omitempty"`
	MessageCount   int64  `json:"messageCount"`
}

type MessageDTO struct {
	ID          uint      `json:"id"`
	TicketID    uint      `json:"ticketId"`
	UserID      uint      `json:"userId"`
	Message     string    `json:"message"`
	IsInternal  bool      `json:"isInternal"`
	Username    string    `json:"username,omitempty"`
	DisplayName string    `json:"displayName,omitempty"`
	Role        string    `json:"role,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type AttachmentDTO struct {
	ID           uint      `json:"id"`
	TicketID     uint      `json:"ticketId"`
	MessageID    *uint     `json:"messageId"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	URL          string    `json:"url"`
	FileSize     int64     `json:"fileSize"`
	MimeType     string    `json:"mimeType"`
	UploadedBy   uint      `json:"uploadedBy"`
	UploaderName string    `json:"uploaderName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TicketDetailDTO is the ticket page: the ticket, its thread and files.
type TicketDetailDTO struct {
	Ticket      *TicketDTO       `json:"ticket"`
	Messages    []*MessageDTO    `json:"messages"`
	Attachments []*AttachmentDTO `json:"attachments"`
}

type StatsDTO struct {
	Total          int64 `json:"total"`
	New            int64 `json:"new"`
	InProgress     int64 `json:"inProgress"`
	WaitingClient  int64 `json:"waitingClient"`
	WaitingSupport int64 `json:"waitingSupport"`
	Closed         int64 `json:"closed"`
}

// RoomMessageDTO is the payload of a new-message room event.
type RoomMessageDTO struct {
	ID          uint      `json:"id"`
	TicketID    uint      `json:"ticketId"`
	Message     string    `json:"message"`
	IsInternal  bool      `json:"isInternal"`
	UserID      uint      `json:"userId"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}
	d := &TicketDTO{
		ID:         t.ID(),
		Subject:    t.Subject(),
		Status:     t.Status().String(),
		Priority:   t.Priority().String(),
		Category:   t.Category().String(),
		ClientID:   t.ClientID(),
		AssignedTo: t.AssignedTo(),
		ServiceID:  t.ServiceID(),
		CreatedBy:  t.CreatedBy(),
		ClosedAt:   t.ClosedAt(),
		CreatedAt:  t.CreatedAt(),
		UpdatedAt:  t.UpdatedAt(),
	}
	if s := t.ImprovementStatus(); s != nil {
		v := s.String()
		d.ImprovementStatus = &v
	}
	return d
}

func ToTicketViewDTO(v *ticket.TicketView) *TicketDTO {
	if v == nil {
		return nil
	}
	d := ToTicketDTO(v.Ticket)
	d.ClientUsername = v.ClientUsername
	d.ClientName = v.ClientName
	d.ClientEmail = v.ClientEmail
	d.ClientCompany = v.ClientCompany
	d.AssignedName = v.AssignedName
	d.ServiceName = v.ServiceName
	d.ServiceDomain = v.ServiceDomain
	d.MessageCount = v.MessageCount
	return d
}

func ToTicketViewDTOs(views []*ticket.TicketView) []*TicketDTO {
	out := make([]*TicketDTO, 0, len(views))
	for _, v := range views {
		out = append(out, ToTicketViewDTO(v))
	}
	return out
}

func ToMessageDTO(v *ticket.MessageView) *MessageDTO {
	m := v.Message
	return &MessageDTO{
		ID:          m.ID(),
		TicketID:    m.TicketID(),
		UserID:      m.UserID(),
		Message:     m.Body(),
		IsInternal:  m.IsInternal(),
		Username:    v.Username,
		DisplayName: v.DisplayName,
		Role:        v.Role,
		CreatedAt:   m.CreatedAt(),
	}
}

func ToMessageDTOs(views []*ticket.MessageView) []*MessageDTO {
	out := make([]*MessageDTO, 0, len(views))
	for _, v := range views {
		out = append(out, ToMessageDTO(v))
	}
	return out
}

func ToAttachmentDTO(a *ticket.Attachment, uploaderName string) *AttachmentDTO {
	return &AttachmentDTO{
		ID:           a.ID,
		TicketID:     a.TicketID,
		MessageID:    a.MessageID,
		Filename:     a.Filename,
		OriginalName: a.OriginalName,
		URL:          a.FilePath,
		FileSize:     a.FileSize,
		MimeType:     a.MimeType,
		UploadedBy:   a.UploadedBy,
		UploaderName: uploaderName,
		CreatedAt:    a.CreatedAt,
	}
}

func ToAttachmentDTOs(views []*ticket.AttachmentView) []*AttachmentDTO {
	out := make([]*AttachmentDTO, 0, len(views))
	for _, v := range views {
		name := v.DisplayName
		if name == "" {
			name = v.Username
		}
		out = append(out, ToAttachmentDTO(&v.Attachment, name))
	}
	return out
}

func ToStatsDTO(s *ticket.Stats) *StatsDTO {
	if s == nil {
		return &StatsDTO{}
	}
	return &StatsDTO{
		Total:          s.Total,
		New:            s.New,
		InProgress:     s.InProgress,
		WaitingClient:  s.WaitingClient,
		WaitingSupport: s.WaitingSupport,
		Closed:         s.Closed,
	}
}
