package dto

import (
	"time"

	"github.com/cerberus-dev/cerberus/internal/domain/lead"
)

type LeadDTO struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	ProjectType string    `json:"projectType"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	IsImportant bool      `json:"isImportant"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type SummaryDTO struct {
	Total     int64 `json:"total"`
	New       int64 `json:"new"`
	Replied   int64 `json:"replied"`
	Closed    int64 `json:"closed"`
	Important int64 `json:"important"`
}

func ToLeadDTO(l *lead.Lead) *LeadDTO {
	if l == nil {
		return nil
	}
	return &LeadDTO{
		ID:          l.ID(),
		Name:        l.Name(),
		Email:       l.Email(),
		Phone:       l.Phone(),
		ProjectType: l.ProjectType(),
		Message:     l.Message(),
		Status:      l.Status().String(),
		IsImportant: l.IsImportant(),
		Notes:       l.Notes(),
		CreatedAt:   l.CreatedAt(),
		UpdatedAt:   l.UpdatedAt(),
	}
}

func ToLeadDTOs(leads []*lead.Lead) []*LeadDTO {
	out := make([]*LeadDTO, 0, len(leads))
	for _, l := range leads {
		out = append(out, ToLeadDTO(l))
	}
	return out
}

func ToSummaryDTO(s *lead.Summary) *SummaryDTO {
	if s == nil {
		return &SummaryDTO{}
	}
	return &SummaryDTO{
		Total:     s.Total,
		New:       s.New,
		Replied:   s.Replied,
		Closed:    s.Closed,
		Important: s.Important,
	}
}
