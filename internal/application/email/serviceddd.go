// Package email serves the admin screens for email templates and the send
// log.
package email

import (
	"context"
	"strings"
	"time"

	domain "github.com/cerberus-dev/cerberus/internal/domain/email"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/sideeffect"
)

const (
	DefaultLogLimit = 100
	MaxLogLimit     = 500
)

// Sender is the part of the email service the admin screens use.
type Sender interface {
	Send(ctx context.Context, code, to string, vars map[string]any) sideeffect.Result
	Verify(ctx context.Context) error
	Default(code string) (string, error)
}

type TemplateRequest struct {
	Name        string `json:"name"`
	Subject     string `json:"subject"`
	HTMLContent string `json:"html_content"`
	IsActive    *bool  `json:"is_active"`
}

type LogDTO struct {
	ID           uint           `json:"id"`
	TemplateCode string         `json:"templateCode"`
	ToEmail      string         `json:"toEmail"`
	Subject      string         `json:"subject"`
	Status       string         `json:"status"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
	Payload      map[string]any `json:"payload,omitempty"`
	SentAt       *time.Time     `json:"sentAt,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

type SendResultDTO struct {
	OK     bool   `json:"ok"`
	Code   string `json:"code"`
	To     string `json:"to"`
	Reason string `json:"reason,omitempty"`
}

type ServiceDDD struct {
	templates domain.TemplateRepository
	logs      domain.LogRepository
	sender    Sender
	logger    logger.Interface
}

func NewServiceDDD(templates domain.TemplateRepository, logs domain.LogRepository, sender Sender, logger logger.Interface) *ServiceDDD {
	return &ServiceDDD{
		templates: templates,
		logs:      logs,
		sender:    sender,
		logger:    logger,
	}
}

// ListTemplates returns every built-in template merged with its stored
// override, in catalog order.
func (s *ServiceDDD) ListTemplates(ctx context.Context) ([]domain.View, error) {
	saved, err := s.templates.List(ctx)
	if err != nil {
		s.logger.Errorw("failed to list email templates", "error", err)
		return nil, errors.NewInternalError("failed to list templates")
	}
	byCode := make(map[string]*domain.Template, len(saved))
	for _, t := range saved {
		byCode[t.Code] = t
	}

	defs := domain.Catalog()
	out := make([]domain.View, 0, len(defs))
	for _, def := range defs {
		out = append(out, domain.Merge(def, byCode[def.Code]))
	}
	return out, nil
}

// GetTemplate returns one template. Without a stored body the built-in HTML
// is filled in and flagged as the default.
func (s *ServiceDDD) GetTemplate(ctx context.Context, code string) (*domain.View, error) {
	def, ok := domain.Lookup(code)
	if !ok {
		return nil, errors.NewNotFoundError("unknown_template")
	}
	saved, err := s.templates.GetByCode(ctx, code)
	if err != nil {
		s.logger.Errorw("failed to get email template", "code", code, "error", err)
		return nil, errors.NewInternalError("failed to get template")
	}
	view := domain.Merge(def, saved)
	if strings.TrimSpace(view.HTMLContent) == "" {
		body, err := s.sender.Default(code)
		if err != nil {
			s.logger.Warnw("failed to load default template body", "code", code, "error", err)
		} else {
			view.HTMLContent = body
			view.IsDefault = true
		}
	}
	return &view, nil
}

func (s *ServiceDDD) UpsertTemplate(ctx context.Context, code string, req TemplateRequest) (*domain.View, error) {
	def, ok := domain.Lookup(code)
	if !ok {
		return nil, errors.NewValidationError("unknown_template")
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	t, err := domain.NewTemplate(code, req.Name, req.Subject, req.HTMLContent, active)
	if err != nil {
		return nil, errors.NewValidationError("unknown_template")
	}
	if err := s.templates.Upsert(ctx, t); err != nil {
		s.logger.Errorw("failed to save email template", "code", code, "error", err)
		return nil, errors.NewInternalError("failed to save template")
	}
	s.logger.Infow("email template saved", "code", code, "active", active)
	view := domain.Merge(def, t)
	return &view, nil
}

// TestTemplate sends code to one address with sample values.
func (s *ServiceDDD) TestTemplate(ctx context.Context, code, to string) (*SendResultDTO, error) {
	def, ok := domain.Lookup(code)
	if !ok {
		return nil, errors.NewValidationError("unknown_template")
	}
	to = strings.TrimSpace(to)
	if to == "" {
		return nil, errors.NewValidationError("missing_fields")
	}
	res := s.sender.Send(ctx, code, to, SampleVars(def))
	return toSendResult(code, to, res), nil
}

// SendTest checks the SMTP connection and sends the generic notification
// template to one address.
func (s *ServiceDDD) SendTest(ctx context.Context, to string) (*SendResultDTO, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return nil, errors.NewValidationError("missing_fields")
	}
	if err := s.sender.Verify(ctx); err != nil {
		s.logger.Warnw("smtp verification failed", "error", err)
		return &SendResultDTO{OK: false, Code: domain.CodeNotification, To: to, Reason: err.Error()}, nil
	}
	res := s.sender.Send(ctx, domain.CodeNotification, to, map[string]any{
		"subject": "Correo de prueba",
		"title":   "Correo de prueba",
		"message": "La configuración SMTP funciona correctamente.",
	})
	return toSendResult(domain.CodeNotification, to, res), nil
}

func (s *ServiceDDD) ListLogs(ctx context.Context, limit int) ([]*LogDTO, error) {
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	if limit > MaxLogLimit {
		limit = MaxLogLimit
	}
	logs, err := s.logs.ListRecent(ctx, limit)
	if err != nil {
		s.logger.Errorw("failed to list email logs", "error", err)
		return nil, errors.NewInternalError("failed to list email logs")
	}
	out := make([]*LogDTO, 0, len(logs))
	for _, l := range logs {
		d := &LogDTO{
			ID:           l.ID,
			TemplateCode: l.TemplateCode,
			ToEmail:      l.ToEmail,
			Subject:      l.Subject,
			Status:       string(l.Status),
			ErrorMessage: l.ErrorMsg,
			Payload:      l.Payload,
			SentAt:       l.SentAt,
			CreatedAt:    l.CreatedAt,
		}
		out = append(out, d)
	}
	return out, nil
}

func toSendResult(code, to string, res sideeffect.Result) *SendResultDTO {
	return &SendResultDTO{OK: res.OK, Code: code, To: to, Reason: res.Reason}
}
