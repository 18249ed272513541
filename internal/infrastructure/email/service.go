package email

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	domain "github.com/cerberus-dev/cerberus/internal/domain/email"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/sideeffect"
	"github.com/cerberus-dev/cerberus/internal/shared/utils"
)

var ErrAdminEmailNotConfigured = errors.New("admin email not configured")

// Recipient is one address of a bulk send plus its per-recipient variables.
type Recipient struct {
	Email string
	Name  string
}

// BulkResult counts the outcome of a bulk send.
type BulkResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// Service renders, sends and logs template emails. Every attempt lands in
// email_logs as sent or failed.
type Service struct {
	mailer     Mailer
	renderer   *Renderer
	logs       domain.LogRepository
	adminEmail string
	workers    int
	logger     logger.Interface
	now        func() time.Time
}

func NewService(mailer Mailer, renderer *Renderer, logs domain.LogRepository, adminEmail string, workers int, log logger.Interface) *Service {
	if workers <= 0 {
		workers = 4
	}
	if mailer == nil {
		mailer = (*SMTPMailer)(nil)
	}
	return &Service{
		mailer:     mailer,
		renderer:   renderer,
		logs:       logs,
		adminEmail: adminEmail,
		workers:    workers,
		logger:     log,
		now:        time.Now,
	}
}

// Send delivers code to one address and records the attempt.
func (s *Service) Send(ctx context.Context, code, to string, vars map[string]any) sideeffect.Result {
	name := "email:" + code
	if to == "" {
		return sideeffect.Failure(name, errors.New("recipient has no email address"))
	}

	rendered, err := s.renderer.Render(ctx, code, vars)
	if err != nil {
		s.record(ctx, domain.NewFailedLog(code, to, "", redact(vars), err, s.now()))
		return sideeffect.Failure(name, err)
	}

	if err := s.mailer.Send(Message{To: to, Subject: rendered.Subject, HTML: rendered.HTML}); err != nil {
		s.record(ctx, domain.NewFailedLog(code, to, rendered.Subject, redact(vars), err, s.now()))
		return sideeffect.Failure(name, err)
	}

	s.record(ctx, domain.NewSentLog(code, to, rendered.Subject, redact(vars), s.now()))
	s.logger.Infow("email sent", "code", code, "to", utils.MaskEmail(to))
	return sideeffect.Success(name)
}

// redact drops credentials before the payload is stored.
func redact(vars map[string]any) map[string]any {
	if _, ok := vars["password"]; !ok {
		return vars
	}
	out := make(map[string]any, len(vars))
	for k, v := range vars {
		out[k] = v
	}
	out["password"] = "********"
	return out
}

func (s *Service) record(ctx context.Context, l *domain.Log) {
	if s.logs == nil {
		return
	}
	if err := s.logs.Create(ctx, l); err != nil {
		s.logger.Warnw("failed to write email log", "code", l.TemplateCode, "error", err)
	}
}

// SendToAdmin delivers code to the configured admin address.
func (s *Service) SendToAdmin(ctx context.Context, code string, vars map[string]any) sideeffect.Result {
	if s.adminEmail == "" {
		return sideeffect.Failure("email:"+code, ErrAdminEmailNotConfigured)
	}
	return s.Send(ctx, code, s.adminEmail, vars)
}

// SendAdmin sends the generic notification template to the configured
// admin address.
func (s *Service) SendAdmin(ctx context.Context, subject, title, message, actionURL string) sideeffect.Result {
	if s.adminEmail == "" {
		return sideeffect.Failure("email:"+domain.CodeNotification, ErrAdminEmailNotConfigured)
	}
	return s.SendToAdmin(ctx, domain.CodeNotification, map[string]any{
		"subject":   subject,
		"title":     title,
		"message":   message,
		"actionUrl": actionURL,
	})
}

// SendBulk sends code to every recipient with bounded concurrency. Each
// recipient gets clientName set to their name on top of vars.
func (s *Service) SendBulk(ctx context.Context, code string, recipients []Recipient, vars map[string]any) BulkResult {
	var sent, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, r := range recipients {
		if r.Email == "" {
			continue
		}
		g.Go(func() error {
			personal := make(map[string]any, len(vars)+1)
			for k, v := range vars {
				personal[k] = v
			}
			personal["clientName"] = r.Name
			if res := s.Send(gctx, code, r.Email, personal); res.OK {
				sent.Add(1)
			} else {
				failed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	return BulkResult{Sent: int(sent.Load()), Failed: int(failed.Load())}
}

// Verify checks the SMTP connection.
func (s *Service) Verify(context.Context) error {
	return s.mailer.Verify()
}

// Preview renders code with vars without sending.
func (s *Service) Preview(ctx context.Context, code string, vars map[string]any) (*Rendered, error) {
	return s.renderer.Render(ctx, code, vars)
}

// Default returns the built-in body of code.
func (s *Service) Default(code string) (string, error) {
	return s.renderer.Default(code)
}
