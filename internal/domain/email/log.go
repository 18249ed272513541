package email

import (
	"context"
	"time"
)

type LogStatus string

const (
	LogSent   LogStatus = "sent"
	LogFailed LogStatus = "failed"
)

// Log records one send attempt.
type Log struct {
	ID           uint
	TemplateCode string
	ToEmail      string
	Subject      string
	Status       LogStatus
	ErrorMsg     string
	Payload      map[string]any
	SentAt       *time.Time
	CreatedAt    time.Time
}

func NewSentLog(code, to, subject string, payload map[string]any, at time.Time) *Log {
	at = at.UTC()
	return &Log{
		TemplateCode: code,
		ToEmail:      to,
		Subject:      subject,
		Status:       LogSent,
		Payload:      payload,
		SentAt:       &at,
		CreatedAt:    at,
	}
}

// NewFailedLog records a failed attempt. The subject falls back to the code
// when rendering never produced one.
func NewFailedLog(code, to, subject string, payload map[string]any, cause error, at time.Time) *Log {
	if subject == "" {
		subject = code
	}
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return &Log{
		TemplateCode: code,
		ToEmail:      to,
		Subject:      subject,
		Status:       LogFailed,
		ErrorMsg:     msg,
		Payload:      payload,
		CreatedAt:    at.UTC(),
	}
}

type LogRepository interface {
	Create(ctx context.Context, l *Log) error
	ListRecent(ctx context.Context, limit int) ([]*Log, error)
}
