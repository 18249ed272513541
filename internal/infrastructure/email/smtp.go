package email

import (
	"crypto/tls"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/cerberus-dev/cerberus/internal/shared/config"
)

var ErrEmailServiceNotConfigured = errors.New("email service not configured")

// Message is one outgoing email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers messages.
type Mailer interface {
	Send(msg Message) error
	Verify() error
}

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	SSL         bool
	FromAddress string
	FromName    string
}

func SMTPConfigFrom(cfg config.EmailConfig) SMTPConfig {
	return SMTPConfig{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		Username:    cfg.SMTPUser,
		Password:    cfg.SMTPPassword,
		SSL:         cfg.SMTPSSL,
		FromAddress: cfg.FromAddress,
		FromName:    cfg.FromName,
	}
}

// SMTPMailer wraps one gomail dialer built at startup.
type SMTPMailer struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

// NewSMTPMailer returns nil when no host or credentials are configured, so
// callers can treat email as disabled.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	if cfg.Host == "" || cfg.Username == "" {
		return nil
	}
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.SSL = cfg.SSL
	dialer.TLSConfig = &tls.Config{ServerName: cfg.Host}
	return &SMTPMailer{config: cfg, dialer: dialer}
}

func (s *SMTPMailer) from(m *gomail.Message) string {
	if s.config.FromName == "" {
		return s.config.FromAddress
	}
	return m.FormatAddress(s.config.FromAddress, s.config.FromName)
}

func (s *SMTPMailer) Send(msg Message) error {
	if s == nil {
		return ErrEmailServiceNotConfigured
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from(m))
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// Verify opens and closes one SMTP session.
func (s *SMTPMailer) Verify() error {
	if s == nil {
		return ErrEmailServiceNotConfigured
	}
	conn, err := s.dialer.Dial()
	if err != nil {
		return fmt.Errorf("smtp connection failed: %w", err)
	}
	return conn.Close()
}
