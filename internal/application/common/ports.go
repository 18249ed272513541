// Package common holds ports shared by use cases of several areas.
package common

import (
	"context"
	"fmt"
	"strings"

	"github.com/cerberus-dev/cerberus/internal/shared/sideeffect"
)

// EmailSender delivers template emails. Each call returns the outcome
// instead of an error; callers hand it to a sideeffect runner.
type EmailSender interface {
	Send(ctx context.Context, code, to string, vars map[string]any) sideeffect.Result
	SendToAdmin(ctx context.Context, code string, vars map[string]any) sideeffect.Result
	SendAdmin(ctx context.Context, subject, title, message, actionURL string) sideeffect.Result
}

// TicketBroadcaster pushes events to everyone watching a ticket.
type TicketBroadcaster interface {
	BroadcastTicket(ctx context.Context, ticketID uint, event string, data any) error
}

// Links builds absolute URLs for emails.
type Links struct {
	BaseURL   string
	PortalURL string
	LoginURL  string
	AdminPath string
}

func (l Links) base() string {
	return strings.TrimRight(l.BaseURL, "/")
}

// StaffTicket is the back-office URL of a ticket.
func (l Links) StaffTicket(id uint) string {
	return fmt.Sprintf("%s%s/tickets/%d", l.base(), l.AdminPath, id)
}

// ClientTicket is the portal URL of a ticket.
func (l Links) ClientTicket(id uint) string {
	return fmt.Sprintf("%s/tickets/%d", strings.TrimRight(l.PortalURL, "/"), id)
}

func (l Links) Leads() string {
	return fmt.Sprintf("%s%s/leads", l.base(), l.AdminPath)
}

// PasswordReset is the reset page carrying token.
func (l Links) PasswordReset(token string) string {
	return fmt.Sprintf("%s/reset-password?token=%s", l.base(), token)
}
