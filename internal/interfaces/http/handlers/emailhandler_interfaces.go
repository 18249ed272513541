package handlers

import (
	"context"

	appemail "github.com/cerberus-dev/cerberus/internal/application/email"
	domain "github.com/cerberus-dev/cerberus/internal/domain/email"
)

type emailAdminService interface {
	ListTemplates(ctx context.Context) ([]domain.View, error)
	GetTemplate(ctx context.Context, code string) (*domain.View, error)
	UpsertTemplate(ctx context.Context, code string, req appemail.TemplateRequest) (*domain.View, error)
	TestTemplate(ctx context.Context, code, to string) (*appemail.SendResultDTO, error)
	SendTest(ctx context.Context, to string) (*appemail.SendResultDTO, error)
	ListLogs(ctx context.Context, limit int) ([]*appemail.LogDTO, error)
}
