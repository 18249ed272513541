package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/cerberus-dev/cerberus/internal/application/content/dto"
	"github.com/cerberus-dev/cerberus/internal/domain/content"
	domainEmail "github.com/cerberus-dev/cerberus/internal/domain/email"
	"github.com/cerberus-dev/cerberus/internal/domain/user"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/email"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
	"github.com/cerberus-dev/cerberus/internal/shared/biztime"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
)

// ListActiveMaintenance returns the notices currently in their window.
func (s *ServiceDDD) ListActiveMaintenance(ctx context.Context) ([]*dto.MaintenanceDTO, error) {
	notices, err := s.maintenance.ListActive(ctx, s.now())
	if err != nil {
		s.logger.Errorw("failed to list active maintenance", "error", err)
		return nil, errors.NewInternalError("failed to list maintenance notices")
	}
	return dto.ToMaintenanceDTOs(notices), nil
}

func (s *ServiceDDD) ListAllMaintenance(ctx context.Context) ([]*dto.MaintenanceDTO, error) {
	notices, err := s.maintenance.ListAll(ctx)
	if err != nil {
		s.logger.Errorw("failed to list maintenance", "error", err)
		return nil, errors.NewInternalError("failed to list maintenance notices")
	}
	return dto.ToMaintenanceDTOs(notices), nil
}

// CreateMaintenance stores a notice and, when asked, mails it to every
// active client with an address.
func (s *ServiceDDD) CreateMaintenance(ctx context.Context, creatorID uint, req dto.MaintenanceRequest) (*dto.MaintenanceCreatedDTO, error) {
	n := &content.MaintenanceNotice{IsActive: true, CreatedBy: creatorID, CreatedAt: s.now().UTC()}
	s.applyMaintenance(n, req)
	if err := n.Validate(); err != nil {
		return nil, errors.NewValidationError("invalid_notice", err.Error())
	}
	if err := s.maintenance.Create(ctx, n); err != nil {
		s.logger.Errorw("failed to create maintenance notice", "error", err)
		return nil, errors.NewInternalError("failed to create maintenance notice")
	}

	out := &dto.MaintenanceCreatedDTO{Notice: dto.ToMaintenanceDTO(n)}
	if req.SendEmail {
		recipients, err := s.maintenanceRecipients(ctx)
		if err != nil {
			s.logger.Warnw("failed to load maintenance recipients", "notice_id", n.ID, "error", err)
		} else if len(recipients) > 0 {
			out.EmailRecipients = len(recipients)
			vars := maintenanceVars(n)
			noticeID := n.ID
			s.effects.Go(ctx, "maintenance.bulk_email", func(ctx context.Context) error {
				res := s.bulk.SendBulk(ctx, domainEmail.CodeMaintenanceNotice, recipients, vars)
				s.logger.Infow("maintenance notice mailed", "notice_id", noticeID, "sent", res.Sent, "failed", res.Failed)
				if res.Failed > 0 {
					return fmt.Errorf("%d of %d maintenance emails failed", res.Failed, res.Sent+res.Failed)
				}
				return nil
			})
		}
	}

	s.logger.Infow("maintenance notice created", "notice_id", n.ID, "creator_id", creatorID)
	return out, nil
}

func (s *ServiceDDD) UpdateMaintenance(ctx context.Context, id uint, req dto.MaintenanceRequest) (*dto.MaintenanceDTO, error) {
	n, err := s.maintenance.GetByID(ctx, id)
	if err != nil {
		s.logger.Errorw("failed to get maintenance notice", "notice_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get maintenance notice")
	}
	if n == nil {
		return nil, errors.NewNotFoundError("not_found")
	}
	s.applyMaintenance(n, req)
	if err := n.Validate(); err != nil {
		return nil, errors.NewValidationError("invalid_notice", err.Error())
	}
	if err := s.maintenance.Update(ctx, n); err != nil {
		s.logger.Errorw("failed to update maintenance notice", "notice_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update maintenance notice")
	}
	return dto.ToMaintenanceDTO(n), nil
}

func (s *ServiceDDD) DeleteMaintenance(ctx context.Context, id uint) error {
	if err := s.maintenance.Delete(ctx, id); err != nil {
		s.logger.Errorw("failed to delete maintenance notice", "notice_id", id, "error", err)
		return errors.NewInternalError("failed to delete maintenance notice")
	}
	return nil
}

func (s *ServiceDDD) applyMaintenance(n *content.MaintenanceNotice, req dto.MaintenanceRequest) {
	n.Title = strings.TrimSpace(req.Title)
	n.Message = req.Message
	switch {
	case req.StartAt != nil:
		n.StartAt = req.StartAt.UTC()
	case n.StartAt.IsZero():
		n.StartAt = s.now().UTC()
	}
	n.EndAt = req.EndAt
	if req.IsActive != nil {
		n.IsActive = *req.IsActive
	}
}

func (s *ServiceDDD) maintenanceRecipients(ctx context.Context) ([]email.Recipient, error) {
	role := authorization.RoleClient
	clients, err := s.users.List(ctx, user.ListFilter{Role: &role, ActiveOnly: true, WithEmail: true})
	if err != nil {
		return nil, err
	}
	out := make([]email.Recipient, 0, len(clients))
	for _, c := range clients {
		out = append(out, email.Recipient{Email: c.Email(), Name: c.DisplayName()})
	}
	return out, nil
}

func maintenanceVars(n *content.MaintenanceNotice) map[string]any {
	end := "Por confirmar"
	if n.EndAt != nil {
		end = biztime.FormatLong(*n.EndAt)
	}
	return map[string]any{
		"title":   n.Title,
		"message": n.Message,
		"startAt": biztime.FormatLong(n.StartAt),
		"endAt":   end,
	}
}
