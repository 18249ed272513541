package content

import (
	"context"
	"strings"

	"github.com/cerberus-dev/cerberus/internal/application/content/dto"
	"github.com/cerberus-dev/cerberus/internal/domain/content"
	domainEmail "github.com/cerberus-dev/cerberus/internal/domain/email"
	"github.com/cerberus-dev/cerberus/internal/domain/user"
	uservo "github.com/cerberus-dev/cerberus/internal/domain/user/valueobjects"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/auth"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
)

var generateTemporaryPassword = auth.GenerateTemporaryPassword

func (s *ServiceDDD) RequirementOptions() content.RequirementOptions {
	return s.catalog.RequirementOptions()
}

func (s *ServiceDDD) ListRequirements(ctx context.Context, status string) ([]*dto.RequirementDTO, error) {
	var filter *content.RequirementStatus
	if status != "" {
		st := content.RequirementStatus(status)
		if !st.IsValid() {
			return nil, errors.NewValidationError("bad_status")
		}
		filter = &st
	}
	reqs, err := s.requirements.List(ctx, filter)
	if err != nil {
		s.logger.Errorw("failed to list requirements", "error", err)
		return nil, errors.NewInternalError("failed to list requirements")
	}
	return dto.ToRequirementDTOs(reqs), nil
}

func (s *ServiceDDD) GetRequirement(ctx context.Context, id uint) (*dto.RequirementDTO, error) {
	r, err := s.requirementByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToRequirementDTO(r), nil
}

// CreateRequirement stores a new questionnaire as a draft.
func (s *ServiceDDD) CreateRequirement(ctx context.Context, creatorID uint, req dto.RequirementRequest) (*dto.RequirementDTO, error) {
	now := s.now().UTC()
	r := &content.ProjectRequirement{CreatedBy: creatorID, CreatedAt: now, UpdatedAt: now}
	applyRequirement(r, req)
	r.Status = content.RequirementDraft
	if err := r.Validate(); err != nil {
		return nil, errors.NewValidationError("missing_fields", err.Error())
	}
	if err := s.requirements.Create(ctx, r); err != nil {
		s.logger.Errorw("failed to create requirement", "error", err)
		return nil, errors.NewInternalError("failed to create requirement")
	}
	s.logger.Infow("requirement created", "requirement_id", r.ID, "creator_id", creatorID)
	return dto.ToRequirementDTO(r), nil
}

func (s *ServiceDDD) UpdateRequirement(ctx context.Context, id uint, req dto.RequirementRequest) (*dto.RequirementDTO, error) {
	r, err := s.requirementByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyRequirement(r, req)
	if req.Status != "" {
		st := content.RequirementStatus(req.Status)
		if !st.IsValid() {
			return nil, errors.NewValidationError("bad_status")
		}
		if st == content.RequirementConverted && !r.IsConverted() {
			return nil, errors.NewValidationError("bad_status", "use convert to create the client")
		}
		r.Status = st
	}
	if err := r.Validate(); err != nil {
		return nil, errors.NewValidationError("missing_fields", err.Error())
	}
	r.UpdatedAt = s.now().UTC()
	if err := s.requirements.Update(ctx, r); err != nil {
		s.logger.Errorw("failed to update requirement", "requirement_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update requirement")
	}
	return dto.ToRequirementDTO(r), nil
}

func (s *ServiceDDD) DeleteRequirement(ctx context.Context, id uint) error {
	if _, err := s.requirementByID(ctx, id); err != nil {
		return err
	}
	if err := s.requirements.Delete(ctx, id); err != nil {
		s.logger.Errorw("failed to delete requirement", "requirement_id", id, "error", err)
		return errors.NewInternalError("failed to delete requirement")
	}
	return nil
}

// ConvertRequirement creates a client account from the contact details and
// marks the requirement converted, both in one transaction. The welcome
// email goes out after commit.
func (s *ServiceDDD) ConvertRequirement(ctx context.Context, id uint) (*dto.ConvertResultDTO, error) {
	r, err := s.requirementByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.IsConverted() {
		return nil, errors.NewValidationError("already_converted")
	}

	email, err := uservo.NormalizeEmail(r.ContactEmail)
	if err != nil {
		return nil, errors.NewValidationError("bad_email")
	}
	exists, err := s.users.ExistsByUsernameOrEmail(ctx, email, email)
	if err != nil {
		s.logger.Errorw("failed to check user existence", "error", err)
		return nil, errors.NewInternalError("failed to convert requirement")
	}
	if exists {
		return nil, errors.NewValidationError("user_exists")
	}

	password, err := s.tempPassword()
	if err != nil {
		s.logger.Errorw("failed to generate temporary password", "error", err)
		return nil, errors.NewInternalError("failed to convert requirement")
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to convert requirement")
	}
	client, err := user.NewUser(email, email, r.ContactName, authorization.RoleClient, hash)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	client.UpdateProfile(r.ContactName, email, r.ContactPhone, r.CompanyName)
	client.AssignTemporaryPassword(hash)

	err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := s.users.Create(txCtx, client); err != nil {
			return err
		}
		if err := r.MarkConverted(client.ID()); err != nil {
			return err
		}
		r.ClientID = r.ConvertedToClientID
		return s.requirements.Update(txCtx, r)
	})
	if err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewValidationError("user_exists")
		}
		s.logger.Errorw("failed to convert requirement", "requirement_id", id, "error", err)
		return nil, errors.NewInternalError("failed to convert requirement")
	}

	vars := map[string]any{
		"name":     client.DisplayName(),
		"username": client.Username(),
		"password": password,
		"loginUrl": s.links.LoginURL,
	}
	s.effects.Go(ctx, "requirement.welcome_email", func(ctx context.Context) error {
		return s.emails.Send(ctx, domainEmail.CodeUserCreated, email, vars).Err()
	})

	s.logger.Infow("requirement converted", "requirement_id", id, "client_id", client.ID())
	return &dto.ConvertResultDTO{
		Requirement:       dto.ToRequirementDTO(r),
		ClientID:          client.ID(),
		Username:          client.Username(),
		TemporaryPassword: password,
	}, nil
}

func (s *ServiceDDD) requirementByID(ctx context.Context, id uint) (*content.ProjectRequirement, error) {
	r, err := s.requirements.GetByID(ctx, id)
	if err != nil {
		s.logger.Errorw("failed to get requirement", "requirement_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get requirement")
	}
	if r == nil {
		return nil, errors.NewNotFoundError("not_found")
	}
	return r, nil
}

func applyRequirement(r *content.ProjectRequirement, req dto.RequirementRequest) {
	if req.ClientID != nil {
		r.ClientID = req.ClientID
	}
	r.ContactName = strings.TrimSpace(req.ContactName)
	r.ContactEmail = strings.TrimSpace(req.ContactEmail)
	r.ContactPhone = strings.TrimSpace(req.ContactPhone)
	r.CompanyName = strings.TrimSpace(req.CompanyName)
	r.BusinessType = strings.TrimSpace(req.BusinessType)
	r.BusinessDesc = req.BusinessDesc
	r.ProjectType = strings.TrimSpace(req.ProjectType)
	r.ProjectObjective = req.ProjectObjective
	r.Sections = req.Sections
	r.Branding = req.Branding
	r.Technologies = req.Technologies
	r.BudgetRange = req.BudgetRange
	r.Timeline = req.Timeline
	r.Comments = req.Comments
	r.InternalNotes = req.InternalNotes
}
