package usecases

import (
	"context"
	"sort"
	"strings"

	"github.com/cerberus-dev/cerberus/internal/application/common"
	"github.com/cerberus-dev/cerberus/internal/application/user/dto"
	domainEmail "github.com/cerberus-dev/cerberus/internal/domain/email"
	"github.com/cerberus-dev/cerberus/internal/domain/user"
	vo "github.com/cerberus-dev/cerberus/internal/domain/user/valueobjects"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/auth"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/sideeffect"
)

type ListUsersUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListUsersUseCase(userRepo user.Repository, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo, logger: logger}
}

// Execute lists every account, optionally narrowed to one role.
func (uc *ListUsersUseCase) Execute(ctx context.Context, role string) ([]*dto.UserDTO, error) {
	var filter user.ListFilter
	if role != "" {
		r := authorization.UserRole(role)
		if !r.IsValid() {
			return nil, errors.NewValidationError("bad_role")
		}
		filter.Role = &r
	}
	users, err := uc.userRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, errors.NewInternalError("failed to list users")
	}
	return dto.ToUserDTOs(users), nil
}

// ListDirectoryUseCase serves the assignee and client pickers: active
// accounts of the given roles ordered by display name.
type ListDirectoryUseCase struct {
	userRepo user.Repository
	roles    []authorization.UserRole
	logger   logger.Interface
}

func NewListSupportStaffUseCase(userRepo user.Repository, logger logger.Interface) *ListDirectoryUseCase {
	return &ListDirectoryUseCase{
		userRepo: userRepo,
		roles:    []authorization.UserRole{authorization.RoleAdmin, authorization.RoleSupport},
		logger:   logger,
	}
}

func NewListClientsUseCase(userRepo user.Repository, logger logger.Interface) *ListDirectoryUseCase {
	return &ListDirectoryUseCase{
		userRepo: userRepo,
		roles:    []authorization.UserRole{authorization.RoleClient},
		logger:   logger,
	}
}

func (uc *ListDirectoryUseCase) Execute(ctx context.Context) ([]*dto.UserSummaryDTO, error) {
	var all []*user.User
	for _, role := range uc.roles {
		users, err := uc.userRepo.List(ctx, user.ListFilter{Role: &role, ActiveOnly: true})
		if err != nil {
			uc.logger.Errorw("failed to list users by role", "role", role, "error", err)
			return nil, errors.NewInternalError("failed to list users")
		}
		all = append(all, users...)
	}
	if len(uc.roles) > 1 {
		sort.SliceStable(all, func(i, j int) bool {
			return strings.ToLower(all[i].DisplayName()) < strings.ToLower(all[j].DisplayName())
		})
	}
	return dto.ToUserSummaryDTOs(all), nil
}

type CreateUserCommand struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
	Phone       string
	Company     string
	Role        string
	PM2Access   bool
}

type CreateUserResult struct {
	User *dto.UserDTO
	// TemporaryPassword is set when the password was generated.
	TemporaryPassword string
}

// CreateUserUseCase creates an account that must change its password on
// first login and mails the credentials to it.
type CreateUserUseCase struct {
	userRepo     user.Repository
	hasher       user.PasswordHasher
	emails       common.EmailSender
	effects      sideeffect.Runner
	links        common.Links
	logger       logger.Interface
	tempPassword func() (string, error)
}

func NewCreateUserUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	emails common.EmailSender,
	effects sideeffect.Runner,
	links common.Links,
	logger logger.Interface,
) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo:     userRepo,
		hasher:       hasher,
		emails:       emails,
		effects:      effects,
		links:        links,
		logger:       logger,
		tempPassword: auth.GenerateTemporaryPassword,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, cmd CreateUserCommand) (*CreateUserResult, error) {
	username := strings.TrimSpace(cmd.Username)
	email := strings.TrimSpace(cmd.Email)
	if username == "" {
		return nil, errors.NewValidationError("missing_fields")
	}
	if email != "" {
		normalized, err := vo.NormalizeEmail(email)
		if err != nil {
			return nil, errors.NewValidationError("bad_email")
		}
		email = normalized
	}
	role := authorization.RoleClient
	if cmd.Role != "" {
		role = authorization.UserRole(cmd.Role)
		if !role.IsValid() {
			return nil, errors.NewValidationError("bad_role")
		}
	}

	exists, err := uc.userRepo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		uc.logger.Errorw("failed to check user existence", "error", err)
		return nil, errors.NewInternalError("failed to create user")
	}
	if exists {
		return nil, errors.NewConflictError("user_exists")
	}

	password := cmd.Password
	generated := ""
	if password == "" {
		if password, err = uc.tempPassword(); err != nil {
			uc.logger.Errorw("failed to generate temporary password", "error", err)
			return nil, errors.NewInternalError("failed to create user")
		}
		generated = password
	} else if len(password) < MinPasswordLength {
		return nil, errors.NewValidationError("password_too_short")
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to create user")
	}
	u, err := user.NewUser(username, email, cmd.DisplayName, role, hash)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	u.UpdateProfile(cmd.DisplayName, email, cmd.Phone, cmd.Company)
	u.AssignTemporaryPassword(hash)
	u.SetPM2Access(cmd.PM2Access)

	if err := uc.userRepo.Create(ctx, u); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("user_exists")
		}
		uc.logger.Errorw("failed to create user", "username", username, "error", err)
		return nil, errors.NewInternalError("failed to create user")
	}

	if email != "" {
		vars := map[string]any{
			"name":     u.DisplayName(),
			"username": u.Username(),
			"password": password,
			"loginUrl": uc.links.LoginURL,
		}
		uc.effects.Go(ctx, "user.welcome_email", func(ctx context.Context) error {
			return uc.emails.Send(ctx, domainEmail.CodeUserCreated, email, vars).Err()
		})
	}

	uc.logger.Infow("user created", "user_id", u.ID(), "role", role)
	return &CreateUserResult{User: dto.ToUserDTO(u), TemporaryPassword: generated}, nil
}

// UpdateUserCommand carries the fields to change; nil leaves a field as is.
type UpdateUserCommand struct {
	ActorID     uint
	UserID      uint
	DisplayName *string
	Email       *string
	Phone       *string
	Company     *string
	Role        *string
	PM2Access   *bool
	IsActive    *bool
	Password    *string
}

type UpdateUserUseCase struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	logger   logger.Interface
}

func NewUpdateUserUseCase(userRepo user.Repository, hasher user.PasswordHasher, logger logger.Interface) *UpdateUserUseCase {
	return &UpdateUserUseCase{userRepo: userRepo, hasher: hasher, logger: logger}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, cmd UpdateUserCommand) (*dto.UserDTO, error) {
	u, err := loadUser(ctx, uc.userRepo, uc.logger, cmd.UserID)
	if err != nil {
		return nil, err
	}

	displayName, email, phone, company := u.RawDisplayName(), u.Email(), u.Phone(), u.Company()
	if cmd.DisplayName != nil {
		displayName = *cmd.DisplayName
	}
	if cmd.Phone != nil {
		phone = strings.TrimSpace(*cmd.Phone)
	}
	if cmd.Company != nil {
		company = strings.TrimSpace(*cmd.Company)
	}
	if cmd.Email != nil {
		email = strings.TrimSpace(*cmd.Email)
		if email != "" {
			normalized, err := vo.NormalizeEmail(email)
			if err != nil {
				return nil, errors.NewValidationError("bad_email")
			}
			email = normalized
		}
		if email != "" && email != u.Email() {
			other, err := uc.userRepo.GetByEmail(ctx, email)
			if err != nil {
				uc.logger.Errorw("failed to check email", "error", err)
				return nil, errors.NewInternalError("failed to update user")
			}
			if other != nil && other.ID() != u.ID() {
				return nil, errors.NewConflictError("email_in_use")
			}
		}
	}
	u.UpdateProfile(displayName, email, phone, company)

	if cmd.Role != nil {
		role := authorization.UserRole(*cmd.Role)
		if cmd.ActorID == u.ID() && role != u.Role() {
			return nil, errors.NewValidationError("cannot_change_own_role")
		}
		if err := u.ChangeRole(role); err != nil {
			return nil, errors.NewValidationError("bad_role")
		}
	}
	if cmd.PM2Access != nil {
		u.SetPM2Access(*cmd.PM2Access)
	}
	if cmd.IsActive != nil {
		if cmd.ActorID == u.ID() && !*cmd.IsActive {
			return nil, errors.NewValidationError("cannot_deactivate_self")
		}
		u.SetActive(*cmd.IsActive)
	}
	if cmd.Password != nil && *cmd.Password != "" {
		if len(*cmd.Password) < MinPasswordLength {
			return nil, errors.NewValidationError("password_too_short")
		}
		hash, err := uc.hasher.Hash(*cmd.Password)
		if err != nil {
			uc.logger.Errorw("failed to hash password", "user_id", u.ID(), "error", err)
			return nil, errors.NewInternalError("failed to update user")
		}
		u.AssignTemporaryPassword(hash)
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update user", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to update user")
	}
	uc.logger.Infow("user updated", "user_id", u.ID(), "actor_id", cmd.ActorID)
	return dto.ToUserDTO(u), nil
}

type DeleteUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewDeleteUserUseCase(userRepo user.Repository, logger logger.Interface) *DeleteUserUseCase {
	return &DeleteUserUseCase{userRepo: userRepo, logger: logger}
}

func (uc *DeleteUserUseCase) Execute(ctx context.Context, actorID, userID uint) error {
	if actorID == userID {
		return errors.NewValidationError("cannot_delete_self")
	}
	if _, err := loadUser(ctx, uc.userRepo, uc.logger, userID); err != nil {
		return err
	}
	if err := uc.userRepo.Delete(ctx, userID); err != nil {
		uc.logger.Errorw("failed to delete user", "user_id", userID, "error", err)
		return errors.NewInternalError("failed to delete user")
	}
	uc.logger.Infow("user deleted", "user_id", userID, "actor_id", actorID)
	return nil
}

type RecoverUserResult struct {
	TemporaryPassword string
	EmailQueued       bool
}

// RecoverUserUseCase assigns a fresh temporary password and mails it with
// the password-recovery template.
type RecoverUserUseCase struct {
	userRepo     user.Repository
	hasher       user.PasswordHasher
	emails       common.EmailSender
	effects      sideeffect.Runner
	links        common.Links
	logger       logger.Interface
	tempPassword func() (string, error)
}

func NewRecoverUserUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	emails common.EmailSender,
	effects sideeffect.Runner,
	links common.Links,
	logger logger.Interface,
) *RecoverUserUseCase {
	return &RecoverUserUseCase{
		userRepo:     userRepo,
		hasher:       hasher,
		emails:       emails,
		effects:      effects,
		links:        links,
		logger:       logger,
		tempPassword: auth.GenerateTemporaryPassword,
	}
}

func (uc *RecoverUserUseCase) Execute(ctx context.Context, userID uint) (*RecoverUserResult, error) {
	u, err := loadUser(ctx, uc.userRepo, uc.logger, userID)
	if err != nil {
		return nil, err
	}

	password, err := uc.tempPassword()
	if err != nil {
		uc.logger.Errorw("failed to generate temporary password", "error", err)
		return nil, errors.NewInternalError("failed to recover user")
	}
	hash, err := uc.hasher.Hash(password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to recover user")
	}
	u.AssignTemporaryPassword(hash)
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to save recovered password", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to recover user")
	}

	result := &RecoverUserResult{TemporaryPassword: password}
	if to := u.Email(); to != "" {
		vars := map[string]any{
			"name":     u.DisplayName(),
			"username": u.Username(),
			"password": password,
			"loginUrl": uc.links.LoginURL,
		}
		uc.effects.Go(ctx, "user.recovery_email", func(ctx context.Context) error {
			return uc.emails.Send(ctx, domainEmail.CodePasswordRecovery, to, vars).Err()
		})
		result.EmailQueued = true
	}

	uc.logger.Infow("user password recovered", "user_id", u.ID())
	return result, nil
}

func loadUser(ctx context.Context, repo user.Repository, log logger.Interface, id uint) (*user.User, error) {
	u, err := repo.GetByID(ctx, id)
	if err != nil {
		log.Errorw("failed to get user", "user_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get user")
	}
	if u == nil {
		return nil, errors.NewNotFoundError("not_found")
	}
	return u, nil
}

type GetUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewGetUserUseCase(userRepo user.Repository, logger logger.Interface) *GetUserUseCase {
	return &GetUserUseCase{userRepo: userRepo, logger: logger}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, userID uint) (*dto.UserDTO, error) {
	u, err := loadUser(ctx, uc.userRepo, uc.logger, userID)
	if err != nil {
		return nil, err
	}
	return dto.ToUserDTO(u), nil
}
