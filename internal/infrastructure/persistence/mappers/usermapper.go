package mappers

import (
	"github.com/cerberus-dev/cerberus/internal/domain/user"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/persistence/models"
)

// UserMapper converts between user entities and persistence models.
type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	ToDomain(model *models.UserModel) (*user.User, error)
	ToDomainList(ms []models.UserModel) ([]*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:                 u.ID(),
		Username:           u.Username(),
		Name:               u.RawDisplayName(),
		Email:              nullableString(u.Email()),
		Phone:              u.Phone(),
		Company:            u.Company(),
		PasswordHash:       u.PasswordHash(),
		Role:               u.Role().String(),
		MustChangePassword: u.MustChangePassword(),
		PM2Access:          u.PM2Access(),
		IsActive:           u.IsActive(),
		LastLoginAt:        u.LastLoginAt(),
		CreatedAt:          u.CreatedAt(),
		UpdatedAt:          u.UpdatedAt(),
	}
}

func (m *UserMapperImpl) ToDomain(model *models.UserModel) (*user.User, error) {
	return user.ReconstructUser(user.UserData{
		ID:                 model.ID,
		Username:           model.Username,
		DisplayName:        model.Name,
		Email:              derefString(model.Email),
		Phone:              model.Phone,
		Company:            model.Company,
		PasswordHash:       model.PasswordHash,
		Role:               model.Role,
		MustChangePassword: model.MustChangePassword,
		PM2Access:          model.PM2Access,
		IsActive:           model.IsActive,
		LastLoginAt:        model.LastLoginAt,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	})
}

func (m *UserMapperImpl) ToDomainList(ms []models.UserModel) ([]*user.User, error) {
	out := make([]*user.User, 0, len(ms))
	for i := range ms {
		u, err := m.ToDomain(&ms[i])
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}
