package dto

import (
	"time"

	"github.com/cerberus-dev/cerberus/internal/domain/user"
)

type UserDTO struct {
	ID                 uint       `json:"id"`
	Username           string     `json:"username"`
	Email              string     `json:"email"`
	DisplayName        string     `json:"displayName"`
	Phone              string     `json:"phone,omitempty"`
	Company            string     `json:"company,omitempty"`
	Role               string     `json:"role"`
	MustChangePassword bool       `json:"mustChangePassword"`
	PM2Access          bool       `json:"pm2Access"`
	IsActive           bool       `json:"isActive"`
	LastLoginAt        *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// UserSummaryDTO is the row shape of the support-staff and client pickers.
type UserSummaryDTO struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Company     string `json:"company,omitempty"`
}

func ToUserDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:                 u.ID(),
		Username:           u.Username(),
		Email:              u.Email(),
		DisplayName:        u.DisplayName(),
		Phone:              u.Phone(),
		Company:            u.Company(),
		Role:               u.Role().String(),
		MustChangePassword: u.MustChangePassword(),
		PM2Access:          u.PM2Access(),
		IsActive:           u.IsActive(),
		LastLoginAt:        u.LastLoginAt(),
		CreatedAt:          u.CreatedAt(),
	}
}

func ToUserDTOs(users []*user.User) []*UserDTO {
	out := make([]*UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserDTO(u))
	}
	return out
}

func ToUserSummaryDTOs(users []*user.User) []*UserSummaryDTO {
	out := make([]*UserSummaryDTO, 0, len(users))
	for _, u := range users {
		out = append(out, &UserSummaryDTO{
			ID:          u.ID(),
			Username:    u.Username(),
			DisplayName: u.DisplayName(),
			Email:       u.Email(),
			Company:     u.Company(),
		})
	}
	return out
}
