package models

import (
	"time"

	"github.com/cerberus-dev/cerberus/internal/shared/constants"
)

// UserModel is an account row. Staff and clients share the table and are
// told apart by Role.
type UserModel struct {
	ID                 uint    `gorm:"primaryKey"`
	Username           string  `gorm:"uniqueIndex;size:100;not null"`
	Name               string  `gorm:"size:150"`
	Email              *string `gorm:"uniqueIndex;size:191"`
	Phone              string  `gorm:"size:50"`
	Company            string  `gorm:"size:150"`
	PasswordHash       string  `gorm:"size:255;not null"`
	Role               string  `gorm:"size:20;not null;index;default:client"`
	MustChangePassword bool    `gorm:"not null;default:false"`
	PM2Access          bool    `gorm:"column:pm2_access;not null;default:false"`
	IsActive           bool    `gorm:"not null;default:true"`
	LastLoginAt        *time.Time
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string {
	return constants.TableUsers
}
