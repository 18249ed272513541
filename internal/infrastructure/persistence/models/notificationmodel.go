package models

import (
	"time"

	"github.com/cerberus-dev/cerberus/internal/shared/constants"
)

// NotificationModel is an in-app notification. A nil TargetUserID is a
// broadcast to staff.
type NotificationModel struct {
	ID           uint      `gorm:"primaryKey"`
	Type         string    `gorm:"size:30;not null;index"`
	TargetUserID *uint     `gorm:"index"`
	ReferenceID  *uint     `gorm:"index"`
	Title        string    `gorm:"size:200;not null"`
	Body         string    `gorm:"type:text"`
	IsRead       bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index"`
}

func (NotificationModel) TableName() string {
	return constants.TableNotifications
}
