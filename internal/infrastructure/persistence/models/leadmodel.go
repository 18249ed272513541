package models

import (
	"time"

	"github.com/cerberus-dev/cerberus/internal/shared/constants"
)

type LeadModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:150;not null"`
	Email       string    `gorm:"size:191;not null"`
	Phone       *string   `gorm:"size:50"`
	ProjectType *string   `gorm:"size:100"`
	Message     string    `gorm:"type:text;not null"`
	Status      string    `gorm:"size:20;not null;index;default:new"`
	IsImportant bool      `gorm:"not null;default:false;index"`
	Notes       string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (LeadModel) TableName() string {
	return constants.TableLeads
}
