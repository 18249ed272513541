package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/cerberus-dev/cerberus/internal/shared/constants"
)

type ClientServiceModel struct {
	ID             uint    `gorm:"primaryKey"`
	ClientID       uint    `gorm:"not null;index"`
	ServiceName    string  `gorm:"size:150;not null"`
	Domain         string  `gorm:"size:255"`
	Description    string  `gorm:"type:text"`
	ServiceType    string  `gorm:"size:30;not null;default:web"`
	Status         string  `gorm:"size:20;not null;default:active;index"`
	StorageUsedMB  float64 `gorm:"column:storage_used_mb;not null;default:0"`
	StorageLimitMB float64 `gorm:"column:storage_limit_mb;not null;default:5000"`
	AlertThreshold int     `gorm:"not null;default:80"`
	FolderPath     *string `gorm:"size:500"`
	LastScanAt     *time.Time
	LastScanResult datatypes.JSON
	AlertSentAt    *time.Time
	StartDate      *time.Time
	EndDate        *time.Time
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (ClientServiceModel) TableName() string {
	return constants.TableClientServices
}
