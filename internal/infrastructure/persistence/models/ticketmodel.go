package models

import (
	"time"

	"github.com/cerberus-dev/cerberus/internal/shared/constants"
)

type TicketModel struct {
	ID                uint    `gorm:"primaryKey"`
	Subject           string  `gorm:"size:255;not null"`
	Status            string  `gorm:"size:20;not null;index"`
	Priority          string  `gorm:"size:20;not null;index"`
	Category          string  `gorm:"size:30;not null;default:support"`
	ImprovementStatus *string `gorm:"size:20"`
	ClientID          uint    `gorm:"not null;index"`
	AssignedTo        *uint   `gorm:"index"`
	ServiceID         *uint   `gorm:"index"`
	CreatedBy         uint    `gorm:"not null"`
	ClosedAt          *time.Time
	CreatedAt         time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`

	// No foreign key constraints or associations.
	// The delete cascade is done by the repository inside a transaction.
}

func (TicketModel) TableName() string {
	return constants.TableTickets
}

type TicketMessageModel struct {
	ID         uint      `gorm:"primaryKey"`
	TicketID   uint      `gorm:"not null;index"`
	UserID     uint      `gorm:"not null;index"`
	Message    string    `gorm:"type:text;not null"`
	IsInternal bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index"`
}

func (TicketMessageModel) TableName() string {
	return constants.TableTicketMessages
}

type TicketAttachmentModel struct {
	ID           uint      `gorm:"primaryKey"`
	TicketID     uint      `gorm:"not null;index"`
	MessageID    *uint     `gorm:"index"`
	Filename     string    `gorm:"size:255;not null"`
	OriginalName string    `gorm:"size:255;not null"`
	FilePath     string    `gorm:"size:500;not null"`
	FileSize     int64     `gorm:"not null"`
	MimeType     string    `gorm:"size:100"`
	UploadedBy   uint      `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (TicketAttachmentModel) TableName() string {
	return constants.TableTicketAttachments
}
