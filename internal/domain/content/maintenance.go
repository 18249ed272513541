package content

import (
	"fmt"
	"time"
)

type MaintenanceNotice struct {
	ID          uint
	Title       string
	Message     string
	StartAt     time.Time
	EndAt       *time.Time
	IsActive    bool
	CreatedBy   uint
	CreatorName string
	CreatedAt   time.Time
}

func (n *MaintenanceNotice) Validate() error {
	if err := required("title", n.Title); err != nil {
		return err
	}
	if err := required("message", n.Message); err != nil {
		return err
	}
	if n.StartAt.IsZero() {
		return fmt.Errorf("start_at is required")
	}
	if n.EndAt != nil && n.EndAt.Before(n.StartAt) {
		return fmt.Errorf("end_at must not be before start_at")
	}
	return nil
}

// IsCurrent reports whether the notice is active and now falls inside its
// window. An open-ended notice stays current until deactivated.
func (n *MaintenanceNotice) IsCurrent(now time.Time) bool {
	if !n.IsActive || now.Before(n.StartAt) {
		return false
	}
	return n.EndAt == nil || !now.After(*n.EndAt)
}
