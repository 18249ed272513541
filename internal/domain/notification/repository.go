package notification

import "context"

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id uint) (*Notification, error)
	// ListVisible returns the viewer's set newest first, at most limit rows.
	ListVisible(ctx context.Context, viewer Viewer, limit int) ([]*Notification, error)
	CountUnread(ctx context.Context, viewer Viewer) (int64, error)
	MarkAllRead(ctx context.Context, viewer Viewer) (int64, error)
	MarkRead(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
	// DeleteByReference removes notifications of the given types that point
	// at referenceID.
	DeleteByReference(ctx context.Context, referenceID uint, types ...Type) error
}
