package lead

import "context"

type Repository interface {
	Create(ctx context.Context, lead *Lead) error
	Update(ctx context.Context, lead *Lead) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Lead, error)
	// List orders important leads first, newest first within each group.
	List(ctx context.Context) ([]*Lead, error)
	Summary(ctx context.Context) (*Summary, error)
}

type Summary struct {
	Total     int64
	New       int64
	Replied   int64
	Closed    int64
	Important int64
}
