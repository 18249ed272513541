package clientservice

import "context"

type Repository interface {
	Create(ctx context.Context, s *ClientService) error
	Update(ctx context.Context, s *ClientService) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*ClientService, error)
	// List returns every service newest first, or only clientID's when set.
	List(ctx context.Context, clientID *uint) ([]*ServiceView, error)
	// ListScannable returns active services that have a folder configured,
	// largest usage first.
	ListScannable(ctx context.Context) ([]*ServiceView, error)
}

// ServiceView is a service with its owner's display fields.
type ServiceView struct {
	Service        *ClientService
	ClientUsername string
	ClientName     string
	ClientEmail    string
	ClientCompany  string
}
