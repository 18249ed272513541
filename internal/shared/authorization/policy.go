package authorization

import "context"

type Action string

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionAssign Action = "assign"
	ActionClose  Action = "close"
)

type Resource string

const (
	ResourceTicket         Resource = "ticket"
	ResourceTicketInternal Resource = "ticket_internal"
	ResourceLead           Resource = "lead"
	ResourceService        Resource = "service"
	ResourceStorage        Resource = "storage"
	ResourceNotification   Resource = "notification"
	ResourceContent        Resource = "content"
	ResourceUser           Resource = "user"
	ResourceEmail          Resource = "email"
	ResourceRequirement    Resource = "requirement"
)

// Policy answers capability checks. Implementations must be safe for
// concurrent use.
type Policy interface {
	Can(ctx context.Context, role UserRole, resource Resource, action Action) bool
}

// Capability is one allow rule.
type Capability struct {
	Role     UserRole
	Resource Resource
	Action   Action
}

// DefaultCapabilities is the built-in capability set loaded into an empty
// policy store.
func DefaultCapabilities() []Capability {
	var caps []Capability
	add := func(role UserRole, res Resource, actions ...Action) {
		for _, a := range actions {
			caps = append(caps, Capability{Role: role, Resource: res, Action: a})
		}
	}

	all := []Action{ActionRead, ActionWrite, ActionAssign, ActionClose}
	for _, res := range []Resource{
		ResourceTicket, ResourceTicketInternal, ResourceLead, ResourceService,
		ResourceStorage, ResourceNotification, ResourceContent, ResourceUser,
		ResourceEmail, ResourceRequirement,
	} {
		add(RoleAdmin, res, all...)
	}

	add(RoleSupport, ResourceTicket, ActionRead, ActionWrite, ActionAssign, ActionClose)
	add(RoleSupport, ResourceTicketInternal, ActionRead, ActionWrite)
	add(RoleSupport, ResourceLead, ActionRead, ActionWrite)
	add(RoleSupport, ResourceService, ActionRead)
	add(RoleSupport, ResourceNotification, ActionRead, ActionWrite)
	add(RoleSupport, ResourceRequirement, ActionRead, ActionWrite)
	add(RoleSupport, ResourceUser, ActionRead)

	add(RoleClient, ResourceTicket, ActionRead, ActionWrite)
	add(RoleClient, ResourceService, ActionRead)
	add(RoleClient, ResourceNotification, ActionRead, ActionWrite)

	return caps
}

// StaticPolicy is an in-memory Policy over a capability list. Used by tests
// and as a fallback when no policy store is configured.
type StaticPolicy struct {
	allowed map[Capability]struct{}
}

func NewStaticPolicy(caps []Capability) *StaticPolicy {
	p := &StaticPolicy{allowed: make(map[Capability]struct{}, len(caps))}
	for _, c := range caps {
		p.allowed[c] = struct{}{}
	}
	return p
}

func (p *StaticPolicy) Can(_ context.Context, role UserRole, resource Resource, action Action) bool {
	_, ok := p.allowed[Capability{Role: role, Resource: resource, Action: action}]
	return ok
}
