package ticket

import (
	"github.com/gin-gonic/gin"

	"github.com/cerberus-dev/cerberus/internal/application/ticket/usecases"
	"github.com/cerberus-dev/cerberus/internal/interfaces/http/middleware"
	"github.com/cerberus-dev/cerberus/internal/shared/constants"
)

type CreateTicketRequest struct {
	Subject   string `json:"subject" binding:"notblank,max=255"`
	Message   string `json:"message" binding:"notblank,max=20000"`
	Category  string `json:"category"`
	Priority  string `json:"priority"`
	ServiceID *uint  `json:"service_id"`
	ClientID  *uint  `json:"client_id"`
}

func (r *CreateTicketRequest) ToCommand(actor usecases.Actor) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Actor:     actor,
		Subject:   r.Subject,
		Message:   r.Message,
		Category:  r.Category,
		Priority:  r.Priority,
		ServiceID: r.ServiceID,
		ClientID:  r.ClientID,
	}
}

type AddMessageRequest struct {
	Message    string `json:"message" binding:"notblank,max=20000"`
	IsInternal bool   `json:"is_internal"`
}

// UpdateTicketRequest is the admin edit. assigned_to 0 clears the assignee.
type UpdateTicketRequest struct {
	Status     *string `json:"status"`
	Priority   *string `json:"priority"`
	AssignedTo *uint   `json:"assigned_to"`
}

type ImprovementStatusRequest struct {
	Status string `json:"status" binding:"notblank"`
}

// roomRequest is a client frame on the ticket socket.
type roomRequest struct {
	Action   string `json:"action"`
	TicketID uint   `json:"ticket_id"`
}

// roomReply acknowledges or rejects a client frame.
type roomReply struct {
	Event    string `json:"event"`
	TicketID uint   `json:"ticket_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

func actorOf(c *gin.Context) usecases.Actor {
	actor := usecases.Actor{
		UserID: c.GetUint(constants.ContextKeyUserID),
		Role:   middleware.CurrentRole(c),
	}
	if user, ok := middleware.CurrentUser(c); ok {
		actor.DisplayName = user.DisplayName
	}
	return actor
}
