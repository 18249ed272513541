package ticket

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cerberus-dev/cerberus/internal/application/ticket/usecases"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/utils"
)

type TicketHandler struct {
	uc     UseCases
	logger logger.Interface
}

func NewTicketHandler(uc UseCases, logger logger.Interface) *TicketHandler {
	return &TicketHandler{uc: uc, logger: logger}
}

// ListTickets handles GET /api/tickets?status=&client_id=
func (h *TicketHandler) ListTickets(c *gin.Context) {
	tickets, err := h.uc.List.Execute(c.Request.Context(), usecases.ListTicketsQuery{
		Actor:    actorOf(c),
		Status:   c.Query("status"),
		ClientID: utils.QueryUint(c, "client_id"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"tickets": tickets})
}

// GetStats handles GET /api/tickets/stats
func (h *TicketHandler) GetStats(c *gin.Context) {
	stats, err := h.uc.Stats.Execute(c.Request.Context(), actorOf(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"stats": stats})
}

// GetTicket handles GET /api/tickets/:id
func (h *TicketHandler) GetTicket(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	detail, err := h.uc.Get.Execute(c.Request.Context(), usecases.GetTicketQuery{Actor: actorOf(c), TicketID: id})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"ticket":      detail.Ticket,
		"messages":    detail.Messages,
		"attachments": detail.Attachments,
	})
}

// CreateTicket handles POST /api/tickets
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Create.Execute(c.Request.Context(), req.ToCommand(actorOf(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"ticket": result.Ticket})
}

// AddMessage handles POST /api/tickets/:id/messages
func (h *TicketHandler) AddMessage(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req AddMessageRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.AddMessage.Execute(c.Request.Context(), usecases.AddMessageCommand{
		Actor:      actorOf(c),
		TicketID:   id,
		Message:    req.Message,
		IsInternal: req.IsInternal,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"message":      result.Message,
		"status":       result.Status,
		"autoAssigned": result.AutoAssigned,
	})
}

// AssignTicket handles POST /api/tickets/:id/assign-me. Staff claim an
// unassigned ticket for themselves; a second claim answers 409.
func (h *TicketHandler) AssignTicket(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	t, err := h.uc.Assign.Execute(c.Request.Context(), actorOf(c), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"ticket": t})
}

// UpdateTicket handles PUT /api/tickets/:id
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req UpdateTicketRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	t, err := h.uc.Update.Execute(c.Request.Context(), usecases.UpdateTicketCommand{
		TicketID:   id,
		Status:     req.Status,
		Priority:   req.Priority,
		AssignedTo: req.AssignedTo,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"ticket": t})
}

// CloseTicket handles POST /api/tickets/:id/close
func (h *TicketHandler) CloseTicket(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	t, err := h.uc.Close.Execute(c.Request.Context(), actorOf(c), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"ticket": t})
}

// DeleteTicket handles DELETE /api/tickets/:id
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.uc.Delete.Execute(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c)
}

// ChangeImprovementStatus handles POST /api/tickets/:id/improvement-status
func (h *TicketHandler) ChangeImprovementStatus(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req ImprovementStatusRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	t, err := h.uc.ImprovementStatus.Execute(c.Request.Context(), usecases.ChangeImprovementStatusCommand{
		Actor:    actorOf(c),
		TicketID: id,
		Status:   req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"ticket": t})
}

// UploadAttachment handles POST /api/tickets/:id/attachments (multipart
// field "file", optional "message_id").
func (h *TicketHandler) UploadAttachment(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("missing_file"))
		return
	}

	cmd := usecases.UploadAttachmentCommand{
		Actor:    actorOf(c),
		TicketID: id,
		File:     file,
	}
	if raw := c.PostForm("message_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || v == 0 {
			utils.ErrorResponseWithError(c, errors.NewValidationError("bad_id", "message_id must be a positive integer"))
			return
		}
		mid := uint(v)
		cmd.MessageID = &mid
	}

	attachment, err := h.uc.UploadAttachment.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"attachment": attachment})
}
