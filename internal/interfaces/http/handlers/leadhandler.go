package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/cerberus-dev/cerberus/internal/application/lead/usecases"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/utils"
)

// LeadHandler serves the public contact form and the staff lead inbox.
type LeadHandler struct {
	submitUC    submitLeadUseCase
	listUC      listLeadsUseCase
	getUC       getLeadUseCase
	summaryUC   getLeadSummaryUseCase
	importantUC toggleLeadImportantUseCase
	statusUC    changeLeadStatusUseCase
	notesUC     updateLeadNotesUseCase
	deleteUC    deleteLeadUseCase
	logger      logger.Interface
}

func NewLeadHandler(
	submitUC submitLeadUseCase,
	listUC listLeadsUseCase,
	getUC getLeadUseCase,
	summaryUC getLeadSummaryUseCase,
	importantUC toggleLeadImportantUseCase,
	statusUC changeLeadStatusUseCase,
	notesUC updateLeadNotesUseCase,
	deleteUC deleteLeadUseCase,
	logger logger.Interface,
) *LeadHandler {
	return &LeadHandler{
		submitUC:    submitUC,
		listUC:      listUC,
		getUC:       getUC,
		summaryUC:   summaryUC,
		importantUC: importantUC,
		statusUC:    statusUC,
		notesUC:     notesUC,
		deleteUC:    deleteUC,
		logger:      logger,
	}
}

type ContactRequest struct {
	Name        string `json:"name" binding:"notblank,max=200"`
	Email       string `json:"email" binding:"notblank,max=200"`
	Phone       string `json:"phone" binding:"max=50"`
	ProjectType string `json:"project_type" binding:"max=100"`
	Message     string `json:"message" binding:"notblank,max=10000"`
}

type LeadStatusRequest struct {
	Status string `json:"status" binding:"notblank"`
}

type LeadNotesRequest struct {
	Notes string `json:"notes"`
}

// SubmitContact handles POST /api/contact
func (h *LeadHandler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.submitUC.Execute(c.Request.Context(), usecases.SubmitLeadCommand{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		ProjectType: req.ProjectType,
		Message:     req.Message,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"id": result.LeadID})
}

// ListLeads handles GET /api/leads
func (h *LeadHandler) ListLeads(c *gin.Context) {
	leads, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"leads": leads})
}

// GetSummary handles GET /api/leads/summary
func (h *LeadHandler) GetSummary(c *gin.Context) {
	summary, err := h.summaryUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"summary": summary})
}

// GetLead handles GET /api/leads/:id
func (h *LeadHandler) GetLead(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	lead, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"lead": lead})
}

// ToggleImportant handles POST /api/leads/:id/important
func (h *LeadHandler) ToggleImportant(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	important, err := h.importantUC.Execute(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"isImportant": important})
}

// ChangeStatus handles POST /api/leads/:id/status
func (h *LeadHandler) ChangeStatus(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req LeadStatusRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	lead, err := h.statusUC.Execute(c.Request.Context(), usecases.ChangeLeadStatusCommand{LeadID: id, Status: req.Status})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"lead": lead})
}

// UpdateNotes handles POST /api/leads/:id/notes
func (h *LeadHandler) UpdateNotes(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req LeadNotesRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	lead, err := h.notesUC.Execute(c.Request.Context(), usecases.UpdateLeadNotesCommand{LeadID: id, Notes: req.Notes})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"lead": lead})
}

// DeleteLead handles DELETE /api/leads/:id
func (h *LeadHandler) DeleteLead(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.deleteUC.Execute(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c)
}
