package content

import (
	"github.com/gin-gonic/gin"

	"github.com/cerberus-dev/cerberus/internal/application/content/dto"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/utils"
)

type FaqHandler struct {
	service faqService
	logger  logger.Interface
}

func NewFaqHandler(service faqService, logger logger.Interface) *FaqHandler {
	return &FaqHandler{service: service, logger: logger}
}

// List handles GET /api/faq?category=&lang=
func (h *FaqHandler) List(c *gin.Context) {
	items, err := h.service.ListPublishedFaq(c.Request.Context(), c.Query("category"), langOf(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"items": items})
}

// Categories handles GET /api/faq/categories
func (h *FaqHandler) Categories(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{"categories": h.service.FaqCategories()})
}

func (h *FaqHandler) AdminList(c *gin.Context) {
	items, err := h.service.ListAllFaq(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"items": items})
}

func (h *FaqHandler) Create(c *gin.Context) {
	var req dto.FaqRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	item, err := h.service.CreateFaq(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"item": item})
}

func (h *FaqHandler) Update(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req dto.FaqRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	item, err := h.service.UpdateFaq(c.Request.Context(), id, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"item": item})
}

func (h *FaqHandler) Delete(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.service.DeleteFaq(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c)
}
