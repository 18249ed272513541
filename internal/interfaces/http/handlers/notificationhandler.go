package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/cerberus-dev/cerberus/internal/domain/notification"
	"github.com/cerberus-dev/cerberus/internal/interfaces/http/middleware"
	"github.com/cerberus-dev/cerberus/internal/shared/constants"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/utils"
)

type NotificationHandler struct {
	listUC        listNotificationsUseCase
	unreadCountUC unreadCountUseCase
	markAllReadUC markAllReadUseCase
	markReadUC    notificationActionUseCase
	deleteUC      notificationActionUseCase
	logger        logger.Interface
}

func NewNotificationHandler(
	listUC listNotificationsUseCase,
	unreadCountUC unreadCountUseCase,
	markAllReadUC markAllReadUseCase,
	markReadUC notificationActionUseCase,
	deleteUC notificationActionUseCase,
	logger logger.Interface,
) *NotificationHandler {
	return &NotificationHandler{
		listUC:        listUC,
		unreadCountUC: unreadCountUC,
		markAllReadUC: markAllReadUC,
		markReadUC:    markReadUC,
		deleteUC:      deleteUC,
		logger:        logger,
	}
}

func viewerOf(c *gin.Context) notification.Viewer {
	return notification.Viewer{
		UserID: c.GetUint(constants.ContextKeyUserID),
		Role:   middleware.CurrentRole(c),
	}
}

// ListNotifications handles GET /api/notifications?limit=
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	limit := utils.QueryInt(c, "limit", constants.DefaultNotificationLimit, constants.MaxNotificationLimit)
	items, err := h.listUC.Execute(c.Request.Context(), viewerOf(c), limit)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"notifications": items})
}

// UnreadCount handles GET /api/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.unreadCountUC.Execute(c.Request.Context(), viewerOf(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"count": count})
}

// MarkAllRead handles POST /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	updated, err := h.markAllReadUC.Execute(c.Request.Context(), viewerOf(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"updated": updated})
}

// MarkRead handles POST /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.markReadUC.Execute(c.Request.Context(), viewerOf(c), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c)
}

// DeleteNotification handles DELETE /api/notifications/:id
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.deleteUC.Execute(c.Request.Context(), viewerOf(c), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c)
}
