package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/cerberus-dev/cerberus/internal/application/user/usecases"
	"github.com/cerberus-dev/cerberus/internal/shared/constants"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/utils"
)

// UserHandler is the admin user management API plus the staff and client
// pickers used by ticket and service forms.
type UserHandler struct {
	listUsersUC    listUsersUseCase
	getUserUC      getUserUseCase
	supportStaffUC listDirectoryUseCase
	clientsUC      listDirectoryUseCase
	createUserUC   createUserUseCase
	updateUserUC   updateUserUseCase
	deleteUserUC   deleteUserUseCase
	recoverUserUC  recoverUserUseCase
	logger         logger.Interface
}

func NewUserHandler(
	listUsersUC listUsersUseCase,
	getUserUC getUserUseCase,
	supportStaffUC listDirectoryUseCase,
	clientsUC listDirectoryUseCase,
	createUserUC createUserUseCase,
	updateUserUC updateUserUseCase,
	deleteUserUC deleteUserUseCase,
	recoverUserUC recoverUserUseCase,
	logger logger.Interface,
) *UserHandler {
	return &UserHandler{
		listUsersUC:    listUsersUC,
		getUserUC:      getUserUC,
		supportStaffUC: supportStaffUC,
		clientsUC:      clientsUC,
		createUserUC:   createUserUC,
		updateUserUC:   updateUserUC,
		deleteUserUC:   deleteUserUC,
		recoverUserUC:  recoverUserUC,
		logger:         logger,
	}
}

type CreateUserRequest struct {
	Username    string `json:"username" binding:"notblank"`
	Email       string `json:"email" binding:"omitempty,email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone"`
	Company     string `json:"company"`
	Role        string `json:"role"`
	PM2Access   bool   `json:"pm2_access"`
}

type UpdateUserRequest struct {
	DisplayName *string `json:"display_name"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone"`
	Company     *string `json:"company"`
	Role        *string `json:"role"`
	PM2Access   *bool   `json:"pm2_access"`
	IsActive    *bool   `json:"is_active"`
	Password    *string `json:"password"`
}

// ListUsers handles GET /api/users?role=
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.listUsersUC.Execute(c.Request.Context(), c.Query("role"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"users": users})
}

// GetUser handles GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	user, err := h.getUserUC.Execute(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"user": user})
}

// ListSupportStaff handles GET /api/support-staff
func (h *UserHandler) ListSupportStaff(c *gin.Context) {
	staff, err := h.supportStaffUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"users": staff})
}

// ListClients handles GET /api/clients
func (h *UserHandler) ListClients(c *gin.Context) {
	clients, err := h.clientsUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"users": clients})
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createUserUC.Execute(c.Request.Context(), usecases.CreateUserCommand{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
		Company:     req.Company,
		Role:        req.Role,
		PM2Access:   req.PM2Access,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	payload := gin.H{"user": result.User}
	if result.TemporaryPassword != "" {
		payload["temporaryPassword"] = result.TemporaryPassword
	}
	utils.SuccessResponse(c, payload)
}

// UpdateUser handles PUT /api/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req UpdateUserRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	user, err := h.updateUserUC.Execute(c.Request.Context(), usecases.UpdateUserCommand{
		ActorID:     c.GetUint(constants.ContextKeyUserID),
		UserID:      id,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Phone:       req.Phone,
		Company:     req.Company,
		Role:        req.Role,
		PM2Access:   req.PM2Access,
		IsActive:    req.IsActive,
		Password:    req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"user": user})
}

// DeleteUser handles DELETE /api/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.deleteUserUC.Execute(c.Request.Context(), c.GetUint(constants.ContextKeyUserID), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c)
}

// RecoverUser handles POST /api/users/:id/recover
func (h *UserHandler) RecoverUser(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	result, err := h.recoverUserUC.Execute(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"temporaryPassword": result.TemporaryPassword,
		"emailQueued":       result.EmailQueued,
	})
}
