package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cerberus-dev/cerberus/internal/application/user/usecases"
	"github.com/cerberus-dev/cerberus/internal/interfaces/http/middleware"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/utils"
)

type AuthHandler struct {
	loginUC          loginUseCase
	logoutUC         logoutUseCase
	changePasswordUC changePasswordUseCase
	requestResetUC   requestPasswordResetUseCase
	resetPasswordUC  resetPasswordUseCase
	cookie           sessionCookie
	logger           logger.Interface
}

func NewAuthHandler(
	loginUC loginUseCase,
	logoutUC logoutUseCase,
	changePasswordUC changePasswordUseCase,
	requestResetUC requestPasswordResetUseCase,
	resetPasswordUC resetPasswordUseCase,
	cookie sessionCookie,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		loginUC:          loginUC,
		logoutUC:         logoutUC,
		changePasswordUC: changePasswordUC,
		requestResetUC:   requestResetUC,
		resetPasswordUC:  resetPasswordUC,
		cookie:           cookie,
		logger:           logger,
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"notblank"`
}

// login accepts either field; username wins when both are sent.
func (r LoginRequest) login() string {
	if r.Username != "" {
		return r.Username
	}
	return r.Email
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"notblank"`
	NewPassword     string `json:"new_password" binding:"notblank"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"notblank"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"notblank"`
	NewPassword string `json:"new_password" binding:"notblank"`
}

// sessionUserResponse is the public view of the session snapshot.
type sessionUserResponse struct {
	ID                 uint   `json:"id"`
	Username           string `json:"username"`
	Email              string `json:"email"`
	DisplayName        string `json:"displayName"`
	Role               string `json:"role"`
	MustChangePassword bool   `json:"mustChangePassword"`
	PM2Access          bool   `json:"pm2Access"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{
		Login:     req.login(),
		Password:  req.Password,
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.cookie.Write(c.Writer, c.Request, result.SessionID); err != nil {
		h.logger.Errorw("failed to write session cookie", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "session_unavailable")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"user":               result.User,
		"mustChangePassword": result.MustChangePassword,
	})
}

// Logout handles POST /api/auth/logout. It succeeds without a session too.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sid := middleware.CurrentSessionID(c); sid != "" {
		if err := h.logoutUC.Execute(c.Request.Context(), sid); err != nil {
			h.logger.Warnw("failed to delete session", "error", err)
		}
	}
	if err := h.cookie.Clear(c.Writer, c.Request); err != nil {
		h.logger.Warnw("failed to clear session cookie", "error", err)
	}
	utils.OKResponse(c)
}

// Session handles GET /api/session
func (h *AuthHandler) Session(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not_authenticated")
		return
	}
	utils.SuccessResponse(c, gin.H{"user": sessionUserResponse{
		ID:                 user.ID,
		Username:           user.Username,
		Email:              user.Email,
		DisplayName:        user.DisplayName,
		Role:               user.Role.String(),
		MustChangePassword: user.MustChangePassword,
		PM2Access:          user.PM2Access,
	}})
}

// ChangePassword handles POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not_authenticated")
		return
	}

	err := h.changePasswordUC.Execute(c.Request.Context(), usecases.ChangePasswordCommand{
		UserID:          user.ID,
		SessionID:       middleware.CurrentSessionID(c),
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c)
}

// ForgotPassword handles POST /api/auth/password/forgot. The answer is the
// same whether or not the address belongs to an account.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.requestResetUC.Execute(c.Request.Context(), req.Email); err != nil {
		h.logger.Errorw("password reset request failed", "error", err)
	}
	utils.OKResponse(c)
}

// ResetPassword handles POST /api/auth/password/reset
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	err := h.resetPasswordUC.Execute(c.Request.Context(), usecases.ResetPasswordCommand{
		Token:       req.Token,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c)
}
