package office

import (
	"errors"

	"github.com/fuelflow/internal/http/handlers/shared"
	"github.com/fuelflow/internal/http/response"
	"github.com/fuelflow/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest is the login payload.
type LoginRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// Login authenticates a department account and issues a token.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if h.CaptchaService != nil && h.CaptchaService.Enabled() {
		if err := h.CaptchaService.Verify(req.CaptchaID, req.CaptchaCode); err != nil {
			shared.RespondServiceError(c, err)
			return
		}
	}

	user, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			shared.RespondError(c, response.CodeUnauthorized, "invalid username or password", nil)
		case errors.Is(err, service.ErrUserDisabled):
			shared.RespondError(c, response.CodeUnauthorized, "account is disabled", nil)
		default:
			shared.RespondError(c, response.CodeInternal, "login failed", err)
		}
		return
	}

	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"user":       user,
	})
}

// GetImageCaptcha returns a login captcha challenge when enabled.
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	if h.CaptchaService == nil || !h.CaptchaService.Enabled() {
		response.Success(c, gin.H{"enabled": false})
		return
	}
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "captcha generation failed", err)
		return
	}
	response.Success(c, gin.H{
		"enabled":      true,
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}

// ChangePasswordRequest is the password change payload.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword rotates the caller's password and invalidates old tokens.
func (h *Handler) ChangePassword(c *gin.Context) {
	actor, ok := shared.Actor(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.AuthService.ChangePassword(actor.UserID, req.OldPassword, req.NewPassword); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "password changed", nil)
}

// Profile returns the caller's account.
func (h *Handler) Profile(c *gin.Context) {
	actor, ok := shared.Actor(c)
	if !ok {
		return
	}
	user, err := h.UserService.Get(actor.UserID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, user)
}
