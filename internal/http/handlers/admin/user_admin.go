package admin

import (
	"strings"

	"github.com/fuelflow/internal/http/handlers/shared"
	"github.com/fuelflow/internal/http/response"
	"github.com/fuelflow/internal/repository"
	"github.com/fuelflow/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateUserRequest is the account creation payload.
type CreateUserRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	FullName   string `json:"full_name" binding:"required"`
	Email      string `json:"email"`
	Department string `json:"department" binding:"required"`
	Role       string `json:"role"`
}

// CreateUser adds a department account.
func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	user, err := h.UserService.Create(service.CreateUserInput{
		Username:   req.Username,
		Password:   req.Password,
		FullName:   req.FullName,
		Email:      req.Email,
		Department: req.Department,
		Role:       req.Role,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, user)
}

// ListUsers lists department accounts.
func (h *Handler) ListUsers(c *gin.Context) {
	page, pageSize := pageParams(c)
	users, total, err := h.UserService.List(repository.UserListFilter{
		Page:       page,
		PageSize:   pageSize,
		Keyword:    strings.TrimSpace(c.Query("keyword")),
		Department: strings.TrimSpace(c.Query("department")),
		Status:     strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "user fetch failed", err)
		return
	}
	response.SuccessWithPage(c, users, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: shared.TotalPages(total, pageSize),
	})
}

// GetUser fetches one account.
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := h.UserService.Get(id)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, user)
}

// UpdateUserRequest is the account update payload.
type UpdateUserRequest struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Role       string `json:"role"`
}

// UpdateUser edits an account. Changing the department bumps the token
// version so stale tokens lose the old permissions.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	user, err := h.UserService.UpdateProfile(id, service.UpdateProfileInput{
		FullName:   req.FullName,
		Email:      req.Email,
		Department: req.Department,
		Role:       req.Role,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, user)
}

// SetUserStatusRequest enables or disables accounts.
type SetUserStatusRequest struct {
	UserIDs []uint `json:"user_ids" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

// SetUserStatus batch toggles account status.
func (h *Handler) SetUserStatus(c *gin.Context) {
	var req SetUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.UserService.SetStatus(req.UserIDs, req.Status); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "status updated", gin.H{"count": len(req.UserIDs)})
}
