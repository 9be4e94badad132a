package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/leondli/gallery/internal/infrastructure/middleware"
	"github.com/leondli/gallery/internal/usecase/user"
	"github.com/leondli/gallery/pkg/response"
)

// UserHandler handles user requests
type UserHandler struct {
	userUseCase user.UseCase
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUseCase user.UseCase) *UserHandler {
	return &UserHandler{userUseCase: userUseCase}
}

// GetMe godoc
// @Summary Get current user info
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response{data=entity.UserResponse}
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		response.Unauthorized(c, "invalid user ID")
		return
	}

	userResp, err := h.userUseCase.GetByID(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, userResp)
}
