package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/leondli/gallery/internal/infrastructure/middleware"
	"github.com/leondli/gallery/internal/usecase/auth"
	apperrors "github.com/leondli/gallery/pkg/errors"
	"github.com/leondli/gallery/pkg/response"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	authUseCase auth.UseCase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUseCase auth.UseCase) *AuthHandler {
	return &AuthHandler{authUseCase: authUseCase}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.RegisterInput true "Register input"
// @Success 201 {object} response.Response{data=auth.AuthOutput}
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var input auth.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	output, err := h.authUseCase.Register(c.Request.Context(), &input)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, output)
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.LoginInput true "Login input"
// @Success 200 {object} response.Response{data=auth.AuthOutput}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input auth.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	output, err := h.authUseCase.Login(c.Request.Context(), &input)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, output)
}

// RefreshToken godoc
// @Summary Refresh access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body refreshTokenRequest true "Refresh token"
// @Success 200 {object} response.Response{data=auth.AuthOutput}
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req refreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	output, err := h.authUseCase.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, output)
}

// Logout godoc
// @Summary Logout user
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		response.Unauthorized(c, "invalid user ID")
		return
	}

	if err := h.authUseCase.Logout(c.Request.Context(), userID); err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "logged out successfully"})
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// handleError converts app errors to HTTP responses
func handleError(c *gin.Context, err error) {
	if appErr := apperrors.GetAppError(err); appErr == nil || appErr.HTTPCode >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(c)).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
	}
	response.HandleError(c, err)
}

// uuidParam parses a path parameter, answering 400 when it is malformed
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
