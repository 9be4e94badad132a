package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/leondli/gallery/pkg/errors"
)

// Error codes as strings
const (
	CodeSuccess         = "SUCCESS"
	CodeBadRequest      = apperrors.CodeBadRequest
	CodeUnauthorized    = apperrors.CodeUnauthorized
	CodeForbidden       = apperrors.CodeForbidden
	CodeNotFound        = apperrors.CodeNotFound
	CodeConflict        = apperrors.CodeConflict
	CodeInternalError   = apperrors.CodeInternalError
	CodeValidationError = apperrors.CodeValidationError
)

// RequestIDKey is the key used to store request ID in gin context
const RequestIDKey = "X-Request-ID"

// Response is the standard API response structure for success
type Response struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"requestId"`
}

// ErrorDetail provides additional error information
type ErrorDetail struct {
	Reason   string            `json:"reason"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// ErrorResponse is the standard API response structure for errors
type ErrorResponse struct {
	Code      string        `json:"code"`
	HTTPCode  int           `json:"httpCode"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	RequestID string        `json:"requestId"`
}

// Pagination holds pagination info
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// PaginatedData holds paginated response data
type PaginatedData struct {
	Items      interface{} `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

// GetRequestID retrieves the request ID from context, or generates a new one
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok && id != "" {
			return id
		}
	}

	if requestID := c.GetHeader(RequestIDKey); requestID != "" {
		return requestID
	}

	return "req-" + uuid.New().String()
}

// Success sends a success response
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:      CodeSuccess,
		Message:   "success",
		Data:      data,
		RequestID: GetRequestID(c),
	})
}

// Created sends a created response
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:      CodeSuccess,
		Message:   "created",
		Data:      data,
		RequestID: GetRequestID(c),
	})
}

// SuccessWithPagination sends a paginated success response
func SuccessWithPagination(c *gin.Context, items interface{}, page, pageSize int, total int64) {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data: PaginatedData{
			Items: items,
			Pagination: Pagination{
				Page:       page,
				PageSize:   pageSize,
				Total:      total,
				TotalPages: totalPages,
			},
		},
		RequestID: GetRequestID(c),
	})
}

// Error sends an error response with details
func Error(c *gin.Context, httpStatus int, code string, message string, details ...ErrorDetail) {
	c.JSON(httpStatus, ErrorResponse{
		Code:      code,
		HTTPCode:  httpStatus,
		Message:   message,
		Details:   details,
		RequestID: GetRequestID(c),
	})
}

// ErrorWithReason sends an error response with a reason and optional metadata
func ErrorWithReason(c *gin.Context, httpStatus int, code string, message string, reason string, metadata map[string]string) {
	Error(c, httpStatus, code, message, ErrorDetail{Reason: reason, Metadata: metadata})
}

// BadRequest sends a bad request response
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeBadRequest, message)
}

// Unauthorized sends an unauthorized response
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, CodeUnauthorized, message)
}

// Forbidden sends a forbidden response
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, CodeForbidden, message)
}

// NotFound sends a not found response
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, CodeNotFound, message)
}

// InternalError sends an internal server error response
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, CodeInternalError, message)
}

// ValidationError sends a validation error response
func ValidationError(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeValidationError, message)
}

// HandleError handles an error and sends the appropriate response
// It supports both AppError and regular errors
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	if appErr := apperrors.GetAppError(err); appErr != nil {
		var details []ErrorDetail
		for _, d := range appErr.Details {
			details = append(details, ErrorDetail{
				Reason:   d.Reason,
				Metadata: d.Metadata,
			})
		}
		status := appErr.HTTPCode
		if status == 0 {
			status = http.StatusInternalServerError
		}
		message := appErr.Message
		if status >= http.StatusInternalServerError {
			message = "internal server error"
		}
		Error(c, status, appErr.Code, message, details...)
		return
	}

	InternalError(c, "internal server error")
}
