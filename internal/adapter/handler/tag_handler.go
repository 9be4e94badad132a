package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/leondli/gallery/internal/usecase/tag"
	"github.com/leondli/gallery/pkg/response"
)

// TagHandler exposes the tag mutation operations
type TagHandler struct {
	tagUseCase tag.UseCase
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tagUseCase tag.UseCase) *TagHandler {
	return &TagHandler{tagUseCase: tagUseCase}
}

type createTagRequest struct {
	Name   string     `json:"name"`
	Color  string     `json:"color"`
	FileID *uuid.UUID `json:"file_id,omitempty"`
}

func (r createTagRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(0, 100)),
		validation.Field(&r.Color, validation.Length(0, 32)),
	)
}

type fileTagsRequest struct {
	TagIDs []uuid.UUID `json:"tag_ids"`
}

type filesTagsRequest struct {
	FileIDs []uuid.UUID `json:"file_ids"`
	TagIDs  []uuid.UUID `json:"tag_ids"`
}

// reasonStatus maps a refusal to its HTTP status
func reasonStatus(r tag.Reason) (int, string) {
	switch {
	case r.IsInput():
		return http.StatusBadRequest, response.CodeBadRequest
	case r == tag.ReasonUnauthorized:
		return http.StatusUnauthorized, response.CodeUnauthorized
	case r == tag.ReasonFileNotFound, r == tag.ReasonSomeTagsNotFound:
		return http.StatusNotFound, response.CodeNotFound
	default:
		return http.StatusInternalServerError, response.CodeInternalError
	}
}

func refuse(c *gin.Context, r tag.Reason) {
	status, code := reasonStatus(r)
	response.ErrorWithReason(c, status, code, r.String(), r.String(), nil)
}

// Create godoc
// @Summary Create a tag in a folder, optionally attaching it to a file
// @Tags tags
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param folder_id path string true "Folder ID"
// @Param request body createTagRequest true "Tag input"
// @Success 201 {object} response.Response{data=tag.CreateTagResult}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/folders/{folder_id}/tags [post]
func (h *TagHandler) Create(c *gin.Context) {
	folderID, ok := uuidParam(c, "folder_id")
	if !ok {
		return
	}

	var req createTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	result, err := h.tagUseCase.CreateTag(c.Request.Context(), &tag.CreateTagInput{
		Name:     req.Name,
		Color:    req.Color,
		FolderID: folderID,
		FileID:   req.FileID,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	if !result.Success {
		refuse(c, result.Error)
		return
	}

	response.Created(c, result)
}

// ListByFolder godoc
// @Summary List the tags of a folder
// @Tags tags
// @Security BearerAuth
// @Produce json
// @Param folder_id path string true "Folder ID"
// @Success 200 {object} response.Response{data=[]entity.Tag}
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/folders/{folder_id}/tags [get]
func (h *TagHandler) ListByFolder(c *gin.Context) {
	folderID, ok := uuidParam(c, "folder_id")
	if !ok {
		return
	}

	tags, err := h.tagUseCase.ListFolderTags(c.Request.Context(), folderID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, tags)
}

// AddToFile godoc
// @Summary Ensure tags are attached to a file
// @Tags tags
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param file_id path string true "File ID"
// @Param request body fileTagsRequest true "Tag IDs"
// @Success 200 {object} response.Response{data=tag.FileTagsResult}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/files/{file_id}/tags [post]
func (h *TagHandler) AddToFile(c *gin.Context) {
	h.fileOp(c, h.tagUseCase.AddTagsToFile)
}

// RemoveFromFile godoc
// @Summary Ensure tags are detached from a file
// @Tags tags
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param file_id path string true "File ID"
// @Param request body fileTagsRequest true "Tag IDs"
// @Success 200 {object} response.Response{data=tag.FileTagsResult}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/files/{file_id}/tags [delete]
func (h *TagHandler) RemoveFromFile(c *gin.Context) {
	h.fileOp(c, h.tagUseCase.RemoveTagsFromFile)
}

// AddToFiles godoc
// @Summary Ensure tags are attached to several files of one folder
// @Tags tags
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body filesTagsRequest true "File and tag IDs"
// @Success 200 {object} response.Response{data=tag.FilesTagsResult}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/tags/files [post]
func (h *TagHandler) AddToFiles(c *gin.Context) {
	h.filesOp(c, h.tagUseCase.AddTagsToFiles)
}

// RemoveFromFiles godoc
// @Summary Ensure tags are detached from several files of one folder
// @Tags tags
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body filesTagsRequest true "File and tag IDs"
// @Success 200 {object} response.Response{data=tag.FilesTagsResult}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/tags/files [delete]
func (h *TagHandler) RemoveFromFiles(c *gin.Context) {
	h.filesOp(c, h.tagUseCase.RemoveTagsFromFiles)
}

type fileOpFunc func(ctx context.Context, fileID uuid.UUID, tagIDs []uuid.UUID) (*tag.FileTagsResult, error)

type filesOpFunc func(ctx context.Context, fileIDs, tagIDs []uuid.UUID) (*tag.FilesTagsResult, error)

func (h *TagHandler) fileOp(c *gin.Context, op fileOpFunc) {
	fileID, ok := uuidParam(c, "file_id")
	if !ok {
		return
	}

	var req fileTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := op(c.Request.Context(), fileID, req.TagIDs)
	if err != nil {
		handleError(c, err)
		return
	}
	if !result.Success {
		refuse(c, result.Error)
		return
	}

	response.Success(c, result)
}

func (h *TagHandler) filesOp(c *gin.Context, op filesOpFunc) {
	var req filesTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := op(c.Request.Context(), req.FileIDs, req.TagIDs)
	if err != nil {
		handleError(c, err)
		return
	}
	if !result.Success {
		refuse(c, result.Error)
		return
	}

	response.Success(c, result)
}
