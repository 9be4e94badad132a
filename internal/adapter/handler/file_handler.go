package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/leondli/gallery/internal/usecase/file"
	"github.com/leondli/gallery/pkg/response"
)

// FileHandler handles file metadata requests
type FileHandler struct {
	fileUseCase file.UseCase
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileUseCase file.UseCase) *FileHandler {
	return &FileHandler{fileUseCase: fileUseCase}
}

// Register godoc
// @Summary Register a file in a folder
// @Tags files
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param folder_id path string true "Folder ID"
// @Param request body file.RegisterInput true "File input"
// @Success 201 {object} response.Response{data=entity.File}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /api/v1/folders/{folder_id}/files [post]
func (h *FileHandler) Register(c *gin.Context) {
	folderID, ok := uuidParam(c, "folder_id")
	if !ok {
		return
	}

	var input file.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	f, err := h.fileUseCase.Register(c.Request.Context(), folderID, &input)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, f)
}

// List godoc
// @Summary List the files of a folder
// @Tags files
// @Security BearerAuth
// @Produce json
// @Param folder_id path string true "Folder ID"
// @Param tag_id query string false "Only files carrying this tag"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.PaginatedResponse{data=[]entity.File}
// @Failure 403 {object} response.ErrorResponse
// @Router /api/v1/folders/{folder_id}/files [get]
func (h *FileHandler) List(c *gin.Context) {
	folderID, ok := uuidParam(c, "folder_id")
	if !ok {
		return
	}

	input := &file.ListInput{FolderID: folderID}
	if raw := c.Query("tag_id"); raw != "" {
		tagID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid tag_id")
			return
		}
		input.TagID = &tagID
	}
	input.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	input.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "0"))

	files, total, err := h.fileUseCase.List(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	response.SuccessWithPagination(c, files, input.Page, input.PageSize, total)
}

// Get godoc
// @Summary Get a file with its tags
// @Tags files
// @Security BearerAuth
// @Produce json
// @Param file_id path string true "File ID"
// @Success 200 {object} response.Response{data=entity.File}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/files/{file_id} [get]
func (h *FileHandler) Get(c *gin.Context) {
	fileID, ok := uuidParam(c, "file_id")
	if !ok {
		return
	}

	f, err := h.fileUseCase.Get(c.Request.Context(), fileID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, f)
}
