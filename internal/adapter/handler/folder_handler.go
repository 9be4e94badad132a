package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/leondli/gallery/internal/usecase/folder"
	"github.com/leondli/gallery/pkg/response"
)

// FolderHandler handles folder requests
type FolderHandler struct {
	folderUseCase folder.UseCase
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderUseCase folder.UseCase) *FolderHandler {
	return &FolderHandler{folderUseCase: folderUseCase}
}

// Create godoc
// @Summary Create a folder owned by the caller
// @Tags folders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body folder.CreateInput true "Folder input"
// @Success 201 {object} response.Response{data=entity.Folder}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/folders [post]
func (h *FolderHandler) Create(c *gin.Context) {
	var input folder.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	f, err := h.folderUseCase.Create(c.Request.Context(), &input)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, f)
}

// List godoc
// @Summary List the caller's folders
// @Tags folders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response{data=[]entity.Folder}
// @Router /api/v1/folders [get]
func (h *FolderHandler) List(c *gin.Context) {
	folders, err := h.folderUseCase.ListMine(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, folders)
}

// Get godoc
// @Summary Get a folder
// @Tags folders
// @Security BearerAuth
// @Produce json
// @Param folder_id path string true "Folder ID"
// @Success 200 {object} response.Response{data=entity.Folder}
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/folders/{folder_id} [get]
func (h *FolderHandler) Get(c *gin.Context) {
	folderID, ok := uuidParam(c, "folder_id")
	if !ok {
		return
	}

	f, err := h.folderUseCase.Get(c.Request.Context(), folderID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, f)
}
