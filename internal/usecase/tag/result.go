package tag

import (
	"github.com/google/uuid"

	"github.com/leondli/gallery/internal/domain/entity"
)

// CreateTagInput represents tag creation input
type CreateTagInput struct {
	Name     string     `json:"name"`
	Color    string     `json:"color"`
	FolderID uuid.UUID  `json:"folder_id"`
	FileID   *uuid.UUID `json:"file_id,omitempty"`
}

// CreateTagResult is either {success: true, tag} or {success: false, error}
type CreateTagResult struct {
	Success bool        `json:"success"`
	Error   Reason      `json:"error,omitempty"`
	Tag     *entity.Tag `json:"tag,omitempty"`
}

// FileTagsResult is the outcome of a single-file attach or detach
type FileTagsResult struct {
	Success bool         `json:"success"`
	Error   Reason       `json:"error,omitempty"`
	Tags    []entity.Tag `json:"tags,omitempty"`
	File    *entity.File `json:"file,omitempty"`
}

// FilesTagsResult is the outcome of a bulk attach or detach
type FilesTagsResult struct {
	Success bool          `json:"success"`
	Error   Reason        `json:"error,omitempty"`
	Tags    []entity.Tag  `json:"tags,omitempty"`
	Files   []entity.File `json:"files,omitempty"`
}

func createFailed(r Reason) *CreateTagResult {
	return &CreateTagResult{Error: r}
}

func fileFailed(r Reason) *FileTagsResult {
	return &FileTagsResult{Error: r}
}

func filesFailed(r Reason) *FilesTagsResult {
	return &FilesTagsResult{Error: r}
}
