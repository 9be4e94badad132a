package entity

import (
	"time"

	"github.com/google/uuid"
)

// MediaType is the kind of media a file holds
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// File is an uploaded image or video inside a folder
type File struct {
	ID        uuid.UUID `json:"id"`
	FolderID  uuid.UUID `json:"folder_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	MediaType MediaType `json:"media_type"`
	Size      int64     `json:"size"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Tags is the current association set; loaded with the file
	Tags []Tag `json:"tags"`
}

// HasTag reports whether tagID is associated with the file
func (f *File) HasTag(tagID uuid.UUID) bool {
	for _, t := range f.Tags {
		if t.ID == tagID {
			return true
		}
	}
	return false
}

// IsGeotagged reports whether the file carries coordinates
func (f *File) IsGeotagged() bool {
	return f.Latitude != nil && f.Longitude != nil
}

// FileFilter narrows a folder listing
type FileFilter struct {
	FolderID uuid.UUID
	TagID    *uuid.UUID
	Page     int
	PageSize int
}
