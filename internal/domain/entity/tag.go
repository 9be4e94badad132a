package entity

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a named, coloured label scoped to one folder.
// FolderID and OwnerID are fixed at creation.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	FolderID  uuid.UUID `json:"folder_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TagIDs returns the ids of tags in order
func TagIDs(tags []Tag) []uuid.UUID {
	ids := make([]uuid.UUID, len(tags))
	for i, t := range tags {
		ids[i] = t.ID
	}
	return ids
}

// FileTag is the file <-> tag association edge
type FileTag struct {
	FileID    uuid.UUID `json:"file_id"`
	TagID     uuid.UUID `json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}
