package entity

import (
	"time"

	"github.com/google/uuid"
)

// Folder owns files and tags; its owner is the only party allowed to mutate tags
type Folder struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	OwnerID    uuid.UUID `json:"owner_id"`
	FileCount  int64     `json:"file_count"`
	TotalBytes int64     `json:"total_bytes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsOwnedBy reports whether userID owns the folder
func (f *Folder) IsOwnedBy(userID uuid.UUID) bool {
	return userID != uuid.Nil && f.OwnerID == userID
}
