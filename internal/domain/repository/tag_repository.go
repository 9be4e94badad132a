package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/leondli/gallery/internal/domain/entity"
)

// TagRepository defines the interface for tag data access
type TagRepository interface {
	// Create persists a new tag. When attachToFileID is set the tag is
	// associated with that file in the same write.
	Create(ctx context.Context, tag *entity.Tag, attachToFileID *uuid.UUID) error

	// FindOwned returns the tags among ids that belong to ownerID and folderID
	FindOwned(ctx context.Context, ids []uuid.UUID, ownerID, folderID uuid.UUID) ([]entity.Tag, error)

	// ListByFolder lists every tag of a folder ordered by name
	ListByFolder(ctx context.Context, folderID uuid.UUID) ([]entity.Tag, error)
}
