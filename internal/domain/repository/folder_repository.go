package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/leondli/gallery/internal/domain/entity"
)

// FolderRepository defines the interface for folder data access
type FolderRepository interface {
	// Create creates a new folder
	Create(ctx context.Context, folder *entity.Folder) error

	// GetByID retrieves a folder, or apperrors.ErrNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Folder, error)

	// ListByOwner lists folders owned by a user
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Folder, error)

	// AdjustUsage adds the given deltas to the folder's aggregate counters
	AdjustUsage(ctx context.Context, id uuid.UUID, files, bytes int64) error
}
