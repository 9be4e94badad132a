package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/leondli/gallery/internal/domain/entity"
)

// FileRepository defines the interface for file data access.
// Every file returned carries its current tag associations.
type FileRepository interface {
	// Create creates a new file record
	Create(ctx context.Context, file *entity.File) error

	// GetByID retrieves a file, or apperrors.ErrNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*entity.File, error)

	// ListByIDs retrieves the files that exist among ids
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.File, error)

	// List lists the files of a folder, optionally only those carrying a tag
	List(ctx context.Context, filter *entity.FileFilter) ([]entity.File, int64, error)

	// UpdateTags attaches and detaches tags on one file atomically and
	// returns the refreshed file. Both edges are idempotent.
	UpdateTags(ctx context.Context, id uuid.UUID, attach, detach []uuid.UUID) (*entity.File, error)
}
