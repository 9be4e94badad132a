package access

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/leondli/gallery/internal/domain/entity"
	"github.com/leondli/gallery/internal/domain/repository"
	"github.com/leondli/gallery/internal/infrastructure/logger"
	apperrors "github.com/leondli/gallery/pkg/errors"
)

// SessionProvider resolves the caller of a request
type SessionProvider interface {
	Current(ctx context.Context) *entity.Session
}

// UseCase answers folder authorization questions for the current caller
type UseCase interface {
	// HasFolderOwnerAccess reports whether the caller owns folderID.
	// A missing session or folder yields false, not an error.
	HasFolderOwnerAccess(ctx context.Context, folderID uuid.UUID) (bool, error)
}

type accessUseCase struct {
	folderRepo repository.FolderRepository
	sessions   SessionProvider
	log        zerolog.Logger
}

// NewUseCase creates a new access use case
func NewUseCase(folderRepo repository.FolderRepository, sessions SessionProvider) UseCase {
	return &accessUseCase{
		folderRepo: folderRepo,
		sessions:   sessions,
		log:        logger.NewLogger("access"),
	}
}

func (u *accessUseCase) HasFolderOwnerAccess(ctx context.Context, folderID uuid.UUID) (bool, error) {
	s := u.sessions.Current(ctx)
	if s == nil {
		return false, nil
	}

	folder, err := u.folderRepo.GetByID(ctx, folderID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return false, nil
		}
		return false, apperrors.InternalError("failed to get folder", err)
	}

	if !folder.IsOwnedBy(s.User.ID) {
		u.log.Debug().
			Str("folder_id", folderID.String()).
			Str("user_id", s.User.ID.String()).
			Msg("Caller does not own folder")
		return false, nil
	}
	return true, nil
}
