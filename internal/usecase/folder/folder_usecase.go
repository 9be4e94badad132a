package folder

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/leondli/gallery/internal/domain/entity"
	"github.com/leondli/gallery/internal/domain/repository"
	apperrors "github.com/leondli/gallery/pkg/errors"
)

// UseCase defines the folder use case interface
type UseCase interface {
	Create(ctx context.Context, input *CreateInput) (*entity.Folder, error)
	ListMine(ctx context.Context) ([]entity.Folder, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Folder, error)
}

// SessionProvider resolves the caller of a request
type SessionProvider interface {
	Current(ctx context.Context) *entity.Session
}

// CreateInput represents folder creation input
type CreateInput struct {
	Name string `json:"name"`
}

// Validate checks the folder fields
func (in CreateInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 255)),
	)
}

type folderUseCase struct {
	folderRepo repository.FolderRepository
	sessions   SessionProvider
}

// NewUseCase creates a new folder use case
func NewUseCase(folderRepo repository.FolderRepository, sessions SessionProvider) UseCase {
	return &folderUseCase{folderRepo: folderRepo, sessions: sessions}
}

func (u *folderUseCase) caller(ctx context.Context) (uuid.UUID, error) {
	s := u.sessions.Current(ctx)
	if s == nil {
		return uuid.Nil, apperrors.UnauthorizedError("unauthorized")
	}
	return s.User.ID, nil
}

func (u *folderUseCase) Create(ctx context.Context, input *CreateInput) (*entity.Folder, error) {
	if err := input.Validate(); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}
	ownerID, err := u.caller(ctx)
	if err != nil {
		return nil, err
	}

	folder := &entity.Folder{Name: input.Name, OwnerID: ownerID}
	if err := u.folderRepo.Create(ctx, folder); err != nil {
		return nil, apperrors.InternalError("failed to create folder", err)
	}
	return folder, nil
}

func (u *folderUseCase) ListMine(ctx context.Context) ([]entity.Folder, error) {
	ownerID, err := u.caller(ctx)
	if err != nil {
		return nil, err
	}

	folders, err := u.folderRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.InternalError("failed to list folders", err)
	}
	return folders, nil
}

func (u *folderUseCase) Get(ctx context.Context, id uuid.UUID) (*entity.Folder, error) {
	ownerID, err := u.caller(ctx)
	if err != nil {
		return nil, err
	}

	folder, err := u.folderRepo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFoundError("folder")
		}
		return nil, apperrors.InternalError("failed to get folder", err)
	}
	if !folder.IsOwnedBy(ownerID) {
		return nil, apperrors.ForbiddenError("folder owner access required")
	}
	return folder, nil
}
