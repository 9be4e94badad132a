package file

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/leondli/gallery/internal/domain/entity"
	"github.com/leondli/gallery/internal/domain/repository"
	"github.com/leondli/gallery/internal/infrastructure/logger"
	apperrors "github.com/leondli/gallery/pkg/errors"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// UseCase defines the file use case interface
type UseCase interface {
	Register(ctx context.Context, folderID uuid.UUID, input *RegisterInput) (*entity.File, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.File, error)
	List(ctx context.Context, input *ListInput) ([]entity.File, int64, error)
}

// FolderAuthorizer decides folder-owner access for the current caller
type FolderAuthorizer interface {
	HasFolderOwnerAccess(ctx context.Context, folderID uuid.UUID) (bool, error)
}

// RegisterInput describes an uploaded file
type RegisterInput struct {
	Name      string           `json:"name"`
	MediaType entity.MediaType `json:"media_type"`
	Size      int64            `json:"size"`
	Latitude  *float64         `json:"latitude,omitempty"`
	Longitude *float64         `json:"longitude,omitempty"`
}

// Validate checks the file fields
func (in RegisterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&in.MediaType, validation.Required, validation.In(entity.MediaTypeImage, entity.MediaTypeVideo)),
		validation.Field(&in.Size, validation.Min(int64(0))),
		validation.Field(&in.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&in.Longitude, validation.Min(-180.0), validation.Max(180.0)),
	)
}

// ListInput narrows a folder listing
type ListInput struct {
	FolderID uuid.UUID
	TagID    *uuid.UUID
	Page     int
	PageSize int
}

type fileUseCase struct {
	fileRepo   repository.FileRepository
	folderRepo repository.FolderRepository
	authorizer FolderAuthorizer
	log        zerolog.Logger
}

// NewUseCase creates a new file use case
func NewUseCase(
	fileRepo repository.FileRepository,
	folderRepo repository.FolderRepository,
	authorizer FolderAuthorizer,
) UseCase {
	return &fileUseCase{
		fileRepo:   fileRepo,
		folderRepo: folderRepo,
		authorizer: authorizer,
		log:        logger.NewLogger("file"),
	}
}

func (u *fileUseCase) authorize(ctx context.Context, folderID uuid.UUID) error {
	ok, err := u.authorizer.HasFolderOwnerAccess(ctx, folderID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ForbiddenError("folder owner access required")
	}
	return nil
}

func (u *fileUseCase) Register(ctx context.Context, folderID uuid.UUID, input *RegisterInput) (*entity.File, error) {
	if err := input.Validate(); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}
	if err := u.authorize(ctx, folderID); err != nil {
		return nil, err
	}

	folder, err := u.folderRepo.GetByID(ctx, folderID)
	if err != nil {
		return nil, apperrors.InternalError("failed to get folder", err)
	}

	file := &entity.File{
		FolderID:  folderID,
		OwnerID:   folder.OwnerID,
		Name:      input.Name,
		MediaType: input.MediaType,
		Size:      input.Size,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		Tags:      []entity.Tag{},
	}
	if err := u.fileRepo.Create(ctx, file); err != nil {
		return nil, apperrors.InternalError("failed to create file", err)
	}

	// folder counters follow every file write
	if err := u.folderRepo.AdjustUsage(ctx, folderID, 1, file.Size); err != nil {
		return nil, apperrors.InternalError("failed to update folder usage", err)
	}

	u.log.Debug().
		Str("file_id", file.ID.String()).
		Str("folder_id", folderID.String()).
		Int64("size", file.Size).
		Msg("File registered")

	return file, nil
}

func (u *fileUseCase) Get(ctx context.Context, id uuid.UUID) (*entity.File, error) {
	file, err := u.fileRepo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFoundError("file")
		}
		return nil, apperrors.InternalError("failed to get file", err)
	}
	if err := u.authorize(ctx, file.FolderID); err != nil {
		return nil, err
	}
	return file, nil
}

func (u *fileUseCase) List(ctx context.Context, input *ListInput) ([]entity.File, int64, error) {
	if err := u.authorize(ctx, input.FolderID); err != nil {
		return nil, 0, err
	}

	if input.Page < 1 {
		input.Page = 1
	}
	if input.PageSize < 1 {
		input.PageSize = defaultPageSize
	}
	if input.PageSize > maxPageSize {
		input.PageSize = maxPageSize
	}

	filter := &entity.FileFilter{
		FolderID: input.FolderID,
		TagID:    input.TagID,
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	files, total, err := u.fileRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.InternalError("failed to list files", err)
	}
	return files, total, nil
}
