// Package mocks provides testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/leondli/gallery/internal/domain/entity"
	"github.com/leondli/gallery/internal/domain/repository"
)

var (
	_ repository.TagRepository          = (*TagRepository)(nil)
	_ repository.FileRepository         = (*FileRepository)(nil)
	_ repository.FolderRepository       = (*FolderRepository)(nil)
	_ repository.UserRepository         = (*UserRepository)(nil)
	_ repository.RefreshTokenRepository = (*RefreshTokenRepository)(nil)
)

// TagRepository is a mock of repository.TagRepository
type TagRepository struct {
	mock.Mock
}

func (m *TagRepository) Create(ctx context.Context, tag *entity.Tag, attachToFileID *uuid.UUID) error {
	args := m.Called(ctx, tag, attachToFileID)
	return args.Error(0)
}

func (m *TagRepository) FindOwned(ctx context.Context, ids []uuid.UUID, ownerID, folderID uuid.UUID) ([]entity.Tag, error) {
	args := m.Called(ctx, ids, ownerID, folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Tag), args.Error(1)
}

func (m *TagRepository) ListByFolder(ctx context.Context, folderID uuid.UUID) ([]entity.Tag, error) {
	args := m.Called(ctx, folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Tag), args.Error(1)
}

// FileRepository is a mock of repository.FileRepository
type FileRepository struct {
	mock.Mock
}

func (m *FileRepository) Create(ctx context.Context, file *entity.File) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *FileRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.File, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.File), args.Error(1)
}

func (m *FileRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.File, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.File), args.Error(1)
}

func (m *FileRepository) List(ctx context.Context, filter *entity.FileFilter) ([]entity.File, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.File), args.Get(1).(int64), args.Error(2)
}

func (m *FileRepository) UpdateTags(ctx context.Context, id uuid.UUID, attach, detach []uuid.UUID) (*entity.File, error) {
	args := m.Called(ctx, id, attach, detach)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.File), args.Error(1)
}

// FolderRepository is a mock of repository.FolderRepository
type FolderRepository struct {
	mock.Mock
}

func (m *FolderRepository) Create(ctx context.Context, folder *entity.Folder) error {
	args := m.Called(ctx, folder)
	return args.Error(0)
}

func (m *FolderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Folder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Folder), args.Error(1)
}

func (m *FolderRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Folder, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Folder), args.Error(1)
}

func (m *FolderRepository) AdjustUsage(ctx context.Context, id uuid.UUID, files, bytes int64) error {
	args := m.Called(ctx, id, files, bytes)
	return args.Error(0)
}

// UserRepository is a mock of repository.UserRepository
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

// RefreshTokenRepository is a mock of repository.RefreshTokenRepository
type RefreshTokenRepository struct {
	mock.Mock
}

func (m *RefreshTokenRepository) Create(ctx context.Context, token *entity.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *RefreshTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RefreshToken), args.Error(1)
}

func (m *RefreshTokenRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *RefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
