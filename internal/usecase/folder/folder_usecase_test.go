package folder

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/leondli/gallery/internal/domain/entity"
	"github.com/leondli/gallery/internal/domain/repository/mocks"
	"github.com/leondli/gallery/internal/infrastructure/session"
	apperrors "github.com/leondli/gallery/pkg/errors"
)

func as(userID uuid.UUID) context.Context {
	return session.WithSession(context.Background(), &entity.Session{User: entity.SessionUser{ID: userID}})
}

func TestCreate(t *testing.T) {
	repo := new(mocks.FolderRepository)
	owner := uuid.New()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(f *entity.Folder) bool {
		return f.Name == "Holiday" && f.OwnerID == owner
	})).Return(nil)

	uc := NewUseCase(repo, session.NewProvider())
	folder, err := uc.Create(as(owner), &CreateInput{Name: "Holiday"})
	require.NoError(t, err)
	assert.Equal(t, owner, folder.OwnerID)
	repo.AssertExpectations(t)
}

func TestCreateRejects(t *testing.T) {
	repo := new(mocks.FolderRepository)
	uc := NewUseCase(repo, session.NewProvider())

	_, err := uc.Create(as(uuid.New()), &CreateInput{})
	assert.Equal(t, apperrors.CodeValidationError, apperrors.GetAppError(err).Code)

	_, err = uc.Create(context.Background(), &CreateInput{Name: "x"})
	assert.True(t, apperrors.IsUnauthorized(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGet(t *testing.T) {
	owner := uuid.New()
	folder := &entity.Folder{ID: uuid.New(), OwnerID: owner}
	repo := new(mocks.FolderRepository)
	repo.On("GetByID", mock.Anything, folder.ID).Return(folder, nil)
	uc := NewUseCase(repo, session.NewProvider())

	got, err := uc.Get(as(owner), folder.ID)
	require.NoError(t, err)
	assert.Equal(t, folder.ID, got.ID)

	_, err = uc.Get(as(uuid.New()), folder.ID)
	assert.True(t, apperrors.IsForbidden(err))
}

func TestListMine(t *testing.T) {
	owner := uuid.New()
	repo := new(mocks.FolderRepository)
	repo.On("ListByOwner", mock.Anything, owner).Return([]entity.Folder{{Name: "a"}, {Name: "b"}}, nil)

	folders, err := NewUseCase(repo, session.NewProvider()).ListMine(as(owner))
	require.NoError(t, err)
	assert.Len(t, folders, 2)
}
