package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/leondli/gallery/internal/domain/entity"
	"github.com/leondli/gallery/internal/domain/repository/mocks"
	apperrors "github.com/leondli/gallery/pkg/errors"
)

func TestGetByID(t *testing.T) {
	repo := new(mocks.UserRepository)
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&entity.User{ID: id, Username: "ana", PasswordHash: "x"}, nil)
	repo.On("GetByID", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound)

	uc := NewUseCase(repo)
	got, err := uc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "ana", got.Username)

	_, err = uc.GetByID(context.Background(), uuid.New())
	assert.True(t, apperrors.IsNotFound(err))
}
