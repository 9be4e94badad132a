package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leondli/gallery/internal/domain/entity"
	apperrors "github.com/leondli/gallery/pkg/errors"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	user := &entity.User{Username: "ana", Email: "ana@example.com", PasswordHash: "x", Status: entity.UserStatusActive}
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.True(t, got.IsActive())

	exists, err := repo.ExistsByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRefreshTokenRevokeAll(t *testing.T) {
	ctx := context.Background()
	repo := NewRefreshTokenRepository(newTestDB(t))
	userID := uuid.New()

	for _, hash := range []string{"h1", "h2"} {
		require.NoError(t, repo.Create(ctx, &entity.RefreshToken{
			UserID:    userID,
			TokenHash: hash,
			ExpiresAt: time.Now().Add(time.Hour),
		}))
	}

	require.NoError(t, repo.RevokeAllForUser(ctx, userID))

	got, err := repo.GetByTokenHash(ctx, "h2")
	require.NoError(t, err)
	assert.True(t, got.IsRevoked())
}
