package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	m := NewManager("secret", time.Minute, time.Hour, "gallery")
	userID := uuid.New()

	pair, err := m.Issue(userID, "ana", "ana@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(60), pair.ExpiresIn)

	claims, err := m.Validate(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "ana", claims.Username)
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	pair, err := NewManager("one", time.Minute, time.Hour, "gallery").Issue(uuid.New(), "a", "a@b.c")
	require.NoError(t, err)

	_, err = NewManager("two", time.Minute, time.Hour, "gallery").Validate(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateExpired(t *testing.T) {
	m := NewManager("secret", time.Minute, time.Hour, "gallery")
	issued := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issued }

	pair, err := m.Issue(uuid.New(), "a", "a@b.c")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Validate(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestHashRefreshTokenStable(t *testing.T) {
	assert.Equal(t, HashRefreshToken("abc"), HashRefreshToken("abc"))
	assert.Len(t, HashRefreshToken("abc"), 64)
}
