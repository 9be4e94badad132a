package session

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/leondli/gallery/internal/domain/entity"
)

func TestProviderCurrent(t *testing.T) {
	p := NewProvider()
	assert.Nil(t, p.Current(context.Background()))

	s := &entity.Session{User: entity.SessionUser{ID: uuid.New(), Username: "ana"}}
	ctx := WithSession(context.Background(), s)
	assert.Same(t, s, p.Current(ctx))
}
