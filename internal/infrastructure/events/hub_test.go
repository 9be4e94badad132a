package events

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leondli/gallery/internal/domain/entity"
)

func TestPublishReachesFolderSubscribersOnly(t *testing.T) {
	hub := NewHub(4)
	folderA, folderB := uuid.New(), uuid.New()

	subA := hub.Subscribe(folderA)
	defer subA.Close()
	subB := hub.Subscribe(folderB)
	defer subB.Close()

	hub.Publish(entity.TagEvent{Type: entity.TagEventAttached, FolderID: folderA})

	require.Len(t, subA.C, 1)
	got := <-subA.C
	assert.Equal(t, entity.TagEventAttached, got.Type)
	assert.Empty(t, subB.C)
}

func TestPublishPreservesOrder(t *testing.T) {
	hub := NewHub(4)
	folder := uuid.New()
	sub := hub.Subscribe(folder)
	defer sub.Close()

	hub.Publish(entity.TagEvent{Type: entity.TagEventCreated, FolderID: folder})
	hub.Publish(entity.TagEvent{Type: entity.TagEventAttached, FolderID: folder})

	assert.Equal(t, entity.TagEventCreated, (<-sub.C).Type)
	assert.Equal(t, entity.TagEventAttached, (<-sub.C).Type)
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	hub := NewHub(1)
	folder := uuid.New()
	sub := hub.Subscribe(folder)
	defer sub.Close()

	hub.Publish(entity.TagEvent{Type: entity.TagEventCreated, FolderID: folder})
	hub.Publish(entity.TagEvent{Type: entity.TagEventAttached, FolderID: folder})

	assert.Len(t, sub.C, 1)
	assert.Equal(t, entity.TagEventCreated, (<-sub.C).Type)
}

func TestCloseUnsubscribes(t *testing.T) {
	hub := NewHub(1)
	folder := uuid.New()
	sub := hub.Subscribe(folder)
	assert.Equal(t, 1, hub.Subscribers(folder))

	sub.Close()
	sub.Close()
	assert.Equal(t, 0, hub.Subscribers(folder))

	_, open := <-sub.C
	assert.False(t, open)

	// publishing after close must not panic
	hub.Publish(entity.TagEvent{FolderID: folder})
}
