package entity

import (
	"time"

	"github.com/google/uuid"
)

// TagEventType names a tag mutation
type TagEventType string

const (
	TagEventCreated  TagEventType = "tag.created"
	TagEventAttached TagEventType = "file.tags_attached"
	TagEventDetached TagEventType = "file.tags_detached"
)

// TagEvent is published after a tag mutation has been persisted
type TagEvent struct {
	Type       TagEventType `json:"type"`
	FolderID   uuid.UUID    `json:"folder_id"`
	FileIDs    []uuid.UUID  `json:"file_ids,omitempty"`
	TagIDs     []uuid.UUID  `json:"tag_ids"`
	ActorID    uuid.UUID    `json:"actor_id"`
	OccurredAt time.Time    `json:"occurred_at"`
}
