// Package tagstate keeps a local view of the tags on a set of files and
// applies toggles optimistically, rolling back when the server refuses.
package tagstate

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/leondli/gallery/internal/domain/entity"
	"github.com/leondli/gallery/internal/infrastructure/logger"
	"github.com/leondli/gallery/internal/usecase/tag"
)

// Notification messages shown when a toggle is rolled back
const (
	MessageAddFailed    = "could not add tag"
	MessageRemoveFailed = "could not remove tag"
)

// Service is the subset of the tag operations the controller drives.
// Both the API client and the server-side use case satisfy it.
type Service interface {
	AddTagsToFile(ctx context.Context, fileID uuid.UUID, tagIDs []uuid.UUID) (*tag.FileTagsResult, error)
	RemoveTagsFromFile(ctx context.Context, fileID uuid.UUID, tagIDs []uuid.UUID) (*tag.FileTagsResult, error)
	AddTagsToFiles(ctx context.Context, fileIDs, tagIDs []uuid.UUID) (*tag.FilesTagsResult, error)
	RemoveTagsFromFiles(ctx context.Context, fileIDs, tagIDs []uuid.UUID) (*tag.FilesTagsResult, error)
}

// Notifier surfaces a failed toggle to the user
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// Controller holds the local tag state of its target files. Toggles are
// not serialised against each other; attach and detach are idempotent so
// racing toggles only cost a redundant write.
type Controller struct {
	svc      Service
	notifier Notifier
	log      zerolog.Logger

	mu         sync.Mutex
	targets    []uuid.UUID
	files      map[uuid.UUID][]entity.Tag
	folderTags []entity.Tag
}

// NewController creates a controller over files, seeded with the tags
// available in their folder
func NewController(svc Service, notifier Notifier, files []entity.File, folderTags []entity.Tag) *Controller {
	if notifier == nil {
		notifier = NotifierFunc(func(string) {})
	}
	c := &Controller{
		svc:        svc,
		notifier:   notifier,
		log:        logger.NewLogger("tagstate"),
		files:      make(map[uuid.UUID][]entity.Tag, len(files)),
		folderTags: append([]entity.Tag(nil), folderTags...),
	}
	for _, f := range files {
		if _, seen := c.files[f.ID]; seen {
			continue
		}
		c.targets = append(c.targets, f.ID)
		c.files[f.ID] = append([]entity.Tag{}, f.Tags...)
	}
	return c
}

// Tags returns a copy of the local tags of fileID
func (c *Controller) Tags(fileID uuid.UUID) []entity.Tag {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]entity.Tag(nil), c.files[fileID]...)
}

// FolderTags returns a copy of the tags known for the folder
func (c *Controller) FolderTags() []entity.Tag {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]entity.Tag(nil), c.folderTags...)
}

// Selected reports whether every target carries t
func (c *Controller) Selected(t entity.Tag) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.targets) == 0 {
		return false
	}
	for _, id := range c.targets {
		if indexOf(c.files[id], t.ID) < 0 {
			return false
		}
	}
	return true
}

// Select adds t to every target locally, then asks the server to attach it.
// On failure the files it changed are reverted and the user is notified.
// Without targets it does nothing and reports false.
func (c *Controller) Select(ctx context.Context, t entity.Tag) bool {
	if !c.hasTargets() {
		return false
	}
	changed := c.mutate(func(tags []entity.Tag) ([]entity.Tag, bool) {
		if indexOf(tags, t.ID) >= 0 {
			return tags, false
		}
		return append(tags, t), true
	})

	if c.attach(ctx, t) {
		return true
	}

	c.revert(changed, func(tags []entity.Tag) []entity.Tag {
		return without(tags, t.ID)
	})
	c.log.Warn().Str("tag_id", t.ID.String()).Int("files", len(changed)).Msg("Attach failed, rolled back")
	c.notifier.Notify(MessageAddFailed)
	return false
}

// Unselect removes t from every target locally, then asks the server to
// detach it. On failure the files it changed get t back.
func (c *Controller) Unselect(ctx context.Context, t entity.Tag) bool {
	if !c.hasTargets() {
		return false
	}
	changed := c.mutate(func(tags []entity.Tag) ([]entity.Tag, bool) {
		if indexOf(tags, t.ID) < 0 {
			return tags, false
		}
		return without(tags, t.ID), true
	})

	if c.detach(ctx, t) {
		return true
	}

	c.revert(changed, func(tags []entity.Tag) []entity.Tag {
		if indexOf(tags, t.ID) >= 0 {
			return tags
		}
		return append(tags, t)
	})
	c.log.Warn().Str("tag_id", t.ID.String()).Int("files", len(changed)).Msg("Detach failed, rolled back")
	c.notifier.Notify(MessageRemoveFailed)
	return false
}

// Added records a freshly created tag in the folder list and selects it
func (c *Controller) Added(ctx context.Context, t entity.Tag) bool {
	c.mu.Lock()
	if indexOf(c.folderTags, t.ID) < 0 {
		c.folderTags = append(c.folderTags, t)
	}
	c.mu.Unlock()

	return c.Select(ctx, t)
}

// Toggle unselects t when every target carries it and selects it otherwise
func (c *Controller) Toggle(ctx context.Context, t entity.Tag) bool {
	if c.Selected(t) {
		return c.Unselect(ctx, t)
	}
	return c.Select(ctx, t)
}

// mutate applies fn to every target and returns the ids it changed
func (c *Controller) mutate(fn func([]entity.Tag) ([]entity.Tag, bool)) []uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()

	var changed []uuid.UUID
	for _, id := range c.targets {
		next, ok := fn(c.files[id])
		if ok {
			c.files[id] = next
			changed = append(changed, id)
		}
	}
	return changed
}

func (c *Controller) revert(ids []uuid.UUID, fn func([]entity.Tag) []entity.Tag) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		c.files[id] = fn(c.files[id])
	}
}

func (c *Controller) hasTargets() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.targets) > 0
}

func (c *Controller) snapshotTargets() []uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]uuid.UUID(nil), c.targets...)
}

func (c *Controller) attach(ctx context.Context, t entity.Tag) bool {
	targets := c.snapshotTargets()
	tagIDs := []uuid.UUID{t.ID}

	if len(targets) == 1 {
		res, err := c.svc.AddTagsToFile(ctx, targets[0], tagIDs)
		return c.succeeded(err, res != nil && res.Success, res)
	}
	res, err := c.svc.AddTagsToFiles(ctx, targets, tagIDs)
	return c.succeeded(err, res != nil && res.Success, res)
}

func (c *Controller) detach(ctx context.Context, t entity.Tag) bool {
	targets := c.snapshotTargets()
	tagIDs := []uuid.UUID{t.ID}

	if len(targets) == 1 {
		res, err := c.svc.RemoveTagsFromFile(ctx, targets[0], tagIDs)
		return c.succeeded(err, res != nil && res.Success, res)
	}
	res, err := c.svc.RemoveTagsFromFiles(ctx, targets, tagIDs)
	return c.succeeded(err, res != nil && res.Success, res)
}

// succeeded treats a fault and a refusal alike
func (c *Controller) succeeded(err error, success bool, res interface{}) bool {
	if err != nil {
		c.log.Debug().Err(err).Msg("Tag call failed")
		return false
	}
	if !success {
		c.log.Debug().Interface("result", res).Msg("Tag call refused")
	}
	return success
}

func indexOf(tags []entity.Tag, id uuid.UUID) int {
	for i, t := range tags {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func without(tags []entity.Tag, id uuid.UUID) []entity.Tag {
	out := make([]entity.Tag, 0, len(tags))
	for _, t := range tags {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}
