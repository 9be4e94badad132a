// Package events fans tag events out to per-folder subscribers.
package events

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/leondli/gallery/internal/domain/entity"
	"github.com/leondli/gallery/internal/infrastructure/logger"
)

const defaultBuffer = 32

// Subscription receives the events of one folder until Close is called
type Subscription struct {
	C <-chan entity.TagEvent

	hub      *Hub
	folderID uuid.UUID
	ch       chan entity.TagEvent
	once     sync.Once
}

// Close detaches the subscription and closes its channel
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}

// Hub is an in-process publisher. Publish never blocks; a subscriber whose
// buffer is full misses the event.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uuid.UUID]map[*Subscription]struct{}
	buffer int
	log    zerolog.Logger
}

// NewHub creates a hub whose subscriptions buffer up to buffer events
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{
		subs:   make(map[uuid.UUID]map[*Subscription]struct{}),
		buffer: buffer,
		log:    logger.NewLogger("events"),
	}
}

// Subscribe registers interest in the events of folderID
func (h *Hub) Subscribe(folderID uuid.UUID) *Subscription {
	ch := make(chan entity.TagEvent, h.buffer)
	sub := &Subscription{C: ch, hub: h, folderID: folderID, ch: ch}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[folderID] == nil {
		h.subs[folderID] = make(map[*Subscription]struct{})
	}
	h.subs[folderID][sub] = struct{}{}
	return sub
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[sub.folderID]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, sub.folderID)
		}
	}
	close(sub.ch)
}

// Publish delivers event to every subscriber of its folder
func (h *Hub) Publish(event entity.TagEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs[event.FolderID] {
		select {
		case sub.ch <- event:
		default:
			h.log.Warn().
				Str("folder_id", event.FolderID.String()).
				Str("type", string(event.Type)).
				Msg("Subscriber buffer full, dropping event")
		}
	}
}

// Subscribers returns the number of live subscriptions for folderID
func (h *Hub) Subscribers(folderID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[folderID])
}
