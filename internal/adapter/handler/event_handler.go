package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/leondli/gallery/internal/infrastructure/events"
	"github.com/leondli/gallery/internal/usecase/access"
	apperrors "github.com/leondli/gallery/pkg/errors"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// EventHandler streams the tag events of a folder over a WebSocket
type EventHandler struct {
	hub           *events.Hub
	accessUseCase access.UseCase
	upgrader      websocket.Upgrader
}

// NewEventHandler creates a new event handler
func NewEventHandler(hub *events.Hub, accessUseCase access.UseCase) *EventHandler {
	return &EventHandler{
		hub:           hub,
		accessUseCase: accessUseCase,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // origins are filtered by the CORS middleware
			},
		},
	}
}

// Stream godoc
// @Summary Stream tag events of a folder
// @Tags events
// @Security BearerAuth
// @Param folder_id path string true "Folder ID"
// @Param access_token query string false "Access token for clients that cannot set headers"
// @Router /api/v1/folders/{folder_id}/events [get]
func (h *EventHandler) Stream(c *gin.Context) {
	folderID, ok := uuidParam(c, "folder_id")
	if !ok {
		return
	}

	allowed, err := h.accessUseCase.HasFolderOwnerAccess(c.Request.Context(), folderID)
	if err != nil {
		handleError(c, err)
		return
	}
	if !allowed {
		handleError(c, apperrors.ForbiddenError("no access to folder"))
		return
	}

	// subscribe before the upgrade so no event published after the
	// handshake is missed
	sub := h.hub.Subscribe(folderID)
	defer sub.Close()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade to WebSocket")
		return
	}
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Warn().Err(err).Str("folder_id", folderID.String()).Msg("WebSocket read error")
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-sub.C:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				log.Warn().Err(err).Msg("Failed to write WebSocket message")
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
