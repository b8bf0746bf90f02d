package handler

import (
	"io"

	"icebreaker/backend/internal/hub"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const clientBuffer = 16

// StreamEvents godoc
// @Summary      Stream catalog events
// @Description  Server-sent events for game cards being created, updated, rated or deleted.
// @Tags         gamecards
// @Produce      text/event-stream
// @Success      200 {object} hub.Event
// @Router       /gamecards/events [get]
func (h *Handler) StreamEvents(c *gin.Context) {
	subscriberID := uuid.New().String()
	client := make(hub.Client, clientBuffer)
	h.events.Subscribe(hub.TopicCatalog, client)
	defer h.events.Unsubscribe(hub.TopicCatalog, client)

	h.log.Debug("event subscriber connected", zap.String("subscriber_id", subscriberID))
	defer h.log.Debug("event subscriber disconnected", zap.String("subscriber_id", subscriberID))

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // Disable nginx buffering

	// The initial event flushes the headers so clients know the stream is live.
	c.SSEvent("connected", gin.H{"subscriber_id": subscriberID})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case msg, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("message", string(msg))
			return true
		}
	})
}
