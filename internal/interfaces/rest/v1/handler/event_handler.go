package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-event-push/internal/infrastructure/bus"
	"go-event-push/internal/infrastructure/logger"
	"go-event-push/internal/infrastructure/push"
)

// EventHandler accepts application events over HTTP and feeds them to the
// event bus; the hub's subscription fans them out to connected clients.
type EventHandler struct {
	bus    *bus.Bus
	hub    *push.Hub
	logger logger.Logger
}

type PublishEventRequest struct {
	Topic   string `json:"topic" binding:"required"`
	Payload any    `json:"payload"`
}

func NewEventHandler(b *bus.Bus, hub *push.Hub, log logger.Logger) *EventHandler {
	return &EventHandler{
		bus:    b,
		hub:    hub,
		logger: log.WithField("handler", "events"),
	}
}

func (h *EventHandler) PublishEvent(c *gin.Context) {
	var req PublishEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnf("invalid event payload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event format"})
		return
	}

	if !h.hub.HasConnections() {
		// Still accepted: publishing with no subscribers is not an error.
		h.logger.Debugf("event on topic %s published with no connections", req.Topic)
	}

	event := bus.NewEvent(req.Topic, req.Payload)
	h.bus.Publish(event)

	c.JSON(http.StatusAccepted, gin.H{
		"status":      "published",
		"event_id":    event.ID,
		"connections": h.hub.ConnectionCount(),
	})
}
