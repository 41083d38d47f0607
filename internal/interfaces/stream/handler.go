package stream

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"

	"go-event-push/internal/infrastructure/logger"
	"go-event-push/internal/infrastructure/push"
)

// Handler attaches streaming HTTP connections to the push hub. It derives
// the connection identity from the live request, admits it, and drains the
// outbound channel into the response as server-sent events until either side
// closes.
type Handler struct {
	hub    *push.Hub
	logger logger.Logger
}

func NewHandler(hub *push.Hub, log logger.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: log.WithField("handler", "stream"),
	}
}

// Attach handles a streaming connection request.
func (h *Handler) Attach(c *gin.Context) {
	identity, err := push.IdentityFromRequest(c.Request)
	if err != nil {
		h.logger.Warnf("refusing connection: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "connection identity could not be derived"})
		return
	}

	ch, err := h.hub.Admit(c.Request.Context(), identity)
	if err != nil {
		if errors.Is(err, push.ErrNotRunning) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable"})
			return
		}
		h.logger.Errorf("failed to admit connection %s: %v", identity, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to admit connection"})
		return
	}

	w := c.Writer
	if err := h.writeEvent(w, push.NewMessage(push.EventConnected, gin.H{"remote": identity.RemoteAddr})); err != nil {
		ch.Close(err)
		return
	}

	for {
		select {
		case msg := <-ch.Messages():
			if err := h.writeEvent(w, msg); err != nil {
				h.logger.Warnf("write to %s failed: %v", identity, err)
				ch.Close(err)
				return
			}
		case <-ch.Heartbeats():
			// An SSE comment line: ignored by clients, keeps intermediaries
			// from reclaiming the idle connection.
			if _, err := w.Write([]byte(":keepalive\n\n")); err != nil {
				h.logger.Warnf("keepalive to %s failed: %v", identity, err)
				ch.Close(err)
				return
			}
			w.Flush()
		case <-c.Request.Context().Done():
			ch.Close(c.Request.Context().Err())
			return
		case <-ch.Done():
			return
		}
	}
}

func (h *Handler) writeEvent(w gin.ResponseWriter, msg push.Message) error {
	if err := sse.Encode(w, sse.Event{
		Id:    msg.ID,
		Event: msg.Event,
		Data:  msg.Data,
	}); err != nil {
		return err
	}
	w.Flush()
	return nil
}
