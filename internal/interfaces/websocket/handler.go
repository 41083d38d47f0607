package websocket

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"go-event-push/internal/infrastructure/logger"
	"go-event-push/internal/infrastructure/push"
)

const writeTimeout = 10 * time.Second

// Handler attaches WebSocket clients to the push hub. The transport differs
// from the event stream but the delivery path is the same outbound channel:
// application messages go out as JSON frames, heartbeats as ping frames.
type Handler struct {
	hub      *push.Hub
	logger   logger.Logger
	upgrader websocket.Upgrader
}

func NewHandler(hub *push.Hub, log logger.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: log.WithField("handler", "websocket"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Origin policy is deployment concern; the demo allows all.
				return true
			},
		},
	}
}

// Connect upgrades the request and pumps the outbound channel until either
// side closes.
func (h *Handler) Connect(c *gin.Context) {
	identity, err := push.IdentityFromRequest(c.Request)
	if err != nil {
		h.logger.Warnf("refusing connection: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "connection identity could not be derived"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf("failed to upgrade connection: %v", err)
		return
	}

	ch, err := h.hub.Admit(c.Request.Context(), identity)
	if err != nil {
		h.logger.Errorf("failed to admit connection %s: %v", identity, err)
		conn.Close()
		return
	}

	go h.readPump(conn, ch)
	h.writePump(conn, ch)
}

// writePump drains the channel into the socket. Exits when the completion
// signal fires or a write fails.
func (h *Handler) writePump(conn *websocket.Conn, ch *push.Channel) {
	defer conn.Close()

	for {
		select {
		case msg := <-ch.Messages():
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Warnf("write to %s failed: %v", ch.Identity(), err)
				ch.Close(err)
				return
			}
		case <-ch.Heartbeats():
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.logger.Warnf("ping to %s failed: %v", ch.Identity(), err)
				ch.Close(err)
				return
			}
		case <-ch.Done():
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			conn.WriteMessage(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			)
			return
		}
	}
}

// readPump only watches for the client going away; inbound frames carry no
// application meaning on a one-directional push transport.
func (h *Handler) readPump(conn *websocket.Conn, ch *push.Channel) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			ch.Close(err)
			return
		}
	}
}
