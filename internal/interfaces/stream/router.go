package stream

import (
	"github.com/gin-gonic/gin"

	"go-event-push/internal/infrastructure/logger"
	"go-event-push/internal/infrastructure/push"
)

func InitStreamRouter(log logger.Logger, hub *push.Hub, rg *gin.RouterGroup) {
	handler := NewHandler(hub, log)

	streamGroup := rg.Group("/events")
	streamGroup.GET("", StreamHeadersMiddleware(), handler.Attach)
}

// StreamHeadersMiddleware sets the headers a long-lived event stream needs.
func StreamHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("X-Accel-Buffering", "no") // for nginx
		c.Next()
	}
}
