package websocket

import (
	"github.com/gin-gonic/gin"

	"go-event-push/internal/infrastructure/logger"
	"go-event-push/internal/infrastructure/push"
)

func InitWebSocketRouter(log logger.Logger, hub *push.Hub, rg *gin.RouterGroup) {
	handler := NewHandler(hub, log)

	wsGroup := rg.Group("/ws")
	wsGroup.GET("", handler.Connect)
}
