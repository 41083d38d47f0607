package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-event-push/internal/infrastructure/bus"
	"go-event-push/internal/infrastructure/logger"
	"go-event-push/internal/infrastructure/push"
	"go-event-push/internal/interfaces/rest/v1/handler"
	"go-event-push/internal/interfaces/stream"
	"go-event-push/internal/interfaces/websocket"
)

func InitRouter(hub *push.Hub, eventBus *bus.Bus, log logger.Logger) http.Handler {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	rootGroup := router.Group("")

	// Status endpoint
	rootGroup.GET("/hub/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":          "healthy",
			"hub_running":     hub.IsRunning(),
			"has_connections": hub.HasConnections(),
			"connections":     hub.ConnectionCount(),
		})
	})

	// Event publishing API
	eventHandler := handler.NewEventHandler(eventBus, hub, log)
	apiGroup := rootGroup.Group("/api/v1")
	{
		apiGroup.POST("/events", eventHandler.PublishEvent)
	}

	stream.InitStreamRouter(log, hub, rootGroup)
	websocket.InitWebSocketRouter(log, hub, rootGroup)

	return router
}
