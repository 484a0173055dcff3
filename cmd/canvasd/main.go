package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/mossy-p/drawsync/config"
	"github.com/mossy-p/drawsync/internal/handlers"
	"github.com/mossy-p/drawsync/internal/redis"
	"github.com/mossy-p/drawsync/internal/rooms"
	"github.com/mossy-p/drawsync/internal/state"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to Redis. The sync core is memory-authoritative, so a
	// missing Redis only disables the presence mirror.
	rdb, err := redis.Connect(cfg.Redis)
	if err != nil {
		log.Printf("Redis unavailable, running without presence mirror: %v", err)
	} else {
		defer rdb.Close()
		log.Println("Redis connection established")
	}

	registry := rooms.NewRegistry()
	store := state.NewStore()
	hub := handlers.NewHub(registry, store, rdb, cfg.RoomIdleTTL, cfg.RoomReapInterval)
	go hub.Run(context.Background())

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Global CORS middleware (runs before routing)
	router.Use(handlers.OriginFilter(cfg.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Room management API
	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/rooms", hub.ListRooms)
		apiGroup.GET("/rooms/:roomId", hub.GetRoom)
		apiGroup.DELETE("/rooms/:roomId", hub.DeleteRoom)
		apiGroup.GET("/rooms/:roomId/snapshot", hub.Snapshot)
		apiGroup.GET("/rooms/:roomId/export.pdf", hub.ExportPDF)
	}

	// WebSocket canvas endpoint
	router.GET("/ws/canvas", hub.HandleCanvasWS)

	// Static client assets, if bundled with the server
	if cfg.StaticDir != "" {
		router.Static("/app", cfg.StaticDir)
	}

	// Start server
	log.Printf("Starting canvas sync server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
