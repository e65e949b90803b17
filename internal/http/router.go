package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(RequestLogger())
	router.Use(SecurityHeadersMiddleware())

	health := NewHealthController(cfg.Locker, cfg.Mailer, cfg.Watcher, cfg.Version)
	cells := NewCellsController(cfg.Locker, cfg.Converter)
	notifier := NewNotifyController(cfg.Mailer, cfg.Receiver)
	watch := NewWatchController(cfg.Watcher)

	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")
	api.GET("/cells", cells.List)
	api.GET("/cells/:id", cells.Get)
	api.POST("/cells/:id/open", cells.Open)
	api.POST("/notify", notifier.Send)
	api.GET("/watch", watch.Status)
	api.POST("/watch/run", watch.RunNow)

	router.NoRoute(func(c *gin.Context) {
		respondNotFound(c, "route")
	})

	return router
}
