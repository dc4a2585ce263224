package newsletter

import (
	"github.com/gin-gonic/gin"
	"github.com/petruschka/site-api/internal/clock"
	"github.com/petruschka/site-api/internal/config"
)

// RegisterRoutes starts the worker pool backing POST /newsletter and returns
// it so the caller can stop it on shutdown.
func RegisterRoutes(router *gin.RouterGroup, store Store, cfg *config.Config) *WorkerPool {
	queueCapacity := cfg.BatchSize * cfg.WorkerCount
	if queueCapacity <= 0 {
		queueCapacity = 100
	}

	workers := NewWorkerPool(cfg.WorkerCount, queueCapacity)

	var forwarder Forwarder
	if cfg.NewsletterForwardURL != "" {
		forwarder = NewFormForwarder(cfg.NewsletterForwardURL)
	}

	service := NewService(store, forwarder, workers, clock.NewSystem())
	workers.Start()

	controller := NewController(service)
	router.POST("/newsletter", controller.Subscribe)
	return workers
}
