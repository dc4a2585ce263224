package health

import "github.com/gin-gonic/gin"

func RegisterRoutes(router gin.IRoutes, db Pinger, service string) {
	controller := NewController(db, service)

	router.GET("/health", controller.Live)
	router.GET("/ready", controller.Ready)
}
