package gigs

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, service *Service) {
	controller := NewController(service)

	router.GET("/gigs", controller.List)
	router.GET("/gig/:id", controller.Get)
	router.GET("/gig-templates", controller.Templates)
	router.GET("/past-events", controller.PastEvents)
	router.GET("/past-event/:id", controller.PastEvent)
	router.GET("/updates", controller.Updates)
}
