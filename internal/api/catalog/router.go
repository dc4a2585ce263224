package catalog

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, service *Service) {
	controller := NewController(service)

	router.GET("/albums", controller.Albums)
	router.GET("/band-members", controller.BandMembers)
	router.GET("/contact", controller.Contact)
	router.GET("/merch", controller.Merch)
}
