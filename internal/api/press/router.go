package press

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, service *Service) {
	controller := NewController(service)

	router.GET("/press", controller.List)
}
