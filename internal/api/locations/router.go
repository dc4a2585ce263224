package locations

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, service *Service) {
	controller := NewController(service)

	router.GET("/location/:name", controller.Get)
}
