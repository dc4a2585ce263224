package seats

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, source Source) {
	controller := NewController(source)

	router.GET("/mulu-seats", controller.List)
}
