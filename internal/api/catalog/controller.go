package catalog

import (
	"github.com/gin-gonic/gin"
	"github.com/petruschka/site-api/internal/utils"
)

// Controller serves the catalog endpoints. None of them fail: each falls
// back to the embedded catalog.
type Controller struct {
	service *Service
}

func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

func (ctrl *Controller) Albums(c *gin.Context) {
	utils.RespondOK(c, ctrl.service.Albums(c.Request.Context()))
}

func (ctrl *Controller) BandMembers(c *gin.Context) {
	utils.RespondOK(c, ctrl.service.BandMembers(c.Request.Context()))
}

func (ctrl *Controller) Contact(c *gin.Context) {
	utils.RespondOK(c, ctrl.service.Contact())
}

func (ctrl *Controller) Merch(c *gin.Context) {
	utils.RespondOK(c, ctrl.service.Merch(c.Request.Context()))
}
