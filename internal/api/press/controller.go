package press

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/petruschka/site-api/internal/types"
	"github.com/petruschka/site-api/internal/utils"
	"go.uber.org/zap"
)

type Controller struct {
	service *Service
}

func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// List answers 200 even when the source fails, flagging it with
// success:false and an empty list.
func (ctrl *Controller) List(c *gin.Context) {
	items, err := ctrl.service.List(c.Request.Context())
	if err != nil {
		utils.Zlog.Error("Error loading press data", zap.Error(err))
		c.JSON(http.StatusOK, types.Failed([]types.Press{}))
		return
	}
	utils.RespondOK(c, items)
}
