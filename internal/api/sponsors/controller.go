package sponsors

import (
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

// List degrades to an empty successful list when the sponsors database is
// unavailable.
func (ctrl *Controller) List(c *gin.Context) {
	sponsors, err := ctrl.service.List(c.Request.Context())
	if err != nil {
		utils.Zlog.Warn("Sponsors data unavailable", zap.Error(err))
		utils.RespondOK(c, []types.Sponsor{})
		return
	}
	utils.RespondOK(c, sponsors)
}
