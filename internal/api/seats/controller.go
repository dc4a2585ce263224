// Package seats proxies the MULU seat availability feed.
package seats

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/petruschka/site-api/internal/types"
	"github.com/petruschka/site-api/internal/utils"
	"go.uber.org/zap"
)

type Source interface {
	Seats(ctx context.Context) ([]types.MuluSeat, error)
}

type Controller struct {
	source Source
}

func NewController(source Source) *Controller {
	return &Controller{source: source}
}

func (ctrl *Controller) List(c *gin.Context) {
	seats, err := ctrl.source.Seats(c.Request.Context())
	if err != nil {
		utils.RespondServiceError(c, err, "Failed to fetch seat availability")
		return
	}
	if seats == nil {
		seats = []types.MuluSeat{}
	}
	utils.Zlog.Debug("Fetched MULU seat records", zap.Int("records", len(seats)))
	utils.RespondOK(c, seats)
}
