// Package health serves the liveness and readiness probes.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/petruschka/site-api/internal/utils"
	"go.uber.org/zap"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Status struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type Controller struct {
	db      Pinger
	service string
}

func NewController(db Pinger, service string) *Controller {
	return &Controller{db: db, service: service}
}

func (ctrl *Controller) Live(c *gin.Context) {
	utils.RespondOK(c, Status{Status: "ok", Service: ctrl.service})
}

func (ctrl *Controller) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := ctrl.db.Ping(ctx); err != nil {
		utils.Zlog.Warn("Readiness check failed", zap.Error(err))
		utils.RespondError(c, http.StatusServiceUnavailable, "Database unreachable")
		return
	}
	utils.RespondOK(c, Status{Status: "ready", Service: ctrl.service})
}
