package newsletter

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/petruschka/site-api/internal/types"
	"github.com/petruschka/site-api/internal/utils"
	"go.uber.org/zap"
)

// Controller handles HTTP requests for newsletter signups
type Controller struct {
	service *Service
}

func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// Subscribe godoc
// @Summary Queue a newsletter subscription
// @Accept json
// @Produce json
// @Param request body types.NewsletterSubscription true "Subscription"
// @Success 202 {object} types.NewsletterResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 503 {object} types.ErrorResponse
// @Router /api/v1/newsletter [post]
func (ctrl *Controller) Subscribe(c *gin.Context) {
	var req types.NewsletterSubscription
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Zlog.Debug("Invalid newsletter request", zap.Error(err))
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := ctrl.service.Subscribe(c.Request.Context(), req)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			utils.RespondError(c, http.StatusBadRequest, verr.Message)
			return
		}
		utils.RespondServiceError(c, err, "Newsletter queue is full, try again later")
		return
	}
	c.JSON(http.StatusAccepted, types.OK(resp))
}
