package locations

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/petruschka/site-api/internal/utils"
	"go.uber.org/zap"
)

type Controller struct {
	service *Service
}

func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// Get godoc
// @Summary Venue details by case-insensitive name
// @Router /api/v1/location/{name} [get]
func (ctrl *Controller) Get(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		utils.RespondError(c, http.StatusBadRequest, "Location name is required")
		return
	}

	loc, err := ctrl.service.ByName(c.Request.Context(), name)
	if err != nil {
		status := utils.StatusFor(err)
		if status == http.StatusNotFound {
			utils.RespondError(c, status, "Location '"+name+"' not found")
			return
		}
		utils.RespondServiceError(c, err, "Failed to fetch location data")
		return
	}

	utils.Zlog.Debug("Found location", zap.String("name", loc.Name))
	utils.RespondOK(c, loc)
}
