package gigs

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/petruschka/site-api/internal/utils"
	"go.uber.org/zap"
)

// Controller handles the gig, history and update endpoints.
type Controller struct {
	service *Service
}

func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// List godoc
// @Summary Upcoming gigs with seat availability
// @Router /api/v1/gigs [get]
func (ctrl *Controller) List(c *gin.Context) {
	gigs, err := ctrl.service.Upcoming(c.Request.Context())
	if err != nil {
		utils.RespondServiceError(c, err, "Failed to fetch gigs")
		return
	}
	utils.RespondOK(c, gigs)
}

// Get godoc
// @Summary One gig by composite key, legacy id or template id
// @Router /api/v1/gig/{id} [get]
func (ctrl *Controller) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Gig ID is required")
		return
	}

	gig, err := ctrl.service.Gig(c.Request.Context(), id)
	if err != nil {
		utils.RespondServiceError(c, err, "Gig not found")
		return
	}
	utils.Zlog.Debug("Loaded gig detail", zap.String("id", id), zap.String("title", gig.Title))
	utils.RespondOK(c, gig)
}

// Templates godoc
// @Summary Raw gig templates with normalized dates
// @Router /api/v1/gig-templates [get]
func (ctrl *Controller) Templates(c *gin.Context) {
	templates, err := ctrl.service.Templates(c.Request.Context())
	if err != nil {
		utils.RespondServiceError(c, err, "Failed to fetch gig templates")
		return
	}
	utils.RespondOK(c, templates)
}

func (ctrl *Controller) PastEvents(c *gin.Context) {
	events, err := ctrl.service.PastEvents(c.Request.Context())
	if err != nil {
		utils.RespondServiceError(c, err, "Failed to fetch past events")
		return
	}
	utils.RespondOK(c, events)
}

func (ctrl *Controller) PastEvent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Past event ID is required")
		return
	}

	gig, err := ctrl.service.PastEvent(c.Request.Context(), id)
	if err != nil {
		utils.RespondServiceError(c, err, "Past event not found")
		return
	}
	utils.RespondOK(c, gig)
}

func (ctrl *Controller) Updates(c *gin.Context) {
	updates, err := ctrl.service.Updates(c.Request.Context())
	if err != nil {
		utils.RespondServiceError(c, err, "Failed to fetch updates")
		return
	}
	utils.RespondOK(c, updates)
}

// pathID returns the trimmed :id parameter. gin has already decoded it.
func pathID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("id"))
	return id, id != ""
}
