package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"linkgate/internal/logger"
	"linkgate/internal/middleware"
	"linkgate/internal/models"
	"linkgate/internal/service"
)

type ClicksController struct {
	clickService service.ClickService
	log          *logger.Logger
}

func NewClicksController(clickService service.ClickService, log *logger.Logger) *ClicksController {
	return &ClicksController{
		clickService: clickService,
		log:          log,
	}
}

// GetClicks handles GET /api/urls/:id/clicks?page=&limit=
func (cc *ClicksController) GetClicks(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	// Unparsable values become 0 and fall back to the service defaults
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	clicks, err := cc.clickService.List(c.Request.Context(), c.Param("id"), userID, page, limit)
	if err != nil {
		respondError(c, cc.log, err)
		return
	}

	c.JSON(http.StatusOK, clicks)
}

// TrackClick handles POST /api/urls/:id/clicks
func (cc *ClicksController) TrackClick(c *gin.Context) {
	if err := cc.clickService.Track(c.Request.Context(), c.Param("id"), visitFrom(c)); err != nil {
		respondError(c, cc.log, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{
		Message: "Click tracked successfully",
	})
}
