package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"linkgate/internal/logger"
	"linkgate/internal/models"
	"linkgate/internal/service"
)

type RedirectController struct {
	redirectService service.RedirectService
	log             *logger.Logger
}

func NewRedirectController(redirectService service.RedirectService, log *logger.Logger) *RedirectController {
	return &RedirectController{
		redirectService: redirectService,
		log:             log,
	}
}

// RedirectToURL handles GET /:slug
func (rc *RedirectController) RedirectToURL(c *gin.Context) {
	res, err := rc.redirectService.Resolve(c.Request.Context(), c.Param("slug"), visitFrom(c))
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	if res.PasswordRequired {
		passwordRequired(c, res.URLID)
		return
	}

	// 302 so browsers come back and every visit is counted
	c.Redirect(http.StatusFound, res.RedirectURL)
}

// CheckURL handles GET /api/urls/check/:slug. It reports the target without recording a click.
func (rc *RedirectController) CheckURL(c *gin.Context) {
	res, err := rc.redirectService.Check(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	if res.PasswordRequired {
		passwordRequired(c, res.URLID)
		return
	}

	c.JSON(http.StatusOK, models.RedirectResponse{
		RedirectURL: res.RedirectURL,
		URLID:       res.URLID,
	})
}

// AccessURL handles POST /api/urls/:id/access for password protected links
func (rc *RedirectController) AccessURL(c *gin.Context) {
	var req models.AccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	res, err := rc.redirectService.ResolvePassword(c.Request.Context(), c.Param("id"), req.Password, visitFrom(c))
	if err != nil {
		respondError(c, rc.log, err)
		return
	}

	c.JSON(http.StatusOK, models.RedirectResponse{
		Message:     "Access granted",
		RedirectURL: res.RedirectURL,
	})
}
