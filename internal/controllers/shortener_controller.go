package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"linkgate/internal/logger"
	"linkgate/internal/middleware"
	"linkgate/internal/models"
	"linkgate/internal/service"
)

type ShortenerController struct {
	urlService service.URLService
	shortURLs  *ShortURLBuilder
	log        *logger.Logger
}

func NewShortenerController(urlService service.URLService, shortURLs *ShortURLBuilder, log *logger.Logger) *ShortenerController {
	return &ShortenerController{
		urlService: urlService,
		shortURLs:  shortURLs,
		log:        log,
	}
}

// CreateShortURL handles POST /api/urls. A bearer token is optional.
func (sc *ShortenerController) CreateShortURL(c *gin.Context) {
	var req models.CreateURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	var owner *string
	if userID, ok := middleware.UserID(c); ok {
		owner = &userID
	}

	url, err := sc.urlService.Create(c.Request.Context(), &req, owner)
	if err != nil {
		respondError(c, sc.log, err)
		return
	}

	c.JSON(http.StatusOK, models.URLMutationResponse{
		Message: "URL created successfully",
		URL:     models.NewURLResponse(url, sc.shortURLs.Build(c, url.Slug)),
	})
}

// GetUserURLs handles GET /api/urls
func (sc *ShortenerController) GetUserURLs(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	urls, err := sc.urlService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, sc.log, err)
		return
	}

	response := models.URLListResponse{URLs: make([]models.URLResponse, 0, len(urls))}
	for _, item := range urls {
		dto := models.NewURLResponse(item.URL, sc.shortURLs.Build(c, item.URL.Slug))
		count := item.ClickCount
		dto.ClickCount = &count
		response.URLs = append(response.URLs, dto)
	}

	c.JSON(http.StatusOK, response)
}

// UpdateURL handles PUT /api/urls/:id. Only fields present in the body change.
func (sc *ShortenerController) UpdateURL(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req models.UpdateURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	url, err := sc.urlService.Update(c.Request.Context(), c.Param("id"), userID, &req)
	if err != nil {
		respondError(c, sc.log, err)
		return
	}

	c.JSON(http.StatusOK, models.URLMutationResponse{
		Message: "URL updated successfully",
		URL:     models.NewURLResponse(url, sc.shortURLs.Build(c, url.Slug)),
	})
}

// DeleteURL handles DELETE /api/urls/:id
func (sc *ShortenerController) DeleteURL(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	if err := sc.urlService.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, sc.log, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{
		Message: "URL deleted successfully",
	})
}
