package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"linkgate/internal/logger"
	"linkgate/internal/service"
)

const qrCodeSize = 256

type QRCodeController struct {
	urlService service.URLService
	shortURLs  *ShortURLBuilder
	log        *logger.Logger
}

func NewQRCodeController(urlService service.URLService, shortURLs *ShortURLBuilder, log *logger.Logger) *QRCodeController {
	return &QRCodeController{
		urlService: urlService,
		shortURLs:  shortURLs,
		log:        log,
	}
}

// GenerateQRCode handles GET /api/qrcode/:slug and returns a PNG of the short URL
func (qc *QRCodeController) GenerateQRCode(c *gin.Context) {
	url, err := qc.urlService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, qc.log, err)
		return
	}

	qrCode, err := qrcode.New(qc.shortURLs.Build(c, url.Slug), qrcode.Medium)
	if err != nil {
		respondError(c, qc.log, err)
		return
	}

	pngData, err := qrCode.PNG(qrCodeSize)
	if err != nil {
		respondError(c, qc.log, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename=qrcode.png")
	c.Data(http.StatusOK, "image/png", pngData)
}
