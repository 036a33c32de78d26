package controllers

import (
	"github.com/gin-gonic/gin"

	"linkgate/internal/middleware"
	"linkgate/internal/service"
)

// ShortURLBuilder renders the public address of a slug
type ShortURLBuilder struct {
	httpsMode bool
	baseHost  string
}

// NewShortURLBuilder creates a builder. An empty baseHost uses the Host of each request.
func NewShortURLBuilder(httpsMode bool, baseHost string) *ShortURLBuilder {
	return &ShortURLBuilder{
		httpsMode: httpsMode,
		baseHost:  baseHost,
	}
}

func (b *ShortURLBuilder) Build(c *gin.Context, slug string) string {
	scheme := "http"
	if b.httpsMode {
		scheme = "https"
	}

	host := b.baseHost
	if host == "" {
		host = c.Request.Host
	}
	return scheme + "://" + host + "/" + slug
}

// visitFrom collects the click attributes of the current request
func visitFrom(c *gin.Context) service.Visit {
	return service.Visit{
		IP:        middleware.RequesterIP(c),
		UserAgent: c.GetHeader("User-Agent"),
		Referer:   c.GetHeader("Referer"),
	}
}
