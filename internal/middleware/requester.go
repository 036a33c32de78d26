package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const unknownRequester = "unknown"

// RequesterIP returns the client address as reported by proxies: the first
// X-Forwarded-For entry, then X-Real-IP, else "unknown".
func RequesterIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(c.GetHeader("X-Real-IP")); ip != "" {
		return ip
	}
	return unknownRequester
}
