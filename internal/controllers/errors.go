package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"linkgate/internal/entities"
	"linkgate/internal/logger"
	"linkgate/internal/middleware"
)

// statusFor maps domain errors to HTTP statuses and client messages.
// A zero status means the error is unexpected.
func statusFor(err error) (int, string) {
	var validationErr *entities.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Message
	case errors.Is(err, entities.ErrValidation):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, entities.ErrInvalidURL):
		return http.StatusBadRequest, "Invalid URL format"
	case errors.Is(err, entities.ErrPasswordNotSet):
		return http.StatusBadRequest, "URL is not password protected"
	case errors.Is(err, entities.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, entities.ErrInvalidPassword):
		return http.StatusUnauthorized, "Invalid password"
	case errors.Is(err, entities.ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid token"
	case errors.Is(err, entities.ErrURLNotFound):
		return http.StatusNotFound, "URL not found"
	case errors.Is(err, entities.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, entities.ErrSlugExists):
		return http.StatusConflict, "Slug already exists"
	case errors.Is(err, entities.ErrEmailExists):
		return http.StatusConflict, "User already exists"
	case errors.Is(err, entities.ErrURLInactive):
		return http.StatusGone, "URL is inactive"
	case errors.Is(err, entities.ErrURLExpired):
		return http.StatusGone, "URL has expired"
	}
	return 0, ""
}

// respondError writes the JSON error body for err. Unexpected errors are
// logged with the request id and hidden behind a generic 500.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	status, message := statusFor(err)
	if status == 0 {
		middleware.RequestLog(c, log).Error("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(status, gin.H{
		"error": message,
	})
}

func invalidBody(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request body",
		"details": err.Error(),
	})
}

// passwordRequired is the challenge returned instead of a redirect for protected links
func passwordRequired(c *gin.Context, urlID string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error":            "Password required",
		"requiresPassword": true,
		"urlId":            urlID,
	})
}
