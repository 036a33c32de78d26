package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"linkgate/internal/logger"
	"linkgate/internal/metrics"
)

const (
	// RequestIDKey is the gin context key holding the request id
	RequestIDKey = "request_id"

	// LoggerKey holds the per-request logger set by RequestLogger
	LoggerKey = "logger"

	requestIDHeader = "X-Request-ID"
)

// RequestID adds a unique request ID to each request, keeping one sent by a load balancer
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}

// RequestLogger stores a logger tagged with the request id for handlers and
// logs every request once it completes
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLog := log.With("request_id", c.GetString(RequestIDKey))
		c.Set(LoggerKey, reqLog)
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			reqLog.Error("request completed", attrs...)
		case status >= 400:
			reqLog.Warn("request completed", attrs...)
		default:
			reqLog.Info("request completed", attrs...)
		}
	}
}

// RequestLog returns the logger stored by RequestLogger, or fallback when the
// middleware did not run
func RequestLog(c *gin.Context, fallback *logger.Logger) *logger.Logger {
	if reqLog, ok := c.Get(LoggerKey); ok {
		if l, ok := reqLog.(*logger.Logger); ok {
			return l
		}
	}
	return fallback.With("request_id", c.GetString(RequestIDKey))
}

// Metrics records request counts and latency by route template
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
