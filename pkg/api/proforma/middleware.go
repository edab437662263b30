package proforma

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hospitality_proforma/pkg/core/logger"
)

const requestIDKey = "requestID"

// RequestLogging logs each request with a request ID, status and latency
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := uuid.New().String()
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		logger.Named("api").Infow("request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

// NewRouter builds the gin engine with recovery, request logging and the
// proforma routes
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogging())
	h.Register(r)
	return r
}
