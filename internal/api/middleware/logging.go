package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/osa911/folio/internal/api/constants"
	"github.com/osa911/folio/internal/logging"
)

// RequestLogger logs every request through the application logger. The
// logger itself decides whether request logging is enabled.
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.LogHTTPRequest(
			c.Request.Method,
			path,
			c.ClientIP(),
			c.GetString(constants.ContextKeyRequestID),
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start).String(),
		)
	}
}
