package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"labdesk/internal/pkg/logger"
	"labdesk/internal/pkg/response"
)

// RequestLogger logs every request, recovers from panics, and reports 5xx
// responses with the fields that make them traceable.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		defer func() {
			if recovered := recover(); recovered != nil {
				logger.L().Error("panic recovered",
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.String("client_ip", c.ClientIP()),
					zap.String("error", fmt.Sprintf("%v", recovered)),
					zap.ByteString("stack", debug.Stack()),
				)
				response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal Server Error")
				c.Abort()
				return
			}

			fields := []zap.Field{
				zap.Int("status", c.Writer.Status()),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("query", c.Request.URL.RawQuery),
				zap.String("client_ip", c.ClientIP()),
				zap.Duration("latency", time.Since(start)),
			}
			for _, err := range c.Errors {
				fields = append(fields, zap.String("error", err.Error()))
			}

			switch {
			case c.Writer.Status() >= http.StatusInternalServerError:
				logger.L().Error("request failed", fields...)
			case len(c.Errors) > 0:
				logger.L().Warn("request completed with errors", fields...)
			default:
				logger.L().Info("request", fields...)
			}
		}()

		c.Next()
	}
}
