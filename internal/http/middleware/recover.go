package middleware

import (
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/gloryco/thewell/internal/platform/apierr"
	"github.com/gloryco/thewell/internal/platform/ctxutil"
	"github.com/gloryco/thewell/internal/platform/logger"
)

// Recover turns a panic into a 500 with the public error body.
func Recover(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, rec any) {
		if log != nil {
			log.Error("panic recovered",
				"request_id", ctxutil.RequestID(c.Request.Context()),
				"panic", rec,
				"stack", string(debug.Stack()),
			)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": apierr.CodeInternal})
	})
}

// NoStore marks every response as uncacheable.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
