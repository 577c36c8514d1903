package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	corsAllowMethods = "POST,OPTIONS"
	corsAllowHeaders = "Content-Type"
)

// CORS reflects the request origin when it is allowed. An empty list or a "*"
// entry allows every origin; the header still echoes the origin rather than
// "*".
//
// Requests the cors package does not treat as cross-origin (no Origin, or an
// Origin equal to the request host) still get the headers: the origin or "*",
// plus Vary: Origin so caches keep the variants apart.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		o = strings.ToLower(strings.TrimRight(strings.TrimSpace(o), "/"))
		if o == "*" {
			allowAll = true
			continue
		}
		allowed[o] = struct{}{}
	}

	handle := cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if allowAll {
				return true
			}
			_, ok := allowed[strings.ToLower(origin)]
			return ok
		},
		AllowMethods: []string{"POST", "OPTIONS"},
		AllowHeaders: []string{corsAllowHeaders},
	})

	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); !isCrossOrigin(c.Request, origin) {
			if origin == "" {
				origin = "*"
			}
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			h.Set("Access-Control-Allow-Methods", corsAllowMethods)
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
		}
		handle(c)
	}
}

// isCrossOrigin mirrors the check gin-contrib/cors uses to skip a request.
func isCrossOrigin(r *http.Request, origin string) bool {
	if origin == "" {
		return false
	}
	return origin != "http://"+r.Host && origin != "https://"+r.Host
}
