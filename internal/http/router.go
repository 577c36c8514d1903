package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/gloryco/thewell/internal/http/handlers"
	httpMW "github.com/gloryco/thewell/internal/http/middleware"
	"github.com/gloryco/thewell/internal/observability"
	"github.com/gloryco/thewell/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string

	// RoutePath is where the guidance handler answers every method.
	RoutePath      string
	AllowedOrigins []string
	NoStore        bool

	GuidanceHandler *httpH.GuidanceHandler
	HealthHandler   *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Recover(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics, "/healthz", "/readyz", "/metrics"))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.ReadyCheck)
	}

	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	// Guidance
	if cfg.GuidanceHandler != nil {
		chain := []gin.HandlerFunc{}
		if cfg.NoStore {
			chain = append(chain, httpMW.NoStore())
		}
		chain = append(chain, httpMW.CORS(cfg.AllowedOrigins), cfg.GuidanceHandler.Handle)
		r.Any(cfg.RoutePath, chain...)

		// Any covers the standard methods only; anything else on the guidance
		// path lands here and still gets the JSON 405.
		r.NoRoute(func(c *gin.Context) {
			if c.Request.URL.Path != cfg.RoutePath {
				return
			}
			for _, h := range chain {
				h(c)
				if c.IsAborted() {
					return
				}
			}
		})
	}

	return r
}
