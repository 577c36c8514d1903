package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gloryco/thewell/internal/config"
	"github.com/gloryco/thewell/internal/guidance/service"
	thttp "github.com/gloryco/thewell/internal/http"
	httpH "github.com/gloryco/thewell/internal/http/handlers"
	"github.com/gloryco/thewell/internal/observability"
	"github.com/gloryco/thewell/internal/platform/logger"
)

func wireHTTP(log *logger.Logger, cfg *config.Config, guider service.Guider, health *httpH.HealthHandler, metrics *observability.Metrics) *http.Server {
	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := thttp.NewRouter(thttp.RouterConfig{
		Log:             log,
		Metrics:         metrics,
		ServiceName:     observability.DefaultServiceName,
		RoutePath:       cfg.Guidance.RoutePath,
		AllowedOrigins:  cfg.Guidance.AllowedOrigins,
		NoStore:         guider.Mode() == service.ModeLLM,
		GuidanceHandler: httpH.NewGuidanceHandler(log, guider, cfg.HTTP.MaxRequestBytes),
		HealthHandler:   health,
	})
	return thttp.NewServer(cfg.HTTP, router)
}
