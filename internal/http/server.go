package http

import (
	stdhttp "net/http"

	"github.com/gloryco/thewell/internal/config"
)

func NewServer(cfg config.HTTPConfig, h stdhttp.Handler) *stdhttp.Server {
	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           h,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout.Duration,
		IdleTimeout:       cfg.IdleTimeout.Duration,
		WriteTimeout:      0,
	}
}
