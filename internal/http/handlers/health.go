package handlers

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	ready atomic.Bool
}

// NewHealthHandler starts ready; the app flips it off while draining.
func NewHealthHandler() *HealthHandler {
	h := &HealthHandler{}
	h.ready.Store(true)
	return h
}

func (h *HealthHandler) SetReady(v bool) { h.ready.Store(v) }

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *HealthHandler) ReadyCheck(c *gin.Context) {
	if !h.ready.Load() {
		c.String(http.StatusServiceUnavailable, "draining")
		return
	}
	c.String(http.StatusOK, "ok")
}
