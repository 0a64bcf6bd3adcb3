// Package health reports process liveness and backup job status.
package health

import (
	"time"

	"github.com/gin-gonic/gin"
	pkgcron "github.com/wellspring-app/core/internal/pkg/cron"
	"github.com/wellspring-app/core/internal/pkg/response"
)

// Handler handles health endpoints.
type Handler struct {
	start   time.Time
	version string
	sched   *pkgcron.Scheduler
}

func NewHandler(version string, sched *pkgcron.Scheduler) *Handler {
	return &Handler{start: time.Now(), version: version, sched: sched}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/health", h.health)
	rg.GET("/health/cron", authMW, h.cron)
}

// GET /health
func (h *Handler) health(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.start).Round(time.Second).String(),
	})
}

// GET /health/cron
func (h *Handler) cron(c *gin.Context) {
	if h.sched == nil {
		response.OK(c, []pkgcron.ListItem{})
		return
	}
	response.OK(c, h.sched.List())
}
