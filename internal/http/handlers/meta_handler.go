// README: Meta handlers (version, health, logs, uptime).
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"eztravel/internal/modules/meta"
)

type MetaService interface {
	Version(ctx context.Context) meta.VersionReport
	Health(ctx context.Context) meta.HealthReport
	Uptime(ctx context.Context) meta.UptimeReport
	Logs(ctx context.Context) (map[string]string, error)
}

type MetaHandler struct {
	meta MetaService
}

func NewMetaHandler(svc MetaService) *MetaHandler {
	return &MetaHandler{meta: svc}
}

func (h *MetaHandler) Version(c *gin.Context) {
	writeJSON(c, http.StatusOK, h.meta.Version(detached(c)))
}

func (h *MetaHandler) Health(c *gin.Context) {
	report := h.meta.Health(detached(c))
	status := http.StatusOK
	if !report.OK() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(c, status, report)
}

func (h *MetaHandler) Uptime(c *gin.Context) {
	report := h.meta.Uptime(detached(c))
	status := http.StatusOK
	if !report.OK() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(c, status, report)
}

func (h *MetaHandler) Logs(c *gin.Context) {
	logs, err := h.meta.Logs(detached(c))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "Could not read log directory")
		return
	}
	writeJSON(c, http.StatusOK, logs)
}
