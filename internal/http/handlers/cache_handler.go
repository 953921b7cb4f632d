// README: Cache read handler.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"eztravel/internal/modules/cache"
)

type CacheService interface {
	List(ctx context.Context) ([]cache.Entry, error)
}

type CacheHandler struct {
	cache CacheService
	log   *slog.Logger
}

func NewCacheHandler(svc CacheService, logger *slog.Logger) *CacheHandler {
	return &CacheHandler{cache: svc, log: logger}
}

// List handles GET /cache.
func (h *CacheHandler) List(c *gin.Context) {
	entries, err := h.cache.List(detached(c))
	if err != nil {
		h.log.Error("failed to get cache entries", "error", err)
		writeError(c, http.StatusInternalServerError, "Failed to get cache entries")
		return
	}
	writeJSON(c, http.StatusOK, entries)
}
