package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BaronguyenVinasu/riftcounter/internal/cache"
)

// CacheStore is the analysis cache as seen by the admin endpoints.
type CacheStore interface {
	Stats(ctx context.Context) cache.Stats
	InvalidateAll(ctx context.Context) error
}

// CacheHandler handles cache monitoring and invalidation endpoints
type CacheHandler struct {
	cache  CacheStore
	logger *logrus.Logger
}

func NewCacheHandler(store CacheStore, logger *logrus.Logger) *CacheHandler {
	return &CacheHandler{cache: store, logger: logger}
}

// GetCacheStats returns hit/miss counters for the analysis cache
// @Summary Get cache statistics
// @Tags cache
// @Produce json
// @Router /api/v1/cache/stats [get]
func (h *CacheHandler) GetCacheStats(c *gin.Context) {
	respondOK(c, h.cache.Stats(c.Request.Context()))
}

// ClearCache drops every cached analysis
// @Summary Clear analysis cache
// @Tags cache
// @Produce json
// @Router /api/v1/cache [delete]
func (h *CacheHandler) ClearCache(c *gin.Context) {
	if err := h.cache.InvalidateAll(c.Request.Context()); err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.logger.Info("Analysis cache cleared via API")
	respondOK(c, gin.H{"message": "Analysis cache cleared"})
}
