package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BaronguyenVinasu/riftcounter/internal/models"
	"github.com/BaronguyenVinasu/riftcounter/internal/services"
	"github.com/BaronguyenVinasu/riftcounter/internal/utils"
)

// SourceStatusProvider reports data source health and the current patch.
type SourceStatusProvider interface {
	Statuses() []models.SourceStatus
	Patch() models.PatchInfo
	Freshness(now time.Time) models.Freshness
}

// Refresher runs one data refresh.
type Refresher interface {
	Refresh(ctx context.Context, trigger string) (*services.RefreshResult, error)
}

type SourceHandler struct {
	sources   SourceStatusProvider
	refresher Refresher
	logger    *logrus.Logger
	now       func() time.Time
}

func NewSourceHandler(sources SourceStatusProvider, refresher Refresher, logger *logrus.Logger) *SourceHandler {
	return &SourceHandler{sources: sources, refresher: refresher, logger: logger, now: time.Now}
}

// SourcesResponse is the body of GET /sources.
type SourcesResponse struct {
	Sources           []models.SourceStatus `json:"sources"`
	PatchVersion      string                `json:"patchVersion"`
	PatchDate         time.Time             `json:"patchDate"`
	LastPatchCheck    time.Time             `json:"lastPatchCheck"`
	DataFreshness     models.FreshnessLevel `json:"dataFreshness"`
	UncertaintyLevel  models.Uncertainty    `json:"uncertaintyLevel"`
	UncertaintyReason string                `json:"uncertaintyReason,omitempty"`
}

// GetSources handles GET /sources
func (h *SourceHandler) GetSources(c *gin.Context) {
	patch := h.sources.Patch()
	freshness := h.sources.Freshness(h.now())
	respondOK(c, SourcesResponse{
		Sources:           h.sources.Statuses(),
		PatchVersion:      patch.Version,
		PatchDate:         patch.ReleasedAt,
		LastPatchCheck:    patch.LastChecked,
		DataFreshness:     freshness.Level,
		UncertaintyLevel:  freshness.Uncertainty,
		UncertaintyReason: freshness.Reason,
	})
}

// RefreshSources handles POST /sources/refresh. It runs synchronously and
// answers 409 while another refresh holds the lock.
func (h *SourceHandler) RefreshSources(c *gin.Context) {
	result, err := h.refresher.Refresh(c.Request.Context(), "manual")
	if errors.Is(err, services.ErrRefreshInProgress) {
		respondError(c, h.logger, utils.NewRefreshInProgressError())
		return
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, result)
}
