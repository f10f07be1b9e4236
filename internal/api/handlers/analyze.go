package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BaronguyenVinasu/riftcounter/internal/middleware"
	"github.com/BaronguyenVinasu/riftcounter/internal/models"
)

// Analyzer runs a full lineup analysis.
type Analyzer interface {
	Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResponse, error)
}

// AnalyzeHandler serves POST /api/v1/analyze.
type AnalyzeHandler struct {
	analyzer Analyzer
	logger   *logrus.Logger
}

func NewAnalyzeHandler(analyzer Analyzer, logger *logrus.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer, logger: logger}
}

// Analyze returns counters, tactics and builds for an enemy lineup.
// @Summary Analyze enemy lineup
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body models.AnalysisRequest true "Enemy lineup"
// @Router /api/v1/analyze [post]
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp, err := h.analyzer.Analyze(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	middleware.AddSpanAttribute(c, "analysis.cached", resp.Cached)
	middleware.AddSpanAttribute(c, "analysis.confidence", resp.Confidence)
	respondOK(c, resp)
}
