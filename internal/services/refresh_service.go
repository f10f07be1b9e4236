package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/BaronguyenVinasu/riftcounter/internal/metrics"
	"github.com/BaronguyenVinasu/riftcounter/internal/models"
	"github.com/BaronguyenVinasu/riftcounter/internal/telemetry"
)

// ErrRefreshInProgress is returned when a refresh is already running.
var ErrRefreshInProgress = errors.New("refresh already in progress")

const databaseSourceName = "database"

// RefreshableStore reloads its tables from the bundled dataset.
type RefreshableStore interface {
	Reload() error
	// MergeMatchups overlays curated matchups and returns how many were applied.
	MergeMatchups(matchups []models.StoredMatchup) int
	// SourceItemCount counts records attributed to a source.
	SourceItemCount(source string) int
}

// MatchupRepository is the persistent side of the refresh.
type MatchupRepository interface {
	ListMatchups(ctx context.Context) ([]models.StoredMatchup, error)
	RecordRefresh(ctx context.Context, record models.RefreshRecord) error
}

// SourceRegistry tracks per-source refresh state.
type SourceRegistry interface {
	SourceNames() []string
	UpdateSourceStatus(name string, state models.SourceState, itemCount int, at time.Time)
}

// RefreshResult summarizes one refresh run.
type RefreshResult struct {
	Trigger    string                `json:"trigger"`
	Matchups   int                   `json:"matchups"`
	Sources    []models.SourceStatus `json:"sources"`
	StartedAt  time.Time             `json:"startedAt"`
	FinishedAt time.Time             `json:"finishedAt"`
}

// RefreshService reloads data, updates source state and drops stale analyses.
type RefreshService struct {
	store    RefreshableStore
	repo     MatchupRepository
	registry SourceRegistry
	provider DataContextProvider
	cache    AnalysisCache
	logger   *logrus.Logger
	now      func() time.Time

	mu sync.Mutex
}

// NewRefreshService builds a refresh service. repo and cache may be nil.
func NewRefreshService(store RefreshableStore, repo MatchupRepository, registry SourceRegistry,
	provider DataContextProvider, cache AnalysisCache, logger *logrus.Logger) *RefreshService {
	return &RefreshService{
		store:    store,
		repo:     repo,
		registry: registry,
		provider: provider,
		cache:    cache,
		logger:   logger,
		now:      time.Now,
	}
}

// Refresh runs one refresh cycle. Source failures are recorded, not returned;
// only a failed reload of the base dataset is an error.
func (s *RefreshService) Refresh(ctx context.Context, trigger string) (*RefreshResult, error) {
	if !s.mu.TryLock() {
		return nil, ErrRefreshInProgress
	}
	defer s.mu.Unlock()

	ctx, span := telemetry.StartSpan(ctx, telemetry.GetWorkerTracer(), "refresh.run",
		attribute.String("trigger", trigger))
	defer span.End()

	started := s.now()
	result := &RefreshResult{Trigger: trigger, StartedAt: started}

	reloadErr := s.store.Reload()
	for _, name := range s.registry.SourceNames() {
		state := models.SourceHealthy
		count := 0
		if reloadErr != nil {
			state = models.SourceError
		} else {
			count = s.store.SourceItemCount(name)
		}
		finished := s.now()
		s.registry.UpdateSourceStatus(name, state, count, finished)
		metrics.RecordSourceRefresh(name, string(state))
		s.record(ctx, models.RefreshRecord{
			Source:     name,
			Trigger:    trigger,
			Status:     state,
			ItemCount:  count,
			Error:      errString(reloadErr),
			StartedAt:  started,
			FinishedAt: finished,
		})
	}
	if reloadErr != nil {
		telemetry.RecordError(span, reloadErr)
		s.logger.WithError(reloadErr).WithField("trigger", trigger).Error("Data reload failed")
		return nil, fmt.Errorf("failed to reload data: %w", reloadErr)
	}

	if s.repo != nil {
		result.Matchups = s.pullMatchups(ctx, trigger, started)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateAll(ctx); err != nil {
			s.logger.WithError(err).Warn("Failed to invalidate analysis cache after refresh")
		}
	}

	result.FinishedAt = s.now()
	if s.provider != nil {
		result.Sources = s.provider.Statuses()
	}
	s.logger.WithFields(logrus.Fields{
		"trigger":  trigger,
		"matchups": result.Matchups,
		"duration": result.FinishedAt.Sub(started).String(),
	}).Info("Data refresh completed")
	return result, nil
}

func (s *RefreshService) pullMatchups(ctx context.Context, trigger string, started time.Time) int {
	matchups, err := s.repo.ListMatchups(ctx)
	status := models.SourceHealthy
	applied := 0
	if err != nil {
		status = models.SourceError
		s.logger.WithError(err).Warn("Failed to load stored matchups")
	} else {
		applied = s.store.MergeMatchups(matchups)
	}
	metrics.RecordSourceRefresh(databaseSourceName, string(status))
	s.record(ctx, models.RefreshRecord{
		Source:     databaseSourceName,
		Trigger:    trigger,
		Status:     status,
		ItemCount:  applied,
		Error:      errString(err),
		StartedAt:  started,
		FinishedAt: s.now(),
	})
	return applied
}

func (s *RefreshService) record(ctx context.Context, rec models.RefreshRecord) {
	if s.repo == nil {
		return
	}
	if err := s.repo.RecordRefresh(ctx, rec); err != nil {
		s.logger.WithError(err).WithField("source", rec.Source).Warn("Failed to record refresh")
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
