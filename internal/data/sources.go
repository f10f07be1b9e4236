package data

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/BaronguyenVinasu/riftcounter/internal/models"
)

const (
	freshWindow    = 24 * time.Hour
	outdatedWindow = 72 * time.Hour
)

// SourceConfig describes one upstream data source.
type SourceConfig struct {
	Name        string
	URL         string
	Reliability int
}

// TrackerConfig seeds a SourceTracker.
type TrackerConfig struct {
	Sources         []SourceConfig
	Weights         map[string]float64
	RefreshInterval time.Duration
	PatchVersion    string
	PatchDate       time.Time
}

// SourceTracker records per-source refresh state and the current patch, and
// derives the per-request DataContext from them.
type SourceTracker struct {
	mu       sync.RWMutex
	order    []string
	sources  map[string]*models.SourceStatus
	weights  map[string]float64
	interval time.Duration
	patch    models.PatchInfo
}

// NewSourceTracker starts every configured source as healthy and fetched at now.
func NewSourceTracker(cfg TrackerConfig, now time.Time) *SourceTracker {
	t := &SourceTracker{
		sources:  make(map[string]*models.SourceStatus, len(cfg.Sources)),
		weights:  make(map[string]float64, len(cfg.Weights)),
		interval: cfg.RefreshInterval,
		patch: models.PatchInfo{
			Version:     cfg.PatchVersion,
			ReleasedAt:  cfg.PatchDate,
			LastChecked: now,
		},
	}
	for k, v := range cfg.Weights {
		t.weights[k] = v
	}
	for _, sc := range cfg.Sources {
		if _, dup := t.sources[sc.Name]; dup {
			continue
		}
		t.order = append(t.order, sc.Name)
		t.sources[sc.Name] = &models.SourceStatus{
			Name:        sc.Name,
			URL:         sc.URL,
			Status:      models.SourceHealthy,
			LastFetched: now,
			NextRefresh: now.Add(cfg.RefreshInterval),
			Reliability: sc.Reliability,
		}
	}
	return t
}

func (t *SourceTracker) SourceNames() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]string(nil), t.order...)
}

// Statuses returns a copy of every source status in configuration order.
func (t *SourceTracker) Statuses() []models.SourceStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]models.SourceStatus, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, *t.sources[name])
	}
	return out
}

// UpdateSourceStatus records a fetch attempt. Unknown names are ignored.
func (t *SourceTracker) UpdateSourceStatus(name string, state models.SourceState, itemCount int, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.sources[name]
	if !ok {
		return
	}
	s.Status = state
	s.LastFetched = at
	s.NextRefresh = at.Add(t.interval)
	s.ItemCount = itemCount
}

// UpdatePatchInfo sets the current patch.
func (t *SourceTracker) UpdatePatchInfo(version string, releasedAt, checkedAt time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.patch = models.PatchInfo{Version: version, ReleasedAt: releasedAt, LastChecked: checkedAt}
}

// TouchPatchCheck records a patch check that found no change.
func (t *SourceTracker) TouchPatchCheck(at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.patch.LastChecked = at
}

func (t *SourceTracker) Patch() models.PatchInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.patch
}

// MarkAllStale flags every source as stale, typically after a new patch.
func (t *SourceTracker) MarkAllStale() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range t.sources {
		s.Status = models.SourceStale
	}
}

// MarkFresh flags every source healthy as of at.
func (t *SourceTracker) MarkFresh(at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range t.sources {
		s.Status = models.SourceHealthy
		s.LastFetched = at
		s.NextRefresh = at.Add(t.interval)
	}
}

// Freshness grades the dataset by its oldest fetch and by source state.
func (t *SourceTracker) Freshness(now time.Time) models.Freshness {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.freshnessLocked(now)
}

func (t *SourceTracker) freshnessLocked(now time.Time) models.Freshness {
	oldest := now
	var errored []string
	stale := false
	for _, name := range t.order {
		s := t.sources[name]
		if s.LastFetched.Before(oldest) {
			oldest = s.LastFetched
		}
		switch s.Status {
		case models.SourceError:
			errored = append(errored, s.Name)
		case models.SourceStale:
			stale = true
		}
	}

	var f models.Freshness
	switch age := now.Sub(oldest); {
	case age < freshWindow:
		f = models.Freshness{Level: models.FreshnessFresh, Uncertainty: models.UncertaintyLow}
	case age < outdatedWindow:
		f = models.Freshness{Level: models.FreshnessStale, Uncertainty: models.UncertaintyMedium,
			Reason: "Data is more than 24 hours old"}
	default:
		f = models.Freshness{Level: models.FreshnessOutdated, Uncertainty: models.UncertaintyHigh,
			Reason: "Data is more than 72 hours old - recommendations may be inaccurate"}
	}

	if len(errored) > 0 {
		f.Uncertainty = models.UncertaintyMedium
		f.Reason = "Some data sources unavailable: " + strings.Join(errored, ", ")
	} else if stale && f.Uncertainty == models.UncertaintyLow {
		f.Uncertainty = models.UncertaintyMedium
		f.Reason = fmt.Sprintf("New patch %s detected - data refresh pending", t.patch.Version)
	}
	return f
}

// DataContext snapshots everything the engine needs for one request.
func (t *SourceTracker) DataContext(now time.Time) models.DataContext {
	t.mu.RLock()
	defer t.mu.RUnlock()

	f := t.freshnessLocked(now)
	weights := make(map[string]float64, len(t.weights))
	for k, v := range t.weights {
		weights[k] = v
	}
	var last time.Time
	for _, s := range t.sources {
		if s.LastFetched.After(last) {
			last = s.LastFetched
		}
	}
	return models.DataContext{
		PatchVersion:      t.patch.Version,
		Uncertainty:       f.Uncertainty,
		UncertaintyReason: f.Reason,
		SourceWeights:     weights,
		LastRefreshed:     last,
		Now:               now,
	}
}

// Weights returns a copy of the configured source weights.
func (t *SourceTracker) Weights() map[string]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]float64, len(t.weights))
	for k, v := range t.weights {
		out[k] = v
	}
	return out
}
