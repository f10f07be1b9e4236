package models

import "time"

// DataContext is the per-request snapshot of data trust. Engine components
// read weights, freshness and the clock from it instead of global state.
type DataContext struct {
	PatchVersion      string             `json:"patchVersion"`
	Uncertainty       Uncertainty        `json:"uncertainty"`
	UncertaintyReason string             `json:"uncertaintyReason,omitempty"`
	SourceWeights     map[string]float64 `json:"sourceWeights"`
	LastRefreshed     time.Time          `json:"lastRefreshed"`
	Now               time.Time          `json:"-"`
}

// SourceWeight returns the configured reliability weight, or def when unknown
// or non-positive.
func (dc DataContext) SourceWeight(name string, def float64) float64 {
	if w, ok := dc.SourceWeights[name]; ok && w > 0 {
		return w
	}
	return def
}

// Clock returns Now, falling back to the wall clock for a zero context.
func (dc DataContext) Clock() time.Time {
	if dc.Now.IsZero() {
		return time.Now()
	}
	return dc.Now
}

type SourceState string

const (
	SourceHealthy SourceState = "healthy"
	SourceStale   SourceState = "stale"
	SourceError   SourceState = "error"
)

// SourceStatus is the refresh state of one upstream data source.
type SourceStatus struct {
	Name        string      `json:"name"`
	URL         string      `json:"url"`
	Status      SourceState `json:"status"`
	LastFetched time.Time   `json:"lastFetched"`
	NextRefresh time.Time   `json:"nextRefresh"`
	Reliability int         `json:"reliability"`
	ItemCount   int         `json:"itemCount"`
}

type FreshnessLevel string

const (
	FreshnessFresh    FreshnessLevel = "fresh"
	FreshnessStale    FreshnessLevel = "stale"
	FreshnessOutdated FreshnessLevel = "outdated"
)

type Freshness struct {
	Level       FreshnessLevel `json:"dataFreshness"`
	Uncertainty Uncertainty    `json:"uncertaintyLevel"`
	Reason      string         `json:"reason,omitempty"`
}

type PatchInfo struct {
	Version     string    `json:"version"`
	ReleasedAt  time.Time `json:"releasedAt"`
	LastChecked time.Time `json:"lastChecked"`
}

// RefreshRecord is one row of the refresh log.
type RefreshRecord struct {
	Source     string      `json:"source"`
	Trigger    string      `json:"trigger"`
	Status     SourceState `json:"status"`
	ItemCount  int         `json:"itemCount"`
	Error      string      `json:"error,omitempty"`
	StartedAt  time.Time   `json:"startedAt"`
	FinishedAt time.Time   `json:"finishedAt"`
}
