package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaronguyenVinasu/riftcounter/internal/models"
)

var trackerStart = time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)

func newTestTracker() *SourceTracker {
	return NewSourceTracker(TrackerConfig{
		Sources: []SourceConfig{
			{Name: "WildRiftFire", URL: "https://wildriftfire.com", Reliability: 85},
			{Name: "WR-META", URL: "https://wr-meta.com", Reliability: 80},
			{Name: "WildRiftGuides", URL: "https://wildriftguides.gg", Reliability: 75},
		},
		Weights:         map[string]float64{"WildRiftFire": 1.0, "WR-META": 0.9, "WildRiftGuides": 0.8, "Community": 0.6},
		RefreshInterval: 24 * time.Hour,
		PatchVersion:    "5.4",
	}, trackerStart)
}

func TestFreshnessByAge(t *testing.T) {
	tests := []struct {
		name        string
		age         time.Duration
		level       models.FreshnessLevel
		uncertainty models.Uncertainty
		reason      string
	}{
		{"fresh", 2 * time.Hour, models.FreshnessFresh, models.UncertaintyLow, ""},
		{"stale", 30 * time.Hour, models.FreshnessStale, models.UncertaintyMedium, "Data is more than 24 hours old"},
		{"outdated", 80 * time.Hour, models.FreshnessOutdated, models.UncertaintyHigh, "Data is more than 72 hours old - recommendations may be inaccurate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestTracker().Freshness(trackerStart.Add(tt.age))
			assert.Equal(t, tt.level, f.Level)
			assert.Equal(t, tt.uncertainty, f.Uncertainty)
			assert.Equal(t, tt.reason, f.Reason)
		})
	}
}

func TestFreshnessErrorSourceForcesMedium(t *testing.T) {
	tr := newTestTracker()
	tr.UpdateSourceStatus("WR-META", models.SourceError, 0, trackerStart)

	f := tr.Freshness(trackerStart.Add(time.Hour))
	assert.Equal(t, models.UncertaintyMedium, f.Uncertainty)
	assert.Equal(t, "Some data sources unavailable: WR-META", f.Reason)

	f = tr.Freshness(trackerStart.Add(100 * time.Hour))
	assert.Equal(t, models.FreshnessOutdated, f.Level)
	assert.Equal(t, models.UncertaintyMedium, f.Uncertainty)
}

func TestFreshnessStaleAfterPatch(t *testing.T) {
	tr := newTestTracker()
	tr.UpdatePatchInfo("5.5", trackerStart, trackerStart)
	tr.MarkAllStale()

	f := tr.Freshness(trackerStart.Add(time.Hour))
	assert.Equal(t, models.FreshnessFresh, f.Level)
	assert.Equal(t, models.UncertaintyMedium, f.Uncertainty)
	assert.Equal(t, "New patch 5.5 detected - data refresh pending", f.Reason)

	tr.MarkFresh(trackerStart.Add(2 * time.Hour))
	f = tr.Freshness(trackerStart.Add(3 * time.Hour))
	assert.Equal(t, models.UncertaintyLow, f.Uncertainty)
	for _, s := range tr.Statuses() {
		assert.Equal(t, models.SourceHealthy, s.Status)
	}
}

func TestUpdateSourceStatus(t *testing.T) {
	tr := newTestTracker()
	at := trackerStart.Add(5 * time.Hour)
	tr.UpdateSourceStatus("WildRiftFire", models.SourceHealthy, 42, at)
	tr.UpdateSourceStatus("Unknown", models.SourceError, 1, at)

	statuses := tr.Statuses()
	require.Len(t, statuses, 3)
	assert.Equal(t, "WildRiftFire", statuses[0].Name)
	assert.Equal(t, 42, statuses[0].ItemCount)
	assert.Equal(t, at, statuses[0].LastFetched)
	assert.Equal(t, at.Add(24*time.Hour), statuses[0].NextRefresh)
	assert.Equal(t, []string{"WildRiftFire", "WR-META", "WildRiftGuides"}, tr.SourceNames())
}

func TestDataContextSnapshot(t *testing.T) {
	tr := newTestTracker()
	later := trackerStart.Add(3 * time.Hour)
	tr.UpdateSourceStatus("WR-META", models.SourceHealthy, 10, later)

	now := trackerStart.Add(4 * time.Hour)
	dc := tr.DataContext(now)
	assert.Equal(t, "5.4", dc.PatchVersion)
	assert.Equal(t, models.UncertaintyLow, dc.Uncertainty)
	assert.Equal(t, later, dc.LastRefreshed)
	assert.Equal(t, now, dc.Clock())
	assert.Equal(t, 0.9, dc.SourceWeight("WR-META", 0.5))

	dc.SourceWeights["WR-META"] = 0
	assert.Equal(t, 0.9, tr.Weights()["WR-META"])
}

func TestPatchTracking(t *testing.T) {
	tr := newTestTracker()
	checked := trackerStart.Add(time.Hour)
	tr.TouchPatchCheck(checked)
	assert.Equal(t, "5.4", tr.Patch().Version)
	assert.Equal(t, checked, tr.Patch().LastChecked)

	released := trackerStart.Add(48 * time.Hour)
	tr.UpdatePatchInfo("5.4b", released, released)
	assert.Equal(t, models.PatchInfo{Version: "5.4b", ReleasedAt: released, LastChecked: released}, tr.Patch())
}
