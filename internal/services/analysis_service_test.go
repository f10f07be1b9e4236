package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaronguyenVinasu/riftcounter/internal/models"
	"github.com/BaronguyenVinasu/riftcounter/internal/utils"
)

var testStatuses = []models.SourceStatus{{Name: "WildRiftFire", Status: models.SourceHealthy}}

func newTestAnalysis(t *testing.T, cache AnalysisCache, dc models.DataContext, cfg AnalysisConfig) *AnalysisService {
	t.Helper()
	store := seedStore(t)
	champions := NewChampionService(store, quietLogger(), true)
	provider := fixedProvider{dc: dc, statuses: testStatuses}
	svc := NewAnalysisService(store, champions, provider, cache, cfg, quietLogger())
	svc.now = func() time.Time { return testNow }
	return svc
}

var fullConfig = AnalysisConfig{CounterPicks: true, BuildAggregation: true}

func TestFingerprint(t *testing.T) {
	opts := models.AnalysisOptions{}
	a := Fingerprint([]string{"zed", "jinx"}, models.LaneMid, "", opts)

	assert.Len(t, a, 32)
	assert.Equal(t, a, Fingerprint([]string{"zed", "jinx"}, models.LaneMid, "", opts))
	assert.NotEqual(t, a, Fingerprint([]string{"jinx", "zed"}, models.LaneMid, "", opts))
	assert.NotEqual(t, a, Fingerprint([]string{"zed", "jinx"}, models.LaneBaron, "", opts))
	assert.NotEqual(t, a, Fingerprint([]string{"zed", "jinx"}, models.LaneMid, "ahri", opts))
	assert.NotEqual(t, a, Fingerprint([]string{"zed", "jinx"}, models.LaneMid, "", models.AnalysisOptions{MaxCounters: 3}))
}

func TestAnalyze_CounterPath(t *testing.T) {
	cache := newFakeCache()
	svc := newTestAnalysis(t, cache, testContext(models.UncertaintyLow), fullConfig)

	req := models.AnalysisRequest{Enemies: []string{"Zed", "jinx", "garen"}, Lane: "middle"}
	resp, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, models.LaneMid, resp.Lane)
	require.Len(t, resp.NormalizedEnemies, 3)
	require.NotNil(t, resp.LaneEnemy)
	assert.Equal(t, "zed", resp.LaneEnemy.ID)
	assert.Nil(t, resp.YourChampion)

	require.NotEmpty(t, resp.Counters)
	assert.LessOrEqual(t, len(resp.Counters), DefaultCounterLimit)
	for i, c := range resp.Counters {
		assert.NotEqual(t, "zed", c.Champion.ID)
		if i > 0 {
			assert.GreaterOrEqual(t, resp.Counters[i-1].Score, c.Score)
		}
	}
	assert.Len(t, resp.Tactics, 3)
	assert.NotEmpty(t, resp.SkillCombos)
	assert.Nil(t, resp.MatchupVector)
	assert.Nil(t, resp.TacticalBreakdown)
	assert.Empty(t, resp.StagedTactics)

	assert.Equal(t, models.UncertaintyLow, resp.Uncertainty)
	assert.Equal(t, "5.4", resp.PatchVersion)
	assert.Equal(t, testNow, resp.LastRefreshed)
	assert.Equal(t, testStatuses, resp.Sources)
	assert.GreaterOrEqual(t, resp.Confidence, 30)
	assert.LessOrEqual(t, resp.Confidence, 95)
	assert.False(t, resp.Cached)
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, 1, cache.sets)

	again, err := svc.Analyze(context.Background(), models.AnalysisRequest{Enemies: []string{"zed", "Jinx", "garen"}, Lane: "mid"})
	require.NoError(t, err)
	assert.True(t, again.Cached)
	assert.NotEqual(t, resp.RequestID, again.RequestID)
	assert.Equal(t, resp.Counters, again.Counters)
	assert.Equal(t, 1, cache.sets)
}

func TestAnalyze_YourChampion(t *testing.T) {
	svc := newTestAnalysis(t, nil, testContext(models.UncertaintyLow), fullConfig)

	resp, err := svc.Analyze(context.Background(), models.AnalysisRequest{
		Enemies: []string{"zed", "jinx"}, Lane: "mid", YourChampion: "Syndra",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.YourChampion)
	assert.Equal(t, "syndra", resp.YourChampion.ID)
	assert.Empty(t, resp.Counters)
	require.NotEmpty(t, resp.Builds)
	assert.Equal(t, "syndra-burst-default", resp.Builds[0].BuildID)
	require.NotNil(t, resp.MatchupVector)
	require.NotNil(t, resp.TacticalBreakdown)
	assert.Len(t, resp.StagedTactics, 3)
	assert.Len(t, resp.Tactics, 3)

	withCounters, err := svc.Analyze(context.Background(), models.AnalysisRequest{
		Enemies: []string{"zed", "jinx"}, Lane: "mid", YourChampion: "Syndra",
		Options: models.AnalysisOptions{PreferCounters: true, MaxCounters: 2},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, withCounters.Counters)
	assert.LessOrEqual(t, len(withCounters.Counters), 2)
	require.NotEmpty(t, withCounters.Builds)
	assert.Equal(t, "syndra-burst-default", withCounters.Builds[0].BuildID)
}

func TestAnalyze_NoLaneEnemy(t *testing.T) {
	svc := newTestAnalysis(t, newFakeCache(), testContext(models.UncertaintyLow), fullConfig)

	resp, err := svc.Analyze(context.Background(), models.AnalysisRequest{Enemies: []string{"jinx", "nautilus"}, Lane: "mid"})
	require.NoError(t, err)

	assert.Nil(t, resp.LaneEnemy)
	assert.Empty(t, resp.Counters)
	assert.Empty(t, resp.Tactics)
	assert.Empty(t, resp.Builds)
	assert.NotNil(t, resp.Counters)
	assert.Equal(t, 70, resp.Confidence)
}

func TestAnalyze_FeaturesDisabled(t *testing.T) {
	svc := newTestAnalysis(t, nil, testContext(models.UncertaintyLow), AnalysisConfig{})

	resp, err := svc.Analyze(context.Background(), models.AnalysisRequest{Enemies: []string{"zed"}, Lane: "mid"})
	require.NoError(t, err)
	assert.Empty(t, resp.Counters)
	assert.Empty(t, resp.Builds)
	assert.Equal(t, 70, resp.Confidence)

	resp, err = svc.Analyze(context.Background(), models.AnalysisRequest{Enemies: []string{"zed"}, Lane: "mid", YourChampion: "ahri"})
	require.NoError(t, err)
	assert.Empty(t, resp.Builds)
	assert.NotEmpty(t, resp.SkillCombos)
}

func TestAnalyze_UncertaintyLowersConfidence(t *testing.T) {
	req := models.AnalysisRequest{Enemies: []string{"zed"}, Lane: "mid"}

	low, err := newTestAnalysis(t, nil, testContext(models.UncertaintyLow), fullConfig).Analyze(context.Background(), req)
	require.NoError(t, err)

	highCtx := testContext(models.UncertaintyHigh)
	highCtx.UncertaintyReason = "Data is over 30 days old"
	high, err := newTestAnalysis(t, nil, highCtx, fullConfig).Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.Less(t, high.Confidence, low.Confidence)
	assert.Equal(t, models.UncertaintyHigh, high.Uncertainty)
	assert.Equal(t, "Data is over 30 days old", high.UncertaintyReason)
}

func TestAnalyze_CacheWriteFailureIsNotFatal(t *testing.T) {
	cache := newFakeCache()
	cache.setErr = errors.New("redis down")
	svc := newTestAnalysis(t, cache, testContext(models.UncertaintyLow), fullConfig)

	resp, err := svc.Analyze(context.Background(), models.AnalysisRequest{Enemies: []string{"zed"}, Lane: "mid"})
	require.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, 1, cache.sets)
}

func TestAnalyze_Errors(t *testing.T) {
	svc := newTestAnalysis(t, newFakeCache(), testContext(models.UncertaintyLow), fullConfig)
	tests := []struct {
		name string
		req  models.AnalysisRequest
		code string
	}{
		{"invalid lane", models.AnalysisRequest{Enemies: []string{"zed"}, Lane: "river"}, utils.CodeInvalidLane},
		{"unknown enemy", models.AnalysisRequest{Enemies: []string{"zed", "qqqqqqq"}, Lane: "mid"}, utils.CodeUnknownChampions},
		{"unknown own champion", models.AnalysisRequest{Enemies: []string{"zed"}, Lane: "mid", YourChampion: "qqqqqqq"}, utils.CodeUnknownChampion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Analyze(context.Background(), tt.req)
			require.Error(t, err)
			assert.Nil(t, resp)
			var appErr *utils.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}

func TestCountersForAndBuildsFor(t *testing.T) {
	svc := newTestAnalysis(t, nil, testContext(models.UncertaintyLow), fullConfig)

	picks := svc.CountersFor("zed", models.LaneMid, 0)
	require.NotEmpty(t, picks)
	assert.LessOrEqual(t, len(picks), DefaultCounterLimit)
	assert.Len(t, svc.CountersFor("zed", models.LaneMid, 2), 2)

	builds := svc.BuildsFor("lux", models.LaneSupport, false)
	require.Len(t, builds, 1)
	assert.Equal(t, "lux-burst-default", builds[0].BuildID)
	assert.Empty(t, svc.BuildsFor("garen", models.LaneBaron, true))
}
