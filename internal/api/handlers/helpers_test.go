package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/BaronguyenVinasu/riftcounter/internal/cache"
	"github.com/BaronguyenVinasu/riftcounter/internal/data"
	"github.com/BaronguyenVinasu/riftcounter/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// engine bundles the real services over the bundled seed data.
type engine struct {
	store     *data.Store
	tracker   *data.SourceTracker
	champions *services.ChampionService
	analysis  *services.AnalysisService
	cache     *cache.MemoryAnalysisCache
}

func newEngine(t *testing.T) *engine {
	t.Helper()
	logger := quietLogger()
	store, err := data.NewStore(logger)
	require.NoError(t, err)

	tracker := data.NewSourceTracker(data.TrackerConfig{
		Sources: []data.SourceConfig{
			{Name: "WildRiftFire", URL: "https://wildriftfire.com", Reliability: 85},
			{Name: "WR-META", URL: "https://wr-meta.com", Reliability: 80},
		},
		Weights:         map[string]float64{"WildRiftFire": 1.0, "WR-META": 0.9, "Community": 0.6},
		RefreshInterval: 24 * time.Hour,
		PatchVersion:    "5.4",
		PatchDate:       time.Now().Add(-10 * 24 * time.Hour),
	}, time.Now())

	champions := services.NewChampionService(store, logger, true)
	memCache := cache.NewMemoryAnalysisCache()
	analysis := services.NewAnalysisService(store, champions, tracker, memCache, services.AnalysisConfig{
		CounterPicks:     true,
		BuildAggregation: true,
	}, logger)

	return &engine{store: store, tracker: tracker, champions: champions, analysis: analysis, cache: memCache}
}

// envelope is the common response wrapper.
type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
	Code       string          `json:"code"`
	Details    json.RawMessage `json:"details"`
	Pagination *Pagination     `json:"pagination"`
}

func perform(t *testing.T, router *gin.Engine, method, target string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if w.Code != http.StatusNoContent {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decode(t *testing.T, raw json.RawMessage, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, out))
}
