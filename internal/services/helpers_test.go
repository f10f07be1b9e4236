package services

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/BaronguyenVinasu/riftcounter/internal/data"
	"github.com/BaronguyenVinasu/riftcounter/internal/models"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func seedStore(t *testing.T) *data.Store {
	t.Helper()
	s, err := data.NewStore(quietLogger())
	require.NoError(t, err)
	return s
}

var testNow = time.Date(2025, 12, 10, 12, 0, 0, 0, time.UTC)

func testContext(u models.Uncertainty) models.DataContext {
	return models.DataContext{
		PatchVersion:  "5.4",
		Uncertainty:   u,
		SourceWeights: map[string]float64{"WildRiftFire": 1.0, "WR-META": 0.9, "Community": 0.6},
		LastRefreshed: testNow,
		Now:           testNow,
	}
}

// fakeStore is a hand-built AttributeStore.
type fakeStore struct {
	champions []*models.Champion
	builds    map[string][]models.Build
	items     map[string]*models.Item
	matchups  map[string]*models.StoredMatchup
}

func newFakeStore(champions ...*models.Champion) *fakeStore {
	return &fakeStore{
		champions: champions,
		builds:    map[string][]models.Build{},
		items:     map[string]*models.Item{},
		matchups:  map[string]*models.StoredMatchup{},
	}
}

func (f *fakeStore) GetChampionByID(id string) (*models.Champion, bool) {
	for _, c := range f.champions {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

func (f *fakeStore) GetChampionsByIDs(ids []string) []*models.Champion {
	var out []*models.Champion
	for _, id := range ids {
		if c, ok := f.GetChampionByID(id); ok {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeStore) GetChampionsByLane(lane models.Lane) []*models.Champion {
	var out []*models.Champion
	for _, c := range f.champions {
		if c.PlaysLane(lane) {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeStore) ListChampions() []*models.Champion { return f.champions }

func (f *fakeStore) GetBuildsForChampion(championID string) []models.Build {
	return f.builds[championID]
}

func (f *fakeStore) GetStoredMatchup(challengerID, opponentID string, lane models.Lane) (*models.StoredMatchup, bool) {
	m, ok := f.matchups[challengerID+"|"+opponentID+"|"+string(lane)]
	return m, ok
}

func (f *fakeStore) GetItemByID(id string) (*models.Item, bool) {
	it, ok := f.items[id]
	return it, ok
}

func (f *fakeStore) ListItems() []*models.Item {
	out := make([]*models.Item, 0, len(f.items))
	for _, it := range f.items {
		out = append(out, it)
	}
	return out
}

// fakeCache is an in-process AnalysisCache that records calls.
type fakeCache struct {
	mu          sync.Mutex
	entries     map[string]*models.AnalysisResponse
	sets        int
	invalidated int
	setErr      error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]*models.AnalysisResponse{}}
}

func (f *fakeCache) Get(_ context.Context, key string) (*models.AnalysisResponse, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	resp, ok := f.entries[key]
	if !ok {
		return nil, false
	}
	cp := *resp
	return &cp, true
}

func (f *fakeCache) Set(_ context.Context, key string, resp *models.AnalysisResponse, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	cp := *resp
	f.entries[key] = &cp
	return nil
}

func (f *fakeCache) InvalidateAll(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated++
	f.entries = map[string]*models.AnalysisResponse{}
	return nil
}

// fixedProvider serves one DataContext.
type fixedProvider struct {
	dc       models.DataContext
	statuses []models.SourceStatus
}

func (p fixedProvider) DataContext(time.Time) models.DataContext { return p.dc }
func (p fixedProvider) Statuses() []models.SourceStatus         { return p.statuses }

func champ(id string, rangeType models.RangeType, lanes ...models.Lane) *models.Champion {
	return &models.Champion{ID: id, Name: id, RangeType: rangeType, Roles: lanes}
}
