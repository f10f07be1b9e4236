package data

import (
	"io"
	"testing"
	"testing/fstest"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaronguyenVinasu/riftcounter/internal/models"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(quietLogger())
	require.NoError(t, err)
	return s
}

func TestNewStoreLoadsSeed(t *testing.T) {
	s := newTestStore(t)
	counts := s.Counts()
	assert.GreaterOrEqual(t, counts["champions"], 20)
	assert.GreaterOrEqual(t, counts["items"], 20)
	assert.Greater(t, counts["builds"], 10)
	assert.Greater(t, counts["matchups"], 0)
}

func TestSeedIntegrity(t *testing.T) {
	s := newTestStore(t)

	for _, c := range s.ListChampions() {
		assert.NotEmpty(t, c.Roles, "champion %s has no roles", c.ID)
		for _, lane := range c.Roles {
			assert.True(t, lane.Valid(), "champion %s lane %s", c.ID, lane)
		}
		for _, tag := range c.Tags {
			assert.True(t, tag.Valid(), "champion %s tag %s", c.ID, tag)
		}

		for _, b := range s.GetBuildsForChampion(c.ID) {
			for _, id := range append(append([]string{}, b.Items...), b.Boots) {
				_, ok := s.GetItemByID(id)
				assert.True(t, ok, "build %s references unknown item %s", b.ID, id)
			}
			for _, swap := range b.SituationalSwaps {
				assert.True(t, swap.Trigger.Valid(), "build %s swap trigger %s", b.ID, swap.Trigger)
				_, ok := s.GetItemByID(swap.SwapItem)
				assert.True(t, ok, "build %s swap item %s", b.ID, swap.SwapItem)
			}
		}
	}

	for _, id := range []string{"zhonyas-hourglass", "plated-steelcaps", "banshees-veil", "mercury-treads",
		"guardian-angel", "morellonomicon", "mortal-reminder", "boots-of-swiftness"} {
		_, ok := s.GetItemByID(id)
		assert.True(t, ok, "swap item %s missing", id)
	}
}

func TestChampionLookups(t *testing.T) {
	s := newTestStore(t)

	zed, ok := s.GetChampionByID(" ZED ")
	require.True(t, ok)
	assert.Equal(t, "Zed", zed.Name)

	_, ok = s.GetChampionByID("teemo")
	assert.False(t, ok)

	got := s.GetChampionsByIDs([]string{"ahri", "nope", "lux"})
	require.Len(t, got, 2)
	assert.Equal(t, "ahri", got[0].ID)
	assert.Equal(t, "lux", got[1].ID)

	for _, c := range s.GetChampionsByLane(models.LaneSupport) {
		assert.True(t, c.PlaysLane(models.LaneSupport))
	}
}

func TestListItemsSortedByName(t *testing.T) {
	items := newTestStore(t).ListItems()
	for i := 1; i < len(items); i++ {
		assert.LessOrEqual(t, items[i-1].Name, items[i].Name)
	}
}

func TestGetBuildsForChampionReturnsCopy(t *testing.T) {
	s := newTestStore(t)
	builds := s.GetBuildsForChampion("zed")
	require.NotEmpty(t, builds)
	builds[0].Name = "mutated"
	assert.NotEqual(t, "mutated", s.GetBuildsForChampion("zed")[0].Name)
	assert.Empty(t, s.GetBuildsForChampion("unknown"))
}

func TestMergeMatchupsSurvivesReload(t *testing.T) {
	s := newTestStore(t)

	applied := s.MergeMatchups([]models.StoredMatchup{
		{ChallengerID: "ahri", OpponentID: "zed", Lane: models.LaneMid, Metrics: models.MatchupMetrics{LaneDominance: 12}},
		{ChallengerID: "ahri", OpponentID: "ghost", Lane: models.LaneMid},
		{ChallengerID: "ahri", OpponentID: "zed", Lane: models.Lane("top")},
	})
	assert.Equal(t, 1, applied)

	m, ok := s.GetStoredMatchup("ahri", "zed", models.LaneMid)
	require.True(t, ok)
	assert.Equal(t, 12.0, m.Metrics.LaneDominance)

	require.NoError(t, s.Reload())
	m, ok = s.GetStoredMatchup("ahri", "zed", models.LaneMid)
	require.True(t, ok)
	assert.Equal(t, 12.0, m.Metrics.LaneDominance)
}

func TestSourceItemCount(t *testing.T) {
	s := newTestStore(t)
	assert.Greater(t, s.SourceItemCount("WildRiftFire"), s.SourceItemCount("WR-META"))
	assert.Equal(t, 0, s.SourceItemCount("Community"))
}

func TestNewStoreFromFSErrors(t *testing.T) {
	valid := fstest.MapFS{
		championsFile: {Data: []byte(`[{"id":"zed","name":"Zed","roles":["mid"],"tags":["assassin"],"rangeType":"melee"}]`)},
		itemsFile:     {Data: []byte(`[]`)},
		buildsFile:    {Data: []byte(`[]`)},
		matchupsFile:  {Data: []byte(`[]`)},
	}
	_, err := NewStoreFromFS(valid, quietLogger())
	require.NoError(t, err)

	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"bad json", itemsFile, `{`, "failed to parse"},
		{"unknown lane", championsFile, `[{"id":"zed","name":"Zed","roles":["top"]}]`, "failed to parse"},
		{"score out of range", championsFile, `[{"id":"zed","name":"Zed","burstScore":11}]`, "out of range"},
		{"duplicate champion", championsFile, `[{"id":"zed","name":"Zed"},{"id":"zed","name":"Zed"}]`, "duplicate"},
		{"uppercase id", championsFile, `[{"id":"Zed","name":"Zed"}]`, "lowercase"},
		{"orphan build", buildsFile, `[{"id":"b","championId":"ahri"}]`, "unknown champion"},
		{"missing matchup lane", matchupsFile, `[{"id":"m"}]`, "invalid lane"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{}
			for k, v := range valid {
				fsys[k] = v
			}
			fsys[tt.file] = &fstest.MapFile{Data: []byte(tt.content)}
			_, err := NewStoreFromFS(fsys, quietLogger())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	missing := fstest.MapFS{championsFile: valid[championsFile]}
	_, err = NewStoreFromFS(missing, quietLogger())
	assert.ErrorContains(t, err, "failed to read")
}
