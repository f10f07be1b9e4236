package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaronguyenVinasu/riftcounter/internal/models"
)

func rankerFixture() *fakeStore {
	opponent := champ("o", models.RangeMelee, models.LaneMid)
	strong := champ("strong", models.RangeRanged, models.LaneMid)
	strong.BurstScore, strong.CCScore = 9, 8
	weak := champ("weak", models.RangeMelee, models.LaneMid)
	offLane := champ("jungler", models.RangeMelee, models.LaneJungle)
	return newFakeStore(weak, opponent, offLane, strong)
}

func TestGetCounterPicks_RanksAndDescribes(t *testing.T) {
	r := NewCounterRanker(rankerFixture(), quietLogger())
	picks := r.GetCounterPicks("o", models.LaneMid, 0, testContext(models.UncertaintyLow))

	require.Len(t, picks, 2)
	assert.Equal(t, "strong", picks[0].Champion.ID)
	assert.Equal(t, "weak", picks[1].Champion.ID)

	top := picks[0]
	assert.Equal(t, 65, top.Confidence)
	assert.Equal(t, models.DifficultyMedium, top.Difficulty)
	assert.Equal(t, "strong has strong lane presence and high kill potential against o", top.Reason)
	require.Len(t, top.Sources, 1)
	assert.Equal(t, "RiftCounter Analysis", top.Sources[0].Name)
	assert.Equal(t, 75, top.Sources[0].Reliability)
	assert.Equal(t, testNow, top.Sources[0].Fetched)

	bottom := picks[1]
	assert.Equal(t, 16.5, bottom.Score)
	assert.Equal(t, 55, bottom.Confidence)
	assert.Equal(t, models.DifficultyHard, bottom.Difficulty)
	assert.Equal(t, "weak has favorable matchup overall against o", bottom.Reason)
}

func TestGetCounterPicks_EmptyCases(t *testing.T) {
	dc := testContext(models.UncertaintyLow)

	r := NewCounterRanker(rankerFixture(), quietLogger())
	assert.Empty(t, r.GetCounterPicks("nobody", models.LaneMid, 5, dc))
	assert.NotNil(t, r.GetCounterPicks("nobody", models.LaneMid, 5, dc))

	lonely := NewCounterRanker(newFakeStore(champ("solo", models.RangeMelee, models.LaneBaron)), quietLogger())
	assert.Empty(t, lonely.GetCounterPicks("solo", models.LaneBaron, 5, dc))
	assert.Empty(t, r.GetCounterPicks("o", models.LaneSupport, 5, dc))
}

func TestGetCounterPicks_Limits(t *testing.T) {
	opponent := champ("o", models.RangeMelee, models.LaneMid)
	roster := []*models.Champion{opponent}
	for i := 0; i < 12; i++ {
		c := champ(fmt.Sprintf("c%02d", i), models.RangeMelee, models.LaneMid)
		c.BurstScore = float64(i % 10)
		roster = append(roster, c)
	}
	r := NewCounterRanker(newFakeStore(roster...), quietLogger())
	dc := testContext(models.UncertaintyLow)

	assert.Len(t, r.GetCounterPicks("o", models.LaneMid, 0, dc), DefaultCounterLimit)
	assert.Len(t, r.GetCounterPicks("o", models.LaneMid, 3, dc), 3)
	picks := r.GetCounterPicks("o", models.LaneMid, 50, dc)
	assert.Len(t, picks, MaxCounterLimit)
	for i := 1; i < len(picks); i++ {
		assert.GreaterOrEqual(t, picks[i-1].Score, picks[i].Score)
	}
}

func TestGetCounterPicks_TiesKeepStoreOrder(t *testing.T) {
	opponent := champ("o", models.RangeMelee, models.LaneMid)
	store := newFakeStore(
		champ("zeta", models.RangeMelee, models.LaneMid),
		opponent,
		champ("alpha", models.RangeMelee, models.LaneMid),
		champ("mu", models.RangeMelee, models.LaneMid),
	)
	r := NewCounterRanker(store, quietLogger())
	picks := r.GetCounterPicks("o", models.LaneMid, 5, testContext(models.UncertaintyLow))

	require.Len(t, picks, 3)
	assert.Equal(t, picks[0].Score, picks[2].Score)
	ids := []string{picks[0].Champion.ID, picks[1].Champion.ID, picks[2].Champion.ID}
	assert.Equal(t, []string{"zeta", "alpha", "mu"}, ids)
}

func TestGetCounterPicks_SeedNeverPicksOpponent(t *testing.T) {
	store := seedStore(t)
	r := NewCounterRanker(store, quietLogger())
	for _, c := range store.ListChampions() {
		for _, lane := range c.Roles {
			for _, p := range r.GetCounterPicks(c.ID, lane, 10, testContext(models.UncertaintyLow)) {
				assert.NotEqual(t, c.ID, p.Champion.ID)
				assert.GreaterOrEqual(t, p.Confidence, 40)
				assert.LessOrEqual(t, p.Confidence, 95)
			}
		}
	}
}

func TestCounterScore(t *testing.T) {
	m := models.MatchupMetrics{LaneDominance: 40, KillPotential: 60, PokeAdvantage: 20, ScaleComparison: -30, GankVulnerability: 40}
	// 14 + 15 + 3 + 4.5 + 6
	assert.InDelta(t, 42.5, CounterScore(m), 1e-9)
}
