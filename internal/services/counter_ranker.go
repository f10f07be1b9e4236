package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/BaronguyenVinasu/riftcounter/internal/models"
)

const (
	DefaultCounterLimit = 5
	MaxCounterLimit     = 10

	counterSourceName        = "RiftCounter Analysis"
	counterSourceReliability = 75
)

// CounterSource is what the ranker needs from the attribute store.
type CounterSource interface {
	ChampionSource
	MatchupLookup
}

// CounterRanker ranks lane-eligible champions by how well they play into an opponent.
type CounterRanker struct {
	store  CounterSource
	logger *logrus.Logger
}

func NewCounterRanker(store CounterSource, logger *logrus.Logger) *CounterRanker {
	return &CounterRanker{store: store, logger: logger}
}

// GetCounterPicks returns up to limit counters for opponentID in lane, best first.
// An unknown opponent or an empty lane yields an empty list.
func (r *CounterRanker) GetCounterPicks(opponentID string, lane models.Lane, limit int, dc models.DataContext) []models.CounterPick {
	limit = normalizeCounterLimit(limit)

	opponent, ok := r.store.GetChampionByID(opponentID)
	if !ok {
		r.logger.WithFields(logrus.Fields{
			"opponent": opponentID,
			"lane":     lane,
		}).Debug("Counter ranking skipped: unknown opponent")
		return []models.CounterPick{}
	}

	picks := make([]models.CounterPick, 0)
	for _, candidate := range r.store.GetChampionsByLane(lane) {
		if candidate.ID == opponent.ID {
			continue
		}
		metrics := ComputeMatchupMetrics(candidate, opponent, lane, r.store)
		score := CounterScore(metrics)

		picks = append(picks, models.CounterPick{
			Champion:       candidate.Summary(),
			Score:          score,
			Reason:         counterReason(candidate, opponent, metrics),
			Confidence:     clampInt(50+score*0.3, 40, 95),
			MatchupMetrics: metrics,
			Difficulty:     counterDifficulty(score),
			Sources: []models.DataSource{{
				Name:        counterSourceName,
				Fetched:     dc.Clock(),
				Reliability: counterSourceReliability,
			}},
		})
	}

	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].Score > picks[j].Score
	})

	if len(picks) > limit {
		picks = picks[:limit]
	}
	for i := range picks {
		picks[i].Score = math.Round(picks[i].Score*100) / 100
	}
	return picks
}

// CounterScore is the weighted counter strength of a matchup.
func CounterScore(m models.MatchupMetrics) float64 {
	return m.LaneDominance*0.35 +
		m.KillPotential*0.25 +
		m.PokeAdvantage*0.15 +
		math.Abs(m.ScaleComparison)*0.15 +
		(100-m.GankVulnerability)*0.10
}

func normalizeCounterLimit(limit int) int {
	if limit <= 0 {
		return DefaultCounterLimit
	}
	if limit > MaxCounterLimit {
		return MaxCounterLimit
	}
	return limit
}

func counterDifficulty(score float64) models.Difficulty {
	switch {
	case score > 70:
		return models.DifficultyEasy
	case score > 50:
		return models.DifficultyMedium
	default:
		return models.DifficultyHard
	}
}

func counterReason(counter, opponent *models.Champion, m models.MatchupMetrics) string {
	var reasons []string
	if m.LaneDominance > 30 {
		reasons = append(reasons, "strong lane presence")
	}
	if m.KillPotential > 60 {
		reasons = append(reasons, "high kill potential")
	}
	if m.PokeAdvantage > 20 {
		reasons = append(reasons, "effective poke")
	}
	if m.ScaleComparison > 30 {
		reasons = append(reasons, "outscales in late game")
	}
	if m.WaveclearDiff > 30 {
		reasons = append(reasons, "superior waveclear")
	}

	if len(reasons) == 0 {
		reasons = []string{"favorable matchup overall"}
	}
	if len(reasons) > 2 {
		reasons = reasons[:2]
	}
	return fmt.Sprintf("%s has %s against %s", counter.Label(), strings.Join(reasons, " and "), opponent.Label())
}
