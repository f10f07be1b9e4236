package models

import "time"

// MatchupFactors are the raw, unclamped differentials between two champions.
type MatchupFactors struct {
	RangeAdvantage     float64 `json:"rangeAdvantage"`
	MobilityDiff       float64 `json:"mobilityDiff"`
	CCComparison       float64 `json:"ccComparison"`
	BurstVsSustain     float64 `json:"burstVsSustain"`
	WaveclearDiff      float64 `json:"waveclearDiff"`
	ScalingDiff        float64 `json:"scalingDiff"`
	DamageTypeMismatch float64 `json:"damageTypeMismatch"`
}

// MatchupMetrics scores a lane matchup from the challenger's side.
// Signed fields are in [-100, 100]; KillPotential, ObjectiveControl and
// GankVulnerability are in [0, 100].
type MatchupMetrics struct {
	LaneDominance     float64 `json:"laneDominance"`
	KillPotential     float64 `json:"killPotential"`
	PokeAdvantage     float64 `json:"pokeAdvantage"`
	WaveclearDiff     float64 `json:"waveclearDiff"`
	RoamAdvantage     float64 `json:"roamAdvantage"`
	ObjectiveControl  float64 `json:"objectiveControl"`
	ScaleComparison   float64 `json:"scaleComparison"`
	GankVulnerability float64 `json:"gankVulnerability"`
}

// StoredMatchup is a curated metrics record for one (challenger, opponent, lane).
type StoredMatchup struct {
	ID           string         `json:"id"`
	ChallengerID string         `json:"challengerId"`
	OpponentID   string         `json:"opponentId"`
	Lane         Lane           `json:"lane"`
	Metrics      MatchupMetrics `json:"metrics"`
	Notes        string         `json:"notes,omitempty"`
	Sources      []DataSource   `json:"sources"`
	Confidence   float64        `json:"confidence"`
	LastUpdated  time.Time      `json:"lastUpdated"`
}

// MatchupVector is the player-scoped comparison against a single enemy.
// AllInPotential is in [0, 100], every other field in [-100, 100].
type MatchupVector struct {
	LaneDominance  float64 `json:"laneDominance"`
	AllInPotential float64 `json:"allInPotential"`
	PokeAdvantage  float64 `json:"pokeAdvantage"`
	MobilityDiff   float64 `json:"mobilityDiff"`
	CCDiff         float64 `json:"ccDiff"`
	SustainDiff    float64 `json:"sustainDiff"`
	WaveclearDiff  float64 `json:"waveclearDiff"`
	ScalingDiff    float64 `json:"scalingDiff"`
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type CounterPick struct {
	Champion       ChampionSummary `json:"champion"`
	Score          float64         `json:"score"`
	Reason         string          `json:"reason"`
	Confidence     int             `json:"confidence"`
	MatchupMetrics MatchupMetrics  `json:"matchupMetrics"`
	Difficulty     Difficulty      `json:"difficulty"`
	Sources        []DataSource    `json:"sources"`
}
