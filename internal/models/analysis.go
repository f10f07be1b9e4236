package models

import "time"

type AnalysisOptions struct {
	PreferCounters bool   `json:"preferCounters"`
	Playstyle      string `json:"playstyle,omitempty" binding:"omitempty,oneof=aggressive farming roaming"`
	MaxCounters    int    `json:"maxCounters,omitempty" binding:"omitempty,min=1,max=10"`
	IncludeOffMeta bool   `json:"includeOffMeta"`
}

// AnalysisRequest is the body of POST /api/v1/analyze.
type AnalysisRequest struct {
	Enemies      []string        `json:"enemies" binding:"required,min=1,max=5,dive,required"`
	Lane         string          `json:"lane" binding:"required"`
	YourChampion string          `json:"yourChampion,omitempty"`
	Options      AnalysisOptions `json:"options"`
}

// AnalysisResponse is the full recommendation for one enemy lineup.
type AnalysisResponse struct {
	RequestID         string                `json:"requestId"`
	NormalizedEnemies []ChampionSummary     `json:"normalizedEnemies"`
	Lane              Lane                  `json:"lane"`
	LaneEnemy         *ChampionSummary      `json:"laneEnemy"`
	YourChampion      *ChampionSummary      `json:"yourChampion,omitempty"`
	Counters          []CounterPick         `json:"counters"`
	Tactics           []Tactic              `json:"tactics"`
	Builds            []BuildRecommendation `json:"builds"`
	SkillCombos       []SkillCombo          `json:"skillCombos"`
	PowerSpikes       []PowerSpikeEntry     `json:"powerSpikes"`
	AbilityWarnings   []AbilityWarning      `json:"abilityWarnings"`

	MatchupVector     *MatchupVector     `json:"matchupVector,omitempty"`
	StagedTactics     []Tactic           `json:"stagedTactics,omitempty"`
	TacticalBreakdown *TacticalBreakdown `json:"tacticalBreakdown,omitempty"`
	SuggestedSwaps    []SituationalSwap  `json:"suggestedSwaps,omitempty"`

	Confidence        int            `json:"confidence"`
	Uncertainty       Uncertainty    `json:"uncertainty"`
	UncertaintyReason string         `json:"uncertaintyReason,omitempty"`
	Sources           []SourceStatus `json:"sources"`
	LastRefreshed     time.Time      `json:"lastRefreshed"`
	PatchVersion      string         `json:"patchVersion"`
	Cached            bool           `json:"cached"`
}
