package models

import "time"

type BuildType string

const (
	BuildTypeDefault     BuildType = "default"
	BuildTypeSituational BuildType = "situational"
	BuildTypeOffMeta     BuildType = "off-meta"
)

// RecommendationType labels an emitted build variant.
type RecommendationType string

const (
	RecommendationDefault     RecommendationType = "default"
	RecommendationSituational RecommendationType = "situational"
	RecommendationCounter     RecommendationType = "counter"
)

type EmblemPage struct {
	Keystone  string   `json:"keystone"`
	Primary   []string `json:"primary"`
	Secondary []string `json:"secondary"`
}

// SituationalSwap replaces OriginalItem with SwapItem when Trigger is detected.
type SituationalSwap struct {
	OriginalItem string    `json:"originalItem"`
	SwapItem     string    `json:"swapItem"`
	Trigger      ThreatTag `json:"trigger"`
	Reason       string    `json:"reason"`
}

// Build is a curated item build. Confidence is 0-100, MetaWeight 0-1.
type Build struct {
	ID               string            `json:"id"`
	ChampionID       string            `json:"championId"`
	Name             string            `json:"name"`
	Type             BuildType         `json:"type"`
	Playstyle        string            `json:"playstyle"`
	Items            []string          `json:"items"`
	Boots            string            `json:"boots"`
	Emblems          EmblemPage        `json:"emblems"`
	SituationalSwaps []SituationalSwap `json:"situationalSwaps"`
	SkillOrder       []string          `json:"skillOrder,omitempty"`
	Notes            string            `json:"notes,omitempty"`
	Confidence       float64           `json:"confidence"`
	Sources          []DataSource      `json:"sources"`
	MetaWeight       float64           `json:"metaWeight"`
	LastUpdated      time.Time         `json:"lastUpdated"`
}

// BuildRecommendation is one build variant produced for a specific enemy team.
// Confidence is matchup-adjusted; SourceConfidence rates the template's sourcing.
type BuildRecommendation struct {
	Type             RecommendationType `json:"type"`
	BuildID          string             `json:"buildId"`
	Items            []string           `json:"items"`
	Boots            string             `json:"boots"`
	DisplayItems     []ItemRef          `json:"displayItems"`
	DisplayBoots     ItemRef            `json:"displayBoots"`
	Emblems          EmblemPage         `json:"emblems"`
	Confidence       int                `json:"confidence"`
	SourceConfidence int                `json:"sourceConfidence"`
	Reasoning        string             `json:"reasoning"`
	Threats          []ThreatTag        `json:"threats"`
	SwapsApplied     []SituationalSwap  `json:"swapsApplied"`
	Sources          []DataSource       `json:"sources"`
}
