package models

import (
	"fmt"
	"time"
)

// DataSource records where a piece of data came from.
type DataSource struct {
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Fetched     time.Time `json:"fetched"`
	Reliability int       `json:"reliability"`
}

type BaseStats struct {
	Health       float64 `json:"health"`
	Mana         float64 `json:"mana"`
	Armor        float64 `json:"armor"`
	MagicResist  float64 `json:"magicResist"`
	AttackDamage float64 `json:"attackDamage"`
	AttackSpeed  float64 `json:"attackSpeed"`
	MoveSpeed    float64 `json:"moveSpeed"`
}

// DamageProfile holds relative damage weights. They need not sum to 1.
type DamageProfile struct {
	Physical   float64 `json:"physical"`
	Magic      float64 `json:"magic"`
	TrueDamage float64 `json:"trueDamage"`
}

type PowerSpike struct {
	Type  SpikeType `json:"type"`
	Level int       `json:"level,omitempty"`
	Value string    `json:"value,omitempty"`
	Power float64   `json:"power"`
	Notes string    `json:"notes"`
}

// Timing renders the spike for display: "Level 6", "First item", "15:00".
func (p PowerSpike) Timing() string {
	if p.Type == SpikeLevel {
		return fmt.Sprintf("Level %d", p.Level)
	}
	return p.Value
}

type AbilityInfo struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Cooldown    []float64 `json:"cooldown,omitempty"`
	Damage      string    `json:"damage,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

type Abilities struct {
	Passive  *AbilityInfo `json:"passive,omitempty"`
	Q        *AbilityInfo `json:"q,omitempty"`
	W        *AbilityInfo `json:"w,omitempty"`
	E        *AbilityInfo `json:"e,omitempty"`
	Ultimate *AbilityInfo `json:"ultimate,omitempty"`
}

// Champion is the per-patch attribute record for a playable character.
// Profile scores are on a 0-10 scale; a missing score reads as zero.
type Champion struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	DisplayName string        `json:"displayName"`
	Aliases     []string      `json:"aliases"`
	Roles       []Lane        `json:"roles"`
	Tags        []RoleTag     `json:"tags"`
	RangeType   RangeType     `json:"rangeType"`
	BaseStats   BaseStats     `json:"baseStats"`
	IconURL     string        `json:"iconUrl,omitempty"`
	Damage      DamageProfile `json:"damageProfile"`

	MobilityScore  float64 `json:"mobilityScore"`
	CCScore        float64 `json:"ccScore"`
	BurstScore     float64 `json:"burstScore"`
	SustainScore   float64 `json:"sustainScore"`
	WaveclearScore float64 `json:"waveclearScore"`
	RoamScore      float64 `json:"roamScore"`
	ScaleScore     float64 `json:"scaleScore"`

	PowerSpikes []PowerSpike `json:"powerSpikes"`
	Abilities   Abilities    `json:"abilities"`
	Sources     []DataSource `json:"sources"`
	LastUpdated time.Time    `json:"lastUpdated"`
}

// ChampionSummary is the list-view projection of a Champion.
type ChampionSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
	Roles       []Lane    `json:"roles"`
	Tags        []RoleTag `json:"tags"`
	IconURL     string    `json:"iconUrl,omitempty"`
}

func (c *Champion) Summary() ChampionSummary {
	return ChampionSummary{
		ID:          c.ID,
		Name:        c.Name,
		DisplayName: c.Label(),
		Roles:       c.Roles,
		Tags:        c.Tags,
		IconURL:     c.IconURL,
	}
}

// Label is the name shown to players.
func (c *Champion) Label() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Name
}

func (c *Champion) HasTag(tag RoleTag) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (c *Champion) PlaysLane(lane Lane) bool {
	for _, l := range c.Roles {
		if l == lane {
			return true
		}
	}
	return false
}

func (c *Champion) IsRanged() bool { return c.RangeType == RangeRanged }

func (c *Champion) IsMelee() bool { return c.RangeType == RangeMelee }
