package models

import (
	"fmt"
	"strings"
)

// Lane is one of the five Wild Rift positions.
type Lane string

const (
	LaneBaron   Lane = "baron"
	LaneMid     Lane = "mid"
	LaneJungle  Lane = "jungle"
	LaneADC     Lane = "adc"
	LaneSupport Lane = "support"
)

// AllLanes lists every lane in map order (top to bottom, then support).
var AllLanes = []Lane{LaneBaron, LaneMid, LaneJungle, LaneADC, LaneSupport}

// Valid reports whether l is a known lane.
func (l Lane) Valid() bool {
	switch l {
	case LaneBaron, LaneMid, LaneJungle, LaneADC, LaneSupport:
		return true
	}
	return false
}

// UnmarshalText rejects lanes outside the closed set.
func (l *Lane) UnmarshalText(text []byte) error {
	v := Lane(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("unknown lane %q", string(text))
	}
	*l = v
	return nil
}

// RoleTag classifies a champion's play pattern.
type RoleTag string

const (
	RoleAssassin RoleTag = "assassin"
	RoleFighter  RoleTag = "fighter"
	RoleMage     RoleTag = "mage"
	RoleMarksman RoleTag = "marksman"
	RoleSupport  RoleTag = "support"
	RoleTank     RoleTag = "tank"
)

var AllRoleTags = []RoleTag{RoleAssassin, RoleFighter, RoleMage, RoleMarksman, RoleSupport, RoleTank}

func (r RoleTag) Valid() bool {
	switch r {
	case RoleAssassin, RoleFighter, RoleMage, RoleMarksman, RoleSupport, RoleTank:
		return true
	}
	return false
}

func (r *RoleTag) UnmarshalText(text []byte) error {
	v := RoleTag(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("unknown role tag %q", string(text))
	}
	*r = v
	return nil
}

// ThreatTag is a team-composition threat that can trigger an item swap.
type ThreatTag string

const (
	ThreatHeavyAD      ThreatTag = "heavyAD"
	ThreatHeavyAP      ThreatTag = "heavyAP"
	ThreatHeavyHeal    ThreatTag = "heavyHeal"
	ThreatHeavyCC      ThreatTag = "heavyCC"
	ThreatHeavyCrit    ThreatTag = "heavyCrit"
	ThreatMobileThreat ThreatTag = "mobileThreat"
	ThreatTankHeavy    ThreatTag = "tankHeavy"
	ThreatBurstThreat  ThreatTag = "burstThreat"
	ThreatPokeHeavy    ThreatTag = "pokeHeavy"
)

// AllThreatTags is ordered the way threats are detected and reported.
var AllThreatTags = []ThreatTag{
	ThreatHeavyAD,
	ThreatHeavyAP,
	ThreatHeavyHeal,
	ThreatHeavyCC,
	ThreatMobileThreat,
	ThreatTankHeavy,
	ThreatBurstThreat,
	ThreatPokeHeavy,
	ThreatHeavyCrit,
}

func (t ThreatTag) Valid() bool {
	return t.Describe() != ""
}

// Describe returns a short human label, or "" for an unknown tag.
func (t ThreatTag) Describe() string {
	switch t {
	case ThreatHeavyAD:
		return "heavy physical damage"
	case ThreatHeavyAP:
		return "heavy magic damage"
	case ThreatHeavyHeal:
		return "heavy healing"
	case ThreatHeavyCC:
		return "heavy crowd control"
	case ThreatHeavyCrit:
		return "multiple crit carries"
	case ThreatMobileThreat:
		return "highly mobile divers"
	case ThreatTankHeavy:
		return "tank-heavy frontline"
	case ThreatBurstThreat:
		return "burst damage"
	case ThreatPokeHeavy:
		return "long-range poke"
	}
	return ""
}

// UnmarshalText keeps the camelCase spelling but matches case-insensitively.
func (t *ThreatTag) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	for _, known := range AllThreatTags {
		if strings.EqualFold(raw, string(known)) {
			*t = known
			return nil
		}
	}
	return fmt.Errorf("unknown threat tag %q", raw)
}

// SpikeType is the kind of milestone a power spike is tied to.
type SpikeType string

const (
	SpikeLevel SpikeType = "level"
	SpikeItem  SpikeType = "item"
	SpikeTime  SpikeType = "time"
)

var AllSpikeTypes = []SpikeType{SpikeLevel, SpikeItem, SpikeTime}

func (s SpikeType) Valid() bool {
	return s.Priority() > 0
}

// Priority orders spikes on a timeline: level spikes first, time spikes last.
// Unknown types return 0.
func (s SpikeType) Priority() int {
	switch s {
	case SpikeLevel:
		return 1
	case SpikeItem:
		return 2
	case SpikeTime:
		return 3
	}
	return 0
}

func (s *SpikeType) UnmarshalText(text []byte) error {
	v := SpikeType(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("unknown spike type %q", string(text))
	}
	*s = v
	return nil
}

// Uncertainty grades how far recommendations can be trusted given data age.
type Uncertainty string

const (
	UncertaintyLow    Uncertainty = "low"
	UncertaintyMedium Uncertainty = "medium"
	UncertaintyHigh   Uncertainty = "high"
)

var AllUncertainties = []Uncertainty{UncertaintyLow, UncertaintyMedium, UncertaintyHigh}

func (u Uncertainty) Valid() bool {
	return u.Penalty() > 0
}

// Penalty is the multiplier applied to overall confidence.
func (u Uncertainty) Penalty() float64 {
	switch u {
	case UncertaintyLow:
		return 1.0
	case UncertaintyMedium:
		return 0.85
	case UncertaintyHigh:
		return 0.7
	}
	return 0
}

func (u *Uncertainty) UnmarshalText(text []byte) error {
	v := Uncertainty(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("unknown uncertainty level %q", string(text))
	}
	*u = v
	return nil
}

// RangeType is a champion's basic attack range class.
type RangeType string

const (
	RangeMelee  RangeType = "melee"
	RangeRanged RangeType = "ranged"
)

func (r *RangeType) UnmarshalText(text []byte) error {
	v := RangeType(strings.ToLower(strings.TrimSpace(string(text))))
	if v != RangeMelee && v != RangeRanged {
		return fmt.Errorf("unknown range type %q", string(text))
	}
	*r = v
	return nil
}
