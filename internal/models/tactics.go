package models

type TacticPhase string

const (
	PhaseEarly     TacticPhase = "early"
	PhaseMid       TacticPhase = "mid"
	PhaseLate      TacticPhase = "late"
	PhaseTeamfight TacticPhase = "teamfight"
	PhaseAll       TacticPhase = "all"
)

type TacticStep struct {
	Action string `json:"action"`
	Timing string `json:"timing,omitempty"`
}

// Tactic is a phase-tagged block of advice. Priority 5 is most urgent.
type Tactic struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Phase      TacticPhase  `json:"phase"`
	Stage      TacticPhase  `json:"stage,omitempty"`
	Steps      []TacticStep `json:"steps"`
	Reasoning  string       `json:"reasoning"`
	Priority   int          `json:"priority"`
	Confidence int          `json:"confidence,omitempty"`
	Sources    []DataSource `json:"sources"`
}

type DamageRating string

const (
	DamageLow    DamageRating = "low"
	DamageMedium DamageRating = "medium"
	DamageHigh   DamageRating = "high"
	DamageLethal DamageRating = "lethal"
)

type SkillCombo struct {
	Name        string       `json:"name"`
	Sequence    string       `json:"sequence"`
	Description string       `json:"description"`
	Timing      string       `json:"timing"`
	Difficulty  Difficulty   `json:"difficulty"`
	Damage      DamageRating `json:"damage"`
}

type Advantage string

const (
	AdvantageYou     Advantage = "you"
	AdvantageEnemy   Advantage = "enemy"
	AdvantageNeutral Advantage = "neutral"
)

// PowerSpikeEntry is one spike on the merged matchup timeline.
type PowerSpikeEntry struct {
	Champion    Advantage `json:"champion"`
	ChampionID  string    `json:"championId"`
	Type        SpikeType `json:"type"`
	Level       int       `json:"level,omitempty"`
	Time        string    `json:"time"`
	Description string    `json:"description"`
	Power       float64   `json:"power"`
	Advantage   Advantage `json:"advantage"`
}

type AbilityWarning struct {
	ChampionID  string `json:"championId"`
	Ability     string `json:"ability"`
	Warning     string `json:"warning"`
	Counterplay string `json:"counterplay"`
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// AbilityWindow describes a moment when an ability cooldown opens a play.
type AbilityWindow struct {
	Trigger string      `json:"trigger"`
	Window  string      `json:"window"`
	Action  string      `json:"action"`
	Risk    RiskLevel   `json:"risk"`
	Phase   TacticPhase `json:"phase"`
}

type ConditionPriority string

const (
	PriorityMust     ConditionPriority = "must"
	PriorityShould   ConditionPriority = "should"
	PriorityConsider ConditionPriority = "consider"
)

type ConditionIcon string

const (
	IconWarning ConditionIcon = "warning"
	IconInfo    ConditionIcon = "info"
	IconTip     ConditionIcon = "tip"
)

type ConditionalTactic struct {
	Condition string            `json:"condition"`
	Action    string            `json:"action"`
	Priority  ConditionPriority `json:"priority"`
	Phase     TacticPhase       `json:"phase"`
	Icon      ConditionIcon     `json:"icon"`
}

type TipCategory string

const (
	TipTrading     TipCategory = "trading"
	TipFarming     TipCategory = "farming"
	TipPositioning TipCategory = "positioning"
	TipVision      TipCategory = "vision"
)

type MicroTip struct {
	Tip      string      `json:"tip"`
	Timing   string      `json:"timing,omitempty"`
	Category TipCategory `json:"category"`
}

type LaneStrategy struct {
	Early []string `json:"early"`
	Mid   []string `json:"mid"`
	Late  []string `json:"late"`
}

type WinConditions struct {
	Win   string `json:"win"`
	Avoid string `json:"avoid"`
}

// TacticalBreakdown is the detailed play-as advice for one lane matchup.
type TacticalBreakdown struct {
	AbilityWindows []AbilityWindow     `json:"abilityWindows"`
	Conditionals   []ConditionalTactic `json:"conditionals"`
	MicroTips      []MicroTip          `json:"microTips"`
	LaneStrategy   LaneStrategy        `json:"laneStrategy"`
	WinConditions  WinConditions       `json:"winConditions"`
}
