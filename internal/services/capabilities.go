package services

import "github.com/BaronguyenVinasu/riftcounter/internal/models"

// KeyAbility is an ability whose cooldown shapes the lane.
type KeyAbility struct {
	Slot        string  // Q, W, E or R
	Name        string
	Cooldown    float64 // seconds at rank 1
	IsEscape    bool
	IsEngageKey bool
	Description string
}

// Capability groups the hand-written knowledge for one champion.
type Capability struct {
	KeyAbilities []KeyAbility
	Combos       []models.SkillCombo
	// EnemyTips are shown to a player laning against this champion.
	EnemyTips []models.MicroTip
}

var capabilityTable = map[string]Capability{
	"zed": {
		KeyAbilities: []KeyAbility{
			{Slot: "W", Name: "Living Shadow", Cooldown: 20, IsEscape: true, IsEngageKey: true, Description: "shadow dash/swap"},
			{Slot: "R", Name: "Death Mark", Cooldown: 80, IsEngageKey: true, Description: "assassination ultimate"},
		},
		Combos: []models.SkillCombo{
			{Name: "Basic Combo", Sequence: "W → E → Q", Description: "Shadow placement is key", Timing: "From range", Difficulty: models.DifficultyMedium, Damage: models.DamageHigh},
		},
		EnemyTips: []models.MicroTip{
			{Tip: "Track his W shadow position - it lasts 5 seconds", Category: models.TipPositioning},
			{Tip: "Stand behind minions to avoid double Q damage", Category: models.TipPositioning},
		},
	},
	"yasuo": {
		KeyAbilities: []KeyAbility{
			{Slot: "E", Name: "Sweeping Blade", Cooldown: 0.5, IsEscape: true, Description: "dash through units"},
			{Slot: "W", Name: "Wind Wall", Cooldown: 26, Description: "projectile block"},
			{Slot: "R", Name: "Last Breath", Cooldown: 70, IsEngageKey: true, Description: "airborne follow-up"},
		},
		Combos: []models.SkillCombo{
			{Name: "Beyblade", Sequence: "E → Q3 → R", Description: "EQ during dash for instant knockup", Timing: "When Q3 stacked", Difficulty: models.DifficultyHard, Damage: models.DamageLethal},
			{Name: "Basic Trade", Sequence: "E → Q → Auto → E out", Description: "Use minions for mobility", Timing: "When enemy uses ability", Difficulty: models.DifficultyMedium, Damage: models.DamageMedium},
		},
		EnemyTips: []models.MicroTip{
			{Tip: "His Wind Wall has 26s cooldown - bait it then engage", Category: models.TipTrading},
			{Tip: "Fight when he has no minions to dash through", Category: models.TipTrading},
		},
	},
	"fizz": {
		KeyAbilities: []KeyAbility{
			{Slot: "E", Name: "Playful/Trickster", Cooldown: 16, IsEscape: true, IsEngageKey: true, Description: "invulnerable hop"},
			{Slot: "R", Name: "Chum the Waters", Cooldown: 75, IsEngageKey: true, Description: "shark engage"},
		},
		Combos: []models.SkillCombo{
			{Name: "Full Burst", Sequence: "R → Q → Auto → W → E", Description: "Wait for shark knockup", Timing: "When ult lands", Difficulty: models.DifficultyMedium, Damage: models.DamageLethal},
			{Name: "Quick Trade", Sequence: "Q → Auto → W → E out", Description: "E for escape", Timing: "When enemy on cooldown", Difficulty: models.DifficultyEasy, Damage: models.DamageHigh},
		},
		EnemyTips: []models.MicroTip{
			{Tip: "Punish him hard levels 1-2, he is weak early", Timing: "Levels 1-2", Category: models.TipTrading},
			{Tip: "Flash or dash sideways when he Rs", Category: models.TipPositioning},
		},
	},
	"ahri": {
		KeyAbilities: []KeyAbility{
			{Slot: "E", Name: "Charm", Cooldown: 12, IsEngageKey: true, Description: "CC skillshot"},
			{Slot: "R", Name: "Spirit Rush", Cooldown: 80, IsEscape: true, IsEngageKey: true, Description: "3-dash ultimate"},
		},
		Combos: []models.SkillCombo{
			{Name: "Charm Combo", Sequence: "E → Q → W → R → Auto → R", Description: "Land charm first for guaranteed Q", Timing: "When charm available", Difficulty: models.DifficultyMedium, Damage: models.DamageLethal},
			{Name: "Safe Poke", Sequence: "Q through minions → Auto", Description: "Q return deals true damage", Timing: "When enemy CSing", Difficulty: models.DifficultyEasy, Damage: models.DamageMedium},
		},
	},
	"katarina": {
		KeyAbilities: []KeyAbility{
			{Slot: "E", Name: "Shunpo", Cooldown: 14, IsEscape: true, IsEngageKey: true, Description: "blink to target/dagger"},
			{Slot: "R", Name: "Death Lotus", Cooldown: 60, IsEngageKey: true, Description: "spinning blades"},
		},
		Combos: []models.SkillCombo{
			{Name: "Full Combo", Sequence: "Q → E to dagger → W → E to W dagger → R", Description: "Maximize dagger pickups", Timing: "When enemy isolated", Difficulty: models.DifficultyHard, Damage: models.DamageLethal},
		},
		EnemyTips: []models.MicroTip{
			{Tip: "Stand away from her daggers on the ground", Category: models.TipPositioning},
			{Tip: "Save CC to interrupt her ultimate", Category: models.TipTrading},
		},
	},
	"lux": {
		KeyAbilities: []KeyAbility{
			{Slot: "Q", Name: "Light Binding", Cooldown: 11, IsEngageKey: true, Description: "root skillshot"},
			{Slot: "E", Name: "Lucent Singularity", Cooldown: 10, Description: "slow zone"},
			{Slot: "R", Name: "Final Spark", Cooldown: 50, IsEngageKey: true, Description: "laser ultimate"},
		},
	},
	"syndra": {
		KeyAbilities: []KeyAbility{
			{Slot: "E", Name: "Scatter the Weak", Cooldown: 16, IsEngageKey: true, Description: "knockback/stun"},
			{Slot: "R", Name: "Unleashed Power", Cooldown: 80, IsEngageKey: true, Description: "sphere burst"},
		},
	},
	"orianna": {
		KeyAbilities: []KeyAbility{
			{Slot: "R", Name: "Command: Shockwave", Cooldown: 80, IsEngageKey: true, Description: "ball pull ultimate"},
		},
	},
	"talon": {
		KeyAbilities: []KeyAbility{
			{Slot: "E", Name: "Assassin's Path", Cooldown: 2, IsEscape: true, Description: "wall jump"},
			{Slot: "R", Name: "Shadow Assault", Cooldown: 75, IsEscape: true, IsEngageKey: true, Description: "stealth + blades"},
		},
	},
	"akali": {
		KeyAbilities: []KeyAbility{
			{Slot: "W", Name: "Twilight Shroud", Cooldown: 20, IsEscape: true, Description: "stealth zone"},
			{Slot: "E", Name: "Shuriken Flip", Cooldown: 16, IsEscape: true, IsEngageKey: true, Description: "dash + recast"},
			{Slot: "R", Name: "Perfect Execution", Cooldown: 80, IsEngageKey: true, Description: "two-part dash"},
		},
		EnemyTips: []models.MicroTip{
			{Tip: "Pink ward her shroud - it reveals her", Category: models.TipVision},
			{Tip: "Trade when shroud is down (20s CD)", Category: models.TipTrading},
		},
	},
	"diana": {
		KeyAbilities: []KeyAbility{
			{Slot: "E", Name: "Lunar Rush", Cooldown: 22, IsEngageKey: true, Description: "dash to target"},
			{Slot: "R", Name: "Moonfall", Cooldown: 75, IsEngageKey: true, Description: "pull + damage"},
		},
	},
	"ekko": {
		KeyAbilities: []KeyAbility{
			{Slot: "E", Name: "Phase Dive", Cooldown: 11, IsEscape: true, IsEngageKey: true, Description: "dash + blink"},
			{Slot: "R", Name: "Chronobreak", Cooldown: 80, IsEscape: true, Description: "rewind ultimate"},
		},
	},
	"leblanc": {
		KeyAbilities: []KeyAbility{
			{Slot: "W", Name: "Distortion", Cooldown: 14, IsEscape: true, IsEngageKey: true, Description: "dash + return"},
			{Slot: "E", Name: "Ethereal Chains", Cooldown: 14, IsEngageKey: true, Description: "root after delay"},
		},
		EnemyTips: []models.MicroTip{
			{Tip: "She returns to W pad - put damage there", Category: models.TipTrading},
			{Tip: "Silence or root stops her combo", Category: models.TipTrading},
		},
	},
	"veigar": {
		KeyAbilities: []KeyAbility{
			{Slot: "E", Name: "Event Horizon", Cooldown: 18, IsEngageKey: true, Description: "cage stun"},
			{Slot: "R", Name: "Primordial Burst", Cooldown: 80, IsEngageKey: true, Description: "execute ultimate"},
		},
	},
	"twisted_fate": {
		KeyAbilities: []KeyAbility{
			{Slot: "W", Name: "Pick a Card", Cooldown: 8, IsEngageKey: true, Description: "gold card stun"},
			{Slot: "R", Name: "Destiny", Cooldown: 120, IsEngageKey: true, Description: "global teleport"},
		},
	},
}

// LookupCapability returns the hand-written record for a champion, if any.
func LookupCapability(championID string) (Capability, bool) {
	c, ok := capabilityTable[championID]
	return c, ok
}

// roleFallbackCombos is the generic combo pattern for a role tag when a
// champion has no hand-written combos.
func roleFallbackCombos(tag models.RoleTag) []models.SkillCombo {
	switch tag {
	case models.RoleAssassin:
		return []models.SkillCombo{{
			Name: "Burst Combo", Sequence: "Gap closer → CC → Full rotation → Escape",
			Description: "Standard burst assassination combo", Timing: "When enemy is isolated",
			Difficulty: models.DifficultyMedium, Damage: models.DamageLethal,
		}}
	case models.RoleMage:
		return []models.SkillCombo{{
			Name: "Poke Pattern", Sequence: "Long range ability → Auto attack if safe",
			Description: "Safe poke to whittle enemy down", Timing: "When abilities are available",
			Difficulty: models.DifficultyEasy, Damage: models.DamageMedium,
		}}
	case models.RoleFighter:
		return []models.SkillCombo{{
			Name: "Extended Trade", Sequence: "Engage → Full rotation → Auto weave → Disengage",
			Description: "Win extended trades with ability weaving", Timing: "When enemy key ability is down",
			Difficulty: models.DifficultyMedium, Damage: models.DamageHigh,
		}}
	case models.RoleMarksman:
		return []models.SkillCombo{{
			Name: "Kite Pattern", Sequence: "Auto → Step back → Auto → Ability on approach",
			Description: "Keep max range and punish forward steps", Timing: "When enemy walks up to last-hit",
			Difficulty: models.DifficultyEasy, Damage: models.DamageMedium,
		}}
	case models.RoleTank:
		return []models.SkillCombo{{
			Name: "Engage Chain", Sequence: "Gap closer → Hard CC → Follow-up CC",
			Description: "Chain crowd control so carries can follow", Timing: "When your team is in range",
			Difficulty: models.DifficultyEasy, Damage: models.DamageLow,
		}}
	case models.RoleSupport:
		return []models.SkillCombo{{
			Name: "Peel Rotation", Sequence: "Shield or heal → CC on diver → Reposition",
			Description: "Protect your carry through the enemy engage", Timing: "When a diver commits",
			Difficulty: models.DifficultyEasy, Damage: models.DamageLow,
		}}
	}
	return nil
}
