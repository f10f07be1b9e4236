package services

import (
	"fmt"
	"math"

	"github.com/BaronguyenVinasu/riftcounter/internal/models"
)

var universalConditionals = []models.ConditionalTactic{
	{Condition: "Enemy jungler not visible for 30+ seconds", Action: "Ward river/tri-bush, hug tower side of lane", Priority: models.PriorityMust, Phase: models.PhaseEarly, Icon: models.IconWarning},
	{Condition: "Your jungler pings for gank", Action: "Slow push wave, bait enemy forward, save CC for gank", Priority: models.PriorityShould, Phase: models.PhaseEarly, Icon: models.IconTip},
	{Condition: "Enemy mid is missing", Action: "Ping immediately, shove wave, follow or take plates", Priority: models.PriorityMust, Phase: models.PhaseMid, Icon: models.IconWarning},
	{Condition: "Dragon spawns in 30 seconds", Action: "Shove wave, recall if needed, rotate early", Priority: models.PriorityShould, Phase: models.PhaseMid, Icon: models.IconInfo},
	{Condition: "Herald is up and jungler is topside", Action: "Push wave, rotate for Herald if lane is winning", Priority: models.PriorityConsider, Phase: models.PhaseMid, Icon: models.IconTip},
	{Condition: "Baron spawns soon and team is ahead", Action: "Group with team, maintain vision control", Priority: models.PriorityMust, Phase: models.PhaseLate, Icon: models.IconWarning},
	{Condition: "Wave is pushing towards you", Action: "Let it crash into tower, freeze if safe", Priority: models.PriorityShould, Phase: models.PhaseAll, Icon: models.IconTip},
	{Condition: "You have item advantage after recall", Action: "Look for aggressive trade when returning to lane", Priority: models.PriorityShould, Phase: models.PhaseEarly, Icon: models.IconTip},
	{Condition: "You are behind 0/2 or more", Action: "Focus on safe CS, avoid fights, wait for team", Priority: models.PriorityMust, Phase: models.PhaseAll, Icon: models.IconWarning},
}

// GenerateTacticalBreakdown assembles the detailed play-as advice for player
// laning into enemy.
func GenerateTacticalBreakdown(player, enemy *models.Champion, v models.MatchupVector) models.TacticalBreakdown {
	p, e := orZero(player), orZero(enemy)
	return models.TacticalBreakdown{
		AbilityWindows: GenerateAbilityWindows(p, e),
		Conditionals:   GenerateConditionals(p, e, v),
		MicroTips:      GenerateMicroTips(e, v),
		LaneStrategy:   GenerateLaneStrategy(p, e, v),
		WinConditions:  GenerateWinConditions(e, v),
	}
}

// GenerateAbilityWindows lists the cooldown windows that open trades.
func GenerateAbilityWindows(player, enemy *models.Champion) []models.AbilityWindow {
	p, e := orZero(player), orZero(enemy)
	windows := make([]models.AbilityWindow, 0)

	if enemyCap, ok := LookupCapability(e.ID); ok {
		for _, ab := range enemyCap.KeyAbilities {
			if ab.IsEscape && ab.Cooldown >= 10 {
				action := "Trade aggressively - escape on cooldown"
				if ab.IsEngageKey {
					action = "All-in immediately - no escape available"
				}
				windows = append(windows, models.AbilityWindow{
					Trigger: fmt.Sprintf("%s uses %s (%s) aggressively", e.Label(), ab.Name, ab.Slot),
					Window:  fmt.Sprintf("%d-%gs trade window", int(math.Floor(ab.Cooldown*0.7)), ab.Cooldown),
					Action:  action,
					Risk:    models.RiskLow,
					Phase:   models.PhaseAll,
				})
			}
			if ab.IsEngageKey && !ab.IsEscape && ab.Cooldown >= 8 {
				windows = append(windows, models.AbilityWindow{
					Trigger: fmt.Sprintf("%s misses or wastes %s (%s)", e.Label(), ab.Name, ab.Slot),
					Window:  fmt.Sprintf("%d-%gs", int(math.Floor(ab.Cooldown*0.6)), ab.Cooldown),
					Action:  "Step forward for trades - key ability unavailable",
					Risk:    models.RiskMedium,
					Phase:   models.PhaseAll,
				})
			}
			if ab.Slot == "R" {
				windows = append(windows, models.AbilityWindow{
					Trigger: fmt.Sprintf("%s just used ultimate", e.Label()),
					Window:  fmt.Sprintf("%gs until available again", ab.Cooldown),
					Action:  "Play more aggressive - ultimate on cooldown",
					Risk:    models.RiskMedium,
					Phase:   models.PhaseMid,
				})
			}
		}
	}

	if playerCap, ok := LookupCapability(p.ID); ok {
		for _, ab := range playerCap.KeyAbilities {
			if ab.IsEngageKey && ab.Slot == "R" {
				windows = append(windows, models.AbilityWindow{
					Trigger: fmt.Sprintf("Your %s is available", ab.Name),
					Window:  "Look for engage opportunity",
					Action:  fmt.Sprintf("Use %s when enemy key abilities are down", ab.Name),
					Risk:    models.RiskMedium,
					Phase:   models.PhaseMid,
				})
			}
		}
	}
	return windows
}

// GenerateConditionals returns the universal if-then rules followed by the
// rules specific to this matchup.
func GenerateConditionals(player, enemy *models.Champion, v models.MatchupVector) []models.ConditionalTactic {
	p, e := orZero(player), orZero(enemy)
	out := append([]models.ConditionalTactic(nil), universalConditionals...)

	switch {
	case v.LaneDominance < -20:
		out = append(out, models.ConditionalTactic{
			Condition: "Enemy is zoning you from CS", Action: "Give up some CS, stay in XP range, wait for jungler",
			Priority: models.PriorityShould, Phase: models.PhaseEarly, Icon: models.IconTip,
		})
	case v.LaneDominance > 20:
		out = append(out, models.ConditionalTactic{
			Condition: "You hit level 2 first", Action: "Look for immediate trade - level advantage is huge",
			Priority: models.PriorityShould, Phase: models.PhaseEarly, Icon: models.IconTip,
		})
	}
	if e.HasTag(models.RoleAssassin) {
		out = append(out, models.ConditionalTactic{
			Condition: "Enemy assassin hits 6 before you", Action: "Play far back, respect kill threat, ping for assistance",
			Priority: models.PriorityMust, Phase: models.PhaseEarly, Icon: models.IconWarning,
		})
	}
	switch {
	case v.ScalingDiff > 25:
		out = append(out, models.ConditionalTactic{
			Condition: "Game reaches 15+ minutes", Action: "You outscale - look for teamfights, avoid 1v1s",
			Priority: models.PriorityShould, Phase: models.PhaseLate, Icon: models.IconInfo,
		})
	case v.ScalingDiff < -25:
		out = append(out, models.ConditionalTactic{
			Condition: "Game reaches 15+ minutes", Action: "Enemy outscales - force objectives, end early",
			Priority: models.PriorityMust, Phase: models.PhaseLate, Icon: models.IconWarning,
		})
	}
	if p.RoamScore >= 7 {
		out = append(out, models.ConditionalTactic{
			Condition: "Wave is pushed and enemy is low", Action: "Roam to help jungler or side lanes",
			Priority: models.PriorityConsider, Phase: models.PhaseMid, Icon: models.IconTip,
		})
	}
	return out
}

// GenerateMicroTips returns short mechanical tips for the lane.
func GenerateMicroTips(enemy *models.Champion, v models.MatchupVector) []models.MicroTip {
	e := orZero(enemy)
	var tips []models.MicroTip

	if v.PokeAdvantage > 15 {
		tips = append(tips, models.MicroTip{Tip: fmt.Sprintf("Poke %s when they go for CS", e.Label()), Timing: "When enemy last-hits", Category: models.TipTrading})
	}
	if e.BurstScore >= 8 {
		tips = append(tips, models.MicroTip{Tip: fmt.Sprintf("Don't stand still - %s has high burst", e.Label()), Category: models.TipPositioning})
	}
	if v.WaveclearDiff < -20 {
		tips = append(tips, models.MicroTip{Tip: "Save abilities for wave management, not poke", Category: models.TipFarming})
	}
	tips = append(tips, models.MicroTip{Tip: "Ward pixel brush at 2:30 - standard jungle timing", Timing: "2:30 game time", Category: models.TipVision})
	if e.RoamScore >= 7 {
		tips = append(tips, models.MicroTip{Tip: fmt.Sprintf("%s roams well - keep river warded", e.Label()), Category: models.TipVision})
	}
	if enemyCap, ok := LookupCapability(e.ID); ok {
		tips = append(tips, enemyCap.EnemyTips...)
	}
	return tips
}

// GenerateLaneStrategy gives three short plans, one per game stage.
func GenerateLaneStrategy(player, enemy *models.Champion, v models.MatchupVector) models.LaneStrategy {
	p, e := orZero(player), orZero(enemy)
	var s models.LaneStrategy

	switch {
	case v.LaneDominance > 20:
		s.Early = []string{
			"Trade aggressively at levels 1-2",
			"Push for level 2 first - 7th minion kills",
			fmt.Sprintf("Zone %s from CS when possible", e.Label()),
		}
	case v.LaneDominance < -20:
		s.Early = []string{
			"Focus on safe CS under tower",
			"Give up minions rather than HP",
			"Wait for jungle help or level 6 power spike",
		}
	default:
		s.Early = []string{
			"Trade when enemy uses abilities on wave",
			"Match enemy push to prevent roams",
			"Look for favorable trades when abilities are up",
		}
	}
	s.Early = append(s.Early, "Ward river at 2:30 for first gank timing")

	switch {
	case v.ScalingDiff < -15:
		s.Mid = []string{"Force fights - you need to snowball", "Roam aggressively after shoving wave", "Contest every dragon and herald"}
	case v.ScalingDiff > 15:
		s.Mid = []string{"Farm safely - you outscale", "Group only for guaranteed objectives", "Avoid risky solo plays"}
	default:
		s.Mid = []string{"Look for roams when lane is pushed", "Contest objectives with team", "Build according to game state"}
	}

	switch {
	case p.HasTag(models.RoleAssassin):
		s.Late = []string{"Flank in teamfights for backline access", "Pick off isolated enemies before objectives", "Wait for key enemy cooldowns before engaging"}
	case p.HasTag(models.RoleMage):
		s.Late = []string{"Stay with team - you are high priority target", "Use abilities to zone enemies from objectives", "Position behind frontline in fights"}
	default:
		s.Late = []string{"Group with team for objectives", "Play around your win condition"}
	}
	return s
}

// GenerateWinConditions states what wins and what loses this matchup.
func GenerateWinConditions(enemy *models.Champion, v models.MatchupVector) models.WinConditions {
	name := orZero(enemy).Label()
	switch {
	case v.ScalingDiff > 20:
		return models.WinConditions{
			Win:   fmt.Sprintf("Scale to late game - you outscale %s. Farm safely, avoid unnecessary fights, and group for objectives after 2-3 items.", name),
			Avoid: "Feeding early kills, taking risky 1v1s, or letting enemy snowball other lanes.",
		}
	case v.ScalingDiff < -20:
		return models.WinConditions{
			Win:   fmt.Sprintf("Snowball early - %s outscales you. Get kills in lane, roam aggressively, and force early objectives.", name),
			Avoid: "Passive farming, letting game go late, or taking even trades.",
		}
	case v.LaneDominance > 25:
		return models.WinConditions{
			Win:   fmt.Sprintf("Dominate lane and spread your lead. Punish %s early, deny CS, and roam with priority.", name),
			Avoid: "Overextending without vision, or letting enemy farm back into the game.",
		}
	case v.LaneDominance < -25:
		return models.WinConditions{
			Win:   "Survive laning phase without falling too far behind. Call for jungle help, farm safely, and look for outplay opportunities.",
			Avoid: fmt.Sprintf("Taking fights without a clear advantage, or standing in %s's kill range.", name),
		}
	default:
		return models.WinConditions{
			Win:   "Win through superior mechanics and macro. Trade efficiently, roam at good timings, and play around your power spikes.",
			Avoid: "Coinflip fights, wasting summoner spells, or ignoring map plays.",
		}
	}
}
