package services

import (
	"fmt"

	"github.com/BaronguyenVinasu/riftcounter/internal/models"
)

func analysisSources(dc models.DataContext) []models.DataSource {
	return []models.DataSource{{
		Name:        counterSourceName,
		Fetched:     dc.Clock(),
		Reliability: counterSourceReliability,
	}}
}

// GenerateLaneTactics builds early, mid and teamfight advice for challenger
// laning against opponent. Every phase carries at least one step.
func GenerateLaneTactics(challenger, opponent *models.Champion, m models.MatchupMetrics, dc models.DataContext) []models.Tactic {
	c, o := orZero(challenger), orZero(opponent)
	sources := analysisSources(dc)

	var early []models.TacticStep
	switch {
	case m.LaneDominance > 20:
		early = append(early,
			models.TacticStep{Action: "Trade aggressively at levels 1-2", Timing: "Levels 1-2"},
			models.TacticStep{Action: "Push for level 2 first to establish pressure"},
		)
	case m.LaneDominance < -20:
		early = append(early,
			models.TacticStep{Action: "Play safe and farm from range if possible", Timing: "Levels 1-3"},
			models.TacticStep{Action: "Avoid extended trades"},
		)
	}
	if m.PokeAdvantage > 20 {
		early = append(early, models.TacticStep{Action: "Use abilities to poke before engaging"})
	}
	if m.GankVulnerability > 60 {
		early = append(early, models.TacticStep{Action: "Ward river by 2:30 - high gank vulnerability", Timing: "2:30"})
	}
	earlyReasoning := "Enemy has early pressure - survive to scale"
	if m.LaneDominance > 0 {
		earlyReasoning = "You have lane advantage - press it early"
	}
	if len(early) == 0 {
		early = []models.TacticStep{
			{Action: "Trade when abilities are available"},
			{Action: "Match enemy push to stay even on waves"},
		}
		earlyReasoning = "Even matchup - farm well and trade efficiently"
	}

	var mid []models.TacticStep
	if m.RoamAdvantage > 20 {
		mid = append(mid, models.TacticStep{Action: "Look for roam opportunities after pushing wave", Timing: "After first item"})
	}
	if m.ObjectiveControl > 60 {
		mid = append(mid, models.TacticStep{Action: "Contest dragon/herald when your jungler is nearby"})
	}
	switch {
	case m.ScaleComparison > 30:
		mid = append(mid, models.TacticStep{Action: "Focus on farming - you outscale"})
	case m.ScaleComparison < -30:
		mid = append(mid, models.TacticStep{Action: "Force plays before enemy scales"})
	}
	if len(mid) == 0 {
		mid = []models.TacticStep{
			{Action: "Rotate with your jungler for objectives"},
			{Action: "Keep side waves pushed before grouping"},
		}
	}

	var fight []models.TacticStep
	if c.CCScore > 6 {
		fight = append(fight, models.TacticStep{Action: "Look for key CC on priority targets"})
	}
	if c.BurstScore > 7 {
		fight = append(fight, models.TacticStep{Action: "Flank or wait for enemy to use key abilities before engaging"})
	}
	if o.BurstScore > 7 {
		fight = append(fight, models.TacticStep{Action: fmt.Sprintf("Watch for %s's burst combo - don't get caught", o.Label())})
	}
	if len(fight) == 0 {
		fight = []models.TacticStep{{Action: "Group with team and play around key cooldowns"}}
	}

	return []models.Tactic{
		{
			ID:        "early-lane",
			Title:     "Early Lane (Levels 1-5)",
			Phase:     models.PhaseEarly,
			Steps:     early,
			Reasoning: earlyReasoning,
			Priority:  5,
			Sources:   sources,
		},
		{
			ID:        "mid-game",
			Title:     "Mid Game (Levels 6-10)",
			Phase:     models.PhaseMid,
			Steps:     mid,
			Reasoning: "Transition strategy based on power curves",
			Priority:  4,
			Sources:   sources,
		},
		{
			ID:        "teamfight",
			Title:     "Teamfighting",
			Phase:     models.PhaseTeamfight,
			Steps:     fight,
			Reasoning: "Maximize your champion's strengths in fights",
			Priority:  3,
			Sources:   sources,
		},
	}
}

// GenerateStagedTactics turns a matchup vector into early, mid and late
// advice for the player's own champion.
func GenerateStagedTactics(player, enemy *models.Champion, v models.MatchupVector, dc models.DataContext) []models.Tactic {
	p := orZero(player)
	sources := analysisSources(dc)

	var early []models.TacticStep
	var earlyReasoning string
	switch {
	case v.LaneDominance > 20:
		early = []models.TacticStep{
			{Action: "Trade aggressively at level 1-2", Timing: "First wave"},
			{Action: "Push for level 2 advantage", Timing: "Second wave"},
		}
		earlyReasoning = "You have lane dominance - press early advantage."
	case v.LaneDominance < -20:
		early = []models.TacticStep{
			{Action: "Focus on safe farming", Timing: "Levels 1-3"},
			{Action: "Stay near tower if pushed", Timing: "Early game"},
		}
		earlyReasoning = "Enemy has early pressure - survive and scale."
	default:
		early = []models.TacticStep{
			{Action: "Trade when abilities available"},
			{Action: "Match enemy push"},
		}
		earlyReasoning = "Even matchup - farm well and trade efficiently."
	}

	var mid []models.TacticStep
	var midReasoning string
	switch {
	case v.ScalingDiff < -20:
		mid = []models.TacticStep{
			{Action: "Force fights - you need to end early", Timing: "After first item"},
			{Action: "Roam to snowball leads"},
		}
		midReasoning = "Enemy outscales - force early objectives."
	case v.ScalingDiff > 20:
		mid = []models.TacticStep{
			{Action: "Farm safely, avoid risky plays"},
			{Action: "Group for objectives when ready", Timing: "After second item"},
		}
		midReasoning = "You outscale - focus on consistent farming."
	default:
		mid = []models.TacticStep{
			{Action: "Look for roam opportunities"},
			{Action: "Contest objectives with team"},
		}
		midReasoning = "Similar scaling - gain advantages through macro."
	}

	var late []models.TacticStep
	var lateReasoning string
	switch {
	case p.HasTag(models.RoleAssassin):
		late = []models.TacticStep{
			{Action: "Look for picks on isolated enemies"},
			{Action: "Flank in teamfights"},
		}
		lateReasoning = "As assassin, eliminate priority targets."
	case p.HasTag(models.RoleMage):
		late = []models.TacticStep{
			{Action: "Stay in backline, deal consistent damage"},
			{Action: "Use abilities to zone from objectives"},
		}
		lateReasoning = "As mage, maximize damage while staying safe."
	default:
		late = []models.TacticStep{
			{Action: "Group with team for objectives"},
			{Action: "Play around key cooldowns"},
		}
		lateReasoning = "Focus on your teamfight role."
	}

	return []models.Tactic{
		{
			ID: "early-game", Title: "Early Game (Levels 1-5)",
			Phase: models.PhaseEarly, Stage: models.PhaseEarly,
			Steps: early, Reasoning: earlyReasoning,
			Priority: 5, Confidence: 75, Sources: sources,
		},
		{
			ID: "mid-game", Title: "Mid Game (Levels 6-10)",
			Phase: models.PhaseMid, Stage: models.PhaseMid,
			Steps: mid, Reasoning: midReasoning,
			Priority: 4, Confidence: 72, Sources: sources,
		},
		{
			ID: "late-game", Title: "Late Game (Levels 11+)",
			Phase: models.PhaseTeamfight, Stage: models.PhaseLate,
			Steps: late, Reasoning: lateReasoning,
			Priority: 3, Confidence: 68, Sources: sources,
		},
	}
}
