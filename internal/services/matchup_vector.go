package services

import "github.com/BaronguyenVinasu/riftcounter/internal/models"

// ComputeMatchupVector compares the user's champion against one enemy.
// Mirror matchups produce zero for every diff field.
func ComputeMatchupVector(player, enemy *models.Champion) models.MatchupVector {
	p, e := orZero(player), orZero(enemy)

	var rangeBonus float64
	switch {
	case p.IsRanged() && e.IsMelee():
		rangeBonus = 25
	case p.IsMelee() && e.IsRanged():
		rangeBonus = -20
	}

	burstDiff := p.BurstScore - e.BurstScore
	waveclearDiff := p.WaveclearScore - e.WaveclearScore
	sustainDiff := p.SustainScore - e.SustainScore

	rangedPoke := -10.0
	if p.IsRanged() {
		rangedPoke = 15
	}

	return models.MatchupVector{
		LaneDominance:  clampSigned(rangeBonus + burstDiff*5 + waveclearDiff*3 + sustainDiff*4),
		AllInPotential: clampUnit(50 + p.BurstScore*4 + p.CCScore*3 - e.MobilityScore*3 - e.SustainScore*2),
		PokeAdvantage:  clampSigned(rangeBonus*1.5 + rangedPoke + p.WaveclearScore*2 - e.SustainScore*3),
		MobilityDiff:   scaledDiff(p.MobilityScore, e.MobilityScore),
		CCDiff:         scaledDiff(p.CCScore, e.CCScore),
		SustainDiff:    scaledDiff(p.SustainScore, e.SustainScore),
		WaveclearDiff:  scaledDiff(p.WaveclearScore, e.WaveclearScore),
		ScalingDiff:    scaledDiff(p.ScaleScore, e.ScaleScore),
	}
}

func scaledDiff(a, b float64) float64 {
	return clampSigned((a - b) * 12)
}
