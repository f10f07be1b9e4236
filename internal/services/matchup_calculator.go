package services

import "github.com/BaronguyenVinasu/riftcounter/internal/models"

// StoredMatchupRangeBlend is the share of the computed range advantage folded
// into a curated matchup's lane dominance.
const StoredMatchupRangeBlend = 0.3

// ComputeMatchupFactors derives the raw differentials of challenger against opponent.
func ComputeMatchupFactors(challenger, opponent *models.Champion) models.MatchupFactors {
	c, o := orZero(challenger), orZero(opponent)

	var rangeAdv float64
	switch {
	case c.IsRanged() && o.IsMelee():
		rangeAdv = 20
	case c.IsMelee() && o.IsRanged():
		rangeAdv = -15
	}

	burstVsSustain := (c.BurstScore*3 - o.SustainScore*2) - (o.BurstScore*3 - c.SustainScore*2)

	mismatch := c.Damage.Physical*(100-o.BaseStats.Armor)/100*10 +
		c.Damage.Magic*(100-o.BaseStats.MagicResist)/100*10

	return models.MatchupFactors{
		RangeAdvantage:     rangeAdv,
		MobilityDiff:       (c.MobilityScore - o.MobilityScore) * 5,
		CCComparison:       (c.CCScore - o.CCScore) * 4,
		BurstVsSustain:     burstVsSustain,
		WaveclearDiff:      (c.WaveclearScore - o.WaveclearScore) * 3,
		ScalingDiff:        (c.ScaleScore - o.ScaleScore) * 4,
		DamageTypeMismatch: mismatch,
	}
}

// ComputeMatchupMetrics scores challenger vs opponent in lane. A curated
// record from stored takes precedence over the computed heuristics.
func ComputeMatchupMetrics(challenger, opponent *models.Champion, lane models.Lane, stored MatchupLookup) models.MatchupMetrics {
	c, o := orZero(challenger), orZero(opponent)
	factors := ComputeMatchupFactors(c, o)

	if stored != nil && c.ID != "" && o.ID != "" {
		if record, ok := stored.GetStoredMatchup(c.ID, o.ID, lane); ok && record != nil {
			return MergeStoredMetrics(record.Metrics, factors)
		}
	}

	laneDominance := factors.RangeAdvantage +
		factors.MobilityDiff*0.5 +
		factors.CCComparison*0.5 +
		factors.BurstVsSustain*0.3

	killPotential := 50 + c.BurstScore*3 + c.CCScore*2 - o.MobilityScore*2 - o.SustainScore

	pokeAdvantage := factors.RangeAdvantage + 20*indicator(c.IsRanged()) - 20*indicator(o.IsRanged())

	roam := (c.MobilityScore-o.MobilityScore)*5 + c.RoamScore*3 - o.RoamScore*3

	objective := 50 + c.BurstScore*2 + c.SustainScore

	gank := 50 - c.MobilityScore*3 - c.CCScore*2 + 10*indicator(c.IsMelee())

	return models.MatchupMetrics{
		LaneDominance:     clampSigned(laneDominance),
		KillPotential:     clampUnit(killPotential),
		PokeAdvantage:     clampSigned(pokeAdvantage),
		WaveclearDiff:     clampSigned(factors.WaveclearDiff * 3),
		RoamAdvantage:     clampSigned(roam),
		ObjectiveControl:  clampUnit(objective),
		ScaleComparison:   clampSigned(factors.ScalingDiff * 3),
		GankVulnerability: clampUnit(gank),
	}
}

// MergeStoredMetrics applies the range nudge to a curated record and re-clamps
// every field so hand-authored values cannot escape their bounds.
func MergeStoredMetrics(stored models.MatchupMetrics, factors models.MatchupFactors) models.MatchupMetrics {
	return models.MatchupMetrics{
		LaneDominance:     clampSigned(stored.LaneDominance + factors.RangeAdvantage*StoredMatchupRangeBlend),
		KillPotential:     clampUnit(stored.KillPotential),
		PokeAdvantage:     clampSigned(stored.PokeAdvantage),
		WaveclearDiff:     clampSigned(stored.WaveclearDiff),
		RoamAdvantage:     clampSigned(stored.RoamAdvantage),
		ObjectiveControl:  clampUnit(stored.ObjectiveControl),
		ScaleComparison:   clampSigned(stored.ScaleComparison),
		GankVulnerability: clampUnit(stored.GankVulnerability),
	}
}
