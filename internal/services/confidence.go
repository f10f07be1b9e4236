package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BaronguyenVinasu/riftcounter/internal/models"
)

const (
	baseOverallConfidence = 70
	minOverallConfidence  = 30
	maxOverallConfidence  = 95
)

var (
	agreementWeight = decimal.NewFromInt(40)
	recencyWeight   = decimal.NewFromInt(30)
	avgWeightWeight = decimal.NewFromInt(30)
)

// CalculateBuildConfidence blends source agreement, recency and average source
// weight (each nominally 0-1) into a 0-100 score.
func CalculateBuildConfidence(sourceAgreement, recency, avgWeight float64) int {
	score := agreementWeight.Mul(decimal.NewFromFloat(finite(sourceAgreement))).
		Add(recencyWeight.Mul(decimal.NewFromFloat(finite(recency)))).
		Add(avgWeightWeight.Mul(decimal.NewFromFloat(finite(avgWeight))))
	return clampDecimal(roundHalfUpDecimal(score), 0, 100)
}

// RecencyWeight decays with the age of lastUpdated relative to now.
func RecencyWeight(lastUpdated, now time.Time) float64 {
	days := now.Sub(lastUpdated).Hours() / 24
	switch {
	case days < 7:
		return 1.0
	case days < 14:
		return 0.9
	case days < 30:
		return 0.7
	case days < 60:
		return 0.5
	default:
		return 0.3
	}
}

// SourceAgreement is the fraction of known sources that back the build.
func SourceAgreement(build models.Build, dc models.DataContext) float64 {
	if len(dc.SourceWeights) == 0 {
		return 0
	}
	seen := make(map[string]bool)
	for _, s := range build.Sources {
		if _, known := dc.SourceWeights[s.Name]; known {
			seen[s.Name] = true
		}
	}
	return float64(len(seen)) / float64(len(dc.SourceWeights))
}

// AverageSourceWeight is the mean configured weight of the build's sources.
func AverageSourceWeight(build models.Build, dc models.DataContext) float64 {
	if len(build.Sources) == 0 {
		return defaultSourceWeight
	}
	total := decimal.Zero
	for _, s := range build.Sources {
		total = total.Add(decimal.NewFromFloat(dc.SourceWeight(s.Name, defaultSourceWeight)))
	}
	avg, _ := total.Div(decimal.NewFromInt(int64(len(build.Sources)))).Float64()
	return avg
}

// BlendedBuildConfidence scores how well a curated build is sourced.
func BlendedBuildConfidence(build models.Build, dc models.DataContext) int {
	return CalculateBuildConfidence(
		SourceAgreement(build, dc),
		RecencyWeight(build.LastUpdated, dc.Clock()),
		AverageSourceWeight(build, dc),
	)
}

// ComputeOverallConfidence folds counter and build confidences into the
// response-level score, penalised by data uncertainty.
func ComputeOverallConfidence(counterConfidences, buildConfidences []int, uncertainty models.Uncertainty) int {
	confidence := decimal.NewFromInt(baseOverallConfidence)
	two := decimal.NewFromInt(2)

	if len(counterConfidences) > 0 {
		confidence = confidence.Add(meanInts(counterConfidences)).Div(two)
	}
	if len(buildConfidences) > 0 {
		confidence = confidence.Add(meanInts(buildConfidences)).Div(two)
	}

	penalty := uncertainty.Penalty()
	if penalty == 0 {
		penalty = 1
	}
	confidence = confidence.Mul(decimal.NewFromFloat(penalty))

	return clampDecimal(roundHalfUpDecimal(confidence), minOverallConfidence, maxOverallConfidence)
}

func meanInts(values []int) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromInt(int64(v)))
	}
	return sum.Div(decimal.NewFromInt(int64(len(values))))
}

// roundHalfUpDecimal rounds .5 toward positive infinity.
func roundHalfUpDecimal(d decimal.Decimal) decimal.Decimal {
	return d.Add(decimal.NewFromFloat(0.5)).Floor()
}

func clampDecimal(d decimal.Decimal, lo, hi int64) int {
	if d.LessThan(decimal.NewFromInt(lo)) {
		return int(lo)
	}
	if d.GreaterThan(decimal.NewFromInt(hi)) {
		return int(hi)
	}
	return int(d.IntPart())
}

func finite(v float64) float64 {
	return clamp(v, -1e6, 1e6)
}

// AggregateConfidence is the rounded mean of the variants' source
// confidences, 0 when empty.
func AggregateConfidence(builds []models.BuildRecommendation) int {
	if len(builds) == 0 {
		return 0
	}
	confs := make([]int, len(builds))
	for i, b := range builds {
		confs[i] = b.SourceConfidence
	}
	return clampDecimal(roundHalfUpDecimal(meanInts(confs)), 0, 100)
}
