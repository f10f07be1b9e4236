package services

import (
	"math"

	"github.com/BaronguyenVinasu/riftcounter/internal/models"
)

// clamp bounds v to [lo, hi]. NaN reads as zero before bounding.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		v = 0
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampSigned(v float64) float64 { return clamp(v, -100, 100) }

func clampUnit(v float64) float64 { return clamp(v, 0, 100) }

// roundHalfUp matches how scores are rounded for display: .5 goes toward +Inf.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func clampInt(v float64, lo, hi int) int {
	return int(clamp(roundHalfUp(v), float64(lo), float64(hi)))
}

var zeroChampion = &models.Champion{}

// orZero lets calculators treat a missing champion as all-zero attributes.
func orZero(c *models.Champion) *models.Champion {
	if c == nil {
		return zeroChampion
	}
	return c
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
