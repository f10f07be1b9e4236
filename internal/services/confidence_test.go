package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BaronguyenVinasu/riftcounter/internal/models"
)

func TestCalculateBuildConfidence(t *testing.T) {
	assert.Equal(t, 100, CalculateBuildConfidence(1, 1, 1))
	assert.Equal(t, 0, CalculateBuildConfidence(0, 0, 0))
	assert.Equal(t, 50, CalculateBuildConfidence(0.5, 0.5, 0.5))
	assert.Equal(t, 100, CalculateBuildConfidence(1.5, 1.5, 1.5))
	assert.Equal(t, 71, CalculateBuildConfidence(0.5, 0.9, 0.8))
	assert.Equal(t, 0, CalculateBuildConfidence(-1, -1, -1))
	assert.Equal(t, 100, CalculateBuildConfidence(5, 5, 5))
}

func TestRecencyWeight(t *testing.T) {
	day := 24 * time.Hour
	tests := []struct {
		age  time.Duration
		want float64
	}{
		{0, 1.0},
		{3 * day, 1.0},
		{7*day - time.Minute, 1.0},
		{7 * day, 0.9},
		{10 * day, 0.9},
		{21 * day, 0.7},
		{45 * day, 0.5},
		{90 * day, 0.3},
		{-2 * day, 1.0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RecencyWeight(testNow.Add(-tt.age), testNow), "age %v", tt.age)
	}
}

func TestSourceAgreementAndAverageWeight(t *testing.T) {
	dc := testContext(models.UncertaintyLow)
	build := models.Build{Sources: []models.DataSource{{Name: "WildRiftFire"}, {Name: "WR-META"}, {Name: "Blog"}}}

	assert.InDelta(t, 2.0/3.0, SourceAgreement(build, dc), 1e-9)
	assert.Zero(t, SourceAgreement(build, models.DataContext{}))
	assert.InDelta(t, 0.8, AverageSourceWeight(build, dc), 1e-9)
	assert.InDelta(t, 0.5, AverageSourceWeight(models.Build{}, dc), 1e-9)
}

func TestBlendedBuildConfidence(t *testing.T) {
	dc := testContext(models.UncertaintyLow)

	fresh := models.Build{
		Sources:     []models.DataSource{{Name: "WildRiftFire"}, {Name: "WR-META"}},
		LastUpdated: testNow.Add(-3 * 24 * time.Hour),
	}
	// 40*(2/3) + 30*1.0 + 30*0.95
	assert.Equal(t, 85, BlendedBuildConfidence(fresh, dc))

	unsourced := models.Build{LastUpdated: testNow.Add(-90 * 24 * time.Hour)}
	// 40*0 + 30*0.3 + 30*0.5
	assert.Equal(t, 24, BlendedBuildConfidence(unsourced, dc))
}

func TestComputeOverallConfidence(t *testing.T) {
	tests := []struct {
		name        string
		counters    []int
		builds      []int
		uncertainty models.Uncertainty
		want        int
	}{
		{"nothing to blend", nil, nil, models.UncertaintyLow, 70},
		{"counters only", []int{80}, nil, models.UncertaintyLow, 75},
		{"counters and builds", []int{80}, []int{90}, models.UncertaintyLow, 83},
		{"medium penalty", []int{80}, []int{90}, models.UncertaintyMedium, 70},
		{"high penalty", []int{80}, []int{90}, models.UncertaintyHigh, 58},
		{"floor", []int{30}, []int{30}, models.UncertaintyHigh, 30},
		{"unset uncertainty", []int{80}, []int{90}, "", 83},
		{"averages each list", []int{60, 80}, []int{85, 95}, models.UncertaintyLow, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeOverallConfidence(tt.counters, tt.builds, tt.uncertainty))
		})
	}
}

func TestAggregateConfidence(t *testing.T) {
	assert.Zero(t, AggregateConfidence(nil))
	assert.Equal(t, 83, AggregateConfidence([]models.BuildRecommendation{
		{Confidence: 60, SourceConfidence: 85},
		{Confidence: 95, SourceConfidence: 80},
	}))
	assert.Equal(t, 40, AggregateConfidence([]models.BuildRecommendation{{Confidence: 90, SourceConfidence: 40}}))
}
