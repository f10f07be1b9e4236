package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/BaronguyenVinasu/riftcounter/internal/models"
)

const (
	defaultSourceWeight    = 0.5
	maxBuildVariants       = 3
	situationalBonus       = 5
	minBuildConfidence     = 30
	maxBuildConfidence     = 95
	relevantSwapBonus      = 2
	counterThreatThreshold = 2
)

// BuildStore is what the aggregator reads.
type BuildStore interface {
	BuildSource
	ItemSource
}

// BuildAggregator turns curated builds into threat-aware recommendations.
type BuildAggregator struct {
	store  BuildStore
	logger *logrus.Logger
}

func NewBuildAggregator(store BuildStore, logger *logrus.Logger) *BuildAggregator {
	return &BuildAggregator{store: store, logger: logger}
}

// DetectThreats scans an enemy team for composition threats. An empty roster
// has no threats.
func DetectThreats(enemies []*models.Champion) []models.ThreatTag {
	roster := make([]*models.Champion, 0, len(enemies))
	for _, e := range enemies {
		if e != nil {
			roster = append(roster, e)
		}
	}
	if len(roster) == 0 {
		return []models.ThreatTag{}
	}

	var physical, magic float64
	var sustain, cc, mobile, tanks, burst, pokeMages, crit int
	for _, e := range roster {
		physical += e.Damage.Physical
		magic += e.Damage.Magic
		if e.SustainScore > 6 {
			sustain++
		}
		if e.CCScore > 6 {
			cc++
		}
		if e.MobilityScore > 7 {
			mobile++
		}
		if e.HasTag(models.RoleTank) {
			tanks++
		}
		if e.BurstScore > 7 {
			burst++
		}
		if e.IsRanged() && e.HasTag(models.RoleMage) {
			pokeMages++
		}
		if e.HasTag(models.RoleMarksman) {
			crit++
		}
	}
	n := float64(len(roster))

	threats := make([]models.ThreatTag, 0)
	for _, tag := range models.AllThreatTags {
		var present bool
		switch tag {
		case models.ThreatHeavyAD:
			present = physical/n > 0.7
		case models.ThreatHeavyAP:
			present = magic/n > 0.6
		case models.ThreatHeavyHeal:
			present = sustain >= 2
		case models.ThreatHeavyCC:
			present = cc >= 3
		case models.ThreatMobileThreat:
			present = mobile >= 2
		case models.ThreatTankHeavy:
			present = tanks >= 2
		case models.ThreatBurstThreat:
			present = burst >= 2
		case models.ThreatPokeHeavy:
			present = pokeMages >= 2
		case models.ThreatHeavyCrit:
			present = crit >= 2
		}
		if present {
			threats = append(threats, tag)
		}
	}
	return threats
}

func hasThreat(threats []models.ThreatTag, tag models.ThreatTag) bool {
	for _, t := range threats {
		if t == tag {
			return true
		}
	}
	return false
}

// ApplySituationalSwaps replaces items in place of their originals for every
// swap whose trigger is among threats. Missing originals are left alone.
func ApplySituationalSwaps(items []string, swaps []models.SituationalSwap, threats []models.ThreatTag) ([]string, []models.SituationalSwap) {
	result := append([]string(nil), items...)
	applied := make([]models.SituationalSwap, 0)
	for _, swap := range swaps {
		if !hasThreat(threats, swap.Trigger) {
			continue
		}
		for i, item := range result {
			if item == swap.OriginalItem {
				result[i] = swap.SwapItem
				applied = append(applied, swap)
				break
			}
		}
	}
	return result, applied
}

// DetermineBoots picks defensive boots for the strongest matching threat.
func DetermineBoots(threats []models.ThreatTag, defaultBoots string) string {
	switch {
	case hasThreat(threats, models.ThreatHeavyCC):
		return "mercury-treads"
	case hasThreat(threats, models.ThreatHeavyAD):
		return "plated-steelcaps"
	case hasThreat(threats, models.ThreatMobileThreat):
		return "boots-of-swiftness"
	default:
		return defaultBoots
	}
}

// ComputeBuildConfidence scores one build against the detected threats.
func ComputeBuildConfidence(build models.Build, threats []models.ThreatTag, dc models.DataContext) int {
	confidence := decimal.NewFromFloat(finite(build.Confidence))

	for _, swap := range build.SituationalSwaps {
		if hasThreat(threats, swap.Trigger) {
			confidence = confidence.Add(decimal.NewFromInt(relevantSwapBonus))
		}
	}

	meta := decimal.NewFromFloat(0.7).Add(decimal.NewFromFloat(0.3).Mul(decimal.NewFromFloat(clamp(build.MetaWeight, 0, 1))))
	confidence = confidence.Mul(meta)

	if len(build.Sources) > 0 {
		boost := decimal.Zero
		for _, s := range build.Sources {
			boost = boost.Add(decimal.NewFromFloat(dc.SourceWeight(s.Name, defaultSourceWeight)).Mul(decimal.NewFromInt(5)))
		}
		confidence = confidence.Add(boost.Div(decimal.NewFromInt(int64(len(build.Sources)))))
	}

	return clampDecimal(roundHalfUpDecimal(confidence), minBuildConfidence, maxBuildConfidence)
}

// GenerateBuildRecommendations returns up to three build variants for a
// champion facing enemies, best first.
func (a *BuildAggregator) GenerateBuildRecommendations(championID string, enemies []*models.Champion, lane models.Lane, dc models.DataContext, includeOffMeta bool) []models.BuildRecommendation {
	builds := make([]models.Build, 0)
	for _, b := range a.store.GetBuildsForChampion(championID) {
		if b.Type == models.BuildTypeOffMeta && !includeOffMeta {
			continue
		}
		builds = append(builds, b)
	}
	if len(builds) == 0 {
		a.logger.WithFields(logrus.Fields{
			"champion": championID,
			"lane":     lane,
		}).Debug("No curated builds for champion")
		return []models.BuildRecommendation{}
	}
	sort.SliceStable(builds, func(i, j int) bool {
		return builds[i].Confidence > builds[j].Confidence
	})

	threats := DetectThreats(enemies)

	base := builds[0]
	for _, b := range builds {
		if b.Type == models.BuildTypeDefault {
			base = b
			break
		}
	}
	var situational *models.Build
	for i := range builds {
		if builds[i].Type == models.BuildTypeSituational {
			situational = &builds[i]
			break
		}
	}

	recs := []models.BuildRecommendation{
		a.recommendation(dc, models.RecommendationDefault, base, base.Items, base.Boots, nil, threats,
			ComputeBuildConfidence(base, threats, dc), "Standard build for consistent performance"),
	}

	if len(threats) > 0 {
		items, applied := ApplySituationalSwaps(base.Items, base.SituationalSwaps, threats)
		if len(applied) > 0 {
			template := base
			if situational != nil {
				template = *situational
			}
			confidence := ComputeBuildConfidence(template, threats, dc) + situationalBonus
			rec := a.recommendation(dc, models.RecommendationSituational, template, items,
				DetermineBoots(threats, template.Boots), applied, threats, confidence,
				"Adjusted for enemy team: "+joinThreats(threats))
			recs = append(recs, rec)
		}
	}

	if situational != nil && len(threats) >= counterThreatThreshold {
		items, applied := ApplySituationalSwaps(situational.Items, situational.SituationalSwaps, threats)
		rec := a.recommendation(dc, models.RecommendationCounter, *situational, items,
			DetermineBoots(threats, situational.Boots), applied, threats,
			ComputeBuildConfidence(*situational, threats, dc),
			"Counter build specifically for this team composition: "+joinThreats(threats))
		recs = append(recs, rec)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Confidence > recs[j].Confidence
	})
	if len(recs) > maxBuildVariants {
		recs = recs[:maxBuildVariants]
	}

	a.logger.WithFields(logrus.Fields{
		"champion": championID,
		"lane":     lane,
		"threats":  describeThreats(threats),
		"variants": len(recs),
	}).Debug("Generated build recommendations")
	return recs
}

func (a *BuildAggregator) recommendation(dc models.DataContext, kind models.RecommendationType, build models.Build, items []string, boots string,
	applied []models.SituationalSwap, threats []models.ThreatTag, confidence int, reasoning string) models.BuildRecommendation {
	if applied == nil {
		applied = []models.SituationalSwap{}
	}
	return models.BuildRecommendation{
		Type:             kind,
		BuildID:          build.ID,
		Items:            items,
		Boots:            boots,
		DisplayItems:     a.displayItems(items),
		DisplayBoots:     a.displayItem(boots),
		Emblems:          build.Emblems,
		Confidence:       confidence,
		SourceConfidence: BlendedBuildConfidence(build, dc),
		Reasoning:        reasoning,
		Threats:          threats,
		SwapsApplied:     applied,
		Sources:          build.Sources,
	}
}

func (a *BuildAggregator) displayItems(ids []string) []models.ItemRef {
	refs := make([]models.ItemRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, a.displayItem(id))
	}
	return refs
}

func (a *BuildAggregator) displayItem(id string) models.ItemRef {
	if item, ok := a.store.GetItemByID(id); ok {
		return models.ItemRef{ID: item.ID, Name: item.Name, IconURL: item.IconURL}
	}
	return models.ItemRef{ID: id, Name: id}
}

func joinThreats(threats []models.ThreatTag) string {
	names := make([]string, len(threats))
	for i, t := range threats {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// describeThreats renders threats for log lines.
func describeThreats(threats []models.ThreatTag) string {
	parts := make([]string, len(threats))
	for i, t := range threats {
		parts[i] = fmt.Sprintf("%s (%s)", t, t.Describe())
	}
	return strings.Join(parts, "; ")
}
