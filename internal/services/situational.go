package services

import (
	"fmt"
	"math"

	"github.com/BaronguyenVinasu/riftcounter/internal/models"
)

const (
	damageShareThreshold = 60
	lastSlotPlaceholder  = "Last slot"
)

// SuggestSituationalSwaps proposes item swaps for the player's last slot from
// the enemy team's damage split and standout threats.
func SuggestSituationalSwaps(player *models.Champion, enemies []*models.Champion, baseItems []string) []models.SituationalSwap {
	p := orZero(player)
	swaps := make([]models.SituationalSwap, 0)

	var physical, magic float64
	for _, e := range enemies {
		if e == nil {
			continue
		}
		physical += e.Damage.Physical
		magic += e.Damage.Magic
	}
	adShare := 50.0
	if total := physical + magic; total > 0 {
		adShare = physical / total * 100
	}
	apShare := 100 - adShare

	original := lastSlotPlaceholder
	if len(baseItems) > 0 {
		original = baseItems[len(baseItems)-1]
	}
	apPlayer := p.Damage.Magic > p.Damage.Physical

	pick := func(ifAP, otherwise string) string {
		if apPlayer {
			return ifAP
		}
		return otherwise
	}

	if adShare >= damageShareThreshold {
		swaps = append(swaps, models.SituationalSwap{
			OriginalItem: original,
			SwapItem:     pick("zhonyas-hourglass", "plated-steelcaps"),
			Trigger:      models.ThreatHeavyAD,
			Reason:       fmt.Sprintf("Enemy team is %d%% AD - build armor early", int(math.Round(adShare))),
		})
	}
	if apShare >= damageShareThreshold {
		swaps = append(swaps, models.SituationalSwap{
			OriginalItem: original,
			SwapItem:     pick("banshees-veil", "mercury-treads"),
			Trigger:      models.ThreatHeavyAP,
			Reason:       fmt.Sprintf("Enemy team is %d%% AP - build magic resist", int(math.Round(apShare))),
		})
	}

	for _, e := range enemies {
		if e == nil {
			continue
		}
		if e.HasTag(models.RoleAssassin) && e.MobilityScore >= 7 {
			swaps = append(swaps, models.SituationalSwap{
				OriginalItem: original,
				SwapItem:     pick("zhonyas-hourglass", "guardian-angel"),
				Trigger:      models.ThreatMobileThreat,
				Reason:       fmt.Sprintf("%s is a mobile assassin - build defensive", e.Label()),
			})
		}
		if e.SustainScore >= 7 {
			swaps = append(swaps, models.SituationalSwap{
				OriginalItem: original,
				SwapItem:     pick("morellonomicon", "mortal-reminder"),
				Trigger:      models.ThreatHeavyHeal,
				Reason:       fmt.Sprintf("%s has high sustain - build anti-heal", e.Label()),
			})
		}
	}
	return swaps
}
