package services

import "github.com/BaronguyenVinasu/riftcounter/internal/models"

// GenerateSkillCombos returns the champion's hand-written combos, or generic
// patterns for each of its role tags when none are recorded.
func GenerateSkillCombos(champion *models.Champion) []models.SkillCombo {
	c := orZero(champion)
	if capability, ok := LookupCapability(c.ID); ok && len(capability.Combos) > 0 {
		return append([]models.SkillCombo(nil), capability.Combos...)
	}

	combos := make([]models.SkillCombo, 0, len(c.Tags))
	seen := make(map[string]bool)
	for _, tag := range c.Tags {
		for _, combo := range roleFallbackCombos(tag) {
			if seen[combo.Name] {
				continue
			}
			seen[combo.Name] = true
			combos = append(combos, combo)
		}
	}
	return combos
}
