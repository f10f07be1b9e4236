package services

import (
	"fmt"
	"sort"

	"github.com/BaronguyenVinasu/riftcounter/internal/models"
)

const strongSpikeThreshold = 0.7

// GeneratePowerSpikes merges both champions' spikes into one timeline:
// level spikes first (by level), then item spikes, then time spikes.
func GeneratePowerSpikes(challenger, opponent *models.Champion) []models.PowerSpikeEntry {
	c, o := orZero(challenger), orZero(opponent)
	entries := make([]models.PowerSpikeEntry, 0, len(c.PowerSpikes)+len(o.PowerSpikes))

	for _, spike := range c.PowerSpikes {
		entries = append(entries, spikeEntry(c, spike, models.AdvantageYou, spike.Notes))
	}
	for _, spike := range o.PowerSpikes {
		entries = append(entries, spikeEntry(o, spike, models.AdvantageEnemy, fmt.Sprintf("%s: %s", o.Label(), spike.Notes)))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		pi, pj := entries[i].Type.Priority(), entries[j].Type.Priority()
		if pi != pj {
			return pi < pj
		}
		if entries[i].Type == models.SpikeLevel {
			return entries[i].Level < entries[j].Level
		}
		return false
	})
	return entries
}

func spikeEntry(owner *models.Champion, spike models.PowerSpike, side models.Advantage, description string) models.PowerSpikeEntry {
	advantage := models.AdvantageNeutral
	if spike.Power > strongSpikeThreshold {
		advantage = side
	}
	return models.PowerSpikeEntry{
		Champion:    side,
		ChampionID:  owner.ID,
		Type:        spike.Type,
		Level:       spike.Level,
		Time:        spike.Timing(),
		Description: description,
		Power:       clamp(spike.Power, 0, 1),
		Advantage:   advantage,
	}
}

// GenerateAbilityWarnings flags an enemy's ultimate and heavy crowd control.
func GenerateAbilityWarnings(enemy *models.Champion) []models.AbilityWarning {
	e := orZero(enemy)
	var warnings []models.AbilityWarning

	if ult := e.Abilities.Ultimate; ult != nil && ult.Name != "" {
		warnings = append(warnings, models.AbilityWarning{
			ChampionID:  e.ID,
			Ability:     "Ultimate",
			Warning:     fmt.Sprintf("%s: %s", ult.Name, ult.Description),
			Counterplay: "Track cooldown and play safe when available",
		})
	}
	if e.CCScore > 6 {
		warnings = append(warnings, models.AbilityWarning{
			ChampionID:  e.ID,
			Ability:     "CC Abilities",
			Warning:     fmt.Sprintf("%s has strong CC - avoid getting caught", e.Label()),
			Counterplay: "Position carefully and consider Mercury Treads or QSS",
		})
	}
	return warnings
}
