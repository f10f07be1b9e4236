package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreatTag_DescribeCoversAllTags(t *testing.T) {
	for _, tag := range AllThreatTags {
		assert.NotEmpty(t, tag.Describe(), "threat tag %s has no description", tag)
		assert.True(t, tag.Valid())
	}
	assert.False(t, ThreatTag("heavyTrue").Valid())
}

func TestSpikeType_Priority(t *testing.T) {
	assert.Equal(t, 1, SpikeLevel.Priority())
	assert.Equal(t, 2, SpikeItem.Priority())
	assert.Equal(t, 3, SpikeTime.Priority())
	assert.Equal(t, 0, SpikeType("dragon").Priority())
	for _, s := range AllSpikeTypes {
		assert.True(t, s.Valid())
	}
}

func TestUncertainty_Penalty(t *testing.T) {
	assert.Equal(t, 1.0, UncertaintyLow.Penalty())
	assert.Equal(t, 0.85, UncertaintyMedium.Penalty())
	assert.Equal(t, 0.7, UncertaintyHigh.Penalty())
	for _, u := range AllUncertainties {
		assert.True(t, u.Valid())
	}
}

func TestRoleTagAndLane_Valid(t *testing.T) {
	for _, r := range AllRoleTags {
		assert.True(t, r.Valid())
	}
	for _, l := range AllLanes {
		assert.True(t, l.Valid())
	}
	assert.False(t, RoleTag("healer").Valid())
	assert.False(t, Lane("top").Valid())
}

func TestChampion_UnmarshalRejectsUnknownTags(t *testing.T) {
	var c Champion
	err := json.Unmarshal([]byte(`{"id":"zed","tags":["assassin","ninja"]}`), &c)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`{"id":"zed","roles":["top"]}`), &c)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`{"id":"zed","rangeType":"hybrid"}`), &c)
	assert.Error(t, err)
}

func TestChampion_UnmarshalAndHelpers(t *testing.T) {
	raw := `{
		"id": "ahri",
		"name": "Ahri",
		"displayName": "Ahri",
		"roles": ["mid"],
		"tags": ["Mage", "assassin"],
		"rangeType": "ranged",
		"mobilityScore": 8,
		"powerSpikes": [{"type": "level", "level": 6, "power": 0.8, "notes": "Spirit Rush"},
		                {"type": "item", "value": "First item", "power": 0.6, "notes": "Luden's"}]
	}`
	var c Champion
	require.NoError(t, json.Unmarshal([]byte(raw), &c))

	assert.True(t, c.HasTag(RoleMage))
	assert.True(t, c.HasTag(RoleAssassin))
	assert.False(t, c.HasTag(RoleTank))
	assert.True(t, c.PlaysLane(LaneMid))
	assert.False(t, c.PlaysLane(LaneADC))
	assert.True(t, c.IsRanged())
	assert.False(t, c.IsMelee())
	assert.Equal(t, 0.0, c.BurstScore)

	require.Len(t, c.PowerSpikes, 2)
	assert.Equal(t, "Level 6", c.PowerSpikes[0].Timing())
	assert.Equal(t, "First item", c.PowerSpikes[1].Timing())

	summary := c.Summary()
	assert.Equal(t, "ahri", summary.ID)
	assert.Equal(t, "Ahri", summary.DisplayName)
}

func TestChampion_LabelFallsBackToName(t *testing.T) {
	c := Champion{ID: "twisted_fate", Name: "Twisted Fate"}
	assert.Equal(t, "Twisted Fate", c.Label())
	c.DisplayName = "TF"
	assert.Equal(t, "TF", c.Label())
}

func TestThreatTag_UnmarshalIsCaseInsensitive(t *testing.T) {
	var swap SituationalSwap
	require.NoError(t, json.Unmarshal([]byte(`{"trigger":"HEAVYheal"}`), &swap))
	assert.Equal(t, ThreatHeavyHeal, swap.Trigger)
}

func TestDataContext_SourceWeight(t *testing.T) {
	dc := DataContext{SourceWeights: map[string]float64{"WildRiftFire": 1.0, "Broken": 0}}
	assert.Equal(t, 1.0, dc.SourceWeight("WildRiftFire", 0.5))
	assert.Equal(t, 0.5, dc.SourceWeight("Broken", 0.5))
	assert.Equal(t, 0.5, dc.SourceWeight("Unknown", 0.5))
	assert.False(t, dc.Clock().IsZero())
}
