package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaronguyenVinasu/riftcounter/internal/models"
)

func TestNormalizeLane(t *testing.T) {
	tests := map[string]models.Lane{
		"top":      models.LaneBaron,
		" Baron ":  models.LaneBaron,
		"MID":      models.LaneMid,
		"jg":       models.LaneJungle,
		"bot":      models.LaneADC,
		"marksman": models.LaneADC,
		"supp":     models.LaneSupport,
	}
	for in, want := range tests {
		got, ok := NormalizeLane(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "river", "toplane"} {
		_, ok := NormalizeLane(in)
		assert.False(t, ok, in)
	}
}

func TestFoldKey(t *testing.T) {
	assert.Equal(t, "kaisa", foldKey("Kai'Sa"))
	assert.Equal(t, "leesin", foldKey("Lée Sin"))
	assert.Equal(t, "twistedfate", foldKey("twisted_fate"))
	assert.Empty(t, foldKey("  '- "))
}

func TestNormalizeChampionInput(t *testing.T) {
	svc := NewChampionService(seedStore(t), quietLogger(), true)
	tests := []struct {
		input string
		want  string
	}{
		{"zed", "zed"},
		{"  Ahri ", "ahri"},
		{"Yas", "yasuo"},
		{"lee", "leesin"},
		{"Lee Sin", "leesin"},
		{"Twisted Fate", "twisted_fate"},
		{"tf", "twisted_fate"},
		{"kat", "katarina"},
		{"jin", "jinx"},
		{"yasou", "yasuo"},
		{"nine tails", "ahri"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, ok := svc.NormalizeChampionInput(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.want, c.ID)
		})
	}

	for _, in := range []string{"", "   ", "qqqqqqq"} {
		_, ok := svc.NormalizeChampionInput(in)
		assert.False(t, ok, in)
	}
}

func TestNormalizeChampionInput_FuzzyDisabled(t *testing.T) {
	svc := NewChampionService(seedStore(t), quietLogger(), false)

	_, ok := svc.NormalizeChampionInput("yasou")
	assert.False(t, ok)

	c, ok := svc.NormalizeChampionInput("yas")
	require.True(t, ok)
	assert.Equal(t, "yasuo", c.ID)
}

func TestNormalizeChampionInputs(t *testing.T) {
	svc := NewChampionService(seedStore(t), quietLogger(), true)

	resolved, unknown := svc.NormalizeChampionInputs([]string{"zed", "Zed", "qqq", "ahri"})
	require.Len(t, resolved, 2)
	assert.Equal(t, "zed", resolved[0].ID)
	assert.Equal(t, "ahri", resolved[1].ID)
	assert.Equal(t, []string{"qqq"}, unknown)

	resolved, unknown = svc.NormalizeChampionInputs(nil)
	assert.Empty(t, resolved)
	assert.Empty(t, unknown)
}

func TestSearchChampions(t *testing.T) {
	svc := NewChampionService(seedStore(t), quietLogger(), true)

	hits := svc.SearchChampions("jin", 5)
	require.NotEmpty(t, hits)
	assert.Equal(t, "jinx", hits[0].ID)

	assert.Len(t, svc.SearchChampions("", 0), DefaultSearchLimit)
	assert.Len(t, svc.SearchChampions("", 100), MaxSearchLimit)
	assert.Empty(t, svc.SearchChampions("qqqqqqq", 5))
}

func TestListChampions(t *testing.T) {
	svc := NewChampionService(seedStore(t), quietLogger(), true)

	page := svc.ListChampions(models.LaneSupport, "", 1, 0)
	assert.Equal(t, 7, page.Total)
	assert.Equal(t, DefaultPageSize, page.Limit)
	assert.Equal(t, 1, page.TotalPages)

	page = svc.ListChampions(models.LaneSupport, "", 2, 5)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, 2, page.TotalPages)

	page = svc.ListChampions(models.LaneSupport, "", 3, 5)
	assert.Empty(t, page.Data)
	assert.Equal(t, 7, page.Total)

	page = svc.ListChampions("", "twisted", 0, 500)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "twisted_fate", page.Data[0].ID)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, MaxPageSize, page.Limit)
}
