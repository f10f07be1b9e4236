package services

import (
	"context"
	"time"

	"github.com/BaronguyenVinasu/riftcounter/internal/models"
)

// ChampionSource provides read-only champion records.
type ChampionSource interface {
	GetChampionByID(id string) (*models.Champion, bool)
	// GetChampionsByIDs silently drops ids it cannot resolve.
	GetChampionsByIDs(ids []string) []*models.Champion
	// GetChampionsByLane returns lane-eligible champions in store order.
	GetChampionsByLane(lane models.Lane) []*models.Champion
	ListChampions() []*models.Champion
}

// BuildSource provides curated builds for a champion.
type BuildSource interface {
	GetBuildsForChampion(championID string) []models.Build
}

// MatchupLookup returns curated matchup metrics when they exist.
type MatchupLookup interface {
	GetStoredMatchup(challengerID, opponentID string, lane models.Lane) (*models.StoredMatchup, bool)
}

// ItemSource provides item records for display resolution.
type ItemSource interface {
	GetItemByID(id string) (*models.Item, bool)
	ListItems() []*models.Item
}

// AttributeStore is the full read surface the engine consumes.
type AttributeStore interface {
	ChampionSource
	BuildSource
	MatchupLookup
	ItemSource
}

// DataContextProvider snapshots freshness, weights and patch for one request.
type DataContextProvider interface {
	DataContext(now time.Time) models.DataContext
	Statuses() []models.SourceStatus
}

// AnalysisCache is a read-through cache of full analysis responses.
type AnalysisCache interface {
	Get(ctx context.Context, key string) (*models.AnalysisResponse, bool)
	Set(ctx context.Context, key string, resp *models.AnalysisResponse, ttl time.Duration) error
	InvalidateAll(ctx context.Context) error
}
