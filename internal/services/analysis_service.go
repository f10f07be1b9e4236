package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/BaronguyenVinasu/riftcounter/internal/metrics"
	"github.com/BaronguyenVinasu/riftcounter/internal/models"
	"github.com/BaronguyenVinasu/riftcounter/internal/telemetry"
	"github.com/BaronguyenVinasu/riftcounter/internal/utils"
)

// DefaultAnalysisTTL is how long a computed analysis stays cached.
const DefaultAnalysisTTL = 30 * time.Minute

// AnalysisConfig toggles optional parts of an analysis.
type AnalysisConfig struct {
	CacheTTL         time.Duration
	CounterPicks     bool
	BuildAggregation bool
}

// AnalysisService orchestrates one enemy-lineup analysis end to end.
type AnalysisService struct {
	store      AttributeStore
	champions  *ChampionService
	ranker     *CounterRanker
	aggregator *BuildAggregator
	provider   DataContextProvider
	cache      AnalysisCache
	config     AnalysisConfig
	logger     *logrus.Logger
	now        func() time.Time
}

// NewAnalysisService wires the engine components. cache may be nil.
func NewAnalysisService(store AttributeStore, champions *ChampionService, provider DataContextProvider,
	cache AnalysisCache, config AnalysisConfig, logger *logrus.Logger) *AnalysisService {
	if config.CacheTTL <= 0 {
		config.CacheTTL = DefaultAnalysisTTL
	}
	return &AnalysisService{
		store:      store,
		champions:  champions,
		ranker:     NewCounterRanker(store, logger),
		aggregator: NewBuildAggregator(store, logger),
		provider:   provider,
		cache:      cache,
		config:     config,
		logger:     logger,
		now:        time.Now,
	}
}

// fingerprintInput is hashed to key the analysis cache.
type fingerprintInput struct {
	Enemies      []string               `json:"enemies"`
	Lane         models.Lane            `json:"lane"`
	YourChampion string                 `json:"yourChampion"`
	Options      models.AnalysisOptions `json:"options"`
}

// Fingerprint is the md5 of the normalized request. Enemy order is kept since
// it decides the lane enemy.
func Fingerprint(enemyIDs []string, lane models.Lane, yourChampion string, opts models.AnalysisOptions) string {
	payload, _ := json.Marshal(fingerprintInput{
		Enemies:      enemyIDs,
		Lane:         lane,
		YourChampion: yourChampion,
		Options:      opts,
	})
	sum := md5.Sum(payload)
	return hex.EncodeToString(sum[:])
}

// Analyze resolves the request, serves it from cache when possible and
// otherwise runs every engine component.
func (s *AnalysisService) Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResponse, error) {
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, telemetry.GetEngineTracer(), "analysis.analyze",
		attribute.String("lane", req.Lane),
		attribute.Int("enemies", len(req.Enemies)),
	)
	defer span.End()

	resp, hit, err := s.analyze(ctx, req)
	if err != nil {
		telemetry.RecordError(span, err)
		metrics.RecordAnalysis(false, "error", time.Since(start))
		return nil, err
	}
	span.SetAttributes(attribute.Bool("cache_hit", hit), attribute.Int("confidence", resp.Confidence))
	metrics.RecordAnalysis(hit, "ok", time.Since(start))
	return resp, nil
}

func (s *AnalysisService) analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResponse, bool, error) {
	lane, ok := NormalizeLane(req.Lane)
	if !ok {
		return nil, false, utils.NewInvalidLaneError(req.Lane)
	}

	enemies, unknown := s.champions.NormalizeChampionInputs(req.Enemies)
	if len(unknown) > 0 {
		return nil, false, utils.NewUnknownChampionsError(unknown)
	}

	var you *models.Champion
	if req.YourChampion != "" {
		you, ok = s.champions.NormalizeChampionInput(req.YourChampion)
		if !ok {
			return nil, false, utils.NewUnknownChampionError(req.YourChampion)
		}
	}

	enemyIDs := make([]string, len(enemies))
	for i, e := range enemies {
		enemyIDs[i] = e.ID
	}
	youID := ""
	if you != nil {
		youID = you.ID
	}
	key := Fingerprint(enemyIDs, lane, youID, req.Options)

	if s.cache != nil {
		if cached, found := s.cache.Get(ctx, key); found {
			cached.RequestID = uuid.NewString()
			cached.Cached = true
			s.logger.WithFields(logrus.Fields{
				"fingerprint": key,
				"lane":        lane,
			}).Debug("Analysis served from cache")
			return cached, true, nil
		}
	}

	now := s.now()
	dc := s.provider.DataContext(now)
	metrics.SetUncertainty(string(dc.Uncertainty))

	resp := s.compute(enemies, lane, you, req.Options, dc)
	resp.Sources = s.provider.Statuses()

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, resp, s.config.CacheTTL); err != nil {
			s.logger.WithError(err).WithField("fingerprint", key).Warn("Failed to cache analysis")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"request_id": resp.RequestID,
		"lane":       lane,
		"enemies":    enemyIDs,
		"counters":   len(resp.Counters),
		"builds":     len(resp.Builds),
		"confidence": resp.Confidence,
	}).Info("Analysis completed")
	return resp, false, nil
}

// compute is the cache-miss path. It performs no I/O.
func (s *AnalysisService) compute(enemies []*models.Champion, lane models.Lane, you *models.Champion,
	opts models.AnalysisOptions, dc models.DataContext) *models.AnalysisResponse {
	resp := &models.AnalysisResponse{
		RequestID:         uuid.NewString(),
		NormalizedEnemies: make([]models.ChampionSummary, 0, len(enemies)),
		Lane:              lane,
		Counters:          []models.CounterPick{},
		Tactics:           []models.Tactic{},
		Builds:            []models.BuildRecommendation{},
		SkillCombos:       []models.SkillCombo{},
		PowerSpikes:       []models.PowerSpikeEntry{},
		AbilityWarnings:   []models.AbilityWarning{},
		Uncertainty:       dc.Uncertainty,
		UncertaintyReason: dc.UncertaintyReason,
		LastRefreshed:     dc.Clock(),
		PatchVersion:      dc.PatchVersion,
	}
	for _, e := range enemies {
		resp.NormalizedEnemies = append(resp.NormalizedEnemies, e.Summary())
	}

	var laneEnemy *models.Champion
	for _, e := range enemies {
		if e.PlaysLane(lane) {
			laneEnemy = e
			break
		}
	}
	if laneEnemy != nil {
		summary := laneEnemy.Summary()
		resp.LaneEnemy = &summary
	}
	if you != nil {
		summary := you.Summary()
		resp.YourChampion = &summary
	}

	if s.config.CounterPicks && laneEnemy != nil && (you == nil || opts.PreferCounters) {
		limit := opts.MaxCounters
		if limit == 0 {
			limit = DefaultCounterLimit
		}
		resp.Counters = s.ranker.GetCounterPicks(laneEnemy.ID, lane, limit, dc)
		metrics.RecordCounterPicks(len(resp.Counters))
	}

	subject := you
	if subject == nil && len(resp.Counters) > 0 {
		if top, ok := s.store.GetChampionByID(resp.Counters[0].Champion.ID); ok {
			subject = top
		}
	}

	if subject != nil {
		resp.SkillCombos = GenerateSkillCombos(subject)
		if laneEnemy != nil {
			m := ComputeMatchupMetrics(subject, laneEnemy, lane, s.store)
			resp.Tactics = GenerateLaneTactics(subject, laneEnemy, m, dc)
			resp.PowerSpikes = GeneratePowerSpikes(subject, laneEnemy)
		}
		if s.config.BuildAggregation {
			resp.Builds = s.aggregator.GenerateBuildRecommendations(subject.ID, enemies, lane, dc, opts.IncludeOffMeta)
		}
	}

	if you != nil && laneEnemy != nil {
		v := ComputeMatchupVector(you, laneEnemy)
		breakdown := GenerateTacticalBreakdown(you, laneEnemy, v)
		resp.MatchupVector = &v
		resp.StagedTactics = GenerateStagedTactics(you, laneEnemy, v, dc)
		resp.TacticalBreakdown = &breakdown

		var baseItems []string
		if len(resp.Builds) > 0 {
			baseItems = resp.Builds[0].Items
		}
		resp.SuggestedSwaps = SuggestSituationalSwaps(you, enemies, baseItems)
	}

	for _, e := range enemies {
		resp.AbilityWarnings = append(resp.AbilityWarnings, GenerateAbilityWarnings(e)...)
	}

	counterConfs := make([]int, len(resp.Counters))
	for i, c := range resp.Counters {
		counterConfs[i] = c.Confidence
	}
	buildConfs := make([]int, len(resp.Builds))
	for i, b := range resp.Builds {
		buildConfs[i] = b.Confidence
	}
	resp.Confidence = ComputeOverallConfidence(counterConfs, buildConfs, dc.Uncertainty)
	return resp
}

// CountersFor ranks counters to one opponent against the current data context.
func (s *AnalysisService) CountersFor(opponentID string, lane models.Lane, limit int) []models.CounterPick {
	if limit <= 0 {
		limit = DefaultCounterLimit
	}
	picks := s.ranker.GetCounterPicks(opponentID, lane, limit, s.provider.DataContext(s.now()))
	metrics.RecordCounterPicks(len(picks))
	return picks
}

// BuildsFor recommends builds with no enemy lineup, so only the standard
// variants apply.
func (s *AnalysisService) BuildsFor(championID string, lane models.Lane, includeOffMeta bool) []models.BuildRecommendation {
	return s.aggregator.GenerateBuildRecommendations(championID, nil, lane, s.provider.DataContext(s.now()), includeOffMeta)
}
