package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BaronguyenVinasu/riftcounter/internal/models"
	"github.com/BaronguyenVinasu/riftcounter/internal/services"
	"github.com/BaronguyenVinasu/riftcounter/internal/utils"
)

// ChampionCatalog resolves and lists champions.
type ChampionCatalog interface {
	NormalizeChampionInput(input string) (*models.Champion, bool)
	SearchChampions(query string, limit int) []models.ChampionSummary
	ListChampions(lane models.Lane, search string, page, limit int) services.ChampionPage
}

// ChampionEngine produces per-champion recommendations.
type ChampionEngine interface {
	CountersFor(opponentID string, lane models.Lane, limit int) []models.CounterPick
	BuildsFor(championID string, lane models.Lane, includeOffMeta bool) []models.BuildRecommendation
}

type ChampionHandler struct {
	catalog ChampionCatalog
	engine  ChampionEngine
	logger  *logrus.Logger
}

func NewChampionHandler(catalog ChampionCatalog, engine ChampionEngine, logger *logrus.Logger) *ChampionHandler {
	return &ChampionHandler{catalog: catalog, engine: engine, logger: logger}
}

// ChampionBuilds is the body of GET /champions/:id/builds.
type ChampionBuilds struct {
	Champion            models.ChampionSummary       `json:"champion"`
	Lane                models.Lane                  `json:"lane"`
	Builds              []models.BuildRecommendation `json:"builds"`
	AggregateConfidence int                          `json:"aggregateConfidence"`
}

// ChampionCounters is the body of GET /champions/:id/counters.
type ChampionCounters struct {
	Champion models.ChampionSummary `json:"champion"`
	Lane     models.Lane            `json:"lane"`
	Counters []models.CounterPick   `json:"counters"`
}

// ListChampions handles GET /champions?role=&search=&page=&limit=
func (h *ChampionHandler) ListChampions(c *gin.Context) {
	var lane models.Lane
	if role := c.Query("role"); role != "" {
		l, ok := services.NormalizeLane(role)
		if !ok {
			respondError(c, h.logger, utils.NewInvalidLaneError(role))
			return
		}
		lane = l
	}
	page, err := queryInt(c, "page", 1)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	limit, err := queryInt(c, "limit", services.DefaultPageSize)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	result := h.catalog.ListChampions(lane, c.Query("search"), page, limit)
	respondPage(c, result.Data, Pagination{
		Page:       result.Page,
		Limit:      result.Limit,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	})
}

// SearchChampions handles GET /champions/search?q=&limit=
func (h *ChampionHandler) SearchChampions(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		respondError(c, h.logger, utils.NewMissingQueryError("q"))
		return
	}
	limit, err := queryInt(c, "limit", services.DefaultSearchLimit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, h.catalog.SearchChampions(q, limit))
}

// GetChampion handles GET /champions/:id. Aliases and display names resolve too.
func (h *ChampionHandler) GetChampion(c *gin.Context) {
	champion, ok := h.resolve(c)
	if !ok {
		return
	}
	respondOK(c, champion)
}

// GetBuilds handles GET /champions/:id/builds?lane=&includeOffMeta=
func (h *ChampionHandler) GetBuilds(c *gin.Context) {
	champion, ok := h.resolve(c)
	if !ok {
		return
	}
	lane, ok := h.laneFor(c, champion)
	if !ok {
		return
	}

	builds := h.engine.BuildsFor(champion.ID, lane, queryBool(c, "includeOffMeta"))
	respondOK(c, ChampionBuilds{
		Champion:            champion.Summary(),
		Lane:                lane,
		Builds:              builds,
		AggregateConfidence: services.AggregateConfidence(builds),
	})
}

// GetCounters handles GET /champions/:id/counters?lane=&limit=
func (h *ChampionHandler) GetCounters(c *gin.Context) {
	champion, ok := h.resolve(c)
	if !ok {
		return
	}
	lane, ok := h.laneFor(c, champion)
	if !ok {
		return
	}
	limit, err := queryInt(c, "limit", services.DefaultCounterLimit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, ChampionCounters{
		Champion: champion.Summary(),
		Lane:     lane,
		Counters: h.engine.CountersFor(champion.ID, lane, limit),
	})
}

func (h *ChampionHandler) resolve(c *gin.Context) (*models.Champion, bool) {
	id := c.Param("id")
	champion, ok := h.catalog.NormalizeChampionInput(id)
	if !ok {
		respondError(c, h.logger, utils.NewNotFoundError(utils.CodeChampionNotFound, "Champion", id))
		return nil, false
	}
	return champion, true
}

// laneFor reads ?lane=, defaulting to the champion's primary role.
func (h *ChampionHandler) laneFor(c *gin.Context, champion *models.Champion) (models.Lane, bool) {
	raw := c.Query("lane")
	if raw == "" {
		if len(champion.Roles) > 0 {
			return champion.Roles[0], true
		}
		respondError(c, h.logger, utils.NewInvalidLaneError(raw))
		return "", false
	}
	lane, ok := services.NormalizeLane(raw)
	if !ok {
		respondError(c, h.logger, utils.NewInvalidLaneError(raw))
		return "", false
	}
	return lane, true
}
