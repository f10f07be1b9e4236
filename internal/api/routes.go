package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BaronguyenVinasu/riftcounter/internal/api/handlers"
	"github.com/BaronguyenVinasu/riftcounter/internal/metrics"
	"github.com/BaronguyenVinasu/riftcounter/internal/middleware"
	"github.com/BaronguyenVinasu/riftcounter/internal/services"
)

// Dependencies holds everything the HTTP layer is built from.
type Dependencies struct {
	Catalog   handlers.ChampionCatalog
	Engine    handlers.ChampionEngine
	Analyzer  handlers.Analyzer
	Items     services.ItemSource
	Sources   handlers.SourceStatusProvider
	Refresher handlers.Refresher
	Cache     handlers.CacheStore

	HealthDeps  []handlers.Dependency
	Version     string
	AdminAPIKey string
	Logger      *logrus.Logger
}

// SetupRoutes registers health, metrics and the /api/v1 endpoints on router.
// Mutating admin endpoints require the admin API key.
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	adminMiddleware := middleware.NewAdminMiddleware(deps.AdminAPIKey)

	healthHandler := handlers.NewHealthHandler(deps.Version, deps.HealthDeps...)
	router.GET("/health", healthHandler.HealthCheck)
	router.HEAD("/health", healthHandler.HealthCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	championHandler := handlers.NewChampionHandler(deps.Catalog, deps.Engine, deps.Logger)
	analyzeHandler := handlers.NewAnalyzeHandler(deps.Analyzer, deps.Logger)
	itemHandler := handlers.NewItemHandler(deps.Items, deps.Logger)
	sourceHandler := handlers.NewSourceHandler(deps.Sources, deps.Refresher, deps.Logger)
	cacheHandler := handlers.NewCacheHandler(deps.Cache, deps.Logger)

	v1 := router.Group("/api/v1")
	{
		champions := v1.Group("/champions")
		{
			champions.GET("", championHandler.ListChampions)
			champions.GET("/search", championHandler.SearchChampions)
			champions.GET("/:id", championHandler.GetChampion)
			champions.GET("/:id/builds", championHandler.GetBuilds)
			champions.GET("/:id/counters", championHandler.GetCounters)
		}

		v1.POST("/analyze", analyzeHandler.Analyze)

		items := v1.Group("/items")
		{
			items.GET("", itemHandler.ListItems)
			items.GET("/:id", itemHandler.GetItem)
		}

		sources := v1.Group("/sources")
		{
			sources.GET("", sourceHandler.GetSources)
			sources.POST("/refresh", adminMiddleware.RequireAdminAuth(), sourceHandler.RefreshSources)
		}

		cacheGroup := v1.Group("/cache")
		{
			cacheGroup.GET("/stats", cacheHandler.GetCacheStats)
			cacheGroup.DELETE("", adminMiddleware.RequireAdminAuth(), cacheHandler.ClearCache)
		}
	}
}
