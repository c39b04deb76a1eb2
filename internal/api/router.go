// Package api wires the HTTP surface of the analysis service.
package api

import (
	"net/http"

	"github.com/HSchlagi/bess-simulation-sub000/internal/api/handlers"
	"github.com/HSchlagi/bess-simulation-sub000/internal/api/middleware"
	"github.com/HSchlagi/bess-simulation-sub000/internal/api/models"
	"github.com/HSchlagi/bess-simulation-sub000/internal/compare"
	"github.com/HSchlagi/bess-simulation-sub000/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Deps are the collaborators of the router. Store and Metrics are optional.
type Deps struct {
	Prices         compare.PriceResolver
	Store          handlers.ProjectStore
	Metrics        *observability.Metrics
	Log            zerolog.Logger
	AllowedOrigins []string
}

func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(middleware.ErrorHandler(d.Log))
	router.Use(middleware.CORS(d.AllowedOrigins))
	router.Use(middleware.Logger(d.Log, d.Metrics))

	analysisHandler := handlers.NewAnalysisHandler(d.Prices, d.Store, d.Metrics, d.Log)
	priceHandler := handlers.NewPriceHandler(d.Prices, d.Log)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Metrics != nil {
		router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/scenarios", handlers.ListScenarios)
		v1.GET("/prices", priceHandler.GetPrices)
		v1.POST("/analysis", analysisHandler.RunAnalysis)
		v1.POST("/analysis/export", analysisHandler.ExportAnalysis)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.NewError("NOT_FOUND", "Not found"))
	})
	return router
}
