package main

import (
	"fmt"
	"os"

	"github.com/HSchlagi/bess-simulation-sub000/internal/api"
	"github.com/HSchlagi/bess-simulation-sub000/internal/compare"
	"github.com/HSchlagi/bess-simulation-sub000/internal/config"
	"github.com/HSchlagi/bess-simulation-sub000/internal/data"
	"github.com/HSchlagi/bess-simulation-sub000/internal/logger"
	"github.com/HSchlagi/bess-simulation-sub000/internal/model"
	"github.com/HSchlagi/bess-simulation-sub000/internal/observability"

	"github.com/gin-gonic/gin"
)

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid settings: %v\n", err)
		os.Exit(2)
	}

	log := logger.New(logger.Config{Level: settings.LogLevel, Pretty: settings.LogPretty})

	if settings.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	deps := api.Deps{
		Metrics:        observability.NewMetrics(),
		Log:            log,
		AllowedOrigins: settings.AllowedOrigins,
	}

	// Prices: remote service, then the project store, then the reference table.
	var prices compare.PriceResolver = data.NewStaticResolver(model.MarketPriceTable{})
	if settings.DatabasePath != "" {
		store, err := data.OpenStore(settings.DatabasePath, log)
		if err != nil {
			log.Fatal().Err(err).Str("path", settings.DatabasePath).Msg("failed to open store")
		}
		defer store.Close()
		deps.Store = store
		prices = store
		log.Info().Str("path", settings.DatabasePath).Msg("project store opened")
	}
	if settings.PricesURL != "" {
		prices = data.NewRemoteResolver(settings.PricesURL, settings.PricesAPIKey, log)
		log.Info().Str("url", settings.PricesURL).Msg("using remote price service")
	}
	deps.Prices = prices

	router := api.NewRouter(deps)

	addr := fmt.Sprintf(":%d", settings.Port)
	log.Info().Str("addr", addr).Str("env", settings.Env).Msg("starting API server")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
