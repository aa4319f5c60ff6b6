package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"lariskan-server/internal/adapter/repo"
	"lariskan-server/internal/copygen"
	"lariskan-server/internal/domain"
	"lariskan-server/internal/http/handlers"
	httpapi "lariskan-server/internal/http/httpapi"
	"lariskan-server/internal/infra"
	"lariskan-server/internal/infra/geoip"
	"lariskan-server/internal/providers/vlm"
	"lariskan-server/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	geo, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}

	store, err := storage.NewFileStore(cfg.StoragePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init storage")
	}

	profiles := repo.NewProfileRepository(dbpool)
	products := repo.NewProductRepository(dbpool)

	registry := vlm.NewRegistry(domain.NormalizeModel(cfg.DefaultModel))
	if cfg.MistralAPIKey != "" {
		mistral, err := vlm.NewMistralGenerator(vlm.MistralOptions{
			APIKey:  cfg.MistralAPIKey,
			Model:   cfg.MistralModel,
			BaseURL: cfg.MistralBaseURL,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to init mistral backend")
		}
		registry.Register(domain.ModelMistral, mistral)
	}
	if cfg.GeminiAPIKey != "" {
		gemini, err := vlm.NewGeminiGenerator(vlm.GeminiOptions{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to init gemini backend")
		}
		registry.Register(domain.ModelGemini, gemini)
	}

	app := &handlers.App{
		Logger:   logger,
		Config:   cfg,
		SQL:      infra.NewSQLRunner(dbpool, logger),
		Profiles: profiles,
		Products: products,
		Copy:     copygen.NewService(profiles, products, registry, logger),
		Store:    store,
	}

	router := httpapi.NewRouter(app, geo)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	logger.Info().Msg("server stopped")
}
