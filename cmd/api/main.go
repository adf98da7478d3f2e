package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"donorpath/internal/adapter/repo"
	"donorpath/internal/http/handlers"
	httpapi "donorpath/internal/http/httpapi"
	"donorpath/internal/infra"
	"donorpath/internal/infra/geoip"
	"donorpath/internal/providers/analysis"
	"donorpath/internal/rbac"
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

	sqlRunner := infra.NewSQLRunner(dbpool, logger)
	health := infra.NewStoreHealth(sqlRunner, logger)

	countries, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip resolver unavailable")
	}

	app := &handlers.App{
		Logger:   logger,
		AppEnv:   cfg.AppEnv,
		Donors:   repo.NewDonorRepository(sqlRunner, health),
		Notes:    repo.NewNoteRepository(sqlRunner),
		Workflow: repo.NewWorkflowResponseRepository(sqlRunner),
		Versions: repo.NewAnalysisVersionRepository(sqlRunner),
		RBAC:     rbac.NewService(repo.NewRBACRepository(sqlRunner), logger),
		Analyzer: analysis.NewClient(analysis.Options{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
			Timeout: cfg.AnalysisTimeout,
		}),
	}

	router := httpapi.NewRouter(app, httpapi.Options{
		JWTSecret:       cfg.JWTSecret,
		AllowedOrigins:  allowedOrigins(),
		RateLimitPerMin: cfg.RateLimitPerMin,
		Logger:          logger,
		Countries:       countries,
	})

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
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

func allowedOrigins() []string {
	raw := os.Getenv("CORS_ALLOWED_ORIGINS")
	if raw == "" {
		return []string{"http://localhost:5173"}
	}
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
