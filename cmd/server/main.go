package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"instagram-profile-compare/pkg/analysis"
	"instagram-profile-compare/pkg/api"
	"instagram-profile-compare/pkg/api/instagram"
	"instagram-profile-compare/pkg/database"
	"instagram-profile-compare/pkg/external"
	"instagram-profile-compare/pkg/report"
	"instagram-profile-compare/pkg/session"
	"instagram-profile-compare/pkg/utils"
)

// @title Instagram Profile Comparison API
// @version 1.0
// @description Compares engagement metrics of two Instagram profiles
// @host localhost:8080
// @BasePath /api/v1

func main() {
	// Load configuration
	config := utils.LoadConfig()

	// Initialize logging
	utils.InitLogger(config.Environment, config.LogLevel)

	// Session state lives in PostgreSQL when configured, in memory otherwise
	var sessions session.Store = session.NewMemoryStore()
	if config.DatabaseURL != "" {
		if err := database.Initialize(config.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("failed to initialize database")
		}
		defer database.Close()
		sessions = database.NewSessionStore(database.DB)
	}

	// Initialize RocketAPI client
	fetcher := external.NewRocketAPIClient(config.RocketAPIKey, external.WithBaseURL(config.RocketAPIBaseURL))

	service := analysis.NewService(
		fetcher,
		sessions,
		report.NewOffer(config.ReportFormURL, config.ReportPrice),
		config.MaxPosts,
	)

	// Set Gin mode
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := api.InitRouter(instagram.NewHandler(service, config.FetchTimeout))

	// Configure HTTP server
	server := &http.Server{
		Addr:           fmt.Sprintf(":%s", config.ServerPort),
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   config.FetchTimeout + 10*time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	go func() {
		log.Info().Msgf("Starting Instagram Profile Comparison on port %s", config.ServerPort)
		log.Info().Msgf("Environment: %s", config.Environment)
		log.Info().Msgf("Posts sampled per profile: %d", config.MaxPosts)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
}
