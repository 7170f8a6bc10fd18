package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"onionornot/internal/common/identity"
	"onionornot/internal/config"
	"onionornot/internal/handlers/web"
	"onionornot/internal/questions"
	"onionornot/internal/registry"
	"onionornot/internal/repositories/submission"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := newLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := newRepository(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create submission repository")
	}

	dataset, err := repo.ListSubmissions(ctx, &submission.ListSubmissionsInput{})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load dataset")
	}
	if len(dataset.Submissions) == 0 {
		logger.Fatal().Msg("dataset is empty; run the gatherer first")
	}

	bank, err := questions.New(&questions.Config{
		Records: dataset.Submissions,
		Seed:    cfg.BankSeed,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build question bank")
	}
	logger.Info().Int("questions", bank.Size()).Msg("question bank loaded")

	gameRegistry, err := registry.New(&registry.Config{
		Bank:   bank,
		Logger: logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create registry")
	}

	handler, err := web.New(&web.Config{
		Registry: gameRegistry,
		Bank:     bank,
		IDs:      identity.New(),
		Logger:   logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create web handler")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	go func() {
		logger.Info().Str("addr", cfg.Addr()).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown failed")
	}
}

// newRepository picks the Redis store when an address is configured and
// falls back to the JSON dataset file otherwise.
func newRepository(cfg *config.Config) (submission.Repository, error) {
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		return submission.NewRedis(&submission.Config{
			RedisClient: redisClient,
		})
	}
	return submission.NewFile(&submission.FileConfig{
		Path: cfg.DatasetPath,
	})
}

func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(parsed).With().Timestamp().Logger()
}
