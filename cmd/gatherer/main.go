package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"onionornot/internal/gatherer"
	"onionornot/internal/repositories/submission"
)

func main() {
	var (
		subreddit = flag.String("subreddit", "", "subreddit to gather from (TheOnion, nottheonion)")
		feed      = flag.String("feed", "hot", "feed to walk: best, hot, new, rising, top, controversial")
		count     = flag.Int("count", 25, "number of submissions to collect")
		amount    = flag.Int("amount-per-fetch", 100, "page size per listing request")
		output    = flag.String("output", "data/submissions.json", "dataset file (ignored with -redis-addr)")
		redisAddr = flag.String("redis-addr", "", "store into Redis at this address instead of a file")
		verbose   = flag.Bool("verbose", false, "log every listing request")
	)
	flag.Parse()

	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	if *subreddit == "" {
		logger.Fatal().Msg("-subreddit is required")
	}

	repo, err := newRepository(*redisAddr, *output)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create submission repository")
	}

	svc, err := gatherer.New(&gatherer.Config{
		Repository:     repo,
		AmountPerFetch: *amount,
		Logger:         logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create gatherer")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	go func() {
		<-sc
		logger.Warn().Msg("interrupted, stopping")
		cancel()
	}()

	result, err := svc.Gather(ctx, &gatherer.GatherInput{
		Subreddit: *subreddit,
		Feed:      gatherer.FeedType(*feed),
		Count:     *count,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("gathering failed")
	}

	logger.Info().Int("collected", result.Collected).Msg("done")
}

func newRepository(redisAddr, path string) (submission.Repository, error) {
	if redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		})
		return submission.NewRedis(&submission.Config{
			RedisClient: redisClient,
		})
	}
	return submission.NewFile(&submission.FileConfig{
		Path: path,
	})
}
