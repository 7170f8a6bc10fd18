package submission

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"onionornot/internal/models"
)

const (
	// Key prefixes for Redis
	submissionKeyPrefix = "submission:"
	submissionsIndexKey = "submissions"
)

// Config holds configuration for the Redis submission repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed submission repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveSubmissions persists a batch of submissions to Redis
func (r *redisRepository) SaveSubmissions(ctx context.Context, input *SaveSubmissionsInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	pipe := r.client.Pipeline()

	for i := range input.Submissions {
		record := &input.Submissions[i]

		recordJSON, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal submission %s: %w", record.ID, err)
		}

		key := fmt.Sprintf("%s%s", submissionKeyPrefix, record.ID)
		pipe.Set(ctx, key, recordJSON, 0)
		pipe.SAdd(ctx, submissionsIndexKey, record.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save submissions: %w", err)
	}

	return nil
}

// ListSubmissions retrieves the full dataset from Redis
func (r *redisRepository) ListSubmissions(ctx context.Context, input *ListSubmissionsInput) (*ListSubmissionsOutput, error) {
	ids, err := r.client.SMembers(ctx, submissionsIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list submission ids: %w", err)
	}

	output := &ListSubmissionsOutput{
		Submissions: make([]models.SubmissionRecord, 0, len(ids)),
	}

	for _, id := range ids {
		key := fmt.Sprintf("%s%s", submissionKeyPrefix, id)
		recordJSON, err := r.client.Get(ctx, key).Result()
		if err != nil {
			if err == redis.Nil {
				// Index entry without a record; skip it.
				continue
			}
			return nil, fmt.Errorf("failed to get submission %s: %w", id, err)
		}

		var record models.SubmissionRecord
		if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal submission %s: %w", id, err)
		}

		output.Submissions = append(output.Submissions, record)
	}

	return output, nil
}
