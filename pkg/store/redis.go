package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nbsent/sentiment-bayes/pkg/learning"
)

// RedisBackend keeps counts in Redis hashes:
//
//	<prefix>:counts:positive  feature -> count
//	<prefix>:counts:negative  feature -> count
//	<prefix>:vocab            set of features
//	<prefix>:meta             document counts, training time and preprocessing
type RedisBackend struct {
	client *redis.Client
	config *RedisConfig
}

// RedisConfig holds Redis backend configuration
type RedisConfig struct {
	RedisURL    string
	KeyPrefix   string
	DatabaseNum int

	// Fields written per HSET/SADD command
	BatchSize int
}

// DefaultRedisConfig returns default Redis configuration
func DefaultRedisConfig() *RedisConfig {
	return &RedisConfig{
		RedisURL:    "redis://localhost:6379",
		KeyPrefix:   "nbsent",
		DatabaseNum: 0,
		BatchSize:   1000,
	}
}

// NewRedisBackend connects to Redis and checks the connection
func NewRedisBackend(config *RedisConfig) (*RedisBackend, error) {
	if config == nil {
		config = DefaultRedisConfig()
	}
	if config.BatchSize < 1 {
		config.BatchSize = 1000
	}

	opt, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}

	opt.DB = config.DatabaseNum
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("Redis connection failed: %w", err)
	}

	return &RedisBackend{
		client: client,
		config: config,
	}, nil
}

// Save replaces any stored counts in a single transaction
func (rb *RedisBackend) Save(ctx context.Context, counts *learning.Counts) error {
	pipe := rb.client.TxPipeline()

	pipe.Del(ctx, rb.key("counts:positive"), rb.key("counts:negative"), rb.key("vocab"), rb.key("meta"))

	rb.queueCounts(ctx, pipe, rb.key("counts:positive"), counts.Positive)
	rb.queueCounts(ctx, pipe, rb.key("counts:negative"), counts.Negative)

	batch := make([]interface{}, 0, rb.config.BatchSize)
	for _, feature := range counts.Vocabulary.Features() {
		batch = append(batch, feature)
		if len(batch) == rb.config.BatchSize {
			pipe.SAdd(ctx, rb.key("vocab"), batch...)
			batch = make([]interface{}, 0, rb.config.BatchSize)
		}
	}
	if len(batch) > 0 {
		pipe.SAdd(ctx, rb.key("vocab"), batch...)
	}

	preprocessing, err := json.Marshal(counts.Preprocessing)
	if err != nil {
		return fmt.Errorf("failed to marshal preprocessing: %w", err)
	}

	pipe.HSet(ctx, rb.key("meta"),
		"preprocessing", string(preprocessing),
		"positive_docs", counts.PositiveDocs,
		"negative_docs", counts.NegativeDocs,
		"skipped", counts.Skipped,
		"last_trained", counts.LastTrained.Unix())

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save counts: %w", err)
	}

	return nil
}

func (rb *RedisBackend) queueCounts(ctx context.Context, pipe redis.Pipeliner, key string, wc learning.WordCounts) {
	fields := make(map[string]interface{}, rb.config.BatchSize)
	for feature, count := range wc {
		fields[feature] = count
		if len(fields) == rb.config.BatchSize {
			pipe.HSet(ctx, key, fields)
			fields = make(map[string]interface{}, rb.config.BatchSize)
		}
	}
	if len(fields) > 0 {
		pipe.HSet(ctx, key, fields)
	}
}

// Load reads the stored counts
func (rb *RedisBackend) Load(ctx context.Context) (*learning.Counts, error) {
	pipe := rb.client.Pipeline()
	metaCmd := pipe.HGetAll(ctx, rb.key("meta"))
	posCmd := pipe.HGetAll(ctx, rb.key("counts:positive"))
	negCmd := pipe.HGetAll(ctx, rb.key("counts:negative"))
	vocabCmd := pipe.SMembers(ctx, rb.key("vocab"))

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to load counts: %w", err)
	}

	meta := metaCmd.Val()
	if len(meta) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, rb.key("meta"))
	}

	counts := learning.NewCounts()

	var err error
	if counts.PositiveDocs, err = strconv.Atoi(meta["positive_docs"]); err != nil {
		return nil, fmt.Errorf("invalid positive_docs: %w", err)
	}
	if counts.NegativeDocs, err = strconv.Atoi(meta["negative_docs"]); err != nil {
		return nil, fmt.Errorf("invalid negative_docs: %w", err)
	}
	counts.Skipped, _ = strconv.Atoi(meta["skipped"])
	if ts, err := strconv.ParseInt(meta["last_trained"], 10, 64); err == nil {
		counts.LastTrained = time.Unix(ts, 0)
	}
	if raw, ok := meta["preprocessing"]; ok {
		if err := json.Unmarshal([]byte(raw), &counts.Preprocessing); err != nil {
			return nil, fmt.Errorf("invalid preprocessing: %w", err)
		}
	}

	if err := parseCounts(posCmd.Val(), counts.Positive); err != nil {
		return nil, err
	}
	if err := parseCounts(negCmd.Val(), counts.Negative); err != nil {
		return nil, err
	}

	for _, feature := range vocabCmd.Val() {
		counts.Vocabulary.Add(feature)
	}

	return counts, nil
}

func parseCounts(fields map[string]string, wc learning.WordCounts) error {
	for feature, value := range fields {
		count, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid count for %q: %w", feature, err)
		}
		wc[feature] = count
	}
	return nil
}

// Reset deletes the stored counts
func (rb *RedisBackend) Reset(ctx context.Context) error {
	return rb.client.Del(ctx, rb.key("counts:positive"), rb.key("counts:negative"), rb.key("vocab"), rb.key("meta")).Err()
}

// Close closes the Redis connection
func (rb *RedisBackend) Close() error {
	return rb.client.Close()
}

func (rb *RedisBackend) key(name string) string {
	return fmt.Sprintf("%s:%s", rb.config.KeyPrefix, name)
}
