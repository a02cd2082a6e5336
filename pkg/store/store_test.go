package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbsent/sentiment-bayes/pkg/config"
	"github.com/nbsent/sentiment-bayes/pkg/learning"
	"github.com/nbsent/sentiment-bayes/pkg/text"
)

var testRedisConfig = &RedisConfig{
	RedisURL:    "redis://localhost:6379",
	KeyPrefix:   "nbsent:test",
	DatabaseNum: 1, // Use separate database for testing
	BatchSize:   2,
}

func sampleCounts() *learning.Counts {
	counts := learning.NewCounts()
	for _, f := range []string{"fun", "couple", "love", "fast", "furious", "shoot", "fly"} {
		counts.Vocabulary.Add(f)
	}
	counts.Positive["fun"] = 3
	counts.Positive["couple"] = 2
	counts.Positive["love"] = 2
	counts.Positive["fast"] = 1
	counts.Negative["fast"] = 1
	counts.Negative["furious"] = 2
	counts.Negative["shoot"] = 4
	counts.Negative["fly"] = 1
	counts.PositiveDocs = 3
	counts.NegativeDocs = 2
	counts.Skipped = 1
	counts.LastTrained = time.Unix(1700000000, 0)
	counts.Preprocessing = learning.Preprocessing{
		Text: text.Options{
			Lowercase:         true,
			RemovePunctuation: true,
			Negation:          true,
			Ngrams:            true,
			NgramSize:         2,
		},
		StripHTML: true,
	}
	return counts
}

func assertSameCounts(t *testing.T, want, got *learning.Counts) {
	t.Helper()
	assert.Equal(t, want.Vocabulary.Features(), got.Vocabulary.Features())
	assert.Equal(t, want.Positive, got.Positive)
	assert.Equal(t, want.Negative, got.Negative)
	assert.Equal(t, want.PositiveDocs, got.PositiveDocs)
	assert.Equal(t, want.NegativeDocs, got.NegativeDocs)
	assert.Equal(t, want.Skipped, got.Skipped)
	assert.True(t, want.LastTrained.Equal(got.LastTrained))
	assert.Equal(t, want.Preprocessing, got.Preprocessing)
	assert.Empty(t, want.Preprocessing.Diff(got.Preprocessing))
}

func TestFileBackend(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "models", "counts.json")
	fb := NewFileBackend(path)
	defer fb.Close()

	_, err := fb.Load(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	want := sampleCounts()
	require.NoError(t, fb.Save(ctx, want))

	got, err := fb.Load(ctx)
	require.NoError(t, err)
	assertSameCounts(t, want, got)

	// Loaded counts fit to the same model
	m1, err := learning.Fit(want, learning.FitOptions{})
	require.NoError(t, err)
	m2, err := learning.Fit(got, learning.FitOptions{})
	require.NoError(t, err)
	assert.Equal(t, m1, m2)
}

func TestFileBackendOverwrite(t *testing.T) {
	ctx := context.Background()
	fb := NewFileBackend(filepath.Join(t.TempDir(), "counts.json"))

	require.NoError(t, fb.Save(ctx, sampleCounts()))

	smaller := learning.NewCounts()
	smaller.Vocabulary.Add("only")
	smaller.Positive["only"] = 1
	smaller.PositiveDocs = 1
	smaller.NegativeDocs = 1
	require.NoError(t, fb.Save(ctx, smaller))

	got, err := fb.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, got.Vocabulary.Features())
	assert.Empty(t, got.Negative)
}

func TestOpen(t *testing.T) {
	cfg := config.DefaultConfig().Store
	cfg.File.Path = filepath.Join(t.TempDir(), "counts.json")

	backend, err := Open(cfg)
	require.NoError(t, err)
	assert.IsType(t, &FileBackend{}, backend)

	cfg.Backend = "sqlite"
	_, err = Open(cfg)
	assert.Error(t, err)

	cfg.Backend = "redis"
	cfg.Redis.RedisURL = "not-a-url"
	_, err = Open(cfg)
	assert.Error(t, err)
}

func TestRedisBackend(t *testing.T) {
	// Skip if Redis not available
	if !isRedisAvailable() {
		t.Skip("Redis not available, skipping test")
	}

	ctx := context.Background()
	rb, err := NewRedisBackend(testRedisConfig)
	require.NoError(t, err)
	defer rb.Close()
	defer rb.Reset(ctx)

	require.NoError(t, rb.Reset(ctx))

	_, err = rb.Load(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	want := sampleCounts()
	require.NoError(t, rb.Save(ctx, want))

	got, err := rb.Load(ctx)
	require.NoError(t, err)
	assertSameCounts(t, want, got)

	// A second save replaces rather than adds
	require.NoError(t, rb.Save(ctx, want))
	got, err = rb.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Positive["fun"])
}

func isRedisAvailable() bool {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1, // Use test database
	})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := client.Ping(ctx).Err()
	return err == nil
}
