package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/nbsent/sentiment-bayes/pkg/config"
	"github.com/nbsent/sentiment-bayes/pkg/learning"
)

// ErrNotFound is returned by Load when nothing has been saved yet
var ErrNotFound = errors.New("no saved training counts")

// Backend persists training counts between runs
type Backend interface {
	Save(ctx context.Context, counts *learning.Counts) error
	Load(ctx context.Context) (*learning.Counts, error)
	Close() error
}

// Ensure both implementations satisfy the interface
var _ Backend = (*FileBackend)(nil)  // JSON file implementation
var _ Backend = (*RedisBackend)(nil) // Redis implementation

// Open creates the backend selected in cfg
func Open(cfg config.StoreConfig) (Backend, error) {
	switch cfg.Backend {
	case "file":
		return NewFileBackend(cfg.File.Path), nil
	case "redis":
		rb, err := NewRedisBackend(&RedisConfig{
			RedisURL:    cfg.Redis.RedisURL,
			KeyPrefix:   cfg.Redis.KeyPrefix,
			DatabaseNum: cfg.Redis.DatabaseNum,
			BatchSize:   cfg.Redis.BatchSize,
		})
		if err != nil {
			return nil, err
		}
		return rb, nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Backend)
	}
}
