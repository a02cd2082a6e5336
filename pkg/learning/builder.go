package learning

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nbsent/sentiment-bayes/pkg/corpus"
	"github.com/nbsent/sentiment-bayes/pkg/text"
)

// Builder accumulates vocabulary and word counts from corpus directories
type Builder struct {
	provider     corpus.Provider
	preprocessor *text.Preprocessor
	logger       *slog.Logger

	skipped atomic.Int64
}

// NewBuilder creates a builder. A nil logger discards warnings.
func NewBuilder(provider corpus.Provider, preprocessor *text.Preprocessor, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Builder{
		provider:     provider,
		preprocessor: preprocessor,
		logger:       logger,
	}
}

// Train processes every document in dir, adding its features to vocab and
// counts. Unreadable documents are logged and skipped. Returns the number of
// documents processed.
func (b *Builder) Train(ctx context.Context, dir string, vocab Vocabulary, counts WordCounts) (int, error) {
	ids, err := b.provider.List(dir)
	if err != nil {
		return 0, err
	}

	docs := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return docs, err
		}

		tokens, err := b.provider.Read(id)
		if err != nil {
			b.skipped.Add(1)
			b.logger.Warn("skipping document", "path", id, "error", err)
			continue
		}

		for _, feature := range b.preprocessor.Process(tokens) {
			vocab.Add(feature)
			counts[feature]++
		}
		docs++
	}

	b.logger.Debug("trained directory", "dir", dir, "documents", docs)

	return docs, nil
}

// Skipped is the number of documents skipped so far
func (b *Builder) Skipped() int {
	return int(b.skipped.Load())
}

// TrainClasses trains the positive and negative directories concurrently.
// Each pass owns its own vocabulary and table; the vocabularies are merged
// once both passes are done. An empty class directory is an error.
func (b *Builder) TrainClasses(ctx context.Context, positiveDir, negativeDir string) (*Counts, error) {
	counts := NewCounts()
	posVocab, negVocab := NewVocabulary(), NewVocabulary()
	skippedBefore := b.Skipped()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := b.Train(gctx, positiveDir, posVocab, counts.Positive)
		if err != nil {
			return fmt.Errorf("failed to train positive corpus: %w", err)
		}
		counts.PositiveDocs = n
		return nil
	})

	g.Go(func() error {
		n, err := b.Train(gctx, negativeDir, negVocab, counts.Negative)
		if err != nil {
			return fmt.Errorf("failed to train negative corpus: %w", err)
		}
		counts.NegativeDocs = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if counts.PositiveDocs == 0 {
		return nil, fmt.Errorf("%w: positive training directory %s", ErrEmptyCorpus, positiveDir)
	}
	if counts.NegativeDocs == 0 {
		return nil, fmt.Errorf("%w: negative training directory %s", ErrEmptyCorpus, negativeDir)
	}

	counts.Vocabulary.Merge(posVocab)
	counts.Vocabulary.Merge(negVocab)
	counts.Skipped = b.Skipped() - skippedBefore
	counts.LastTrained = time.Now()

	return counts, nil
}
