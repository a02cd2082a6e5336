package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/nbsent/sentiment-bayes/pkg/config"
	"github.com/nbsent/sentiment-bayes/pkg/corpus"
	"github.com/nbsent/sentiment-bayes/pkg/learning"
	"github.com/nbsent/sentiment-bayes/pkg/logging"
	"github.com/nbsent/sentiment-bayes/pkg/profiler"
	"github.com/nbsent/sentiment-bayes/pkg/store"
	"github.com/nbsent/sentiment-bayes/pkg/text"
)

// pipeline bundles everything built from one loaded configuration
type pipeline struct {
	cfg          *config.Config
	logger       *slog.Logger
	logCloser    io.Closer
	provider     *corpus.DirProvider
	preprocessor *text.Preprocessor
}

// newPipeline loads the configuration and builds the logger, corpus provider
// and preprocessor. Configuration problems surface here, before any document
// is read.
func newPipeline(path string) (*pipeline, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, closer, err := logging.Open(cfg.Logging)
	if err != nil {
		return nil, err
	}

	var stopWords text.StopWords
	if cfg.Parameters.StopWords {
		stopWords, err = text.LoadStopWords(cfg.Data.StopWordFile)
		if err != nil {
			closer.Close()
			return nil, fmt.Errorf("data.stop_word_file: %w", err)
		}
	}

	preprocessor, err := text.NewPreprocessor(preprocessorOptions(cfg), stopWords)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("invalid preprocessing parameters: %w", err)
	}

	return &pipeline{
		cfg:          cfg,
		logger:       logger,
		logCloser:    closer,
		provider:     corpus.NewDirProvider(corpusOptions(cfg)),
		preprocessor: preprocessor,
	}, nil
}

func (p *pipeline) Close() error {
	return p.logCloser.Close()
}

// train builds counts from the configured training directories
func (p *pipeline) train(ctx context.Context, prof *profiler.Profiler) (*learning.Counts, error) {
	if err := p.cfg.RequireTrainingData(); err != nil {
		return nil, err
	}
	return p.trainDirs(ctx, prof, p.cfg.Data.PositiveTrainDir, p.cfg.Data.NegativeTrainDir)
}

// trainDirs builds counts from the given directories and stamps them with
// the preprocessing in effect
func (p *pipeline) trainDirs(ctx context.Context, prof *profiler.Profiler, positiveDir, negativeDir string) (*learning.Counts, error) {
	timer := prof.Start(profiler.PhaseTrain)
	defer timer.Stop()

	builder := learning.NewBuilder(p.provider, p.preprocessor, p.logger)
	counts, err := builder.TrainClasses(ctx, positiveDir, negativeDir)
	if err != nil {
		return nil, err
	}

	counts.Preprocessing = p.preprocessing()
	return counts, nil
}

// preprocessing describes the feature pipeline built from the configuration
func (p *pipeline) preprocessing() learning.Preprocessing {
	opts := corpusOptions(p.cfg)
	return learning.Preprocessing{
		Text:             p.preprocessor.Options(),
		PartOfSpeech:     opts.PartOfSpeech,
		StripHTML:        opts.StripHTML,
		NormalizeUnicode: opts.NormalizeUnicode,
	}
}

// loadCounts reads counts saved by a previous train run. Counts built with a
// different preprocessing pipeline are rejected.
func (p *pipeline) loadCounts(ctx context.Context) (*learning.Counts, error) {
	backend, err := store.Open(p.cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	defer backend.Close()

	counts, err := backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load training counts (run 'nbsent train' first): %w", err)
	}

	if err := counts.Check(p.preprocessing()); err != nil {
		return nil, fmt.Errorf("saved training counts do not match the configuration (retrain with 'nbsent train'): %w", err)
	}

	p.logger.Debug("loaded training counts", "backend", p.cfg.Store.Backend,
		"vocabulary", len(counts.Vocabulary), "documents", counts.TotalDocs())

	return counts, nil
}

// saveCounts persists counts to the configured store
func (p *pipeline) saveCounts(ctx context.Context, counts *learning.Counts) error {
	backend, err := store.Open(p.cfg.Store)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer backend.Close()

	if err := backend.Save(ctx, counts); err != nil {
		return fmt.Errorf("failed to save training counts: %w", err)
	}

	return nil
}

// fit fits a model from counts using the configured reduction
func (p *pipeline) fit(counts *learning.Counts, prof *profiler.Profiler) (*learning.Model, error) {
	timer := prof.Start(profiler.PhaseFit)
	defer timer.Stop()

	return learning.Fit(counts, fitOptions(p.cfg))
}

// counts trains fresh or loads from the store
func (p *pipeline) counts(ctx context.Context, fromStore bool, prof *profiler.Profiler) (*learning.Counts, error) {
	if fromStore {
		return p.loadCounts(ctx)
	}
	return p.train(ctx, prof)
}

func preprocessorOptions(cfg *config.Config) text.Options {
	p := cfg.Parameters
	return text.Options{
		Lowercase:              p.Lowercase,
		RemovePunctuation:      p.RemovePunctuation,
		RemoveDigits:           p.RemoveDigits,
		StopWords:              p.StopWords,
		Stem:                   p.Stem,
		StemLanguage:           p.StemLanguage,
		Negation:               p.Negation,
		Ngrams:                 p.Ngrams,
		NgramSize:              p.NgramSize,
		SingleOccurrencePerDoc: p.SingleOccurrencePerDoc,
	}
}

func corpusOptions(cfg *config.Config) corpus.Options {
	return corpus.Options{
		Extensions:       cfg.Corpus.Extensions,
		StripHTML:        cfg.Corpus.StripHTML,
		NormalizeUnicode: cfg.Corpus.NormalizeUnicode,
		PartOfSpeech:     cfg.Parameters.PartOfSpeech,
	}
}

func fitOptions(cfg *config.Config) learning.FitOptions {
	return learning.FitOptions{
		ReduceFeature:      cfg.Parameters.ReduceFeature,
		ReduceFeatureCount: cfg.Parameters.ReduceFeatureCount,
	}
}
