package evaluation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/nbsent/sentiment-bayes/pkg/corpus"
	"github.com/nbsent/sentiment-bayes/pkg/learning"
	"github.com/nbsent/sentiment-bayes/pkg/profiler"
)

// ErrNoTestDocuments is returned for accuracy when both test sets are empty
var ErrNoTestDocuments = errors.New("no test documents")

// DocumentClassifier labels a tokenized document
type DocumentClassifier interface {
	Classify(tokens []string) learning.Sentiment
}

// SetResult holds the outcome for one held-out directory
type SetResult struct {
	Label   learning.Sentiment `json:"label"`
	Dir     string             `json:"dir"`
	Total   int                `json:"total"`
	Correct int                `json:"correct"`
	Skipped int                `json:"skipped"`
}

// Report aggregates both held-out sets
type Report struct {
	Positive SetResult `json:"positive"`
	Negative SetResult `json:"negative"`
}

// Total is the number of classified documents
func (r *Report) Total() int {
	return r.Positive.Total + r.Negative.Total
}

// Correct is the number of correctly classified documents
func (r *Report) Correct() int {
	return r.Positive.Correct + r.Negative.Correct
}

// Accuracy returns the percentage of correctly classified documents
func (r *Report) Accuracy() (float64, error) {
	total := r.Total()
	if total == 0 {
		return 0, ErrNoTestDocuments
	}
	return 100.0 * float64(r.Correct()) / float64(total), nil
}

// Print writes the evaluation summary
func (r *Report) Print(w io.Writer) {
	for _, set := range []SetResult{r.Negative, r.Positive} {
		fmt.Fprintf(w, "Correctly predicted %d docs out of %d %s docs\n", set.Correct, set.Total, set.Label)
		if set.Skipped > 0 {
			fmt.Fprintf(w, "⚠️  Skipped %d unreadable %s docs\n", set.Skipped, set.Label)
		}
	}

	accuracy, err := r.Accuracy()
	if err != nil {
		fmt.Fprintf(w, "Accuracy: undefined (%v)\n", err)
		return
	}
	fmt.Fprintf(w, "Accuracy: %.2f%%\n", accuracy)
}

// Evaluator classifies held-out directories with a pool of workers
type Evaluator struct {
	provider   corpus.Provider
	classifier DocumentClassifier
	workers    int
	logger     *slog.Logger
	profiler   *profiler.Profiler
}

// NewEvaluator creates an evaluator. workers < 1 uses one worker per CPU.
func NewEvaluator(provider corpus.Provider, classifier DocumentClassifier, workers int, logger *slog.Logger) *Evaluator {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Evaluator{
		provider:   provider,
		classifier: classifier,
		workers:    workers,
		logger:     logger,
	}
}

// WithProfiler records read and classify timings into p
func (e *Evaluator) WithProfiler(p *profiler.Profiler) *Evaluator {
	e.profiler = p
	return e
}

// EvaluateDir classifies every document in dir against its true label.
// Unreadable documents are skipped and counted separately.
func (e *Evaluator) EvaluateDir(ctx context.Context, dir string, label learning.Sentiment) (SetResult, error) {
	result := SetResult{Label: label, Dir: dir}

	ids, err := e.provider.List(dir)
	if err != nil {
		return result, err
	}

	var total, correct, skipped atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for _, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			timer := e.startTimer(profiler.PhaseRead)
			tokens, err := e.provider.Read(id)
			timer.Stop()
			if err != nil {
				skipped.Add(1)
				e.logger.Warn("skipping test document", "path", id, "error", err)
				return nil
			}

			timer = e.startTimer(profiler.PhaseClassify)
			got := e.classifier.Classify(tokens)
			timer.Stop()

			total.Add(1)
			if got == label {
				correct.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}

	result.Total = int(total.Load())
	result.Correct = int(correct.Load())
	result.Skipped = int(skipped.Load())

	e.logger.Debug("evaluated directory", "dir", dir, "label", label, "total", result.Total, "correct", result.Correct)

	return result, nil
}

// Evaluate runs both held-out sets
func (e *Evaluator) Evaluate(ctx context.Context, positiveDir, negativeDir string) (*Report, error) {
	negative, err := e.EvaluateDir(ctx, negativeDir, learning.Negative)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate negative test set: %w", err)
	}

	positive, err := e.EvaluateDir(ctx, positiveDir, learning.Positive)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate positive test set: %w", err)
	}

	return &Report{Positive: positive, Negative: negative}, nil
}

func (e *Evaluator) startTimer(phase string) *profiler.Timer {
	return e.profiler.Start(phase)
}
