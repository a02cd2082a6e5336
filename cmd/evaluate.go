package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/nbsent/sentiment-bayes/pkg/evaluation"
	"github.com/nbsent/sentiment-bayes/pkg/learning"
	"github.com/nbsent/sentiment-bayes/pkg/profiler"
)

var (
	evalFromStore bool
	evalSave      bool
	evalProfile   bool
	evalWorkers   int
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Train, fit and measure accuracy on the test directories",
	Long: `Train on the configured positive and negative training directories, fit the
model and report per-class and overall accuracy on the test directories.

With --from-store the training counts saved by 'nbsent train' are used instead
of re-reading the training corpus.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline(configPath)
		if err != nil {
			return err
		}
		defer p.Close()

		_, err = runEvaluation(cmd.Context(), cmd.OutOrStdout(), p, evaluationOptions{
			fromStore: evalFromStore,
			save:      evalSave,
			profile:   evalProfile,
			workers:   evalWorkers,
		})
		return err
	},
}

type evaluationOptions struct {
	fromStore bool
	save      bool
	profile   bool
	workers   int
}

// runEvaluation prints the configuration, trains or loads counts, fits the
// model and reports accuracy on the test directories
func runEvaluation(ctx context.Context, out io.Writer, p *pipeline, opts evaluationOptions) (*evaluation.Report, error) {
	if err := p.cfg.RequireTestData(); err != nil {
		return nil, err
	}

	var prof *profiler.Profiler
	if opts.profile {
		prof = profiler.NewProfiler()
	}

	p.cfg.PrintParameters(out)

	start := time.Now()

	counts, err := p.counts(ctx, opts.fromStore, prof)
	if err != nil {
		return nil, err
	}

	if opts.save && !opts.fromStore {
		if err := p.saveCounts(ctx, counts); err != nil {
			return nil, err
		}
	}

	model, err := p.fit(counts, prof)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "Training documents: %d positive, %d negative\n", counts.PositiveDocs, counts.NegativeDocs)
	if counts.Skipped > 0 {
		fmt.Fprintf(out, "⚠️  Skipped %d unreadable training docs\n", counts.Skipped)
	}
	fmt.Fprintf(out, "Vocabulary size: %d\n", model.VocabularySize)
	fmt.Fprintf(out, "Feature size: %d\n", model.FeatureSize)

	workers := p.cfg.Performance.Workers
	if opts.workers > 0 {
		workers = opts.workers
	}

	classifier := learning.NewClassifier(model, p.preprocessor)
	evaluator := evaluation.NewEvaluator(p.provider, classifier, workers, p.logger).WithProfiler(prof)

	report, err := evaluator.Evaluate(ctx, p.cfg.Data.PositiveTestDir, p.cfg.Data.NegativeTestDir)
	if err != nil {
		return nil, err
	}

	report.Print(out)
	fmt.Fprintf(out, "⏱️  Time taken: %v\n", time.Since(start).Round(time.Millisecond))

	if opts.profile {
		fmt.Fprintln(out)
		prof.PrintReport(out)
	}

	return report, nil
}

func init() {
	evaluateCmd.Flags().BoolVar(&evalFromStore, "from-store", false, "Use training counts saved by 'nbsent train'")
	evaluateCmd.Flags().BoolVar(&evalSave, "save", false, "Save the training counts to the configured store")
	evaluateCmd.Flags().BoolVar(&evalProfile, "profile", false, "Print phase timings")
	evaluateCmd.Flags().IntVarP(&evalWorkers, "workers", "w", 0, "Classification workers (overrides config)")
}
