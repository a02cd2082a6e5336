package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/nbsent/sentiment-bayes/pkg/evaluation"
	"github.com/nbsent/sentiment-bayes/pkg/learning"
	"github.com/nbsent/sentiment-bayes/pkg/profiler"
)

var (
	benchmarkRuns      int
	benchmarkWorkers   int
	benchmarkFromStore bool
)

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Performance benchmark of classification",
	Long: `Fit a model once, then classify the configured test directories several times
and report throughput and per-document latency.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if benchmarkRuns < 1 {
			return fmt.Errorf("runs must be >= 1")
		}

		p, err := newPipeline(configPath)
		if err != nil {
			return err
		}
		defer p.Close()

		if err := p.cfg.RequireTestData(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		ctx := cmd.Context()
		prof := profiler.NewProfiler()

		counts, err := p.counts(ctx, benchmarkFromStore, prof)
		if err != nil {
			return err
		}

		model, err := p.fit(counts, prof)
		if err != nil {
			return err
		}

		workers := p.cfg.Performance.Workers
		if benchmarkWorkers > 0 {
			workers = benchmarkWorkers
		}

		fmt.Fprintf(out, "🚀 nbsent Performance Benchmark\n")
		fmt.Fprintf(out, "📁 Test directories: %s, %s\n", p.cfg.Data.PositiveTestDir, p.cfg.Data.NegativeTestDir)
		fmt.Fprintf(out, "🔄 Benchmark runs: %d\n", benchmarkRuns)
		fmt.Fprintf(out, "⚡ Workers: %d (0 = one per CPU)\n", workers)
		fmt.Fprintf(out, "📊 Feature size: %d\n\n", model.FeatureSize)

		classifier := learning.NewClassifier(model, p.preprocessor)
		evaluator := evaluation.NewEvaluator(p.provider, classifier, workers, p.logger).WithProfiler(prof)

		result := &BenchmarkResult{}
		start := time.Now()

		for run := 0; run < benchmarkRuns; run++ {
			report, err := evaluator.Evaluate(ctx, p.cfg.Data.PositiveTestDir, p.cfg.Data.NegativeTestDir)
			if err != nil {
				return err
			}
			result.Documents += report.Total()
			result.Correct += report.Correct()
			result.Errors += report.Positive.Skipped + report.Negative.Skipped
		}

		result.TotalTime = time.Since(start)
		result.Classify = prof.GetStats(profiler.PhaseClassify)
		result.Read = prof.GetStats(profiler.PhaseRead)

		if result.Documents == 0 {
			return fmt.Errorf("%w in %s or %s", evaluation.ErrNoTestDocuments, p.cfg.Data.PositiveTestDir, p.cfg.Data.NegativeTestDir)
		}

		displayBenchmarkResults(out, result)
		prof.PrintReport(out)

		return nil
	},
}

// BenchmarkResult contains performance metrics across all runs
type BenchmarkResult struct {
	Documents int
	Correct   int
	Errors    int
	TotalTime time.Duration

	Read     *profiler.Stats
	Classify *profiler.Stats
}

// DocsPerSecond is the end-to-end throughput including reads
func (r *BenchmarkResult) DocsPerSecond() float64 {
	if r.TotalTime <= 0 {
		return 0
	}
	return float64(r.Documents) / r.TotalTime.Seconds()
}

// displayBenchmarkResults shows formatted benchmark results
func displayBenchmarkResults(w io.Writer, result *BenchmarkResult) {
	fmt.Fprintf(w, "📊 Benchmark Results\n")
	fmt.Fprintf(w, "═══════════════════════════════════════\n\n")

	fmt.Fprintf(w, "⚡ Performance Metrics:\n")
	fmt.Fprintf(w, "  Total documents classified: %d\n", result.Documents)
	fmt.Fprintf(w, "  Total time: %v\n", result.TotalTime.Round(time.Millisecond))
	fmt.Fprintf(w, "  Documents per second: %.0f\n", result.DocsPerSecond())
	fmt.Fprintf(w, "\n")

	if result.Classify != nil {
		fmt.Fprintf(w, "📈 Classification Latency:\n")
		fmt.Fprintf(w, "  Average: %.3f ms\n", ms(result.Classify.Average))
		fmt.Fprintf(w, "  Min: %.3f ms\n", ms(result.Classify.Min))
		fmt.Fprintf(w, "  Max: %.3f ms\n", ms(result.Classify.Max))
		fmt.Fprintf(w, "  95th percentile: %.3f ms\n", ms(result.Classify.P95))
		fmt.Fprintf(w, "\n")
	}

	fmt.Fprintf(w, "🎯 Classification Results:\n")
	fmt.Fprintf(w, "  Accuracy: %.2f%%\n", 100*float64(result.Correct)/float64(result.Documents))
	fmt.Fprintf(w, "  Unreadable documents: %d\n", result.Errors)
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "🏆 Performance Assessment:\n")
	switch dps := result.DocsPerSecond(); {
	case dps > 10000:
		fmt.Fprintf(w, "  🚀 HIGH THROUGHPUT: %.0f docs/second\n", dps)
	case dps > 1000:
		fmt.Fprintf(w, "  ⚡ GOOD THROUGHPUT: %.0f docs/second\n", dps)
	default:
		fmt.Fprintf(w, "  🐌 LOW THROUGHPUT: %.0f docs/second\n", dps)
	}

	if result.Read != nil && result.Classify != nil && result.Read.Average > result.Classify.Average {
		fmt.Fprintf(w, "  💡 Reading dominates; part_of_speech and strip_html are the costly corpus options\n")
	}

	fmt.Fprintf(w, "\n")
}

func ms(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

func init() {
	benchmarkCmd.Flags().IntVarP(&benchmarkRuns, "runs", "r", 3, "Number of benchmark runs")
	benchmarkCmd.Flags().IntVarP(&benchmarkWorkers, "workers", "w", 0, "Classification workers (overrides config)")
	benchmarkCmd.Flags().BoolVar(&benchmarkFromStore, "from-store", false, "Use training counts saved by 'nbsent train'")
}
