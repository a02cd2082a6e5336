package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	trainPositiveDir string
	trainNegativeDir string
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Build training counts and save them",
	Long: `Read the positive and negative training directories, build the vocabulary and
per-class word counts and save them to the configured store (JSON file or Redis).

The saved counts are used by 'fit', 'features', 'classify' and 'evaluate --from-store'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline(configPath)
		if err != nil {
			return err
		}
		defer p.Close()

		positiveDir, negativeDir := p.cfg.Data.PositiveTrainDir, p.cfg.Data.NegativeTrainDir
		if trainPositiveDir != "" {
			positiveDir = trainPositiveDir
		}
		if trainNegativeDir != "" {
			negativeDir = trainNegativeDir
		}
		if positiveDir == "" || negativeDir == "" {
			return fmt.Errorf("both positive and negative training directories are required")
		}

		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "🧠 Naive Bayes Training\n")
		fmt.Fprintf(out, "═══════════════════════════════════════\n")
		fmt.Fprintf(out, "📁 Positive directory: %s\n", positiveDir)
		fmt.Fprintf(out, "📁 Negative directory: %s\n", negativeDir)
		fmt.Fprintf(out, "💾 Store: %s\n", storeLocation(p))
		fmt.Fprintf(out, "\n")

		start := time.Now()

		counts, err := p.trainDirs(cmd.Context(), nil, positiveDir, negativeDir)
		if err != nil {
			return err
		}

		duration := time.Since(start)

		if err := p.saveCounts(cmd.Context(), counts); err != nil {
			return err
		}

		total := counts.TotalDocs()
		fmt.Fprintf(out, "✅ Trained on %d positive docs\n", counts.PositiveDocs)
		fmt.Fprintf(out, "✅ Trained on %d negative docs\n", counts.NegativeDocs)
		if counts.Skipped > 0 {
			fmt.Fprintf(out, "⚠️  Skipped %d unreadable docs\n", counts.Skipped)
		}
		fmt.Fprintf(out, "\n🎉 Training Complete!\n")
		fmt.Fprintf(out, "📊 Vocabulary size: %d\n", len(counts.Vocabulary))
		fmt.Fprintf(out, "⏱️  Time taken: %v\n", duration.Round(time.Millisecond))
		if seconds := duration.Seconds(); seconds > 0 {
			fmt.Fprintf(out, "📈 Rate: %.0f docs/second\n", float64(total)/seconds)
		}
		fmt.Fprintf(out, "💾 Counts saved to: %s\n", storeLocation(p))

		return nil
	},
}

func storeLocation(p *pipeline) string {
	if p.cfg.Store.Backend == "redis" {
		return fmt.Sprintf("redis %s (prefix %s)", p.cfg.Store.Redis.RedisURL, p.cfg.Store.Redis.KeyPrefix)
	}
	return p.cfg.Store.File.Path
}

func init() {
	trainCmd.Flags().StringVarP(&trainPositiveDir, "positive-dir", "p", "", "Positive training directory (overrides config)")
	trainCmd.Flags().StringVarP(&trainNegativeDir, "negative-dir", "n", "", "Negative training directory (overrides config)")
}
