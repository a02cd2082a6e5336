package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nbsent/sentiment-bayes/pkg/config"
)

var (
	quickstartDir   string
	quickstartCount int
	quickstartSeed  int64
	quickstartForce bool
)

var quickstartCmd = &cobra.Command{
	Use:   "quickstart",
	Short: "Generate a demo corpus and configuration, then evaluate it",
	Long: `Get nbsent running in one step.

This command will:
1. Generate a synthetic review corpus
2. Write a configuration file pointing at it
3. Train, save the counts and evaluate accuracy

Use the generated configuration as a starting point for real corpora.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		cfgPath := filepath.Join(quickstartDir, "config.yaml")

		if _, err := os.Stat(cfgPath); err == nil && !quickstartForce {
			return fmt.Errorf("quickstart already set up in %s (use --force to regenerate)", quickstartDir)
		}

		fmt.Fprintf(out, "🚀 nbsent Quickstart\n")
		fmt.Fprintf(out, "════════════════════════════════════════════════\n\n")

		fmt.Fprintf(out, "🧪 Step 1: Generating review corpus...\n")
		seed := quickstartSeed
		if seed == 0 {
			seed = 42
		}
		generator := NewReviewGenerator(seed, false)
		if err := writeCorpus(generator, quickstartDir, quickstartCount, 0.2); err != nil {
			return err
		}
		fmt.Fprintf(out, "✅ %d reviews per class written to %s\n\n", quickstartCount, quickstartDir)

		fmt.Fprintf(out, "⚙️  Step 2: Writing configuration...\n")
		cfg := quickstartConfig(quickstartDir)
		if err := cfg.SaveConfig(cfgPath); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}
		fmt.Fprintf(out, "✅ Configuration saved: %s\n\n", cfgPath)

		fmt.Fprintf(out, "📊 Step 3: Training and evaluating...\n\n")
		p, err := newPipeline(cfgPath)
		if err != nil {
			return err
		}
		defer p.Close()

		if _, err := runEvaluation(cmd.Context(), out, p, evaluationOptions{save: true}); err != nil {
			return err
		}

		fmt.Fprintf(out, "\n💡 Next steps:\n")
		fmt.Fprintf(out, "  nbsent features --config %s\n", cfgPath)
		fmt.Fprintf(out, "  nbsent classify --config %s %s\n", cfgPath, filepath.Join(quickstartDir, "test", "pos", "0001.txt"))

		return nil
	},
}

// quickstartConfig returns defaults pointed at a generated corpus under dir
func quickstartConfig(dir string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Parameters.Negation = true
	cfg.Parameters.RemovePunctuation = false
	cfg.Data.PositiveTrainDir = filepath.Join(dir, "train", "pos")
	cfg.Data.NegativeTrainDir = filepath.Join(dir, "train", "neg")
	cfg.Data.PositiveTestDir = filepath.Join(dir, "test", "pos")
	cfg.Data.NegativeTestDir = filepath.Join(dir, "test", "neg")
	cfg.Data.StopWordFile = ""
	cfg.Corpus.Extensions = []string{".txt"}
	cfg.Store.File.Path = filepath.Join(dir, "counts.json")
	return cfg
}

func init() {
	quickstartCmd.Flags().StringVarP(&quickstartDir, "dir", "d", "nbsent-demo", "Directory for the demo corpus and configuration")
	quickstartCmd.Flags().IntVarP(&quickstartCount, "count", "n", 200, "Reviews per class")
	quickstartCmd.Flags().Int64Var(&quickstartSeed, "seed", 0, "Random seed (0 = fixed demo seed)")
	quickstartCmd.Flags().BoolVarP(&quickstartForce, "force", "f", false, "Regenerate an existing quickstart directory")
}
