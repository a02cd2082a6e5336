package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nbsent/sentiment-bayes/pkg/learning"
)

var classifyFromStore bool

var classifyCmd = &cobra.Command{
	Use:   "classify FILE...",
	Short: "Label documents as positive or negative",
	Long: `Fit a model and print the predicted label and both class scores for each file.

By default the model is fitted from the counts saved by 'nbsent train'; use
--from-store=false to train from the configured directories first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline(configPath)
		if err != nil {
			return err
		}
		defer p.Close()

		counts, err := p.counts(cmd.Context(), classifyFromStore, nil)
		if err != nil {
			return err
		}

		model, err := p.fit(counts, nil)
		if err != nil {
			return err
		}

		classifier := learning.NewClassifier(model, p.preprocessor)
		out := cmd.OutOrStdout()

		failed := 0
		for _, path := range args {
			tokens, err := p.provider.Read(path)
			if err != nil {
				failed++
				p.logger.Warn("skipping document", "path", path, "error", err)
				fmt.Fprintf(out, "❌ %s: %v\n", path, err)
				continue
			}

			label := classifier.Classify(tokens)
			pos, neg := classifier.Score(tokens)

			fmt.Fprintf(out, "%s\t%s\tpositive=%.4f\tnegative=%.4f\n", path, label, pos, neg)
		}

		if failed == len(args) {
			return fmt.Errorf("no document could be read")
		}

		return nil
	},
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyFromStore, "from-store", true, "Use training counts saved by 'nbsent train'")
}
