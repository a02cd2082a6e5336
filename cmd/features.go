package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nbsent/sentiment-bayes/pkg/learning"
)

var (
	featuresTop   int
	featuresClass string
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "List the most indicative features per class",
	Long: `Fit a model from the saved training counts and list the features that most
strongly indicate each class, with their log10 probabilities.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var classes []learning.Sentiment
		switch featuresClass {
		case "positive":
			classes = []learning.Sentiment{learning.Positive}
		case "negative":
			classes = []learning.Sentiment{learning.Negative}
		case "both":
			classes = []learning.Sentiment{learning.Positive, learning.Negative}
		default:
			return fmt.Errorf("invalid class %q (use positive, negative or both)", featuresClass)
		}

		p, err := newPipeline(configPath)
		if err != nil {
			return err
		}
		defer p.Close()

		counts, err := p.loadCounts(cmd.Context())
		if err != nil {
			return err
		}

		model, err := p.fit(counts, nil)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, class := range classes {
			fmt.Fprintf(out, "🔎 Top %s features\n", class)
			fmt.Fprintf(out, "  %-4s %-24s %10s %10s %10s\n", "#", "FEATURE", "POSITIVE", "NEGATIVE", "LOG-ODDS")
			for i, f := range model.TopFeatures(class, featuresTop) {
				fmt.Fprintf(out, "  %-4d %-24s %10.4f %10.4f %+10.4f\n", i+1, f.Feature, f.PositiveLog, f.NegativeLog, f.LogOdds)
			}
			fmt.Fprintln(out)
		}

		return nil
	},
}

func init() {
	featuresCmd.Flags().IntVarP(&featuresTop, "top", "t", 20, "Number of features per class")
	featuresCmd.Flags().StringVar(&featuresClass, "class", "both", "Class to list: positive, negative or both")
}
