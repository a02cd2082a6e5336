package cmd

import (
	"github.com/spf13/cobra"
)

var fitTop int

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit a model from saved training counts",
	Long: `Load the training counts saved by 'nbsent train', apply the configured feature
reduction and smoothing, and print the resulting model statistics.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		model.PrintStats(cmd.OutOrStdout(), fitTop)
		return nil
	},
}

func init() {
	fitCmd.Flags().IntVarP(&fitTop, "top", "t", 10, "Number of indicative features to show per class")
}
