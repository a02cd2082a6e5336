package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "nbsent",
	Short: "nbsent - Naive Bayes sentiment classifier",
	Long: `nbsent trains a multinomial Naive Bayes classifier on directories of
positive and negative documents and labels new documents as positive or negative.

Preprocessing (lowercasing, punctuation and digit stripping, stop words,
stemming, negation scoping, n-grams) and feature reduction are controlled
by the configuration file.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "nbsent - Naive Bayes sentiment classifier")
		fmt.Fprintln(cmd.OutOrStdout(), "Use 'nbsent --help' for usage information")
	},
}

// Execute runs the root command until it completes or the process is interrupted
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file path (defaults are used when empty)")

	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(fitCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(featuresCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(benchmarkCmd)
	rootCmd.AddCommand(quickstartCmd)
}
