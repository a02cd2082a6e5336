package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nbsent/sentiment-bayes/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long:  `Generate, validate and show nbsent configuration files`,
}

var configGenCmd = &cobra.Command{
	Use:   "generate [config-file]",
	Short: "Generate default configuration file",
	Long:  `Generate a configuration file with every option set to its default`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "config.yaml"
		if len(args) > 0 {
			path = args[0]
		}

		// Check if file already exists
		if _, err := os.Stat(path); err == nil {
			overwrite, _ := cmd.Flags().GetBool("force")
			if !overwrite {
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
			}
		}

		if err := config.DefaultConfig().SaveConfig(path); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✅ Configuration file generated: %s\n", path)
		fmt.Fprintf(out, "📝 Edit the file to choose preprocessing stages and data directories\n")
		fmt.Fprintf(out, "🚀 Use 'nbsent evaluate --config %s' to use the configuration\n", path)

		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [config-file]",
	Short: "Validate configuration file",
	Long:  `Validate a configuration file for syntax and logical errors`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if len(args) > 0 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("no configuration file given")
		}

		cfg, err := config.LoadConfig(path)
		if err != nil {
			return fmt.Errorf("❌ Configuration validation failed: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✅ Configuration is valid: %s\n", path)

		if warnings := validateConfigLogic(cfg); len(warnings) > 0 {
			fmt.Fprintf(out, "\n⚠️  Warnings:\n")
			for _, warning := range warnings {
				fmt.Fprintf(out, "  - %s\n", warning)
			}
		}

		fmt.Fprintf(out, "\n📊 Configuration Summary:\n")
		fmt.Fprintf(out, "  Stages enabled: %s\n", strings.Join(enabledStages(cfg), ", "))
		fmt.Fprintf(out, "  Store: %s\n", cfg.Store.Backend)

		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show [config-file]",
	Short: "Show current configuration",
	Long:  `Display the configuration with all values, as it would be used`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if len(args) > 0 {
			path = args[0]
		}

		cfg, err := config.LoadConfig(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		out := cmd.OutOrStdout()
		if path != "" {
			fmt.Fprintf(out, "Configuration: %s\n\n", path)
		} else {
			fmt.Fprintf(out, "Default Configuration:\n\n")
		}

		cfg.PrintParameters(out)

		fmt.Fprintf(out, "\n📄 Corpus:\n")
		fmt.Fprintf(out, "  Extensions: %v\n", cfg.Corpus.Extensions)
		fmt.Fprintf(out, "  Strip HTML: %t\n", cfg.Corpus.StripHTML)
		fmt.Fprintf(out, "  Normalize unicode: %t\n", cfg.Corpus.NormalizeUnicode)

		fmt.Fprintf(out, "\n⚡ Performance:\n")
		fmt.Fprintf(out, "  Workers: %d\n", cfg.Performance.Workers)

		fmt.Fprintf(out, "\n💾 Store:\n")
		fmt.Fprintf(out, "  Backend: %s\n", cfg.Store.Backend)
		if cfg.Store.Backend == "redis" {
			fmt.Fprintf(out, "  Redis: %s (db %d, prefix %s)\n", cfg.Store.Redis.RedisURL, cfg.Store.Redis.DatabaseNum, cfg.Store.Redis.KeyPrefix)
		} else {
			fmt.Fprintf(out, "  File: %s\n", cfg.Store.File.Path)
		}

		return nil
	},
}

// validateConfigLogic reports settings that are valid but probably unintended
func validateConfigLogic(cfg *config.Config) []string {
	var warnings []string
	p := cfg.Parameters

	if !p.Ngrams && p.NgramSize > 1 {
		warnings = append(warnings, fmt.Sprintf("ngram_size is %d but ngrams is disabled", p.NgramSize))
	}

	if p.Ngrams && p.NgramSize > 3 {
		warnings = append(warnings, "n-grams longer than 3 tokens rarely repeat across documents")
	}

	if p.Negation && p.RemovePunctuation {
		warnings = append(warnings, "remove_punctuation strips the punctuation that ends a negation scope")
	}

	if p.Negation && p.StopWords {
		warnings = append(warnings, "stop word lists often contain 'not' and 'no', which disables negation cues")
	}

	if p.PartOfSpeech && p.Negation {
		warnings = append(warnings, "part_of_speech keeps only N/V/J/R tags, so punctuation never ends a negation scope")
	}

	if p.ReduceFeature && p.SingleOccurrencePerDoc {
		warnings = append(warnings, "reduce_feature ranks by document frequency when single_occurrence_per_doc is enabled")
	}

	for _, dir := range []string{cfg.Data.PositiveTrainDir, cfg.Data.NegativeTrainDir, cfg.Data.PositiveTestDir, cfg.Data.NegativeTestDir} {
		if dir == "" {
			continue
		}
		if _, err := os.Stat(dir); err != nil {
			warnings = append(warnings, fmt.Sprintf("directory not found: %s", dir))
		}
	}

	return warnings
}

// enabledStages lists the preprocessing stages in the order they run
func enabledStages(cfg *config.Config) []string {
	p := cfg.Parameters
	stages := []string{}

	if p.PartOfSpeech {
		stages = append(stages, "part-of-speech")
	}
	if p.Lowercase {
		stages = append(stages, "lowercase")
	}
	if p.RemovePunctuation {
		stages = append(stages, "punctuation")
	}
	if p.RemoveDigits {
		stages = append(stages, "digits")
	}
	if p.StopWords {
		stages = append(stages, "stop-words")
	}
	if p.Stem {
		stages = append(stages, "stem")
	}
	if p.Negation {
		stages = append(stages, "negation")
	}
	if p.Ngrams {
		stages = append(stages, fmt.Sprintf("%d-grams", p.NgramSize))
	}
	if p.SingleOccurrencePerDoc {
		stages = append(stages, "single-occurrence")
	}
	if len(stages) == 0 {
		stages = append(stages, "none")
	}

	return stages
}

func init() {
	// Add subcommands
	configCmd.AddCommand(configGenCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)

	// Add flags
	configGenCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
