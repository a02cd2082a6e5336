package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the classifier configuration
type Config struct {
	// Preprocessing and feature reduction
	Parameters ParametersConfig `yaml:"parameters"`

	// Corpus and stop-word locations
	Data DataConfig `yaml:"data"`

	// Document reading
	Corpus CorpusConfig `yaml:"corpus"`

	// Performance settings
	Performance PerformanceConfig `yaml:"performance"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`

	// Training counts persistence
	Store StoreConfig `yaml:"store"`
}

// ParametersConfig toggles the preprocessing pipeline stages
type ParametersConfig struct {
	Lowercase         bool `yaml:"lowercase"`
	RemovePunctuation bool `yaml:"remove_punctuation"`
	RemoveDigits      bool `yaml:"remove_digits"`
	StopWords         bool `yaml:"stop_words"`

	Stem         bool   `yaml:"stem"`
	StemLanguage string `yaml:"stem_language"`

	Negation bool `yaml:"negation"`

	Ngrams    bool `yaml:"ngrams"`
	NgramSize int  `yaml:"ngram_size"`

	SingleOccurrencePerDoc bool `yaml:"single_occurrence_per_doc"`

	// Tag documents and keep nouns, verbs, adjectives and adverbs
	PartOfSpeech bool `yaml:"part_of_speech"`

	ReduceFeature      bool `yaml:"reduce_feature"`
	ReduceFeatureCount int  `yaml:"reduce_feature_count"`
}

// DataConfig contains corpus directories and the stop-word file
type DataConfig struct {
	NegativeTrainDir string `yaml:"negative_train_dir"`
	PositiveTrainDir string `yaml:"positive_train_dir"`
	NegativeTestDir  string `yaml:"negative_test_dir"`
	PositiveTestDir  string `yaml:"positive_test_dir"`
	StopWordFile     string `yaml:"stop_word_file"`
}

// CorpusConfig controls how documents are read
type CorpusConfig struct {
	Extensions       []string `yaml:"extensions"` // empty = every file
	StripHTML        bool     `yaml:"strip_html"`
	NormalizeUnicode bool     `yaml:"normalize_unicode"`
}

// PerformanceConfig contains performance tuning
type PerformanceConfig struct {
	Workers int `yaml:"workers"` // 0 = one per CPU
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	File   string `yaml:"file"`   // log file path, empty = stderr
	Format string `yaml:"format"` // json, text
}

// StoreConfig selects where training counts are saved
type StoreConfig struct {
	// Backend selection: "file" or "redis"
	Backend string `yaml:"backend"`

	File  FileStoreConfig  `yaml:"file"`
	Redis RedisStoreConfig `yaml:"redis"`
}

// FileStoreConfig contains JSON file backend settings
type FileStoreConfig struct {
	Path string `yaml:"path"`
}

// RedisStoreConfig contains Redis backend settings
type RedisStoreConfig struct {
	RedisURL    string `yaml:"redis_url"`
	KeyPrefix   string `yaml:"key_prefix"`
	DatabaseNum int    `yaml:"database_num"`
	BatchSize   int    `yaml:"batch_size"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Parameters: ParametersConfig{
			Lowercase:              true,
			RemovePunctuation:      true,
			RemoveDigits:           false,
			StopWords:              false,
			Stem:                   false,
			StemLanguage:           "english",
			Negation:               false,
			Ngrams:                 false,
			NgramSize:              1,
			SingleOccurrencePerDoc: false,
			PartOfSpeech:           false,
			ReduceFeature:          false,
			ReduceFeatureCount:     1000,
		},
		Data: DataConfig{
			NegativeTrainDir: "data/train/neg",
			PositiveTrainDir: "data/train/pos",
			NegativeTestDir:  "data/test/neg",
			PositiveTestDir:  "data/test/pos",
			StopWordFile:     "data/stopwords.txt",
		},
		Corpus: CorpusConfig{
			Extensions:       []string{},
			StripHTML:        false,
			NormalizeUnicode: false,
		},
		Performance: PerformanceConfig{
			Workers: 0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			File:   "",
			Format: "text",
		},
		Store: StoreConfig{
			Backend: "file",
			File: FileStoreConfig{
				Path: "nbsent-counts.json",
			},
			Redis: RedisStoreConfig{
				RedisURL:    "redis://localhost:6379",
				KeyPrefix:   "nbsent",
				DatabaseNum: 0,
				BatchSize:   1000,
			},
		},
	}
}

// LoadConfig loads configuration from file
func LoadConfig(configPath string) (*Config, error) {
	// Start with defaults
	config := DefaultConfig()

	// If no config file specified, return defaults
	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}

		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// SaveConfig saves configuration to file
func (c *Config) SaveConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration. Errors name the offending option.
func (c *Config) Validate() error {
	p := c.Parameters

	if p.Ngrams && p.NgramSize < 1 {
		return fmt.Errorf("parameters.ngram_size must be >= 1")
	}

	if p.ReduceFeature && p.ReduceFeatureCount < 1 {
		return fmt.Errorf("parameters.reduce_feature_count must be >= 1")
	}

	if p.Stem && p.StemLanguage == "" {
		return fmt.Errorf("parameters.stem_language cannot be empty when stemming is enabled")
	}

	if p.StopWords {
		if c.Data.StopWordFile == "" {
			return fmt.Errorf("data.stop_word_file cannot be empty when stop words are enabled")
		}
		if err := checkReadableFile(c.Data.StopWordFile); err != nil {
			return fmt.Errorf("data.stop_word_file is not readable: %w", err)
		}
	}

	if c.Performance.Workers < 0 {
		return fmt.Errorf("performance.workers must be >= 0")
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	validLevel := false
	for _, level := range validLevels {
		if c.Logging.Level == level {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json'")
	}

	switch c.Store.Backend {
	case "file":
		if c.Store.File.Path == "" {
			return fmt.Errorf("store.file.path cannot be empty")
		}
	case "redis":
		if c.Store.Redis.RedisURL == "" {
			return fmt.Errorf("store.redis.redis_url cannot be empty")
		}
		if c.Store.Redis.KeyPrefix == "" {
			return fmt.Errorf("store.redis.key_prefix cannot be empty")
		}
	default:
		return fmt.Errorf("store.backend must be 'file' or 'redis'")
	}

	return nil
}

// checkReadableFile opens path to confirm it is a regular file the process
// can read
func checkReadableFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

// RequireTrainingData checks that both training directories are set
func (c *Config) RequireTrainingData() error {
	if c.Data.PositiveTrainDir == "" {
		return fmt.Errorf("data.positive_train_dir is required")
	}
	if c.Data.NegativeTrainDir == "" {
		return fmt.Errorf("data.negative_train_dir is required")
	}
	return nil
}

// RequireTestData checks that both test directories are set
func (c *Config) RequireTestData() error {
	if c.Data.PositiveTestDir == "" {
		return fmt.Errorf("data.positive_test_dir is required")
	}
	if c.Data.NegativeTestDir == "" {
		return fmt.Errorf("data.negative_test_dir is required")
	}
	return nil
}

// PrintParameters prints the configuration in effect
func (c *Config) PrintParameters(w io.Writer) {
	p := c.Parameters

	fmt.Fprintf(w, "======================================\n")
	fmt.Fprintf(w, " Naive Bayes Configuration Parameters\n")
	fmt.Fprintf(w, "======================================\n")
	fmt.Fprintf(w, "  lowercase = %t\n", p.Lowercase)
	fmt.Fprintf(w, "  remove_punctuation = %t\n", p.RemovePunctuation)
	fmt.Fprintf(w, "  remove_digits = %t\n", p.RemoveDigits)
	fmt.Fprintf(w, "  stop_words = %t\n", p.StopWords)
	fmt.Fprintf(w, "  stem = %t (%s)\n", p.Stem, p.StemLanguage)
	fmt.Fprintf(w, "  negation = %t\n", p.Negation)
	fmt.Fprintf(w, "  ngrams = %t\n", p.Ngrams)
	fmt.Fprintf(w, "  ngram_size = %d\n", p.NgramSize)
	fmt.Fprintf(w, "  single_occurrence_per_doc = %t\n", p.SingleOccurrencePerDoc)
	fmt.Fprintf(w, "  part_of_speech = %t\n", p.PartOfSpeech)
	fmt.Fprintf(w, "  reduce_feature = %t\n", p.ReduceFeature)
	fmt.Fprintf(w, "  reduce_feature_count = %d\n", p.ReduceFeatureCount)
	fmt.Fprintf(w, "  negative_train_dir = %s\n", c.Data.NegativeTrainDir)
	fmt.Fprintf(w, "  positive_train_dir = %s\n", c.Data.PositiveTrainDir)
	fmt.Fprintf(w, "  negative_test_dir = %s\n", c.Data.NegativeTestDir)
	fmt.Fprintf(w, "  positive_test_dir = %s\n", c.Data.PositiveTestDir)
	fmt.Fprintf(w, "  stop_word_file = %s\n", c.Data.StopWordFile)
	fmt.Fprintf(w, "======================================\n")
}
