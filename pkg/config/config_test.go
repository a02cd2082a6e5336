package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nbsent.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
parameters:
  negation: true
  ngrams: true
  ngram_size: 2
data:
  positive_train_dir: /corpus/pos
logging:
  level: debug
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Parameters.Negation)
	assert.Equal(t, 2, cfg.Parameters.NgramSize)
	assert.True(t, cfg.Parameters.Lowercase, "unset options keep defaults")
	assert.Equal(t, "/corpus/pos", cfg.Data.PositiveTrainDir)
	assert.Equal(t, "data/train/neg", cfg.Data.NegativeTrainDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "config file not found")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("parameters: [oops"), 0644))
	_, err = LoadConfig(path)
	assert.ErrorContains(t, err, "failed to parse")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"Ngram size", func(c *Config) { c.Parameters.Ngrams = true; c.Parameters.NgramSize = 0 }, "parameters.ngram_size"},
		{"Ngram size unused", func(c *Config) { c.Parameters.NgramSize = 0 }, ""},
		{"Reduce count", func(c *Config) { c.Parameters.ReduceFeature = true; c.Parameters.ReduceFeatureCount = 0 }, "parameters.reduce_feature_count"},
		{"Stop word file missing", func(c *Config) { c.Parameters.StopWords = true; c.Data.StopWordFile = "/nonexistent/stop.txt" }, "data.stop_word_file"},
		{"Stop word file empty", func(c *Config) { c.Parameters.StopWords = true; c.Data.StopWordFile = "" }, "data.stop_word_file"},
		{"Stem language", func(c *Config) { c.Parameters.Stem = true; c.Parameters.StemLanguage = "" }, "parameters.stem_language"},
		{"Workers", func(c *Config) { c.Performance.Workers = -1 }, "performance.workers"},
		{"Logging level", func(c *Config) { c.Logging.Level = "loud" }, "invalid logging level"},
		{"Logging format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"Backend", func(c *Config) { c.Store.Backend = "s3" }, "store.backend"},
		{"Redis URL", func(c *Config) { c.Store.Backend = "redis"; c.Store.Redis.RedisURL = "" }, "store.redis.redis_url"},
		{"File path", func(c *Config) { c.Store.File.Path = "" }, "store.file.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateReadableStopWordFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stop.txt")
	require.NoError(t, os.WriteFile(path, []byte("a the"), 0644))

	cfg := DefaultConfig()
	cfg.Parameters.StopWords = true
	cfg.Data.StopWordFile = path
	assert.NoError(t, cfg.Validate())

	cfg.Data.StopWordFile = t.TempDir()
	assert.ErrorContains(t, cfg.Validate(), "data.stop_word_file is not readable")

	cfg.Data.StopWordFile = filepath.Join(t.TempDir(), "missing.txt")
	err := cfg.Validate()
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorContains(t, err, "data.stop_word_file")
}

func TestValidateStopWordFilePermissions(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read files regardless of mode")
	}

	path := filepath.Join(t.TempDir(), "stop.txt")
	require.NoError(t, os.WriteFile(path, []byte("a the"), 0000))

	cfg := DefaultConfig()
	cfg.Parameters.StopWords = true
	cfg.Data.StopWordFile = path

	err := cfg.Validate()
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.ErrorContains(t, err, "data.stop_word_file is not readable")
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "nbsent.yaml")

	cfg := DefaultConfig()
	cfg.Parameters.ReduceFeature = true
	cfg.Parameters.ReduceFeatureCount = 42
	cfg.Corpus.Extensions = []string{".txt"}
	require.NoError(t, cfg.SaveConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestRequireData(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.RequireTrainingData())
	assert.NoError(t, cfg.RequireTestData())

	cfg.Data.NegativeTrainDir = ""
	assert.ErrorContains(t, cfg.RequireTrainingData(), "data.negative_train_dir")

	cfg.Data.PositiveTestDir = ""
	assert.ErrorContains(t, cfg.RequireTestData(), "data.positive_test_dir")
}

func TestPrintParameters(t *testing.T) {
	var buf bytes.Buffer
	DefaultConfig().PrintParameters(&buf)
	assert.Contains(t, buf.String(), "lowercase = true")
	assert.Contains(t, buf.String(), "positive_test_dir = data/test/pos")
}
