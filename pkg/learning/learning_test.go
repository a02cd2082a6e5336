package learning

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbsent/sentiment-bayes/pkg/corpus"
	"github.com/nbsent/sentiment-bayes/pkg/text"
)

// memProvider serves documents from memory
type memProvider struct {
	dirs map[string][]string
	docs map[string][]string
}

func (mp *memProvider) List(dir string) ([]string, error) {
	ids, ok := mp.dirs[dir]
	if !ok {
		return nil, fmt.Errorf("no such directory: %s", dir)
	}
	return ids, nil
}

func (mp *memProvider) Read(id string) ([]string, error) {
	tokens, ok := mp.docs[id]
	if !ok {
		return nil, fmt.Errorf("unreadable document: %s", id)
	}
	return tokens, nil
}

func newPreprocessor(t *testing.T, opts text.Options) *text.Preprocessor {
	t.Helper()
	p, err := text.NewPreprocessor(opts, nil)
	require.NoError(t, err)
	return p
}

func twoFeatureCounts() *Counts {
	return &Counts{
		Vocabulary:   Vocabulary{"a": {}, "b": {}},
		Positive:     WordCounts{"a": 2},
		Negative:     WordCounts{"b": 3},
		PositiveDocs: 2,
		NegativeDocs: 2,
	}
}

func TestFitSmoothedProbabilities(t *testing.T) {
	model, err := Fit(twoFeatureCounts(), FitOptions{})
	require.NoError(t, err)

	assert.Equal(t, math.Log10(0.75), model.Positive["a"])
	assert.Equal(t, math.Log10(0.25), model.Positive["b"])
	assert.Equal(t, math.Log10(0.2), model.Negative["a"])
	assert.Equal(t, math.Log10(0.8), model.Negative["b"])
	assert.Equal(t, math.Log10(0.5), model.PositivePrior)
	assert.Equal(t, math.Log10(0.5), model.NegativePrior)
	assert.Equal(t, 2, model.VocabularySize)
	assert.Equal(t, 2, model.FeatureSize)
}

func TestFitIsIdempotent(t *testing.T) {
	counts := twoFeatureCounts()

	first, err := Fit(counts, FitOptions{ReduceFeature: true, ReduceFeatureCount: 1})
	require.NoError(t, err)
	second, err := Fit(counts, FitOptions{ReduceFeature: true, ReduceFeatureCount: 1})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// inputs are left as trained
	assert.Equal(t, WordCounts{"a": 2}, counts.Positive)
	assert.Equal(t, WordCounts{"b": 3}, counts.Negative)
}

func TestFitRejectsEmptyCorpus(t *testing.T) {
	counts := twoFeatureCounts()
	counts.NegativeDocs = 0
	_, err := Fit(counts, FitOptions{})
	assert.True(t, errors.Is(err, ErrEmptyCorpus))

	counts = twoFeatureCounts()
	counts.PositiveDocs = 0
	_, err = Fit(counts, FitOptions{})
	assert.True(t, errors.Is(err, ErrEmptyCorpus))

	_, err = Fit(twoFeatureCounts(), FitOptions{ReduceFeature: true})
	assert.Error(t, err)
}

func TestFitFeatureReduction(t *testing.T) {
	counts := &Counts{
		Vocabulary:   Vocabulary{"a": {}, "b": {}, "c": {}, "d": {}},
		Positive:     WordCounts{"a": 5, "b": 1, "c": 1},
		Negative:     WordCounts{"d": 4},
		PositiveDocs: 1,
		NegativeDocs: 1,
	}

	model, err := Fit(counts, FitOptions{ReduceFeature: true, ReduceFeatureCount: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, model.FeatureSize)
	assert.Len(t, model.Positive, 2)
	assert.Contains(t, model.Positive, "a")
	assert.Contains(t, model.Positive, "b")

	// denominator: retained counts + full vocabulary
	assert.Equal(t, math.Log10(6.0/10.0), model.Positive["a"])

	// zero counts tie and fall back to feature order
	assert.Contains(t, model.Negative, "d")
	assert.Contains(t, model.Negative, "a")
}

func TestWordCounts(t *testing.T) {
	wc := WordCounts{"x": 1}
	wc.Backfill(Vocabulary{"x": {}, "y": {}})
	assert.Equal(t, WordCounts{"x": 1, "y": 0}, wc)
	assert.Equal(t, 1, wc.Total())

	wc = WordCounts{"b": 2, "a": 2, "c": 3, "d": 1}
	assert.Equal(t, WordCounts{"c": 3, "a": 2}, wc.Top(2))
	assert.Equal(t, wc, wc.Top(10))
}

func TestVocabularyJSON(t *testing.T) {
	v := Vocabulary{"b": {}, "a": {}}

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(data))

	var decoded Vocabulary
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, v, decoded)
}

func TestBuilderTrain(t *testing.T) {
	provider := &memProvider{
		dirs: map[string][]string{"pos": {"p1", "p2", "broken"}},
		docs: map[string][]string{
			"p1": {"Great", "great", "film"},
			"p2": {"great", "cast"},
		},
	}

	tests := []struct {
		name     string
		opts     text.Options
		expected WordCounts
	}{
		{
			name:     "Occurrences",
			opts:     text.Options{Lowercase: true},
			expected: WordCounts{"great": 3, "film": 1, "cast": 1},
		},
		{
			name:     "Presence per document",
			opts:     text.Options{Lowercase: true, SingleOccurrencePerDoc: true},
			expected: WordCounts{"great": 2, "film": 1, "cast": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(provider, newPreprocessor(t, tt.opts), nil)
			vocab, counts := NewVocabulary(), make(WordCounts)

			docs, err := b.Train(context.Background(), "pos", vocab, counts)
			require.NoError(t, err)
			assert.Equal(t, 2, docs)
			assert.Equal(t, 1, b.Skipped())
			assert.Equal(t, tt.expected, counts)
			assert.Equal(t, []string{"cast", "film", "great"}, vocab.Features())
		})
	}

	b := NewBuilder(provider, newPreprocessor(t, text.Options{}), nil)
	_, err := b.Train(context.Background(), "missing", NewVocabulary(), make(WordCounts))
	assert.Error(t, err)
}

func writeCorpus(t *testing.T, docs ...string) string {
	t.Helper()
	dir := t.TempDir()
	for i, d := range docs {
		path := filepath.Join(dir, fmt.Sprintf("%d.txt", i))
		require.NoError(t, os.WriteFile(path, []byte(d), 0644))
	}
	return dir
}

func TestTrainClasses(t *testing.T) {
	posDir := writeCorpus(t, "a wonderful film", "wonderful acting")
	negDir := writeCorpus(t, "a dull film", "dull dull plot", "boring")

	b := NewBuilder(corpus.NewDirProvider(corpus.Options{}), newPreprocessor(t, text.Options{}), nil)
	counts, err := b.TrainClasses(context.Background(), posDir, negDir)
	require.NoError(t, err)

	assert.Equal(t, 2, counts.PositiveDocs)
	assert.Equal(t, 3, counts.NegativeDocs)
	assert.Equal(t, 2, counts.Positive["wonderful"])
	assert.Equal(t, 3, counts.Negative["dull"])
	assert.Equal(t, []string{"a", "acting", "boring", "dull", "film", "plot", "wonderful"}, counts.Vocabulary.Features())
	assert.False(t, counts.LastTrained.IsZero())

	_, err = b.TrainClasses(context.Background(), posDir, t.TempDir())
	assert.True(t, errors.Is(err, ErrEmptyCorpus))
}

func TestClassifier(t *testing.T) {
	model, err := Fit(twoFeatureCounts(), FitOptions{})
	require.NoError(t, err)
	c := NewClassifier(model, newPreprocessor(t, text.Options{}))

	assert.Equal(t, Positive, c.Classify([]string{"a", "a"}))
	assert.Equal(t, Negative, c.Classify([]string{"b"}))

	// unknown features add nothing and equal scores go negative
	pos, neg := c.Score([]string{"zzz"})
	assert.Equal(t, model.PositivePrior, pos)
	assert.Equal(t, model.NegativePrior, neg)
	assert.Equal(t, Negative, c.Classify([]string{"zzz"}))
	assert.Equal(t, Negative, c.Classify(nil))
}

func TestClassifierConcurrentAndDeterministic(t *testing.T) {
	model, err := Fit(twoFeatureCounts(), FitOptions{})
	require.NoError(t, err)
	c := NewClassifier(model, newPreprocessor(t, text.Options{Lowercase: true}))

	doc := []string{"A", "b", "A"}
	want := c.Classify(doc)

	var wg sync.WaitGroup
	results := make([]Sentiment, 50)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Classify(doc)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, want, r)
	}
	assert.Equal(t, []string{"A", "b", "A"}, doc)
}

func TestTopFeatures(t *testing.T) {
	model, err := Fit(twoFeatureCounts(), FitOptions{})
	require.NoError(t, err)

	pos := model.TopFeatures(Positive, 1)
	require.Len(t, pos, 1)
	assert.Equal(t, "a", pos[0].Feature)
	assert.Greater(t, pos[0].LogOdds, 0.0)

	neg := model.TopFeatures(Negative, 0)
	require.Len(t, neg, 2)
	assert.Equal(t, "b", neg[0].Feature)
}

func TestSentimentString(t *testing.T) {
	assert.Equal(t, "positive", Positive.String())
	assert.Equal(t, "negative", Negative.String())
	assert.Equal(t, "unknown", Sentiment(0).String())
}

func TestPreprocessingCheck(t *testing.T) {
	trained := Preprocessing{
		Text:      text.Options{Lowercase: true, Negation: true, Ngrams: true, NgramSize: 2},
		StripHTML: true,
	}
	counts := NewCounts()
	counts.Preprocessing = trained

	require.NoError(t, counts.Check(trained))

	current := trained
	current.Text.NgramSize = 3
	err := counts.Check(current)
	require.ErrorIs(t, err, ErrPreprocessingMismatch)
	assert.Contains(t, err.Error(), "ngram_size")

	current = trained
	current.PartOfSpeech = true
	current.Text.Negation = false
	assert.Equal(t, []string{"negation", "part_of_speech"}, trained.Diff(current))

	// settings of disabled stages are ignored
	a := Preprocessing{Text: text.Options{NgramSize: 2, StemLanguage: "english"}}
	b := Preprocessing{Text: text.Options{NgramSize: 5}}
	assert.Empty(t, a.Diff(b))

	a = Preprocessing{Text: text.Options{Stem: true}}
	b = Preprocessing{Text: text.Options{Stem: true, StemLanguage: "english"}}
	assert.Empty(t, a.Diff(b))
}

func TestCountsJSONKeepsPreprocessing(t *testing.T) {
	counts := twoFeatureCounts()
	counts.Preprocessing = Preprocessing{
		Text:         text.Options{Lowercase: true, Stem: true, StemLanguage: "english"},
		PartOfSpeech: true,
	}

	data, err := json.Marshal(counts)
	require.NoError(t, err)

	var got Counts
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, counts.Preprocessing, got.Preprocessing)
}
