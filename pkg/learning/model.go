package learning

import (
	"errors"
	"fmt"
	"math"
)

// ErrEmptyCorpus is returned when a class has no training documents, which
// leaves its prior and smoothing denominator undefined.
var ErrEmptyCorpus = errors.New("empty training corpus")

// FitOptions controls model fitting
type FitOptions struct {
	// ReduceFeature keeps only the ReduceFeatureCount most frequent
	// features of each class
	ReduceFeature      bool
	ReduceFeatureCount int
}

// ProbabilityTable maps a feature to its smoothed log10 probability in a class
type ProbabilityTable map[string]float64

// Model holds the fitted probability tables and class priors. It is read-only
// once returned by Fit.
type Model struct {
	Positive      ProbabilityTable `json:"positive"`
	Negative      ProbabilityTable `json:"negative"`
	PositivePrior float64          `json:"positive_prior"`
	NegativePrior float64          `json:"negative_prior"`

	VocabularySize int `json:"vocabulary_size"`
	FeatureSize    int `json:"feature_size"`
}

// Fit derives Laplace smoothed log probabilities and log priors:
//
//	P(w|c) = log10((count(w,c) + 1) / (sum(counts in c) + |vocabulary|))
//	P(c)   = log10(docs(c) / docs)
//
// The input counts are not modified, so fitting the same counts twice gives
// identical models.
func Fit(counts *Counts, opts FitOptions) (*Model, error) {
	if counts.PositiveDocs <= 0 {
		return nil, fmt.Errorf("%w: no positive documents", ErrEmptyCorpus)
	}
	if counts.NegativeDocs <= 0 {
		return nil, fmt.Errorf("%w: no negative documents", ErrEmptyCorpus)
	}
	if opts.ReduceFeature && opts.ReduceFeatureCount < 1 {
		return nil, fmt.Errorf("reduce feature count must be >= 1, got %d", opts.ReduceFeatureCount)
	}

	positive := counts.Positive.Clone()
	negative := counts.Negative.Clone()
	positive.Backfill(counts.Vocabulary)
	negative.Backfill(counts.Vocabulary)

	if opts.ReduceFeature {
		positive = positive.Top(opts.ReduceFeatureCount)
		negative = negative.Top(opts.ReduceFeatureCount)
	}

	vocabSize := len(counts.Vocabulary)
	model := &Model{
		Positive:       probabilities(positive, counts.Vocabulary, positive.Total()+vocabSize),
		Negative:       probabilities(negative, counts.Vocabulary, negative.Total()+vocabSize),
		VocabularySize: vocabSize,
		FeatureSize:    len(positive),
	}

	total := float64(counts.TotalDocs())
	model.PositivePrior = math.Log10(float64(counts.PositiveDocs) / total)
	model.NegativePrior = math.Log10(float64(counts.NegativeDocs) / total)

	return model, nil
}

func probabilities(wc WordCounts, vocab Vocabulary, denom int) ProbabilityTable {
	table := make(ProbabilityTable, len(wc))
	for f := range vocab {
		if c, ok := wc[f]; ok {
			table[f] = math.Log10(float64(c+1) / float64(denom))
		}
	}
	return table
}
