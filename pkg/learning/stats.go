package learning

import (
	"fmt"
	"io"
	"sort"
)

// FeatureStats describes how strongly a feature points at one class
type FeatureStats struct {
	Feature     string  `json:"feature"`
	PositiveLog float64 `json:"positive_log"`
	NegativeLog float64 `json:"negative_log"`

	// LogOdds is PositiveLog - NegativeLog; > 0 leans positive
	LogOdds float64 `json:"log_odds"`
}

// TopFeatures returns the features most indicative of class. Only features
// present in both tables are ranked.
func (m *Model) TopFeatures(class Sentiment, limit int) []*FeatureStats {
	var stats []*FeatureStats

	for f, pos := range m.Positive {
		neg, ok := m.Negative[f]
		if !ok {
			continue
		}
		stats = append(stats, &FeatureStats{
			Feature:     f,
			PositiveLog: pos,
			NegativeLog: neg,
			LogOdds:     pos - neg,
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].LogOdds != stats[j].LogOdds {
			if class == Positive {
				return stats[i].LogOdds > stats[j].LogOdds
			}
			return stats[i].LogOdds < stats[j].LogOdds
		}
		return stats[i].Feature < stats[j].Feature
	})

	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}

	return stats
}

// PrintStats prints model statistics and the most indicative features
func (m *Model) PrintStats(w io.Writer, limit int) {
	fmt.Fprintf(w, "🧠 Naive Bayes Sentiment Model\n")
	fmt.Fprintf(w, "════════════════════════════════════════\n")
	fmt.Fprintf(w, "  Vocabulary size: %d\n", m.VocabularySize)
	fmt.Fprintf(w, "  Feature size: %d\n", m.FeatureSize)
	fmt.Fprintf(w, "  Positive prior: %.4f\n", m.PositivePrior)
	fmt.Fprintf(w, "  Negative prior: %.4f\n", m.NegativePrior)

	fmt.Fprintf(w, "\n📈 Top Positive Features:\n")
	for i, f := range m.TopFeatures(Positive, limit) {
		fmt.Fprintf(w, "  %2d. %-20s (%+.3f log-odds)\n", i+1, f.Feature, f.LogOdds)
	}

	fmt.Fprintf(w, "\n📉 Top Negative Features:\n")
	for i, f := range m.TopFeatures(Negative, limit) {
		fmt.Fprintf(w, "  %2d. %-20s (%+.3f log-odds)\n", i+1, f.Feature, f.LogOdds)
	}

	fmt.Fprintf(w, "\n")
}
