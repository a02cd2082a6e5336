package learning

import (
	"encoding/json"
	"sort"
	"time"
)

// Vocabulary is the set of distinct features seen during training
type Vocabulary map[string]struct{}

// NewVocabulary creates an empty vocabulary
func NewVocabulary() Vocabulary {
	return make(Vocabulary)
}

// Add inserts a feature
func (v Vocabulary) Add(feature string) {
	v[feature] = struct{}{}
}

// Contains reports whether feature is in the vocabulary
func (v Vocabulary) Contains(feature string) bool {
	_, ok := v[feature]
	return ok
}

// Merge adds every feature of other
func (v Vocabulary) Merge(other Vocabulary) {
	for f := range other {
		v[f] = struct{}{}
	}
}

// Features returns the vocabulary sorted
func (v Vocabulary) Features() []string {
	out := make([]string, 0, len(v))
	for f := range v {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON encodes the vocabulary as a sorted array
func (v Vocabulary) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Features())
}

// UnmarshalJSON decodes a feature array
func (v *Vocabulary) UnmarshalJSON(data []byte) error {
	var features []string
	if err := json.Unmarshal(data, &features); err != nil {
		return err
	}

	*v = make(Vocabulary, len(features))
	for _, f := range features {
		(*v)[f] = struct{}{}
	}
	return nil
}

// WordCounts maps a feature to its count in one class
type WordCounts map[string]int

// Clone returns an independent copy
func (wc WordCounts) Clone() WordCounts {
	out := make(WordCounts, len(wc))
	for f, c := range wc {
		out[f] = c
	}
	return out
}

// Backfill gives every vocabulary feature an explicit count, defaulting to
// zero, so both class tables share the vocabulary as key domain.
func (wc WordCounts) Backfill(vocab Vocabulary) {
	for f := range vocab {
		if _, ok := wc[f]; !ok {
			wc[f] = 0
		}
	}
}

// Total sums all counts
func (wc WordCounts) Total() int {
	total := 0
	for _, c := range wc {
		total += c
	}
	return total
}

// Top keeps the k features with the highest counts. Equal counts are ordered
// by feature so the result does not depend on map iteration.
func (wc WordCounts) Top(k int) WordCounts {
	if k >= len(wc) {
		return wc.Clone()
	}

	features := make([]string, 0, len(wc))
	for f := range wc {
		features = append(features, f)
	}

	sort.Slice(features, func(i, j int) bool {
		ci, cj := wc[features[i]], wc[features[j]]
		if ci != cj {
			return ci > cj
		}
		return features[i] < features[j]
	})

	out := make(WordCounts, k)
	for _, f := range features[:k] {
		out[f] = wc[f]
	}
	return out
}

// Counts is the frozen output of training both classes
type Counts struct {
	Vocabulary   Vocabulary `json:"vocabulary"`
	Positive     WordCounts `json:"positive"`
	Negative     WordCounts `json:"negative"`
	PositiveDocs int        `json:"positive_docs"`
	NegativeDocs int        `json:"negative_docs"`
	Skipped      int        `json:"skipped"`
	LastTrained  time.Time  `json:"last_trained"`

	// Preprocessing records the pipeline that produced the features
	Preprocessing Preprocessing `json:"preprocessing"`
}

// NewCounts creates empty training counts
func NewCounts() *Counts {
	return &Counts{
		Vocabulary: NewVocabulary(),
		Positive:   make(WordCounts),
		Negative:   make(WordCounts),
	}
}

// TotalDocs is the number of training documents across both classes
func (c *Counts) TotalDocs() int {
	return c.PositiveDocs + c.NegativeDocs
}
