package text

import (
	"fmt"
	"strings"

	"github.com/kljensen/snowball"
)

const (
	// Symbols are stripped from every token when punctuation removal is enabled
	Symbols = "{}()[],.:;+-*/&|<>=~$"

	// Digits are stripped from every token when digit removal is enabled
	Digits = "0123456789"
)

// Options selects the preprocessing stages. The zero value disables every
// stage and leaves token sequences untouched.
type Options struct {
	Lowercase         bool `json:"lowercase"`
	RemovePunctuation bool `json:"remove_punctuation"`
	RemoveDigits      bool `json:"remove_digits"`
	StopWords         bool `json:"stop_words"`

	// Stemming runs after stop-word removal and before negation
	Stem         bool   `json:"stem"`
	StemLanguage string `json:"stem_language,omitempty"`

	Negation bool `json:"negation"`

	Ngrams    bool `json:"ngrams"`
	NgramSize int  `json:"ngram_size,omitempty"`

	// SingleOccurrencePerDoc collapses a document to its distinct features.
	// Runs last because n-gram generation needs order and repetition.
	SingleOccurrencePerDoc bool `json:"single_occurrence_per_doc"`
}

// Preprocessor turns raw document tokens into model features
type Preprocessor struct {
	opts      Options
	stopWords StopWords
}

// NewPreprocessor validates options and builds a preprocessor. stopWords may be
// nil unless stop-word removal is enabled.
func NewPreprocessor(opts Options, stopWords StopWords) (*Preprocessor, error) {
	if opts.Ngrams && opts.NgramSize < 1 {
		return nil, fmt.Errorf("ngram size must be >= 1, got %d", opts.NgramSize)
	}

	if opts.StopWords && stopWords == nil {
		return nil, fmt.Errorf("stop-word removal enabled without a stop-word set")
	}

	if opts.Stem {
		if opts.StemLanguage == "" {
			opts.StemLanguage = "english"
		}
		if _, err := snowball.Stem("testing", opts.StemLanguage, true); err != nil {
			return nil, fmt.Errorf("unsupported stem language %q: %w", opts.StemLanguage, err)
		}
	}

	return &Preprocessor{
		opts:      opts,
		stopWords: stopWords,
	}, nil
}

// Options returns the options the preprocessor was built with
func (p *Preprocessor) Options() Options {
	return p.opts
}

// Process applies the enabled stages in their fixed order. The input slice is
// never modified.
func (p *Preprocessor) Process(tokens []string) []string {
	words := make([]string, len(tokens))
	copy(words, tokens)

	if p.opts.Lowercase {
		for i, w := range words {
			words[i] = strings.ToLower(w)
		}
	}

	if p.opts.RemovePunctuation {
		for i, w := range words {
			words[i] = strip(w, Symbols)
		}
	}

	if p.opts.RemoveDigits {
		for i, w := range words {
			words[i] = strip(w, Digits)
		}
	}

	if p.opts.StopWords {
		kept := words[:0]
		for _, w := range words {
			if !p.stopWords.Contains(w) {
				kept = append(kept, w)
			}
		}
		words = kept
	}

	if p.opts.Stem {
		for i, w := range words {
			// language is checked in NewPreprocessor
			if stemmed, err := snowball.Stem(w, p.opts.StemLanguage, true); err == nil {
				words[i] = stemmed
			}
		}
	}

	if p.opts.Negation {
		words = Render(Negate(Wrap(words)))
	}

	if p.opts.Ngrams {
		words = NGrams(p.opts.NgramSize, words)
	}

	if p.opts.SingleOccurrencePerDoc {
		words = Unique(words)
	}

	return words
}

// strip removes every character of set from s and trims surrounding
// whitespace. Tokens stripped down to "" are kept.
func strip(s, set string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if strings.ContainsRune(set, r) {
			return -1
		}
		return r
	}, s))
}

// Unique drops repeated features, keeping first occurrences in order
func Unique(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))

	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}

	return out
}
