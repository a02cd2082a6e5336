package learning

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nbsent/sentiment-bayes/pkg/text"
)

// ErrPreprocessingMismatch is returned when stored counts were built with a
// different preprocessing pipeline than the one about to classify with them
var ErrPreprocessingMismatch = errors.New("preprocessing differs from training")

// Preprocessing describes every option that shapes the features of a
// document: the text stages plus the tokenizer settings of the corpus.
type Preprocessing struct {
	Text             text.Options `json:"text"`
	PartOfSpeech     bool         `json:"part_of_speech"`
	StripHTML        bool         `json:"strip_html"`
	NormalizeUnicode bool         `json:"normalize_unicode"`
}

// canonical clears settings that have no effect, so that for example a
// stem language does not matter while stemming is off
func (p Preprocessing) canonical() Preprocessing {
	if !p.Text.Stem {
		p.Text.StemLanguage = ""
	} else if p.Text.StemLanguage == "" {
		p.Text.StemLanguage = "english"
	}
	if !p.Text.Ngrams {
		p.Text.NgramSize = 0
	}
	return p
}

// Diff lists the option names that differ between p and other
func (p Preprocessing) Diff(other Preprocessing) []string {
	a, b := p.canonical(), other.canonical()

	var diff []string
	check := func(name string, same bool) {
		if !same {
			diff = append(diff, name)
		}
	}

	check("lowercase", a.Text.Lowercase == b.Text.Lowercase)
	check("remove_punctuation", a.Text.RemovePunctuation == b.Text.RemovePunctuation)
	check("remove_digits", a.Text.RemoveDigits == b.Text.RemoveDigits)
	check("stop_words", a.Text.StopWords == b.Text.StopWords)
	check("stem", a.Text.Stem == b.Text.Stem)
	check("stem_language", a.Text.StemLanguage == b.Text.StemLanguage)
	check("negation", a.Text.Negation == b.Text.Negation)
	check("ngrams", a.Text.Ngrams == b.Text.Ngrams)
	check("ngram_size", a.Text.NgramSize == b.Text.NgramSize)
	check("single_occurrence_per_doc", a.Text.SingleOccurrencePerDoc == b.Text.SingleOccurrencePerDoc)
	check("part_of_speech", a.PartOfSpeech == b.PartOfSpeech)
	check("strip_html", a.StripHTML == b.StripHTML)
	check("normalize_unicode", a.NormalizeUnicode == b.NormalizeUnicode)

	return diff
}

// Check returns ErrPreprocessingMismatch naming the differing options when
// current does not match the pipeline the counts were trained with
func (c *Counts) Check(current Preprocessing) error {
	if diff := c.Preprocessing.Diff(current); len(diff) > 0 {
		return fmt.Errorf("%w: %s", ErrPreprocessingMismatch, strings.Join(diff, ", "))
	}
	return nil
}
