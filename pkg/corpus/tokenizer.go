package corpus

import (
	"strings"

	"github.com/jdkato/prose/v2"
	"golang.org/x/net/html"
)

// Tokenizer splits document text into raw tokens
type Tokenizer interface {
	Tokenize(text string) ([]string, error)
}

// WhitespaceTokenizer splits on runs of whitespace
type WhitespaceTokenizer struct{}

// Tokenize implements Tokenizer
func (WhitespaceTokenizer) Tokenize(text string) ([]string, error) {
	return strings.Fields(text), nil
}

// POSTokenizer tags text and keeps nouns, verbs, adjectives and adverbs
type POSTokenizer struct{}

// Tokenize implements Tokenizer
func (POSTokenizer) Tokenize(text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.WithExtraction(false),
		prose.WithSegmentation(false))
	if err != nil {
		return nil, err
	}

	var words []string
	for _, tok := range doc.Tokens() {
		if IsContentTag(tok.Tag) {
			words = append(words, tok.Text)
		}
	}

	return words, nil
}

// IsContentTag reports whether a Penn Treebank tag marks a noun (NN*),
// verb (VB*), adjective (JJ*) or adverb (RB*)
func IsContentTag(tag string) bool {
	if tag == "" {
		return false
	}

	switch tag[0] {
	case 'N', 'V', 'J', 'R':
		// RP is a particle, not an adverb
		return tag != "RP"
	}
	return false
}

// StripHTML drops markup and keeps the text content. Adjacent text nodes
// are separated by a space so "a<br />b" stays two words.
func StripHTML(content string) string {
	var sb strings.Builder

	z := html.NewTokenizer(strings.NewReader(content))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return sb.String()
		case html.TextToken:
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.Write(z.Text())
		}
	}
}
