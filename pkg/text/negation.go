package text

import "strings"

// NegationPrefix is prepended to the text of negated tokens when rendered
const NegationPrefix = "Not_"

// punctuation ends a negation scope
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var negationCues = map[string]struct{}{
	"not": {},
	"Not": {},
	"no":  {},
	"No":  {},
}

// Token is a word together with its negation mark
type Token struct {
	Text    string
	Negated bool
}

// String renders the token as a feature, e.g. "Not_good"
func (t Token) String() string {
	if t.Negated {
		return NegationPrefix + t.Text
	}
	return t.Text
}

// Wrap turns plain words into unmarked tokens
func Wrap(words []string) []Token {
	tokens := make([]Token, len(words))
	for i, w := range words {
		tokens[i] = Token{Text: w}
	}
	return tokens
}

// Render turns tokens back into feature strings
func Render(tokens []Token) []string {
	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = t.String()
	}
	return words
}

// IsNegationCue reports whether word opens a negation scope
func IsNegationCue(word string) bool {
	_, ok := negationCues[word]
	return ok
}

// Negate marks the tokens following a negation cue. The token right after a
// cue is always marked; marking then continues until a token containing
// punctuation, which is left unmarked and closes the scope. A cue inside an
// open scope is itself marked and keeps the scope open.
func Negate(tokens []Token) []Token {
	out := make([]Token, len(tokens))
	copy(out, tokens)

	negating := false
	for i := 0; i < len(out); i++ {
		if negating {
			if strings.ContainsAny(out[i].Text, punctuation) {
				negating = false
			} else {
				out[i].Negated = true
			}
		}

		if IsNegationCue(out[i].Text) && i+1 < len(out) {
			negating = true
			out[i+1].Negated = true
			i++
		}
	}

	return out
}
