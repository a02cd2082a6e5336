package text

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// StopWords is a set of tokens removed by the stop-word stage
type StopWords map[string]struct{}

// NewStopWords builds a set from a word list
func NewStopWords(words ...string) StopWords {
	sw := make(StopWords, len(words))
	for _, w := range words {
		sw[w] = struct{}{}
	}
	return sw
}

// ParseStopWords reads whitespace separated stop words
func ParseStopWords(r io.Reader) (StopWords, error) {
	sw := make(StopWords)

	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		sw[scanner.Text()] = struct{}{}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return sw, nil
}

// LoadStopWords reads a stop-word file
func LoadStopWords(path string) (StopWords, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stop-word file %s: %w", path, err)
	}
	defer f.Close()

	sw, err := ParseStopWords(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read stop-word file %s: %w", path, err)
	}

	return sw, nil
}

// Contains reports whether word is a stop word
func (sw StopWords) Contains(word string) bool {
	_, ok := sw[word]
	return ok
}
