package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Provider enumerates the documents of a corpus directory and reads their tokens
type Provider interface {
	// List returns the document identifiers in dir
	List(dir string) ([]string, error)

	// Read returns the raw tokens of a document
	Read(id string) ([]string, error)
}

// Options controls how documents are turned into raw tokens
type Options struct {
	// Extensions restricts documents to these file extensions (".txt").
	// Empty means every regular file.
	Extensions []string

	StripHTML        bool
	NormalizeUnicode bool

	// PartOfSpeech keeps only nouns, verbs, adjectives and adverbs
	PartOfSpeech bool
}

// DirProvider reads one document per file from a directory on disk
type DirProvider struct {
	opts      Options
	tokenizer Tokenizer
}

// NewDirProvider creates a provider using the tokenizer selected by opts
func NewDirProvider(opts Options) *DirProvider {
	var tokenizer Tokenizer = WhitespaceTokenizer{}
	if opts.PartOfSpeech {
		tokenizer = POSTokenizer{}
	}

	return NewDirProviderWithTokenizer(opts, tokenizer)
}

// NewDirProviderWithTokenizer creates a provider with an explicit tokenizer
func NewDirProviderWithTokenizer(opts Options, tokenizer Tokenizer) *DirProvider {
	return &DirProvider{
		opts:      opts,
		tokenizer: tokenizer,
	}
}

// List returns the files directly inside dir, sorted by name. Sub-directories
// are not descended into.
func (dp *DirProvider) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list corpus directory %s: %w", dir, err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || !dp.accepts(entry.Name()) {
			continue
		}
		ids = append(ids, filepath.Join(dir, entry.Name()))
	}

	return ids, nil
}

// Read loads a document file and tokenizes it
func (dp *DirProvider) Read(id string) ([]string, error) {
	data, err := os.ReadFile(id)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", id, err)
	}

	tokens, err := dp.Tokenize(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize document %s: %w", id, err)
	}

	return tokens, nil
}

// Tokenize applies the provider's cleanup and tokenizer to raw text
func (dp *DirProvider) Tokenize(content string) ([]string, error) {
	if dp.opts.NormalizeUnicode {
		content = norm.NFC.String(content)
	}

	if dp.opts.StripHTML {
		content = StripHTML(content)
	}

	return dp.tokenizer.Tokenize(content)
}

func (dp *DirProvider) accepts(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}

	if len(dp.opts.Extensions) == 0 {
		return true
	}

	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range dp.opts.Extensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}

	return false
}
