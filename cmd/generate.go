package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	generateCount     int
	generateOutput    string
	generateTestSplit float64
	generateSeed      int64
	generateHTML      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic review corpus",
	Long: `Generate a labeled corpus of short movie reviews laid out as
train/pos, train/neg, test/pos and test/neg under the output directory.

The corpus is meant for trying out preprocessing options and benchmarking;
it exercises negation ("not good"), punctuation, digits and markup.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if generateCount <= 0 {
			return fmt.Errorf("count must be greater than 0")
		}

		if generateTestSplit <= 0 || generateTestSplit >= 1 {
			return fmt.Errorf("test-split must be between 0 and 1")
		}

		seed := generateSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		generator := NewReviewGenerator(seed, generateHTML)

		out := cmd.OutOrStdout()
		testCount := int(float64(generateCount) * generateTestSplit)
		trainCount := generateCount - testCount

		fmt.Fprintf(out, "🧪 Generating review corpus...\n")
		fmt.Fprintf(out, "📝 Reviews per class: %d (%d train, %d test)\n", generateCount, trainCount, testCount)
		fmt.Fprintf(out, "🎲 Seed: %d\n", seed)
		fmt.Fprintf(out, "📂 Output directory: %s\n\n", generateOutput)

		start := time.Now()

		if err := writeCorpus(generator, generateOutput, generateCount, generateTestSplit); err != nil {
			return err
		}

		duration := time.Since(start)

		fmt.Fprintf(out, "✅ Generation complete!\n")
		fmt.Fprintf(out, "⏱️  Time taken: %v\n", duration.Round(time.Millisecond))
		fmt.Fprintf(out, "💡 Point data.*_dir in your config at %s/{train,test}/{pos,neg}\n", generateOutput)

		return nil
	},
}

// writeCorpus writes count reviews per class under dir, splitting them
// between train/ and test/
func writeCorpus(generator *ReviewGenerator, dir string, count int, testSplit float64) error {
	testCount := int(float64(count) * testSplit)
	trainCount := count - testCount

	sets := []struct {
		dir      string
		positive bool
		count    int
	}{
		{filepath.Join(dir, "train", "pos"), true, trainCount},
		{filepath.Join(dir, "train", "neg"), false, trainCount},
		{filepath.Join(dir, "test", "pos"), true, testCount},
		{filepath.Join(dir, "test", "neg"), false, testCount},
	}

	for _, set := range sets {
		if err := os.MkdirAll(set.dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		for i := 0; i < set.count; i++ {
			filename := filepath.Join(set.dir, fmt.Sprintf("%04d.txt", i+1))
			if err := os.WriteFile(filename, []byte(generator.Generate(set.positive)), 0644); err != nil {
				return fmt.Errorf("failed to write review %s: %w", filename, err)
			}
		}
	}

	return nil
}

// ReviewGenerator produces short labeled reviews from phrase templates
type ReviewGenerator struct {
	rand *rand.Rand
	html bool

	subjects      []string
	positiveWords []string
	negativeWords []string
	openers       []string
	closers       map[bool][]string
}

// NewReviewGenerator creates a generator. The same seed yields the same corpus.
func NewReviewGenerator(seed int64, html bool) *ReviewGenerator {
	return &ReviewGenerator{
		rand: rand.New(rand.NewSource(seed)),
		html: html,

		subjects: []string{
			"the movie", "the plot", "the acting", "the soundtrack", "the script",
			"the ending", "the cast", "the director", "the sequel", "the dialogue",
		},

		positiveWords: []string{
			"great", "wonderful", "brilliant", "moving", "fun", "charming",
			"excellent", "beautiful", "clever", "delightful",
		},

		negativeWords: []string{
			"boring", "awful", "terrible", "dull", "predictable", "clumsy",
			"painful", "weak", "tedious", "forgettable",
		},

		openers: []string{
			"I watched this in %d.",
			"Saw it with %d friends.",
			"Rated it %d out of 10.",
			"It runs about %d minutes.",
		},

		closers: map[bool][]string{
			true:  {"Highly recommended!", "I would watch it again.", "A must see."},
			false: {"Save your money.", "I want those hours back.", "Skip it."},
		},
	}
}

// Generate returns one review for the given class
func (g *ReviewGenerator) Generate(positive bool) string {
	var sentences []string

	opener := g.pick(g.openers)
	switch {
	case strings.Contains(opener, "in %d"):
		sentences = append(sentences, fmt.Sprintf(opener, 1990+g.rand.Intn(35)))
	case strings.Contains(opener, "out of 10"):
		score := 1 + g.rand.Intn(4)
		if positive {
			score = 7 + g.rand.Intn(4)
		}
		sentences = append(sentences, fmt.Sprintf(opener, score))
	default:
		sentences = append(sentences, fmt.Sprintf(opener, 2+g.rand.Intn(120)))
	}

	same, opposite := g.positiveWords, g.negativeWords
	if !positive {
		same, opposite = opposite, same
	}

	sentenceCount := 2 + g.rand.Intn(3)
	for i := 0; i < sentenceCount; i++ {
		subject := g.pick(g.subjects)
		// Negated opposite words carry the same sentiment
		if g.rand.Intn(3) == 0 {
			sentences = append(sentences, fmt.Sprintf("%s was not %s , it was %s .", capitalize(subject), g.pick(opposite), g.pick(same)))
			continue
		}
		sentences = append(sentences, fmt.Sprintf("%s was %s .", capitalize(subject), g.pick(same)))
	}

	sentences = append(sentences, g.pick(g.closers[positive]))

	separator := " "
	if g.html {
		separator = " <br /><br /> "
	}

	return strings.Join(sentences, separator) + "\n"
}

func (g *ReviewGenerator) pick(options []string) string {
	return options[g.rand.Intn(len(options))]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func init() {
	generateCmd.Flags().IntVarP(&generateCount, "count", "n", 100, "Reviews per class")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "data", "Output directory")
	generateCmd.Flags().Float64Var(&generateTestSplit, "test-split", 0.2, "Share of reviews written to the test directories")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "Random seed (0 = time based)")
	generateCmd.Flags().BoolVar(&generateHTML, "html", false, "Separate sentences with <br /> markup")
}
