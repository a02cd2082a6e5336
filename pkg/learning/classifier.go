package learning

import "github.com/nbsent/sentiment-bayes/pkg/text"

// Sentiment is a document label
type Sentiment int

const (
	Negative Sentiment = -1
	Positive Sentiment = 1
)

func (s Sentiment) String() string {
	switch s {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return "unknown"
	}
}

// Classifier labels documents with a fitted model. It never mutates the
// model and is safe for concurrent use.
type Classifier struct {
	model        *Model
	preprocessor *text.Preprocessor
}

// NewClassifier creates a classifier. The preprocessor must be configured
// like the one used for training.
func NewClassifier(model *Model, preprocessor *text.Preprocessor) *Classifier {
	return &Classifier{
		model:        model,
		preprocessor: preprocessor,
	}
}

// Model returns the fitted model
func (c *Classifier) Model() *Model {
	return c.model
}

// Score returns the accumulated log likelihood of each class. Features
// missing from a class table add nothing to that class.
func (c *Classifier) Score(tokens []string) (positive, negative float64) {
	positive = c.model.PositivePrior
	negative = c.model.NegativePrior

	for _, feature := range c.preprocessor.Process(tokens) {
		if p, ok := c.model.Positive[feature]; ok {
			positive += p
		}
		if p, ok := c.model.Negative[feature]; ok {
			negative += p
		}
	}

	return positive, negative
}

// Classify returns Positive only when the positive score is strictly greater
func (c *Classifier) Classify(tokens []string) Sentiment {
	positive, negative := c.Score(tokens)
	if positive > negative {
		return Positive
	}
	return Negative
}
