package review

import (
	"fmt"
	"strings"

	"github.com/cognicore/revtrend/pkg/revtrend/internalerr"
)

// Sentiment is the label attached to a review by the classifier.
type Sentiment string

const (
	Positive Sentiment = "POSITIVE"
	Negative Sentiment = "NEGATIVE"
	Neutral  Sentiment = "NEUTRAL"
)

// Sentiments lists the labels in report order.
var Sentiments = []Sentiment{Positive, Negative, Neutral}

// ParseSentiment maps a label column to a Sentiment. Matching is
// case-insensitive and anything unrecognised is treated as Neutral.
func ParseSentiment(label string) Sentiment {
	switch Sentiment(strings.ToUpper(strings.TrimSpace(label))) {
	case Positive:
		return Positive
	case Negative:
		return Negative
	default:
		return Neutral
	}
}

// Valid reports whether s is one of the three known labels.
func (s Sentiment) Valid() bool {
	return s == Positive || s == Negative || s == Neutral
}

// Review is one customer review as exchanged between the stages.
type Review struct {
	BusinessID     string
	Alias          string
	BusinessName   string
	BusinessRating string
	ReviewID       string
	ReviewRating   string
	Text           string
	Sentiment      Sentiment // empty until classified
}

// Labelled reports whether the classifier has attached a sentiment.
func (r Review) Labelled() bool {
	return r.Sentiment != ""
}

// WithSentiment returns a copy of r carrying the given label.
func (r Review) WithSentiment(s Sentiment) Review {
	r.Sentiment = s
	return r
}

// Validate checks if the review has the fields every stage relies on
func (r *Review) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("review text is required: %w", internalerr.ErrInvalidInput)
	}
	if r.Sentiment != "" && !r.Sentiment.Valid() {
		return fmt.Errorf("review sentiment %q is not a known label: %w", r.Sentiment, internalerr.ErrInvalidInput)
	}
	return nil
}
