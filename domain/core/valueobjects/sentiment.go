package valueobjects

import (
	"fmt"
)

// SentimentBand is the discrete category a continuous sentiment score
// maps to for styling purposes.
type SentimentBand string

const (
	BandPositive SentimentBand = "positive"
	BandNegative SentimentBand = "negative"
	BandNeutral  SentimentBand = "neutral"
)

// Banding thresholds. Scores strictly above the positive threshold are
// positive; scores strictly below the negative threshold are negative.
const (
	PositiveThreshold = 0.5
	NegativeThreshold = -0.3
)

// Sentiment is an optional score in [-1, 1]. The zero value is "absent",
// which is distinct from a score of 0.
type Sentiment struct {
	score   float64
	present bool
}

// NewSentiment creates a sentiment score, rejecting out-of-range values
func NewSentiment(score float64) (Sentiment, error) {
	if score < -1 || score > 1 {
		return Sentiment{}, fmt.Errorf("sentiment score %v outside [-1, 1]", score)
	}
	return Sentiment{score: score, present: true}, nil
}

// NoSentiment returns the absent sentiment value
func NoSentiment() Sentiment {
	return Sentiment{}
}

// Score returns the raw score; only meaningful when Present is true
func (s Sentiment) Score() float64 {
	return s.score
}

// Present reports whether a score was supplied at all
func (s Sentiment) Present() bool {
	return s.present
}

// Band maps the score to its discrete color category. Absent sentiment
// has no band; callers must check Present first.
func (s Sentiment) Band() SentimentBand {
	switch {
	case s.score > PositiveThreshold:
		return BandPositive
	case s.score < NegativeThreshold:
		return BandNegative
	default:
		return BandNeutral
	}
}
