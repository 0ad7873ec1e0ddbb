package nlp

import (
	"math"
	"strings"

	"github.com/jonreiter/govader"
)

// Sentiment is a polarity breakdown of one text. Neg, Neu and Pos are
// proportions summing to about 1; Compound is the normalised sum in [-1, 1].
type Sentiment struct {
	Neg      float64 `json:"neg"`
	Neu      float64 `json:"neu"`
	Pos      float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

// Scorer rates text with the VADER lexicon and rules.
type Scorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewScorer loads the VADER lexicon.
func NewScorer() *Scorer {
	return &Scorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the polarity of text, proportions to 3 places and compound
// to 4. Blank text scores zero throughout.
func (s *Scorer) Score(text string) Sentiment {
	if strings.TrimSpace(text) == "" {
		return Sentiment{}
	}
	p := s.analyzer.PolarityScores(text)
	return Sentiment{
		Neg:      round(p.Negative, 3),
		Neu:      round(p.Neutral, 3),
		Pos:      round(p.Positive, 3),
		Compound: round(p.Compound, 4),
	}
}

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
