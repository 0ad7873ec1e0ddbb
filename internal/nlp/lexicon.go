// Package nlp segments customer reviews: text cleaning, TF-IDF features,
// VADER sentiment, LDA topics and k-means clusters.
package nlp

import (
	_ "embed"
	"sync"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var lexiconYAML []byte

// Lexicon holds the word lists the review cleaner consults.
type Lexicon struct {
	Stopwords []string          `yaml:"stopwords"`
	Lemmas    map[string]string `yaml:"lemmas"`

	stop map[string]bool
}

// ParseLexicon decodes a YAML lexicon.
func ParseLexicon(data []byte) (*Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, eris.Wrap(err, "nlp: parse lexicon")
	}
	lex.stop = toSet(lex.Stopwords)
	if lex.Lemmas == nil {
		lex.Lemmas = map[string]string{}
	}
	return &lex, nil
}

var (
	defaultLexicon     *Lexicon
	defaultLexiconOnce sync.Once
)

// DefaultLexicon returns the embedded English lexicon.
func DefaultLexicon() *Lexicon {
	defaultLexiconOnce.Do(func() {
		lex, err := ParseLexicon(lexiconYAML)
		if err != nil {
			panic(err)
		}
		defaultLexicon = lex
	})
	return defaultLexicon
}

// IsStopword reports whether w is dropped during cleaning.
func (l *Lexicon) IsStopword(w string) bool { return l.stop[w] }

func toSet(words []string) map[string]bool {
	s := make(map[string]bool, len(words))
	for _, w := range words {
		s[w] = true
	}
	return s
}
