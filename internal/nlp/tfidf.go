package nlp

import (
	"math"
	"sort"
)

// Vectorizer turns token lists into L2-normalised TF-IDF rows over a fixed
// vocabulary.
type Vectorizer struct {
	// MaxFeatures caps the vocabulary at the most frequent terms across the
	// corpus; 0 keeps every term.
	MaxFeatures int

	vocab []string
	index map[string]int
	idf   []float64
}

// NewVectorizer returns a Vectorizer keeping at most maxFeatures terms.
func NewVectorizer(maxFeatures int) *Vectorizer {
	return &Vectorizer{MaxFeatures: maxFeatures}
}

// Fit learns the vocabulary and smoothed inverse document frequencies
// idf(t) = ln((1+n)/(1+df(t))) + 1.
func (v *Vectorizer) Fit(docs [][]string) {
	tf := make(map[string]int)
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool, len(doc))
		for _, w := range doc {
			tf[w]++
			if !seen[w] {
				seen[w] = true
				df[w]++
			}
		}
	}

	terms := make([]string, 0, len(tf))
	for w := range tf {
		terms = append(terms, w)
	}
	if v.MaxFeatures > 0 && len(terms) > v.MaxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if tf[terms[i]] != tf[terms[j]] {
				return tf[terms[i]] > tf[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:v.MaxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(docs))
	v.vocab = terms
	v.index = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	for i, w := range terms {
		v.index[w] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[w]))) + 1
	}
}

// Vocabulary returns the learned terms in column order.
func (v *Vectorizer) Vocabulary() []string { return v.vocab }

// Index returns the column of a term, or -1.
func (v *Vectorizer) Index(term string) int {
	if i, ok := v.index[term]; ok {
		return i
	}
	return -1
}

// Transform renders each document as a dense TF-IDF row. Documents with no
// vocabulary terms yield zero rows.
func (v *Vectorizer) Transform(docs [][]string) [][]float64 {
	out := make([][]float64, len(docs))
	for d, doc := range docs {
		row := make([]float64, len(v.vocab))
		for _, w := range doc {
			if i, ok := v.index[w]; ok {
				row[i]++
			}
		}
		var norm float64
		for i := range row {
			row[i] *= v.idf[i]
			norm += row[i] * row[i]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for i := range row {
				row[i] /= norm
			}
		}
		out[d] = row
	}
	return out
}

// FitTransform is Fit followed by Transform on the same documents.
func (v *Vectorizer) FitTransform(docs [][]string) [][]float64 {
	v.Fit(docs)
	return v.Transform(docs)
}

// TermIDs maps each document to the vocabulary columns of its tokens,
// dropping out-of-vocabulary words.
func (v *Vectorizer) TermIDs(docs [][]string) [][]int {
	out := make([][]int, len(docs))
	for d, doc := range docs {
		for _, w := range doc {
			if i, ok := v.index[w]; ok {
				out[d] = append(out[d], i)
			}
		}
	}
	return out
}
