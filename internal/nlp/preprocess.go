package nlp

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Preprocess reduces a review to lemmatised content words: accents are
// folded, anything but ASCII letters and whitespace is removed, the text is
// lowercased and split on whitespace, stopwords are dropped and the rest
// lemmatised.
func (l *Lexicon) Preprocess(text string) []string {
	folded, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn))), text)
	if err != nil {
		folded = text
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	fields := strings.Fields(b.String())
	out := make([]string, 0, len(fields))
	for _, w := range fields {
		if l.IsStopword(w) {
			continue
		}
		out = append(out, l.Lemmatize(w))
	}
	return out
}

// Clean is Preprocess joined back into a single string.
func (l *Lexicon) Clean(text string) string {
	return strings.Join(l.Preprocess(text), " ")
}

// Lemmatize maps a plural noun to its singular. Irregular forms come from
// the lexicon; regular ones from suffix rules.
func (l *Lexicon) Lemmatize(w string) string {
	if lemma, ok := l.Lemmas[w]; ok {
		return lemma
	}
	n := len(w)
	switch {
	case n <= 3:
		return w
	case strings.HasSuffix(w, "ies") && n > 4:
		return w[:n-3] + "y"
	case strings.HasSuffix(w, "sses"),
		strings.HasSuffix(w, "ches"),
		strings.HasSuffix(w, "shes"),
		strings.HasSuffix(w, "xes"),
		strings.HasSuffix(w, "zzes"):
		return w[:n-2]
	case strings.HasSuffix(w, "ss"),
		strings.HasSuffix(w, "us"),
		strings.HasSuffix(w, "is"),
		strings.HasSuffix(w, "ous"):
		return w
	case strings.HasSuffix(w, "s"):
		return w[:n-1]
	}
	return w
}
