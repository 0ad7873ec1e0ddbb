package nlp

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/ecom-prep/internal/tabular"
)

// Columns read and written by Segment.
const (
	ColReviews        = "Reviews"
	ColCleanedReviews = "CleanedReviews"
	ColNeg            = "neg"
	ColNeu            = "neu"
	ColPos            = "pos"
	ColCompound       = "compound"
	ColTopic          = "Topic"
	ColCluster        = "Cluster"
)

// SegmentColumns lists the columns Segment appends, in order.
var SegmentColumns = []string{ColCleanedReviews, ColNeg, ColNeu, ColPos, ColCompound, ColTopic, ColCluster}

// Options tunes segmentation.
type Options struct {
	MaxFeatures int
	Topics      int
	Clusters    int
	NInit       int
	Iterations  int
}

// DefaultOptions mirrors the pipeline defaults.
func DefaultOptions() Options {
	return Options{MaxFeatures: 1000, Topics: 5, Clusters: 5, NInit: 10, Iterations: 200}
}

// Stats summarises a segmentation run.
type Stats struct {
	Rows         int            `json:"rows"`
	Reviewed     int            `json:"reviewed"`
	Vocabulary   int            `json:"vocabulary"`
	Inertia      float64        `json:"inertia"`
	TopicSizes   map[string]int `json:"topic_sizes"`
	ClusterSizes map[string]int `json:"cluster_sizes"`
	TopicWords   [][]string     `json:"topic_words,omitempty"`
}

const topWordsPerTopic = 8

// Segment scores and groups the reviewed rows of the master table. It
// returns a copy with SegmentColumns appended; rows without a review keep
// those columns empty.
func Segment(master *tabular.Table, lex *Lexicon, opts Options, rng *rand.Rand) (*tabular.Table, Stats, error) {
	stats := Stats{TopicSizes: map[string]int{}, ClusterSizes: map[string]int{}}
	if err := master.Require(ColReviews); err != nil {
		return nil, stats, eris.Wrap(err, "nlp: segment")
	}

	out := tabular.New(master.Header...)
	for _, row := range master.Rows {
		out.Append(row)
	}
	for _, c := range SegmentColumns {
		out.AddColumn(c)
		for r := range out.Rows {
			out.Set(r, c, "")
		}
	}
	stats.Rows = out.Len()

	scorer := NewScorer()
	var rows []int
	var docs [][]string
	for r := range out.Rows {
		review := out.Get(r, ColReviews)
		if strings.TrimSpace(review) == "" {
			continue
		}
		tokens := lex.Preprocess(review)
		cleaned := strings.Join(tokens, " ")
		s := scorer.Score(cleaned)

		out.Set(r, ColCleanedReviews, cleaned)
		out.Set(r, ColNeg, formatScore(s.Neg))
		out.Set(r, ColNeu, formatScore(s.Neu))
		out.Set(r, ColPos, formatScore(s.Pos))
		out.Set(r, ColCompound, formatScore(s.Compound))
		rows = append(rows, r)
		docs = append(docs, tokens)
	}
	stats.Reviewed = len(rows)
	if len(rows) == 0 {
		zap.L().Warn("nlp: no reviews to segment", zap.Int("rows", stats.Rows))
		return out, stats, nil
	}

	vec := NewVectorizer(opts.MaxFeatures)
	features := vec.FitTransform(docs)
	stats.Vocabulary = len(vec.Vocabulary())

	topics := LDA{Topics: opts.Topics, Iterations: opts.Iterations}.Fit(vec.TermIDs(docs), stats.Vocabulary, rng)
	clusters := KMeans{K: opts.Clusters, NInit: opts.NInit}.Fit(features, rng)
	stats.Inertia = clusters.Inertia

	for i, r := range rows {
		topic := strconv.Itoa(topics.Dominant[i])
		cluster := strconv.Itoa(clusters.Labels[i])
		out.Set(r, ColTopic, topic)
		out.Set(r, ColCluster, cluster)
		stats.TopicSizes[topic]++
		stats.ClusterSizes[cluster]++
	}
	if stats.Vocabulary > 0 {
		vocab := vec.Vocabulary()
		for t := range topics.TopicWord {
			var words []string
			for _, id := range topics.TopWords(t, topWordsPerTopic) {
				words = append(words, vocab[id])
			}
			stats.TopicWords = append(stats.TopicWords, words)
		}
	}

	zap.L().Info("nlp: reviews segmented",
		zap.Int("reviewed", stats.Reviewed),
		zap.Int("vocabulary", stats.Vocabulary),
		zap.Float64("inertia", stats.Inertia),
	)
	return out, stats, nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
