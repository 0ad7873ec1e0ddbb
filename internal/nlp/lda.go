package nlp

import (
	"math/rand/v2"
)

// LDA is a latent Dirichlet allocation model fitted by collapsed Gibbs
// sampling. Zero Alpha and Beta default to 1/Topics.
type LDA struct {
	Topics     int
	Iterations int
	Alpha      float64
	Beta       float64
}

// TopicModel is a fitted LDA.
type TopicModel struct {
	// DocTopic[d][k] is the posterior mean share of topic k in document d.
	DocTopic [][]float64
	// TopicWord[k][w] is the posterior mean probability of word w in topic k.
	TopicWord [][]float64
	// Dominant is the most likely topic of each document.
	Dominant []int
}

// Fit samples topic assignments for docs, given as word ids below vocabSize.
func (m LDA) Fit(docs [][]int, vocabSize int, rng *rand.Rand) *TopicModel {
	k := max(m.Topics, 1)
	iters := max(m.Iterations, 1)
	alpha, beta := m.Alpha, m.Beta
	if alpha <= 0 {
		alpha = 1 / float64(k)
	}
	if beta <= 0 {
		beta = 1 / float64(k)
	}
	vBeta := float64(vocabSize) * beta

	docTopic := make([][]int, len(docs))
	topicWord := make([][]int, k)
	for t := range topicWord {
		topicWord[t] = make([]int, vocabSize)
	}
	topicTotal := make([]int, k)
	assign := make([][]int, len(docs))

	for d, doc := range docs {
		docTopic[d] = make([]int, k)
		assign[d] = make([]int, len(doc))
		for i, w := range doc {
			t := rng.IntN(k)
			assign[d][i] = t
			docTopic[d][t]++
			topicWord[t][w]++
			topicTotal[t]++
		}
	}

	p := make([]float64, k)
	for range iters {
		for d, doc := range docs {
			for i, w := range doc {
				t := assign[d][i]
				docTopic[d][t]--
				topicWord[t][w]--
				topicTotal[t]--

				var acc float64
				for j := range k {
					acc += (float64(docTopic[d][j]) + alpha) *
						(float64(topicWord[j][w]) + beta) /
						(float64(topicTotal[j]) + vBeta)
					p[j] = acc
				}
				u := rng.Float64() * acc
				t = k - 1
				for j := range k {
					if u < p[j] {
						t = j
						break
					}
				}

				assign[d][i] = t
				docTopic[d][t]++
				topicWord[t][w]++
				topicTotal[t]++
			}
		}
	}

	model := &TopicModel{
		DocTopic:  make([][]float64, len(docs)),
		TopicWord: make([][]float64, k),
		Dominant:  make([]int, len(docs)),
	}
	kAlpha := float64(k) * alpha
	for d, doc := range docs {
		theta := make([]float64, k)
		best := 0
		for j := range k {
			theta[j] = (float64(docTopic[d][j]) + alpha) / (float64(len(doc)) + kAlpha)
			if theta[j] > theta[best] {
				best = j
			}
		}
		model.DocTopic[d] = theta
		model.Dominant[d] = best
	}
	for j := range k {
		phi := make([]float64, vocabSize)
		for w := range vocabSize {
			phi[w] = (float64(topicWord[j][w]) + beta) / (float64(topicTotal[j]) + vBeta)
		}
		model.TopicWord[j] = phi
	}
	return model
}

// TopWords returns the n most probable word ids of topic t.
func (m *TopicModel) TopWords(t, n int) []int {
	phi := m.TopicWord[t]
	ids := make([]int, len(phi))
	for i := range ids {
		ids[i] = i
	}
	// Partial selection sort.
	n = min(n, len(ids))
	for i := range n {
		best := i
		for j := i + 1; j < len(ids); j++ {
			if phi[ids[j]] > phi[ids[best]] {
				best = j
			}
		}
		ids[i], ids[best] = ids[best], ids[i]
	}
	return ids[:n]
}
