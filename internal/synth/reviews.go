package synth

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/ecom-prep/internal/dataset"
	"github.com/sells-group/ecom-prep/internal/model"
	"github.com/sells-group/ecom-prep/internal/tabular"
	"github.com/sells-group/ecom-prep/pkg/anthropic"
)

// Review columns added to the master record.
const (
	ColReviews = "Reviews"
	ColRatings = "Ratings"
)

// Polarity is the sentiment a generated review is written with.
type Polarity int

const (
	Negative Polarity = iota
	Neutral
	Positive
)

func (p Polarity) String() string {
	switch p {
	case Negative:
		return "negative"
	case Neutral:
		return "neutral"
	default:
		return "positive"
	}
}

// ReviewWriter produces review text for a product. Variant selects among
// equivalent phrasings and is always in [0, TemplateVariants).
type ReviewWriter interface {
	WriteReview(ctx context.Context, product string, p Polarity, variant int) (string, error)
}

// TemplateVariants is the number of phrasings per polarity.
const TemplateVariants = 5

var reviewTemplates = map[Polarity][TemplateVariants]string{
	Positive: {
		"I absolutely loved the %s, it was even better than I expected. The quality is top-notch, and it's very well-made. Definitely worth every penny!",
		"The %s is fantastic! It fits perfectly and performs as promised. I couldn't be happier with my purchase and will recommend it to my friends.",
		"Very satisfied with the %s. It exceeded my expectations in every way. High quality and durable, I'm extremely pleased with the performance!",
		"The %s works like a charm! It's everything I needed and more. Would definitely buy it again without hesitation.",
		"Had a great experience with the %s, from ordering to delivery, and the product quality is superb. I'm very happy and would highly recommend it!",
	},
	Neutral: {
		"The %s is okay. It does the job but doesn't stand out in any particular way. I'm not sure if I would purchase it again, but it serves its purpose.",
		"I have mixed feelings about the %s. It's decent for the price, but there are some things that could be improved. It works fine, though.",
		"The %s is average. Not too bad, but also nothing extraordinary. It's functional, but I'm not overly excited about it.",
		"To be honest, the %s is just alright. It's not terrible, but there's room for improvement. I wouldn't say it's great, but it's not awful either.",
		"The %s is fine for everyday use. It's not exceptional, but it gets the job done. I don't feel strongly about it either way.",
	},
	Negative: {
		"I was really disappointed with the %s. The quality was poor, and it didn't meet any of my expectations. I wouldn't recommend it to anyone.",
		"The %s turned out to be a big letdown. It feels cheaply made, and I regret buying it. Definitely not worth the money I spent.",
		"The %s broke after only a few uses. I expected much better quality, and this product didn't deliver. I wouldn't purchase this again.",
		"I'm really unhappy with the %s. It didn't work as advertised and had multiple issues. Save your money and look for something else.",
		"The %s was overpriced and didn't live up to the hype. I found it frustrating to use and wouldn't recommend it at all.",
	},
}

// TemplateWriter fills fixed review templates with the product name.
type TemplateWriter struct{}

// WriteReview implements ReviewWriter.
func (TemplateWriter) WriteReview(_ context.Context, product string, p Polarity, variant int) (string, error) {
	if variant < 0 || variant >= TemplateVariants {
		return "", eris.Errorf("synth: review variant %d out of range", variant)
	}
	return fmt.Sprintf(reviewTemplates[p][variant], product), nil
}

const reviewSystemPrompt = "You write short, realistic customer reviews for an online store. " +
	"Reply with the review text only: two or three sentences, no title, no rating, no quotes."

// LLMWriter asks a Messages API model for the review and falls back to the
// templates when the call fails or returns nothing.
type LLMWriter struct {
	Client    anthropic.Client
	Model     string
	MaxTokens int64
	Fallback  ReviewWriter

	usage anthropic.TokenUsage
}

// NewLLMWriter returns an LLMWriter with template fallback.
func NewLLMWriter(client anthropic.Client, model string, maxTokens int64) *LLMWriter {
	return &LLMWriter{Client: client, Model: model, MaxTokens: maxTokens, Fallback: TemplateWriter{}}
}

// WriteReview implements ReviewWriter.
func (w *LLMWriter) WriteReview(ctx context.Context, product string, p Polarity, variant int) (string, error) {
	resp, err := w.Client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     w.Model,
		MaxTokens: w.MaxTokens,
		System:    reviewSystemPrompt,
		Messages: []anthropic.Message{{
			Role:    "user",
			Content: fmt.Sprintf("Write a %s review of the %s.", p, product),
		}},
	})
	if err == nil {
		w.usage.Add(resp.Usage)
		if text := resp.Text(); text != "" {
			return text, nil
		}
		err = eris.New("synth: empty review from model")
	}
	if ctx.Err() != nil {
		return "", eris.Wrap(ctx.Err(), "synth: write review")
	}
	zap.L().Warn("synth: review model failed, using template",
		zap.String("product", product),
		zap.Error(err),
	)
	return w.Fallback.WriteReview(ctx, product, p, variant)
}

// Usage returns the tokens consumed so far.
func (w *LLMWriter) Usage() anthropic.TokenUsage { return w.usage }

// drawReview picks polarity, phrasing and star rating. Below 0.33 is
// negative with one or two stars, below 0.66 neutral with three, otherwise
// positive with four or five.
func drawReview(rng *rand.Rand) (Polarity, int, int) {
	u := rng.Float64()
	variant := rng.IntN(TemplateVariants)
	switch {
	case u < 0.33:
		return Negative, variant, 1 + rng.IntN(2)
	case u < 0.66:
		return Neutral, variant, 3
	default:
		return Positive, variant, 4 + rng.IntN(2)
	}
}

// ReviewStats summarises a review pass.
type ReviewStats struct {
	Reviewed int            `json:"reviewed"`
	Ratings  map[string]int `json:"ratings"`
}

// AddReviews writes a review and rating on every Delivered row of the master
// table and clears both columns on every other row.
func AddReviews(ctx context.Context, master *tabular.Table, w ReviewWriter, rng *rand.Rand) (ReviewStats, error) {
	stats := ReviewStats{Ratings: make(map[string]int)}
	if err := master.Require(dataset.ColStatus, dataset.ColName); err != nil {
		return stats, eris.Wrap(err, "synth: reviews")
	}
	master.AddColumn(ColReviews)
	master.AddColumn(ColRatings)

	for r := range master.Rows {
		master.Set(r, ColReviews, "")
		master.Set(r, ColRatings, "")
		if master.Get(r, dataset.ColStatus) != model.StatusDelivered {
			continue
		}
		p, variant, rating := drawReview(rng)
		text, err := w.WriteReview(ctx, master.Get(r, dataset.ColName), p, variant)
		if err != nil {
			return stats, eris.Wrapf(err, "synth: review row %d", r+2)
		}
		master.Set(r, ColReviews, text)
		master.Set(r, ColRatings, strconv.Itoa(rating))
		stats.Reviewed++
		stats.Ratings[strconv.Itoa(rating)]++
	}

	zap.L().Info("synth: reviews added", zap.Int("reviewed", stats.Reviewed), zap.Int("rows", master.Len()))
	return stats, nil
}
