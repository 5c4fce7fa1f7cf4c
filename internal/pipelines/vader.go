package pipelines

import (
	"context"

	"github.com/spacesedan/textanalytics/internal/models"
	"github.com/spacesedan/textanalytics/internal/sentiment"
)

// VaderBackend is a lexicon sentiment analyzer with no model files.
type VaderBackend struct{}

func (VaderBackend) Sentiment(ctx context.Context, text string) ([]models.SentimentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scores := sentiment.AnalyzeWithVADER(text)
	results := make([]models.SentimentResult, 0, len(scores))
	for _, s := range scores {
		results = append(results, models.SentimentResult{Label: s.Label, Score: s.Score})
	}
	return results, nil
}
