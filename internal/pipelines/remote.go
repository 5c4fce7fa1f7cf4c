package pipelines

import (
	"context"
	"sort"
	"strings"

	"github.com/spacesedan/textanalytics/internal/clients"
	"github.com/spacesedan/textanalytics/internal/models"
)

// RemoteBackend forwards every call to a Hugging Face inference server.
type RemoteBackend struct {
	client *clients.HuggingFaceClient

	sentimentModel string
	nerModel       string
	zeroShotModel  string
}

func NewRemoteBackend(client *clients.HuggingFaceClient, sentimentModel, nerModel, zeroShotModel string) *RemoteBackend {
	return &RemoteBackend{
		client:         client,
		sentimentModel: sentimentModel,
		nerModel:       nerModel,
		zeroShotModel:  zeroShotModel,
	}
}

func (r *RemoteBackend) Sentiment(ctx context.Context, text string) ([]models.SentimentResult, error) {
	out, err := r.client.TextClassification(ctx, r.sentimentModel, text)
	if err != nil {
		return nil, err
	}

	results := make([]models.SentimentResult, 0, len(out))
	for _, o := range out {
		results = append(results, models.SentimentResult{Label: o.Label, Score: o.Score})
	}
	// The API already ranks candidates; the sort only guards older deployments.
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results, nil
}

func (r *RemoteBackend) Entities(ctx context.Context, text string) ([]models.EntityResult, error) {
	out, err := r.client.TokenClassification(ctx, r.nerModel, text)
	if err != nil {
		return nil, err
	}

	entities := make([]models.EntityResult, 0, len(out))
	for _, e := range out {
		label := e.EntityGroup
		if label == "" {
			label = strings.TrimPrefix(strings.TrimPrefix(e.Entity, "B-"), "I-")
		}

		word := strings.TrimSpace(e.Word)
		if e.Start != nil && e.End != nil {
			if span, ok := runeSpan(text, *e.Start, *e.End); ok {
				word = span
			}
		}

		entities = append(entities, models.EntityResult{Text: word, Label: label})
	}
	return entities, nil
}

func (r *RemoteBackend) Classify(ctx context.Context, text string, labels []string) (models.ZeroShotResult, error) {
	result := models.ZeroShotResult{Sequence: text, Scores: []models.ZeroShotScore{}}
	if len(labels) == 0 {
		return result, nil
	}

	out, err := r.client.ZeroShotClassification(ctx, r.zeroShotModel, text, UniqueLabels(labels))
	if err != nil {
		return models.ZeroShotResult{}, err
	}

	scored := make([]models.ZeroShotScore, 0, len(out))
	for _, o := range out {
		scored = append(scored, models.ZeroShotScore{Label: o.Label, Score: o.Score})
	}
	result.Scores, err = ScoresFor(labels, scored)
	if err != nil {
		return models.ZeroShotResult{}, err
	}
	return result, nil
}

func (r *RemoteBackend) HealthCheck(ctx context.Context) bool {
	return r.client.HealthCheck(ctx)
}

// runeSpan slices text by character offsets, which is how the inference API
// reports entity positions.
func runeSpan(text string, start, end int) (string, bool) {
	runes := []rune(text)
	if start < 0 || start >= end || end > len(runes) {
		return "", false
	}
	return string(runes[start:end]), true
}
