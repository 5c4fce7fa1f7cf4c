// Package analysis turns pipeline output into the API's result shapes.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spacesedan/textanalytics/internal/models"
	"github.com/spacesedan/textanalytics/internal/pipelines"
)

type Service struct {
	sentiment pipelines.SentimentAnalyzer
	ner       pipelines.EntityRecognizer
	zeroShot  pipelines.ZeroShotClassifier
}

func NewService(sentiment pipelines.SentimentAnalyzer, ner pipelines.EntityRecognizer, zeroShot pipelines.ZeroShotClassifier) *Service {
	return &Service{sentiment: sentiment, ner: ner, zeroShot: zeroShot}
}

func NewServiceFromSet(set *pipelines.Set) *Service {
	return NewService(set.Sentiment, set.NER, set.ZeroShot)
}

// Analyze runs sentiment and NER over text. Only the top sentiment candidate
// is kept.
func (s *Service) Analyze(ctx context.Context, text string) (models.AnalysisResult, error) {
	start := time.Now()

	candidates, err := s.sentiment.Sentiment(ctx, text)
	if err != nil {
		return models.AnalysisResult{}, fmt.Errorf("sentiment analysis failed: %w", err)
	}
	if len(candidates) == 0 {
		return models.AnalysisResult{}, fmt.Errorf("sentiment analysis failed: %w: no candidates", models.ErrInvalidResult)
	}
	top := candidates[0]
	if err := models.ValidateResult(top); err != nil {
		return models.AnalysisResult{}, fmt.Errorf("sentiment analysis failed: %w", err)
	}

	entities, err := s.ner.Entities(ctx, text)
	if err != nil {
		return models.AnalysisResult{}, fmt.Errorf("entity recognition failed: %w", err)
	}
	if err := models.ValidateResults(entities); err != nil {
		return models.AnalysisResult{}, fmt.Errorf("entity recognition failed: %w", err)
	}
	if entities == nil {
		entities = []models.EntityResult{}
	}

	slog.Debug("[AnalysisService] Text analyzed",
		slog.String("sentiment", top.Label),
		slog.Int("entities", len(entities)),
		slog.Duration("elapsed", time.Since(start)))

	return models.AnalysisResult{Sentiment: top, Entities: entities}, nil
}

// Classify ranks labels against text. The labels are passed through as given.
func (s *Service) Classify(ctx context.Context, text string, labels []string) (models.ZeroShotResult, error) {
	start := time.Now()

	result, err := s.zeroShot.Classify(ctx, text, labels)
	if err != nil {
		return models.ZeroShotResult{}, fmt.Errorf("zero-shot classification failed: %w", err)
	}
	if err := models.ValidateResult(result); err != nil {
		return models.ZeroShotResult{}, fmt.Errorf("zero-shot classification failed: %w", err)
	}
	if !sameLabels(labels, result.Scores) {
		return models.ZeroShotResult{}, fmt.Errorf("zero-shot classification failed: %w: scored labels do not match the candidates",
			models.ErrInvalidResult)
	}
	result.Sequence = text
	if result.Scores == nil {
		result.Scores = []models.ZeroShotScore{}
	}

	slog.Debug("[AnalysisService] Text classified",
		slog.Int("labels", len(labels)),
		slog.Duration("elapsed", time.Since(start)))

	return result, nil
}

// sameLabels reports whether scores holds exactly one entry per candidate,
// counting repeated candidates separately.
func sameLabels(candidates []string, scores []models.ZeroShotScore) bool {
	if len(candidates) != len(scores) {
		return false
	}
	counts := make(map[string]int, len(candidates))
	for _, label := range candidates {
		counts[label]++
	}
	for _, s := range scores {
		if counts[s.Label] == 0 {
			return false
		}
		counts[s.Label]--
	}
	return true
}
