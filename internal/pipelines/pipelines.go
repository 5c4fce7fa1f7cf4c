//go:generate go run go.uber.org/mock/mockgen -source=pipelines.go -destination=../mocks/mock_pipelines.go -package=mocks

// Package pipelines wraps the model runtimes behind three small interfaces.
// A Set is built once at startup and shared read-only by every request.
package pipelines

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spacesedan/textanalytics/internal/models"
)

var ErrUnknownBackend = errors.New("unknown pipeline backend")

// SentimentAnalyzer returns the model's sentiment candidates, best first.
type SentimentAnalyzer interface {
	Sentiment(ctx context.Context, text string) ([]models.SentimentResult, error)
}

// EntityRecognizer returns named entities in the order the model emits them.
type EntityRecognizer interface {
	Entities(ctx context.Context, text string) ([]models.EntityResult, error)
}

// ZeroShotClassifier ranks caller supplied labels against text.
type ZeroShotClassifier interface {
	Classify(ctx context.Context, text string, labels []string) (models.ZeroShotResult, error)
}

// HealthChecker is implemented by backends that depend on something outside
// the process and can report whether it is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) bool
}

type Set struct {
	Sentiment SentimentAnalyzer
	NER       EntityRecognizer
	ZeroShot  ZeroShotClassifier

	closers  []func() error
	checkers []HealthChecker
}

func NewSet(sentiment SentimentAnalyzer, ner EntityRecognizer, zeroShot ZeroShotClassifier) *Set {
	s := &Set{Sentiment: sentiment, NER: ner, ZeroShot: zeroShot}
	for _, p := range []any{sentiment, ner, zeroShot} {
		if hc, ok := p.(HealthChecker); ok {
			s.checkers = append(s.checkers, hc)
		}
	}
	return s
}

// OnClose registers a teardown step. Steps run in reverse order.
func (s *Set) OnClose(fn func() error) {
	s.closers = append(s.closers, fn)
}

func (s *Set) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	slog.Info("[Pipelines] Pipelines released")
	return errors.Join(errs...)
}

// Healthy reports whether every remote dependency answered its probe.
// In-process backends are always healthy once constructed.
func (s *Set) Healthy(ctx context.Context) bool {
	for _, hc := range s.checkers {
		if !hc.HealthCheck(ctx) {
			return false
		}
	}
	return true
}
