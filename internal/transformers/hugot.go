// Package transformers loads Hugging Face models with hugot and exposes them
// through the pipelines interfaces.
package transformers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/knights-analytics/hugot"
	hugotpipelines "github.com/knights-analytics/hugot/pipelines"
	"github.com/spacesedan/textanalytics/config"
	"github.com/spacesedan/textanalytics/internal/models"
	"github.com/spacesedan/textanalytics/internal/pipelines"
)

// HugotBackend runs ONNX exports of Hugging Face models in process. One
// session backs every pipeline it loads.
type HugotBackend struct {
	session *hugot.Session

	sentiment *hugotpipelines.TextClassificationPipeline
	ner       *hugotpipelines.TokenClassificationPipeline

	// Candidate labels live on the zero-shot pipeline itself, so calls that
	// swap them in must not overlap.
	zeroShotMu sync.Mutex
	zeroShot   *hugotpipelines.ZeroShotClassificationPipeline
}

// NewHugotBackend opens a session and loads the pipelines whose backend is
// hugot in cfg, downloading missing models into cfg.ModelDir first.
func NewHugotBackend(cfg config.Config) (*HugotBackend, error) {
	session, err := newHugotSession()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize hugot session: %w", err)
	}

	b := &HugotBackend{session: session}
	if err := b.load(cfg); err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			slog.Warn("[HugotBackend] Failed to destroy session after load error",
				slog.String("error", destroyErr.Error()))
		}
		return nil, err
	}
	return b, nil
}

func (b *HugotBackend) load(cfg config.Config) error {
	if cfg.SentimentBackend == config.BackendHugot {
		path, err := EnsureModel(cfg.ModelDir, cfg.SentimentModel, cfg.HFToken)
		if err != nil {
			return err
		}
		start := time.Now()
		p, err := hugot.NewPipeline(b.session, hugot.TextClassificationConfig{
			ModelPath: path,
			Name:      "sentimentPipeline",
		})
		if err != nil {
			return fmt.Errorf("failed to load sentiment pipeline: %w", err)
		}
		b.sentiment = p
		slog.Info("[HugotBackend] Sentiment analysis model loaded",
			slog.String("model", cfg.SentimentModel),
			slog.Duration("elapsed", time.Since(start)))
	}

	if cfg.NERBackend == config.BackendHugot {
		path, err := EnsureModel(cfg.ModelDir, cfg.NERModel, cfg.HFToken)
		if err != nil {
			return err
		}
		start := time.Now()
		p, err := hugot.NewPipeline(b.session, hugot.TokenClassificationConfig{
			ModelPath: path,
			Name:      "nerPipeline",
		})
		if err != nil {
			return fmt.Errorf("failed to load NER pipeline: %w", err)
		}
		b.ner = p
		slog.Info("[HugotBackend] NER model loaded",
			slog.String("model", cfg.NERModel),
			slog.Duration("elapsed", time.Since(start)))
	}

	if cfg.ZeroShotBackend == config.BackendHugot {
		path, err := EnsureModel(cfg.ModelDir, cfg.ZeroShotModel, cfg.HFToken)
		if err != nil {
			return err
		}
		start := time.Now()
		zsConfig := hugot.ZeroShotClassificationConfig{
			ModelPath: path,
			Name:      "zeroShotPipeline",
		}
		// The pipeline refuses to build without labels; requests replace them.
		zsConfig.Options = append(zsConfig.Options,
			hugotpipelines.WithHypothesisTemplate(cfg.ZeroShotHypothesis),
			hugotpipelines.WithLabels([]string{"positive", "negative"}),
			hugotpipelines.WithMultilabel(false),
		)
		p, err := hugot.NewPipeline(b.session, zsConfig)
		if err != nil {
			return fmt.Errorf("failed to load zero-shot pipeline: %w", err)
		}
		b.zeroShot = p
		slog.Info("[HugotBackend] Zero-Shot model loaded",
			slog.String("model", cfg.ZeroShotModel),
			slog.Duration("elapsed", time.Since(start)))
	}

	return nil
}

func (b *HugotBackend) Close() error {
	if b.session == nil {
		return nil
	}
	err := b.session.Destroy()
	b.session = nil
	return err
}

func (b *HugotBackend) Sentiment(ctx context.Context, text string) ([]models.SentimentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := b.sentiment.RunPipeline([]string{text})
	if err != nil {
		return nil, fmt.Errorf("sentiment pipeline failed: %w", err)
	}
	return sentimentResults(out), nil
}

func (b *HugotBackend) Entities(ctx context.Context, text string) ([]models.EntityResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := b.ner.RunPipeline([]string{text})
	if err != nil {
		return nil, fmt.Errorf("NER pipeline failed: %w", err)
	}
	return entityResults(text, out), nil
}

func (b *HugotBackend) Classify(ctx context.Context, text string, labels []string) (models.ZeroShotResult, error) {
	if err := ctx.Err(); err != nil {
		return models.ZeroShotResult{}, err
	}

	result := models.ZeroShotResult{Sequence: text, Scores: []models.ZeroShotScore{}}
	if len(labels) == 0 {
		return result, nil
	}

	b.zeroShotMu.Lock()
	defer b.zeroShotMu.Unlock()

	// The pipeline keys its scores by label, so repeated labels are scored once.
	b.zeroShot.Labels = pipelines.UniqueLabels(labels)
	out, err := b.zeroShot.RunPipeline([]string{text})
	if err != nil {
		return models.ZeroShotResult{}, fmt.Errorf("zero-shot pipeline failed: %w", err)
	}

	scores, err := zeroShotScores(out, labels)
	if err != nil {
		return models.ZeroShotResult{}, err
	}
	result.Scores = scores
	return result, nil
}

func sentimentResults(out *hugotpipelines.TextClassificationOutput) []models.SentimentResult {
	if out == nil || len(out.ClassificationOutputs) == 0 {
		return nil
	}

	candidates := out.ClassificationOutputs[0]
	results := make([]models.SentimentResult, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, models.SentimentResult{
			Label: c.Label,
			Score: float64(c.Score),
		})
	}
	return results
}

func entityResults(text string, out *hugotpipelines.TokenClassificationOutput) []models.EntityResult {
	entities := []models.EntityResult{}
	if out == nil || len(out.Entities) == 0 {
		return entities
	}
	for _, e := range out.Entities[0] {
		entities = append(entities, models.EntityResult{
			Text:  surfaceText(text, int(e.Start), int(e.End), e.Word),
			Label: e.Entity,
		})
	}
	return entities
}

func zeroShotScores(out *hugotpipelines.ZeroShotOutput, labels []string) ([]models.ZeroShotScore, error) {
	var scored []models.ZeroShotScore
	if out != nil && len(out.ClassificationOutputs) > 0 {
		for _, kv := range out.ClassificationOutputs[0].SortedValues {
			scored = append(scored, models.ZeroShotScore{Label: kv.Key, Score: kv.Value})
		}
	}
	return pipelines.ScoresFor(labels, scored)
}

// surfaceText returns the span of the original input an entity covers,
// falling back to the model's reconstructed word when the offsets do not
// address a valid slice of text.
func surfaceText(text string, start, end int, word string) string {
	if start >= 0 && start < end && end <= len(text) {
		span := text[start:end]
		if utf8.ValidString(span) && strings.TrimSpace(span) != "" {
			return span
		}
	}
	return strings.TrimSpace(word)
}

// ModelPath is where hugot places a downloaded model inside dir.
func ModelPath(dir, model string) string {
	return filepath.Join(dir, strings.ReplaceAll(model, "/", "_"))
}

// EnsureModel returns the local path of model, downloading it from the
// Hugging Face hub when it is not already present in dir.
func EnsureModel(dir, model, token string) (string, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create model directory: %w", err)
	}

	path := ModelPath(dir, model)
	if _, err := os.Stat(path); err == nil {
		slog.Info("[HugotBackend] Using existing model", slog.String("path", path))
		return path, nil
	}

	slog.Info("[HugotBackend] Model not found, downloading...", slog.String("model", model))
	opts := hugot.NewDownloadOptions()
	if token != "" {
		opts.AuthToken = token
	}
	downloaded, err := hugot.DownloadModel(model, dir, opts)
	if err != nil {
		return "", fmt.Errorf("failed to download model %s: %w", model, err)
	}
	slog.Info("[HugotBackend] Model downloaded successfully", slog.String("path", downloaded))
	return downloaded, nil
}
