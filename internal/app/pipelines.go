// Package app assembles the pipeline Set for a Config. It lives apart from
// internal/pipelines so that only the binary links the hugot runtime.
package app

import (
	"fmt"
	"log/slog"

	"github.com/spacesedan/textanalytics/config"
	"github.com/spacesedan/textanalytics/internal/clients"
	"github.com/spacesedan/textanalytics/internal/pipelines"
	"github.com/spacesedan/textanalytics/internal/transformers"
)

// NewPipelines loads every pipeline named in cfg. Backends shared by several
// pipelines are created once. On error anything already loaded is released.
func NewPipelines(cfg config.Config) (*pipelines.Set, error) {
	var (
		hugotBackend  *transformers.HugotBackend
		remoteBackend *pipelines.RemoteBackend
		err           error
	)

	if cfg.NeedsHugot() {
		hugotBackend, err = transformers.NewHugotBackend(cfg)
		if err != nil {
			return nil, err
		}
	}
	if usesRemote(cfg) {
		client := clients.NewHuggingFaceClient(cfg.HFInferenceURL, cfg.HFToken, cfg.RemoteTimeout)
		remoteBackend = pipelines.NewRemoteBackend(client, cfg.SentimentModel, cfg.NERModel, cfg.ZeroShotModel)
	}

	release := func() {
		if hugotBackend == nil {
			return
		}
		if closeErr := hugotBackend.Close(); closeErr != nil {
			slog.Warn("[App] Failed to release hugot session", slog.String("error", closeErr.Error()))
		}
	}

	var sentiment pipelines.SentimentAnalyzer
	switch cfg.SentimentBackend {
	case config.BackendHugot:
		sentiment = hugotBackend
	case config.BackendRemote:
		sentiment = remoteBackend
	case config.BackendVader:
		sentiment = pipelines.VaderBackend{}
	default:
		release()
		return nil, fmt.Errorf("%w for sentiment: %q", pipelines.ErrUnknownBackend, cfg.SentimentBackend)
	}

	var ner pipelines.EntityRecognizer
	switch cfg.NERBackend {
	case config.BackendHugot:
		ner = hugotBackend
	case config.BackendRemote:
		ner = remoteBackend
	default:
		release()
		return nil, fmt.Errorf("%w for NER: %q", pipelines.ErrUnknownBackend, cfg.NERBackend)
	}

	var zeroShot pipelines.ZeroShotClassifier
	switch cfg.ZeroShotBackend {
	case config.BackendHugot:
		zeroShot = hugotBackend
	case config.BackendRemote:
		zeroShot = remoteBackend
	case config.BackendOpenAI:
		zeroShot = pipelines.NewOpenAIZeroShot(clients.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel))
	default:
		release()
		return nil, fmt.Errorf("%w for zero-shot: %q", pipelines.ErrUnknownBackend, cfg.ZeroShotBackend)
	}

	set := pipelines.NewSet(sentiment, ner, zeroShot)
	if hugotBackend != nil {
		set.OnClose(hugotBackend.Close)
	}

	slog.Info("[App] Pipelines ready",
		slog.String("sentiment", cfg.SentimentBackend),
		slog.String("ner", cfg.NERBackend),
		slog.String("zero_shot", cfg.ZeroShotBackend))
	return set, nil
}

func usesRemote(cfg config.Config) bool {
	return cfg.SentimentBackend == config.BackendRemote ||
		cfg.NERBackend == config.BackendRemote ||
		cfg.ZeroShotBackend == config.BackendRemote
}

// DownloadModels fetches the model of every pipeline whose backend is hugot
// into cfg.ModelDir. Pipelines on other backends need no local files.
func DownloadModels(cfg config.Config) error {
	models := cfg.HugotModels()
	if len(models) == 0 {
		slog.Info("[App] No pipeline uses hugot, nothing to download")
		return nil
	}
	for _, model := range models {
		if _, err := transformers.EnsureModel(cfg.ModelDir, model, cfg.HFToken); err != nil {
			return err
		}
	}
	return nil
}
