package clients

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	openAIRequestTimeout = 60 * time.Second // Timeout for individual OpenAI API requests
)

type OpenAIClient struct {
	Client *openai.Client
	Model  string
}

// NewOpenAIClient builds a chat completions client. Extra options are
// appended after the defaults, which lets tests point it at a fake server.
func NewOpenAIClient(apiKey, model string, opts ...option.RequestOption) *OpenAIClient {
	httpClient := &http.Client{
		Timeout: openAIRequestTimeout,
	}
	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
	}, opts...)

	slog.Info("[OpenAIClient] OpenAI client initialized with custom HTTP timeout",
		slog.Duration("timeout", openAIRequestTimeout),
		slog.String("model", model))

	return &OpenAIClient{
		Client: openai.NewClient(opts...),
		Model:  model,
	}
}
