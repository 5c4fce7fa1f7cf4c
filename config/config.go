package config

import (
	"fmt"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultAPIKey = "BASIC_API_KEY"

	BackendHugot  = "hugot"
	BackendRemote = "remote"
	BackendVader  = "vader"
	BackendOpenAI = "openai"
)

type Config struct {
	AppEnv string `env:"APP_ENV,default=dev"`

	Host            string        `env:"HOST,default=0.0.0.0"`
	Port            int           `env:"PORT,default=8000" validate:"gt=0,lte=65535"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
	CORSOrigins     string        `env:"CORS_ALLOW_ORIGINS"`

	APIKey       string `env:"API_KEY,default=BASIC_API_KEY" validate:"required"`
	APIKeyHash   string `env:"API_KEY_HASH"`
	CookieSecure bool   `env:"COOKIE_SECURE,default=false"`

	LogLevel string `env:"LOG_LEVEL,default=info" validate:"oneof=debug info warn error"`
	LogFile  string `env:"LOG_FILE"`

	SentimentBackend string `env:"SENTIMENT_BACKEND,default=hugot" validate:"oneof=hugot remote vader"`
	NERBackend       string `env:"NER_BACKEND,default=hugot" validate:"oneof=hugot remote"`
	ZeroShotBackend  string `env:"ZERO_SHOT_BACKEND,default=hugot" validate:"oneof=hugot remote openai"`

	ModelDir           string `env:"MODEL_DIR,default=./models"`
	SentimentModel     string `env:"SENTIMENT_MODEL,default=KnightsAnalytics/distilbert-base-uncased-finetuned-sst-2-english"`
	NERModel           string `env:"NER_MODEL,default=KnightsAnalytics/distilbert-NER"`
	ZeroShotModel      string `env:"ZERO_SHOT_MODEL,default=KnightsAnalytics/deberta-v3-base-zeroshot-v1"`
	ZeroShotHypothesis string `env:"ZERO_SHOT_HYPOTHESIS,default=This example is {}."`

	HFInferenceURL string        `env:"HF_INFERENCE_URL,default=https://router.huggingface.co/hf-inference/models"`
	HFToken        string        `env:"HF_TOKEN"`
	RemoteTimeout  time.Duration `env:"REMOTE_TIMEOUT,default=60s"`

	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL,default=gpt-4o-mini"`

	HealthcheckInterval time.Duration `env:"HEALTHCHECK_INTERVAL,default=15s" validate:"gt=0"`
}

var validate = validator.New()

// Load reads the process environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.ZeroShotBackend == BackendOpenAI && c.OpenAIAPIKey == "" {
		return fmt.Errorf("invalid configuration: OPENAI_API_KEY is required for the %q zero-shot backend", BackendOpenAI)
	}
	return nil
}

func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// UsesDefaultAPIKey reports whether the shared secret is still the insecure built-in literal.
func (c Config) UsesDefaultAPIKey() bool {
	return c.APIKeyHash == "" && c.APIKey == DefaultAPIKey
}

func (c Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// NeedsHugot reports whether any pipeline runs on the local hugot session.
func (c Config) NeedsHugot() bool {
	return c.SentimentBackend == BackendHugot ||
		c.NERBackend == BackendHugot ||
		c.ZeroShotBackend == BackendHugot
}

// HugotModels lists the models the hugot backend loads, in pipeline order.
func (c Config) HugotModels() []string {
	var models []string
	if c.SentimentBackend == BackendHugot {
		models = append(models, c.SentimentModel)
	}
	if c.NERBackend == BackendHugot {
		models = append(models, c.NERModel)
	}
	if c.ZeroShotBackend == BackendHugot {
		models = append(models, c.ZeroShotModel)
	}
	return models
}
