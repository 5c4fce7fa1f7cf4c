package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/spacesedan/textanalytics/internal/models"
	"golang.org/x/oauth2"
)

// HuggingFaceClient talks to the Hugging Face Inference API (or any server
// exposing the same /<model> routes).
type HuggingFaceClient struct {
	Client  *http.Client
	BaseURL string

	MaxRetries     int
	InitialBackoff time.Duration
}

// NewHuggingFaceClient builds a client for baseURL. A non-empty token is sent
// as a bearer token on every request.
func NewHuggingFaceClient(baseURL, token string, timeout time.Duration) *HuggingFaceClient {
	client := &http.Client{}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
		client = oauth2.NewClient(context.Background(), ts)
	}
	client.Timeout = timeout

	slog.Info("[HuggingFaceClient] Initializing Client",
		slog.String("base_url", baseURL),
		slog.Duration("timeout", timeout),
		slog.Bool("authenticated", token != ""))

	return &HuggingFaceClient{
		Client:         client,
		BaseURL:        strings.TrimRight(baseURL, "/"),
		MaxRetries:     MAX_RETRIES,
		InitialBackoff: INITIAL_BACKOFF,
	}
}

// DoWithRetry retries transport errors and 5xx answers with exponential
// backoff. 503 is what the API returns while a cold model is loading.
func (h *HuggingFaceClient) DoWithRetry(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error
	backoff := h.InitialBackoff
	attempts := max(h.MaxRetries, 1)

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 && req.GetBody != nil {
			body, bodyErr := req.GetBody()
			if bodyErr != nil {
				return nil, fmt.Errorf("failed to rewind request body: %w", bodyErr)
			}
			req.Body = body
		}

		resp, err = h.Client.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		slog.Warn("[HuggingFaceClient] Request failed, will retry",
			slog.Int("attempt", attempt+1),
			slog.String("error", errMsg(err, resp)))

		if resp != nil && attempt < attempts-1 {
			resp.Body.Close()
		}
		if attempt == attempts-1 {
			break
		}

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, MAX_BACKOFF)
	}

	if err == nil && resp != nil {
		resp.Body.Close()
		err = fmt.Errorf("status code %d", resp.StatusCode)
	}
	return nil, err
}

func (h *HuggingFaceClient) TextClassification(ctx context.Context, model, text string) ([]models.HFLabelScore, error) {
	var raw json.RawMessage
	if err := h.postJSON(ctx, model, models.HFInferenceRequest{Inputs: text}, &raw); err != nil {
		return nil, err
	}

	// Single inputs come back either as [[...]] or [...] depending on the deployment.
	var nested [][]models.HFLabelScore
	if err := json.Unmarshal(raw, &nested); err == nil {
		if len(nested) == 0 {
			return nil, nil
		}
		return nested[0], nil
	}

	var flat []models.HFLabelScore
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("failed to unmarshal text classification response: %w", err)
	}
	return flat, nil
}

func (h *HuggingFaceClient) TokenClassification(ctx context.Context, model, text string) ([]models.HFEntity, error) {
	input := models.HFInferenceRequest{
		Inputs:     text,
		Parameters: map[string]any{"aggregation_strategy": "simple"},
	}

	var entities []models.HFEntity
	if err := h.postJSON(ctx, model, input, &entities); err != nil {
		return nil, err
	}
	return entities, nil
}

func (h *HuggingFaceClient) ZeroShotClassification(ctx context.Context, model, text string, labels []string) ([]models.HFLabelScore, error) {
	input := models.HFInferenceRequest{
		Inputs: text,
		Parameters: map[string]any{
			"candidate_labels": labels,
			"multi_label":      false,
		},
	}

	var raw json.RawMessage
	if err := h.postJSON(ctx, model, input, &raw); err != nil {
		return nil, err
	}

	var legacy models.HFZeroShotResponse
	if err := json.Unmarshal(raw, &legacy); err == nil {
		if len(legacy.Labels) != len(legacy.Scores) {
			return nil, fmt.Errorf("zero-shot response has %d labels and %d scores",
				len(legacy.Labels), len(legacy.Scores))
		}
		scores := make([]models.HFLabelScore, 0, len(legacy.Labels))
		for i, label := range legacy.Labels {
			scores = append(scores, models.HFLabelScore{Label: label, Score: legacy.Scores[i]})
		}
		return scores, nil
	}

	var scores []models.HFLabelScore
	if err := json.Unmarshal(raw, &scores); err != nil {
		return nil, fmt.Errorf("failed to unmarshal zero-shot response: %w", err)
	}
	return scores, nil
}

// HealthCheck reports whether the inference server answers at all.
func (h *HuggingFaceClient) HealthCheck(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.BaseURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := h.Client.Do(req)
	if err != nil {
		slog.Warn("[HuggingFaceClient] Health check failed", slog.String("error", err.Error()))
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 500
}

// helper function for posting data to the inference API
func (h *HuggingFaceClient) postJSON(ctx context.Context, model string, input any, output any) error {
	endpoint := h.BaseURL + "/" + model

	body, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to marshal input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", USER_AGENT)

	start := time.Now()
	resp, err := h.DoWithRetry(req)
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed request after retries",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("request failed after retries: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		slog.Error("[HuggingFaceClient] Inference request rejected",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
			getPreview(respBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if err := json.Unmarshal(respBody, output); err != nil {
		slog.Error("[HuggingFaceClient] Failed to unmarshal response",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()),
			getPreview(respBody),
			slog.Int("raw_response_length", len(respBody)))
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	slog.Debug("[HuggingFaceClient] Inference request successful",
		slog.String("endpoint", endpoint),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// StatusError is a non-2xx answer that was not worth retrying.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("inference API returned status %d: %s", e.StatusCode, preview(e.Body))
}

func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

func getPreview(respBody []byte) slog.Attr {
	return slog.String("raw_response", preview(string(respBody)))
}

func preview(raw string) string {
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return raw
}

func errMsg(err error, resp *http.Response) string {
	if err != nil {
		return err.Error()
	}
	if resp != nil {
		return fmt.Sprintf("status code %d", resp.StatusCode)
	}
	return "unknown error"
}
