package pipelines

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/spacesedan/textanalytics/internal/clients"
	"github.com/spacesedan/textanalytics/internal/models"
)

const zeroShotPrompt = `You are a zero-shot text classifier.
Score how well the user's text matches each candidate label.

### STRICT OUTPUT FORMAT
Return only valid JSON, formatted exactly as follows:
{"scores": {"<label>": <probability>, ...}}

### REQUIREMENTS
- Use every candidate label exactly as given, and no other keys.
- Probabilities are numbers between 0 and 1 and sum to 1.
- No Markdown formatting and no text before or after the JSON.`

// OpenAIZeroShot ranks candidate labels with a chat completion model.
type OpenAIZeroShot struct {
	client *clients.OpenAIClient
}

func NewOpenAIZeroShot(client *clients.OpenAIClient) *OpenAIZeroShot {
	return &OpenAIZeroShot{client: client}
}

func (o *OpenAIZeroShot) Classify(ctx context.Context, text string, labels []string) (models.ZeroShotResult, error) {
	result := models.ZeroShotResult{Sequence: text, Scores: []models.ZeroShotScore{}}
	if len(labels) == 0 {
		return result, nil
	}

	userMessage, err := json.Marshal(models.OpenAIZeroShotPrompt{
		Text:            text,
		CandidateLabels: labels,
	})
	if err != nil {
		return models.ZeroShotResult{}, fmt.Errorf("failed to marshal prompt: %w", err)
	}

	start := time.Now()
	completion, err := o.client.Client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(zeroShotPrompt),
			openai.UserMessage(string(userMessage)),
		}),
		Model:       openai.F(openai.ChatModel(o.client.Model)),
		Temperature: openai.Float(0),
	})
	if err != nil {
		return models.ZeroShotResult{}, fmt.Errorf("openai completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return models.ZeroShotResult{}, fmt.Errorf("openai returned no choices")
	}

	slog.Debug("[OpenAIZeroShot] Completion received",
		slog.Duration("elapsed", time.Since(start)))

	scores, err := parseZeroShotScores(completion.Choices[0].Message.Content, labels)
	if err != nil {
		return models.ZeroShotResult{}, err
	}
	result.Scores = scores
	return result, nil
}

// parseZeroShotScores keeps one score per requested label: labels the model
// left out score zero, labels it invented are dropped. Scores are normalised
// to sum to one and ranked highest first.
func parseZeroShotScores(content string, labels []string) ([]models.ZeroShotScore, error) {
	var parsed models.OpenAIZeroShotResponse
	if err := json.Unmarshal([]byte(cleanOpenAIResponse(content)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse openai zero-shot response: %w", err)
	}

	scores := make([]models.ZeroShotScore, 0, len(labels))
	var total float64
	for _, label := range labels {
		s := max(parsed.Scores[label], 0)
		total += s
		scores = append(scores, models.ZeroShotScore{Label: label, Score: s})
	}

	for i := range scores {
		if total == 0 {
			scores[i].Score = 1 / float64(len(scores))
			continue
		}
		scores[i].Score /= total
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
	return scores, nil
}

func cleanOpenAIResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
