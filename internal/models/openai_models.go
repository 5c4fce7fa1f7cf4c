package models

// OpenAIZeroShotPrompt is the user message sent to the chat model.
type OpenAIZeroShotPrompt struct {
	Text            string   `json:"text"`
	CandidateLabels []string `json:"candidate_labels"`
}

// OpenAIZeroShotResponse is the JSON object the chat model is asked to return.
type OpenAIZeroShotResponse struct {
	Scores map[string]float64 `json:"scores"`
}
