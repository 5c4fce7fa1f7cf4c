package models

// Request and response shapes of the Hugging Face Inference API.

type HFInferenceRequest struct {
	Inputs     string         `json:"inputs"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

type HFLabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type HFEntity struct {
	EntityGroup string  `json:"entity_group"`
	Entity      string  `json:"entity"`
	Score       float64 `json:"score"`
	Word        string  `json:"word"`
	Start       *int    `json:"start"`
	End         *int    `json:"end"`
}

// HFZeroShotResponse is the legacy zero-shot shape; newer deployments answer
// with a plain []HFLabelScore instead.
type HFZeroShotResponse struct {
	Sequence string    `json:"sequence"`
	Labels   []string  `json:"labels"`
	Scores   []float64 `json:"scores"`
}
