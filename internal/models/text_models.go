package models

// TextInput is the body of POST /analyze. Text is a pointer so that a
// missing field fails binding while an empty string is still accepted.
type TextInput struct {
	Text *string `json:"text" binding:"required"`
}

type SentimentResult struct {
	Label string  `json:"label" validate:"required"`
	Score float64 `json:"score" validate:"gte=0,lte=1"`
}

type EntityResult struct {
	Text  string `json:"text" validate:"required"`
	Label string `json:"label" validate:"required"`
}

type AnalysisResult struct {
	Sentiment SentimentResult `json:"sentiment"`
	Entities  []EntityResult  `json:"entities"`
}
