package models

type ZeroShotRequest struct {
	Text   *string  `json:"text" binding:"required"`
	Labels []string `json:"labels" binding:"required"`
}

type ZeroShotScore struct {
	Label string  `json:"label" validate:"required"`
	Score float64 `json:"score" validate:"gte=0,lte=1"`
}

type ZeroShotResult struct {
	Sequence string          `json:"sequence"`
	Scores   []ZeroShotScore `json:"scores" validate:"dive"`
}
