package analysis

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spacesedan/textanalytics/internal/clients"
	"github.com/spacesedan/textanalytics/internal/mocks"
	"github.com/spacesedan/textanalytics/internal/models"
	"github.com/spacesedan/textanalytics/internal/pipelines"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestService_Analyze(t *testing.T) {
	ctx := context.Background()

	t.Run("should keep only the first sentiment candidate", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		sentiment := mocks.NewMockSentimentAnalyzer(ctrl)
		ner := mocks.NewMockEntityRecognizer(ctrl)
		svc := NewService(sentiment, ner, nil)

		sentiment.EXPECT().Sentiment(ctx, "Tim Cook loves Paris").Return([]models.SentimentResult{
			{Label: "POSITIVE", Score: 0.99},
			{Label: "NEGATIVE", Score: 0.01},
		}, nil)
		ner.EXPECT().Entities(ctx, "Tim Cook loves Paris").Return([]models.EntityResult{
			{Text: "Tim Cook", Label: "PER"},
			{Text: "Paris", Label: "LOC"},
		}, nil)

		res, err := svc.Analyze(ctx, "Tim Cook loves Paris")

		req.NoError(err)
		req.Equal(models.SentimentResult{Label: "POSITIVE", Score: 0.99}, res.Sentiment)
		req.Equal([]models.EntityResult{
			{Text: "Tim Cook", Label: "PER"},
			{Text: "Paris", Label: "LOC"},
		}, res.Entities)
	})

	t.Run("should return an empty entity list rather than nil", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		sentiment := mocks.NewMockSentimentAnalyzer(ctrl)
		ner := mocks.NewMockEntityRecognizer(ctrl)
		svc := NewService(sentiment, ner, nil)

		sentiment.EXPECT().Sentiment(ctx, "").Return([]models.SentimentResult{{Label: "POSITIVE", Score: 0.7}}, nil)
		ner.EXPECT().Entities(ctx, "").Return(nil, nil)

		res, err := svc.Analyze(ctx, "")

		req.NoError(err)
		req.NotNil(res.Entities)
		req.Empty(res.Entities)
	})

	t.Run("should reject a score outside [0,1] without calling NER", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		sentiment := mocks.NewMockSentimentAnalyzer(ctrl)
		ner := mocks.NewMockEntityRecognizer(ctrl)
		svc := NewService(sentiment, ner, nil)

		sentiment.EXPECT().Sentiment(ctx, "x").Return([]models.SentimentResult{{Label: "POSITIVE", Score: 4.2}}, nil)
		ner.EXPECT().Entities(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Analyze(ctx, "x")

		req.ErrorIs(err, models.ErrInvalidResult)
	})

	t.Run("should fail when the model returns no candidates", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		sentiment := mocks.NewMockSentimentAnalyzer(ctrl)
		svc := NewService(sentiment, nil, nil)

		sentiment.EXPECT().Sentiment(ctx, "x").Return(nil, nil)

		_, err := svc.Analyze(ctx, "x")

		req.ErrorIs(err, models.ErrInvalidResult)
	})

	t.Run("should propagate pipeline errors", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		sentiment := mocks.NewMockSentimentAnalyzer(ctrl)
		ner := mocks.NewMockEntityRecognizer(ctrl)
		svc := NewService(sentiment, ner, nil)
		boom := errors.New("out of memory")

		sentiment.EXPECT().Sentiment(ctx, "x").Return([]models.SentimentResult{{Label: "POSITIVE", Score: 0.7}}, nil)
		ner.EXPECT().Entities(ctx, "x").Return(nil, boom)

		_, err := svc.Analyze(ctx, "x")

		req.ErrorIs(err, boom)
	})
}

func TestService_Classify(t *testing.T) {
	ctx := context.Background()
	labels := []string{"finance", "sports", "weather"}

	t.Run("should echo the text and keep the model ranking", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		zeroShot := mocks.NewMockZeroShotClassifier(ctrl)
		svc := NewService(nil, nil, zeroShot)

		zeroShot.EXPECT().Classify(ctx, "This is a tax document", labels).Return(models.ZeroShotResult{
			Scores: []models.ZeroShotScore{
				{Label: "finance", Score: 0.93},
				{Label: "weather", Score: 0.04},
				{Label: "sports", Score: 0.03},
			},
		}, nil)

		res, err := svc.Classify(ctx, "This is a tax document", labels)

		req.NoError(err)
		req.Equal("This is a tax document", res.Sequence)
		req.Equal([]string{"finance", "weather", "sports"},
			[]string{res.Scores[0].Label, res.Scores[1].Label, res.Scores[2].Label})
	})

	t.Run("should pass an empty label list through", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		zeroShot := mocks.NewMockZeroShotClassifier(ctrl)
		svc := NewService(nil, nil, zeroShot)

		zeroShot.EXPECT().Classify(ctx, "x", []string{}).Return(models.ZeroShotResult{Sequence: "x"}, nil)

		res, err := svc.Classify(ctx, "x", []string{})

		req.NoError(err)
		req.NotNil(res.Scores)
		req.Empty(res.Scores)
	})

	t.Run("should reject invalid scores", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		zeroShot := mocks.NewMockZeroShotClassifier(ctrl)
		svc := NewService(nil, nil, zeroShot)

		zeroShot.EXPECT().Classify(ctx, "x", labels).Return(models.ZeroShotResult{
			Scores: []models.ZeroShotScore{{Label: "", Score: 0.5}},
		}, nil)

		_, err := svc.Classify(ctx, "x", labels)

		req.ErrorIs(err, models.ErrInvalidResult)
	})

	t.Run("should reject scores that drop or invent labels", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		zeroShot := mocks.NewMockZeroShotClassifier(ctrl)
		svc := NewService(nil, nil, zeroShot)

		zeroShot.EXPECT().Classify(ctx, "x", labels).Return(models.ZeroShotResult{
			Scores: []models.ZeroShotScore{
				{Label: "finance", Score: 0.7},
				{Label: "politics", Score: 0.3},
			},
		}, nil)

		_, err := svc.Classify(ctx, "x", labels)

		req.ErrorIs(err, models.ErrInvalidResult)
	})

	t.Run("should keep one score per repeated label", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		zeroShot := mocks.NewMockZeroShotClassifier(ctrl)
		svc := NewService(nil, nil, zeroShot)
		repeated := []string{"sports", "finance", "sports"}

		zeroShot.EXPECT().Classify(ctx, "x", repeated).Return(models.ZeroShotResult{
			Scores: []models.ZeroShotScore{
				{Label: "finance", Score: 0.8},
				{Label: "sports", Score: 0.2},
			},
		}, nil)

		_, err := svc.Classify(ctx, "x", repeated)
		req.ErrorIs(err, models.ErrInvalidResult)

		zeroShot.EXPECT().Classify(ctx, "x", repeated).Return(models.ZeroShotResult{
			Scores: []models.ZeroShotScore{
				{Label: "finance", Score: 0.8},
				{Label: "sports", Score: 0.2},
				{Label: "sports", Score: 0.2},
			},
		}, nil)

		res, err := svc.Classify(ctx, "x", repeated)
		req.NoError(err)
		req.Len(res.Scores, 3)
	})
}

func TestService_ClassifyRemoteLabelMismatch(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sequence":"x","labels":["finance","politics"],"scores":[0.7,0.3]}`))
	}))
	defer srv.Close()

	client := clients.NewHuggingFaceClient(srv.URL, "", 5*time.Second)
	remote := pipelines.NewRemoteBackend(client, "sentiment", "ner", "zero-shot")
	svc := NewService(nil, nil, remote)

	_, err := svc.Classify(context.Background(), "x", []string{"finance", "sports", "weather"})

	req.ErrorIs(err, models.ErrInvalidResult)
}
