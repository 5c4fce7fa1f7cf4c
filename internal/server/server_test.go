package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spacesedan/textanalytics/config"
	"github.com/spacesedan/textanalytics/internal/analysis"
	"github.com/spacesedan/textanalytics/internal/auth"
	"github.com/spacesedan/textanalytics/internal/mocks"
	"github.com/spacesedan/textanalytics/internal/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

const testKey = "BASIC_API_KEY"

type testServer struct {
	srv       *Server
	healthy   *atomic.Bool
	sentiment *mocks.MockSentimentAnalyzer
	ner       *mocks.MockEntityRecognizer
	zeroShot  *mocks.MockZeroShotClassifier
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	ts := &testServer{
		healthy:   &atomic.Bool{},
		sentiment: mocks.NewMockSentimentAnalyzer(ctrl),
		ner:       mocks.NewMockEntityRecognizer(ctrl),
		zeroShot:  mocks.NewMockZeroShotClassifier(ctrl),
	}
	ts.healthy.Store(true)

	cfg := config.Config{
		AppEnv:          "test",
		Host:            "127.0.0.1",
		Port:            8000,
		ShutdownTimeout: time.Second,
	}
	svc := analysis.NewService(ts.sentiment, ts.ner, ts.zeroShot)
	h := NewHandler(auth.NewSharedSecret(testKey), svc, ts.healthy, false)
	ts.srv = New(cfg, h)
	return ts
}

func (ts *testServer) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(w, r)
	return w
}

func accessCookie(value string) *http.Cookie {
	return &http.Cookie{Name: auth.CookieName, Value: value}
}

func TestRoot(t *testing.T) {
	req := require.New(t)
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/", "")

	req.Equal(http.StatusOK, w.Code)
	req.JSONEq(`{"message":"Text Analytics API is running. Go to /docs for more."}`, w.Body.String())
	req.NotEmpty(w.Header().Get(requestIDHeader))
	req.Equal("nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestDocs(t *testing.T) {
	req := require.New(t)
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/docs", "")

	req.Equal(http.StatusOK, w.Code)
	req.Contains(w.Header().Get("Content-Type"), "text/html")
	req.Contains(w.Body.String(), "/analyze")
}

func TestHealthz(t *testing.T) {
	t.Run("should report ok while pipelines are healthy", func(t *testing.T) {
		req := require.New(t)
		ts := newTestServer(t)

		w := ts.do(http.MethodGet, "/healthz", "")

		req.Equal(http.StatusOK, w.Code)
		req.JSONEq(`{"status":"ok"}`, w.Body.String())
	})

	t.Run("should report degraded once a probe fails", func(t *testing.T) {
		req := require.New(t)
		ts := newTestServer(t)
		ts.healthy.Store(false)

		w := ts.do(http.MethodGet, "/healthz", "")

		req.Equal(http.StatusServiceUnavailable, w.Code)
		req.JSONEq(`{"status":"degraded"}`, w.Body.String())
	})
}

func TestLogin(t *testing.T) {
	t.Run("should set the access cookie for the right password", func(t *testing.T) {
		req := require.New(t)
		ts := newTestServer(t)

		w := ts.do(http.MethodPost, "/login", `{"password":"BASIC_API_KEY"}`)

		req.Equal(http.StatusOK, w.Code)
		req.JSONEq(`{"message":"Login successful. Cookie set."}`, w.Body.String())

		cookies := w.Result().Cookies()
		req.Len(cookies, 1)
		req.Equal(auth.CookieName, cookies[0].Name)
		req.Equal(testKey, cookies[0].Value)
		req.Equal(1800, cookies[0].MaxAge)
		req.True(cookies[0].HttpOnly)
		req.Equal(http.SameSiteLaxMode, cookies[0].SameSite)
	})

	t.Run("should reject a wrong password without a cookie", func(t *testing.T) {
		req := require.New(t)
		ts := newTestServer(t)

		w := ts.do(http.MethodPost, "/login", `{"password":"wrong"}`)

		req.Equal(http.StatusBadRequest, w.Code)
		req.JSONEq(`{"detail":"Incorrect password"}`, w.Body.String())
		req.Empty(w.Result().Cookies())
	})

	t.Run("should reject an empty password", func(t *testing.T) {
		req := require.New(t)
		ts := newTestServer(t)

		w := ts.do(http.MethodPost, "/login", `{"password":""}`)

		req.Equal(http.StatusBadRequest, w.Code)
	})

	t.Run("should answer 422 when the password is missing", func(t *testing.T) {
		req := require.New(t)
		ts := newTestServer(t)

		w := ts.do(http.MethodPost, "/login", `{}`)

		req.Equal(http.StatusUnprocessableEntity, w.Code)
		req.JSONEq(`{"detail":[{"loc":["body","password"],"msg":"Field required","type":"missing"}]}`, w.Body.String())
	})

	t.Run("should answer 422 for a non-string password", func(t *testing.T) {
		req := require.New(t)
		ts := newTestServer(t)

		w := ts.do(http.MethodPost, "/login", `{"password":42}`)

		req.Equal(http.StatusUnprocessableEntity, w.Code)
		req.JSONEq(`{"detail":[{"loc":["body","password"],"msg":"Input should be a valid string","type":"type_error"}]}`, w.Body.String())
	})
}

func TestAnalyze(t *testing.T) {
	t.Run("should return the top sentiment and entities", func(t *testing.T) {
		req := require.New(t)
		ts := newTestServer(t)
		text := "Apple is looking at buying U.K. startup for $1 billion"

		ts.sentiment.EXPECT().Sentiment(gomock.Any(), text).Return([]models.SentimentResult{
			{Label: "POSITIVE", Score: 0.87},
			{Label: "NEGATIVE", Score: 0.13},
		}, nil)
		ts.ner.EXPECT().Entities(gomock.Any(), text).Return([]models.EntityResult{
			{Text: "Apple", Label: "ORG"},
			{Text: "U.K.", Label: "LOC"},
		}, nil)

		w := ts.do(http.MethodPost, "/analyze", `{"text":"`+text+`"}`, accessCookie(testKey))

		req.Equal(http.StatusOK, w.Code)
		req.JSONEq(`{
			"sentiment": {"label": "POSITIVE", "score": 0.87},
			"entities": [{"text": "Apple", "label": "ORG"}, {"text": "U.K.", "label": "LOC"}]
		}`, w.Body.String())
	})

	t.Run("should answer an empty entity list", func(t *testing.T) {
		req := require.New(t)
		ts := newTestServer(t)

		ts.sentiment.EXPECT().Sentiment(gomock.Any(), "").Return([]models.SentimentResult{{Label: "POSITIVE", Score: 0.6}}, nil)
		ts.ner.EXPECT().Entities(gomock.Any(), "").Return(nil, nil)

		w := ts.do(http.MethodPost, "/analyze", `{"text":""}`, accessCookie(testKey))

		req.Equal(http.StatusOK, w.Code)
		req.JSONEq(`{"sentiment":{"label":"POSITIVE","score":0.6},"entities":[]}`, w.Body.String())
	})

	t.Run("should refuse requests without a valid cookie before running models", func(t *testing.T) {
		for name, cookies := range map[string][]*http.Cookie{
			"no cookie":    nil,
			"wrong cookie": {accessCookie("nope")},
		} {
			t.Run(name, func(t *testing.T) {
				req := require.New(t)
				ts := newTestServer(t)
				ts.sentiment.EXPECT().Sentiment(gomock.Any(), gomock.Any()).Times(0)
				ts.ner.EXPECT().Entities(gomock.Any(), gomock.Any()).Times(0)

				w := ts.do(http.MethodPost, "/analyze", `{"text":"hello"}`, cookies...)

				req.Equal(http.StatusForbidden, w.Code)
				req.JSONEq(`{"detail":"Cannot validate credentials"}`, w.Body.String())
			})
		}
	})

	t.Run("should answer 422 when text is missing", func(t *testing.T) {
		req := require.New(t)
		ts := newTestServer(t)

		w := ts.do(http.MethodPost, "/analyze", `{}`, accessCookie(testKey))

		req.Equal(http.StatusUnprocessableEntity, w.Code)
		req.JSONEq(`{"detail":[{"loc":["body","text"],"msg":"Field required","type":"missing"}]}`, w.Body.String())
	})

	t.Run("should answer 422 for malformed JSON", func(t *testing.T) {
		req := require.New(t)
		ts := newTestServer(t)

		w := ts.do(http.MethodPost, "/analyze", `{"text":`, accessCookie(testKey))

		req.Equal(http.StatusUnprocessableEntity, w.Code)
		req.Contains(w.Body.String(), `"type":"json_invalid"`)
	})

	t.Run("should hide pipeline errors behind a 500", func(t *testing.T) {
		req := require.New(t)
		ts := newTestServer(t)

		ts.sentiment.EXPECT().Sentiment(gomock.Any(), "boom").Return(nil, errors.New("onnx runtime exploded"))

		w := ts.do(http.MethodPost, "/analyze", `{"text":"boom"}`, accessCookie(testKey))

		req.Equal(http.StatusInternalServerError, w.Code)
		req.JSONEq(`{"detail":"Internal Server Error"}`, w.Body.String())
		req.NotContains(w.Body.String(), "onnx")
	})
}

func TestClassify(t *testing.T) {
	t.Run("should rank the candidate labels", func(t *testing.T) {
		req := require.New(t)
		ts := newTestServer(t)
		labels := []string{"finance", "sports", "weather"}

		ts.zeroShot.EXPECT().Classify(gomock.Any(), "This is a tax document", labels).Return(models.ZeroShotResult{
			Sequence: "This is a tax document",
			Scores: []models.ZeroShotScore{
				{Label: "finance", Score: 0.9},
				{Label: "weather", Score: 0.06},
				{Label: "sports", Score: 0.04},
			},
		}, nil)

		w := ts.do(http.MethodPost, "/classify",
			`{"text":"This is a tax document","labels":["finance","sports","weather"]}`, accessCookie(testKey))

		req.Equal(http.StatusOK, w.Code)
		req.JSONEq(`{
			"sequence": "This is a tax document",
			"scores": [
				{"label": "finance", "score": 0.9},
				{"label": "weather", "score": 0.06},
				{"label": "sports", "score": 0.04}
			]
		}`, w.Body.String())
	})

	t.Run("should accept an empty label list", func(t *testing.T) {
		req := require.New(t)
		ts := newTestServer(t)

		ts.zeroShot.EXPECT().Classify(gomock.Any(), "x", []string{}).Return(models.ZeroShotResult{
			Sequence: "x",
			Scores:   []models.ZeroShotScore{},
		}, nil)

		w := ts.do(http.MethodPost, "/classify", `{"text":"x","labels":[]}`, accessCookie(testKey))

		req.Equal(http.StatusOK, w.Code)
		req.JSONEq(`{"sequence":"x","scores":[]}`, w.Body.String())
	})

	t.Run("should answer 422 when labels are missing", func(t *testing.T) {
		req := require.New(t)
		ts := newTestServer(t)
		ts.zeroShot.EXPECT().Classify(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		w := ts.do(http.MethodPost, "/classify", `{"text":"x"}`, accessCookie(testKey))

		req.Equal(http.StatusUnprocessableEntity, w.Code)
		req.JSONEq(`{"detail":[{"loc":["body","labels"],"msg":"Field required","type":"missing"}]}`, w.Body.String())
	})

	t.Run("should answer 422 when labels is not a list", func(t *testing.T) {
		req := require.New(t)
		ts := newTestServer(t)

		w := ts.do(http.MethodPost, "/classify", `{"text":"x","labels":"finance"}`, accessCookie(testKey))

		req.Equal(http.StatusUnprocessableEntity, w.Code)
		req.JSONEq(`{"detail":[{"loc":["body","labels"],"msg":"Input should be a valid list","type":"type_error"}]}`, w.Body.String())
		req.NotContains(w.Body.String(), "[]string")
	})

	t.Run("should refuse requests without a cookie", func(t *testing.T) {
		req := require.New(t)
		ts := newTestServer(t)
		ts.zeroShot.EXPECT().Classify(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		w := ts.do(http.MethodPost, "/classify", `{"text":"x","labels":["a"]}`)

		req.Equal(http.StatusForbidden, w.Code)
		req.JSONEq(`{"detail":"Cannot validate credentials"}`, w.Body.String())
	})
}

func TestLoginThenAnalyze(t *testing.T) {
	req := require.New(t)
	ts := newTestServer(t)

	login := ts.do(http.MethodPost, "/login", `{"password":"BASIC_API_KEY"}`)
	req.Equal(http.StatusOK, login.Code)
	cookies := login.Result().Cookies()
	req.Len(cookies, 1)

	ts.sentiment.EXPECT().Sentiment(gomock.Any(), "great").Return([]models.SentimentResult{{Label: "POSITIVE", Score: 0.99}}, nil)
	ts.ner.EXPECT().Entities(gomock.Any(), "great").Return([]models.EntityResult{}, nil)

	w := ts.do(http.MethodPost, "/analyze", `{"text":"great"}`, cookies[0])

	req.Equal(http.StatusOK, w.Code)
}

func TestUnknownRoutes(t *testing.T) {
	t.Run("should answer 404 for unknown paths", func(t *testing.T) {
		req := require.New(t)
		ts := newTestServer(t)

		w := ts.do(http.MethodGet, "/nope", "")

		req.Equal(http.StatusNotFound, w.Code)
		req.JSONEq(`{"detail":"Not Found"}`, w.Body.String())
	})

	t.Run("should answer 405 for the wrong method", func(t *testing.T) {
		req := require.New(t)
		ts := newTestServer(t)

		w := ts.do(http.MethodGet, "/analyze", "")

		req.Equal(http.StatusMethodNotAllowed, w.Code)
		req.JSONEq(`{"detail":"Method Not Allowed"}`, w.Body.String())
	})
}

func TestServe(t *testing.T) {
	defer goleak.VerifyNone(t)

	req := require.New(t)
	ts := newTestServer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	req.NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ts.srv.Serve(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/")
	req.NoError(err)
	resp.Body.Close()
	req.Equal(http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
