package server

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/spacesedan/textanalytics/internal/analysis"
	"github.com/spacesedan/textanalytics/internal/auth"
	"github.com/spacesedan/textanalytics/internal/docs"
	"github.com/spacesedan/textanalytics/internal/models"
)

const (
	RootMessage  = "Text Analytics API is running. Go to /docs for more."
	LoginMessage = "Login successful. Cookie set."
)

type Handler struct {
	verifier     auth.CredentialVerifier
	service      *analysis.Service
	healthy      *atomic.Bool
	cookieSecure bool
}

func NewHandler(verifier auth.CredentialVerifier, service *analysis.Service, healthy *atomic.Bool, cookieSecure bool) *Handler {
	return &Handler{
		verifier:     verifier,
		service:      service,
		healthy:      healthy,
		cookieSecure: cookieSecure,
	}
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, models.MessageResponse{Message: RootMessage})
}

func (h *Handler) Docs(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", docs.HTML())
}

func (h *Handler) Healthz(c *gin.Context) {
	if h.healthy != nil && !h.healthy.Load() {
		c.JSON(http.StatusServiceUnavailable, models.HealthResponse{Status: "degraded"})
		return
	}
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
}

// Login sets the access cookie to the presented password once the verifier
// accepts it.
func (h *Handler) Login(c *gin.Context) {
	var in models.LoginRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respondValidation(c, err)
		return
	}

	if !h.verifier.Verify(*in.Password) {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
			Detail: DetailIncorrectPassword,
		})
		return
	}

	auth.SetAccessCookie(c.Writer, *in.Password, h.cookieSecure)
	c.JSON(http.StatusOK, models.MessageResponse{Message: LoginMessage})
}

func (h *Handler) Analyze(c *gin.Context) {
	var in models.TextInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondValidation(c, err)
		return
	}

	result, err := h.service.Analyze(c.Request.Context(), *in.Text)
	if err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) Classify(c *gin.Context) {
	var in models.ZeroShotRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respondValidation(c, err)
		return
	}

	result, err := h.service.Classify(c.Request.Context(), *in.Text, in.Labels)
	if err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
