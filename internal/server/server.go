package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spacesedan/textanalytics/config"
	"github.com/spacesedan/textanalytics/internal/auth"
	"github.com/spacesedan/textanalytics/internal/models"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	engine          *gin.Engine
	addr            string
	shutdownTimeout time.Duration
}

func New(cfg config.Config, h *Handler) *Server {
	useJSONFieldNames()

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.Use(RequestID(), AccessLog(), Recovery(), SecureHeaders(cfg.AppEnv == "dev"))
	if origins := cfg.AllowedOrigins(); len(origins) > 0 {
		engine.Use(CORS(origins))
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Detail: DetailNotFound})
	})
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, models.ErrorResponse{Detail: DetailMethodNotAllowed})
	})

	engine.GET("/", h.Root)
	engine.GET("/docs", h.Docs)
	engine.GET("/healthz", h.Healthz)
	engine.POST("/login", h.Login)

	authed := engine.Group("/")
	authed.Use(auth.RequireCookie(h.verifier))
	authed.POST("/analyze", h.Analyze)
	authed.POST("/classify", h.Classify)

	return &Server{
		engine:          engine,
		addr:            cfg.Addr(),
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then drains
// in-flight requests for up to the shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("[Server] Listening", slog.String("addr", ln.Addr().String()))
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("[Server] Shutting down", slog.Duration("timeout", s.shutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}
