package demo

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"ydwatch/internal/status"
)

// RequestIDHeader carries the per-request ID set by the server.
const RequestIDHeader = "X-Request-ID"

// Server replays one script per status endpoint.
type Server struct {
	Single   *Script
	Playlist *Script
	// AllowOrigins lists the origins browsers may poll from. Empty allows any.
	AllowOrigins []string
	log          zerolog.Logger
}

// NewServer returns a server over the two scripts.
func NewServer(single, playlist *Script, log zerolog.Logger) *Server {
	return &Server{Single: single, Playlist: playlist, log: log}
}

// Router builds the gin engine. It installs no default logger middleware;
// requests are logged through zerolog instead.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.cors(), s.requestID())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET(status.SinglePath, s.serve(s.Single))
	r.GET(status.PlaylistPath, s.serve(s.Playlist))
	r.POST("/reset", func(c *gin.Context) {
		s.Single.Reset()
		s.Playlist.Reset()
		c.Status(http.StatusNoContent)
	})
	return r
}

func (s *Server) serve(script *Script) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := script.Next()
		s.log.Debug().
			Str("path", c.FullPath()).
			Str("request_id", c.GetString("request_id")).
			Int("phase", int(snap.Phase)).
			Str("progress", snap.Progress).
			Msg("status served")
		c.JSON(http.StatusOK, snap)
	}
}

func (s *Server) cors() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(s.AllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = s.AllowOrigins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, RequestIDHeader)
	cfg.ExposeHeaders = []string{RequestIDHeader}
	return cors.New(cfg)
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("demo status server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
