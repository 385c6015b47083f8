// Package preview serves the animation while it is being drawn: the latest
// frame as PNG, progress as JSON and the run metrics.
package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/okian/shotchart/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
)

// Progress reports how far the timed pass has got.
type Progress struct {
	Tick  int  `json:"tick"`
	Total int  `json:"total"`
	Done  bool `json:"done"`
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// Server holds the most recent frame and exposes it over HTTP.
type Server struct {
	addr   string
	logger logger.Logger

	mu       sync.RWMutex
	frame    []byte
	progress Progress

	srv *http.Server
	ln  net.Listener
}

// New creates a preview server for addr, e.g. ":8080". Nothing listens
// until Start is called.
func New(addr string, opts ...Option) *Server {
	s := &Server{
		addr:     addr,
		logger:   logger.Nop(),
		progress: Progress{Tick: -1},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Publish stores img as the latest frame.
func (s *Server) Publish(img image.Image, p Progress) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("%w: %w", ErrPublish, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame = buf.Bytes()
	s.progress = p
	return nil
}

// Finish marks the timed pass as complete.
func (s *Server) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress.Done = true
}

// Progress returns the last published progress.
func (s *Server) Progress() Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress
}

func (s *Server) latest() ([]byte, Progress) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame, s.progress
}

// Handler returns the preview routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/frame.png", MetricsMiddleware(s.handleFrame, "frame"))
	mux.HandleFunc("/progress", MetricsMiddleware(s.handleProgress, "progress"))
	mux.HandleFunc("/healthz", MetricsMiddleware(NewHealthHandler().HandleHealth, "healthz"))
	return mux
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrServe, err)
	}
	s.ln = ln
	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		s.logger.Info(ctx, "starting preview server", logger.String("addr", ln.Addr().String()))
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error(ctx, "preview server failed", logger.Error(err))
		}
	}()
	return nil
}

// Addr returns the bound address once started, else the configured one.
func (s *Server) Addr() string {
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.addr
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrServe, err)
	}
	s.logger.Info(ctx, "preview server stopped")
	return nil
}
