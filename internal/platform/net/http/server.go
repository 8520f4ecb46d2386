package http

import (
	"context"
	"errors"
	"net"
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"caserelay/internal/platform/config"
	"caserelay/internal/platform/logger"
)

// Server owns the root chi mux and the listener lifecycle.
// Keys are read from cfg as given, so pass the CORE_API_ view:
// PORT, READ_HEADER_TIMEOUT, WRITE_TIMEOUT, IDLE_TIMEOUT, SHUTDOWN_GRACE
type Server struct {
	mux   *chi.Mux
	srv   *stdhttp.Server
	grace time.Duration
}

// NewServer builds the server; opts see the root mux before anything is mounted
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	return &Server{
		mux:   m,
		grace: cfg.MayDuration("SHUTDOWN_GRACE", 10*time.Second),
		srv: &stdhttp.Server{
			Addr:              cfg.MayString("PORT", ":4000"),
			Handler:           m,
			ReadHeaderTimeout: cfg.MayDuration("READ_HEADER_TIMEOUT", 10*time.Second),
			// 0 means no limit; the Timeout middleware bounds each request
			WriteTimeout: cfg.MayDuration("WRITE_TIMEOUT", 0),
			IdleTimeout:  cfg.MayDuration("IDLE_TIMEOUT", 2*time.Minute),
		},
	}
}

// Router exposes the root mux to modules
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Handler is the root handler, for tests and embedding
func (s *Server) Handler() stdhttp.Handler { return s.mux }

// Addr is the configured listen address
func (s *Server) Addr() string { return s.srv.Addr }

// Run listens on Addr and serves until ctx is done
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then drains for at most SHUTDOWN_GRACE.
// A clean shutdown returns nil
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	log := logger.Named("http")
	log.Info().Str("addr", ln.Addr().String()).Msg("http listening")

	errc := make(chan error, 1)
	go func() { errc <- s.srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.grace)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Dur("grace", s.grace).Msg("http drain cut short")
		return err
	}
	<-errc
	log.Info().Msg("http stopped")
	return nil
}
