// Package server exposes the campaign-gated candidate HTTP API.
package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"candidate-gateway/internal/campaign"
	"candidate-gateway/internal/candidate"
	"candidate-gateway/internal/common/logger"
	"candidate-gateway/internal/interest"
)

type Server struct {
	httpServer      *http.Server
	logger          logger.Logger
	campaigns       *campaign.Resolver
	candidates      *candidate.Service
	interest        *interest.Service
	throttle        *Throttle
	storeReady      bool
	shutdownTimeout time.Duration
}

type Options struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	Logger     logger.Logger
	Campaigns  *campaign.Resolver
	Candidates *candidate.Service
	Interest   *interest.Service
	Throttle   *Throttle // nil disables throttling
	StoreReady bool
}

func New(opts Options) *Server {
	s := &Server{
		logger:          opts.Logger.WithFields(map[string]interface{}{"component": "http-server"}),
		campaigns:       opts.Campaigns,
		candidates:      opts.Candidates,
		interest:        opts.Interest,
		throttle:        opts.Throttle,
		storeReady:      opts.StoreReady,
		shutdownTimeout: opts.ShutdownTimeout,
	}

	s.httpServer = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}
	return s
}

// Handler builds the routed handler with middleware applied; exposed
// separately so tests can drive it through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /validate-access-code", s.handleValidateAccessCode)
	mux.HandleFunc("GET /candidates", s.handleCandidates)
	mux.HandleFunc("POST /express-interest", s.handleExpressInterest)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	return corsMiddleware(observeMiddleware(s.logger, mux))
}

// Start serves until SIGINT/SIGTERM, then drains within the shutdown
// timeout.
func (s *Server) Start() error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	s.logger.Info("server listening", map[string]interface{}{"addr": s.httpServer.Addr})

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		s.logger.Info("shutting down", map[string]interface{}{"signal": sig.String()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
