package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/scoreboard.net/internal/config"
	"gitlab.com/scoreboard.net/internal/core/ports/primary"
	"gitlab.com/scoreboard.net/internal/core/services/result"
	"gitlab.com/scoreboard.net/internal/handlers"
	"gitlab.com/scoreboard.net/internal/handlers/health"
	"gitlab.com/scoreboard.net/internal/handlers/response"
	"gitlab.com/scoreboard.net/internal/handlers/results"
	"gitlab.com/scoreboard.net/internal/metrics"
)

type ServiceProvider struct {
	resultService result.IResultService
}

func NewServiceProvider(resultService result.IResultService) *ServiceProvider {
	return &ServiceProvider{
		resultService: resultService,
	}
}

type Server struct {
	handler         http.Handler
	srv             *http.Server
	errCh           chan error
	Config          *config.HTTPConfig
	ServiceName     string
	ServiceProvider ServiceProvider
	metrics         *metrics.Metrics
	logger          primary.Logger
}

func NewServer(
	cfg *config.HTTPConfig,
	serviceName string,
	serviceProvider ServiceProvider,
	m *metrics.Metrics,
	logger primary.Logger,
) *Server {
	return &Server{
		Config:          cfg,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		metrics:         m,
		logger:          logger,
		errCh:           make(chan error, 1),
	}
}

func (s *Server) Init() error {
	if s.ServiceProvider.resultService == nil {
		return errors.New("http server: result service is required")
	}

	mw := handlers.New(s.logger, s.metrics)

	r := mux.NewRouter()
	// Recover runs inside Observe so a panicking handler is still logged and counted
	r.Use(mw.Observe, mw.Recover)
	health.NewHandler().RegisterRoutes(r)
	results.
		NewResultHandler(s.ServiceProvider.resultService, s.logger).
		RegisterRoutes(r)
	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	// mux skips Use middlewares when no route matches
	r.NotFoundHandler = mw.Observe(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.WriteError(w, http.StatusNotFound, "Not found")
	}))
	r.MethodNotAllowedHandler = mw.Observe(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}))

	s.handler = mw.Recover(mw.RequestID(r))
	return nil
}

// Handler returns the fully wrapped router; Init must have been called
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Start(ctx context.Context) {
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Config.Port),
		Handler:      s.handler,
		ReadTimeout:  s.Config.ReadTimeout,
		WriteTimeout: s.Config.WriteTimeout,
		IdleTimeout:  s.Config.IdleTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	// Start the server in a goroutine
	go func() {
		s.logger.Info("Server listening", "service", s.ServiceName, "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			s.errCh <- err
		}
	}()
}

// Errors reports a listener failure after Start
func (s *Server) Errors() <-chan error {
	return s.errCh
}

func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	s.logger.Info("Shutting down http server...")
	return s.srv.Shutdown(ctx)
}
