package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/scoreboard.net/internal/core/ports/primary"
	"gitlab.com/scoreboard.net/internal/handlers/response"
	"gitlab.com/scoreboard.net/internal/metrics"
)

const (
	RequestIDHeader = "X-Request-ID"

	maxRequestIDLen = 128
	unmatchedRoute  = "unmatched"
)

type requestIDKey struct{}

// RequestIDFromContext returns the id set by the RequestID middleware, or ""
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type MiddlewareProvider struct {
	logger  primary.Logger
	metrics *metrics.Metrics
}

func New(logger primary.Logger, m *metrics.Metrics) *MiddlewareProvider {
	return &MiddlewareProvider{
		logger:  logger,
		metrics: m,
	}
}

// RequestID propagates the caller's X-Request-ID or assigns a new one
func (m *MiddlewareProvider) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// Recover turns a handler panic into a 500
func (m *MiddlewareProvider) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				m.logger.Error("Handler panic", "requestId", RequestIDFromContext(r.Context()), "panic", rec)
				response.WriteError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// Observe writes the access log line and request metrics
func (m *MiddlewareProvider) Observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		route := routeName(r)
		m.metrics.ObserveRequest(r.Method, route, rec.Status(), elapsed)
		m.logger.Info("HTTP request",
			"requestId", RequestIDFromContext(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"route", route,
			"status", rec.Status(),
			"durationMs", elapsed.Milliseconds())
	})
}

func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return unmatchedRoute
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

func (s *statusRecorder) Status() int {
	if s.status == 0 {
		return http.StatusOK
	}
	return s.status
}
