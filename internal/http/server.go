package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"superstore/internal/core"
	"superstore/internal/log"
	"superstore/internal/services"
)

type (
	// DashboardAPI is the pipeline the handlers drive.
	DashboardAPI interface {
		Options(ctx context.Context) (services.Options, error)
		Build(ctx context.Context, sel core.Selection) (services.Dashboard, error)
	}

	// MetricsRecorder records request latencies and serves the scrape endpoint.
	MetricsRecorder interface {
		ObserveHTTP(method, route string, status int, d time.Duration)
		Handler() http.Handler
	}
)

// Config holds the server settings.
type Config struct {
	Addr           string
	RequestTimeout time.Duration
	CurrencySymbol string
}

type Server struct {
	http.Server
	api       DashboardAPI
	metrics   MetricsRecorder
	logger    *log.Logger
	presenter presenter
}

// NewServer configures routes and middleware, returning a ready-to-run server.
// metrics may be nil.
func NewServer(cfg Config, api DashboardAPI, metrics MetricsRecorder, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Discard()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 7 * time.Second
	}

	s := &Server{
		api:       api,
		metrics:   metrics,
		logger:    logger.WithComponent(log.ComponentHTTP),
		presenter: presenter{currency: cfg.CurrencySymbol},
	}

	r := chi.NewRouter()
	r.Use(s.withRequestContext)
	r.Use(chimw.Recoverer)
	r.Use(s.withRequestLogging)

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", s.handleReady)
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(chimw.Timeout(cfg.RequestTimeout))
		r.Get("/options", s.handleOptions)
		r.Get("/dashboard", s.handleDashboard)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Render(w, r, newAPIError(r, http.StatusNotFound, "NOT_FOUND", "resource not found"))
	})

	s.Server = http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

type requestIDKey struct{}

// RequestIDFromContext returns the ID assigned to the current request.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// withRequestContext assigns a request ID and a request-scoped logger.
func (s *Server) withRequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := sanitizeInput(r.Header.Get("X-Request-ID"))
		if requestID == "" || len(requestID) > 64 {
			requestID = generateRequestID()
		}
		w.Header().Set("X-Request-ID", requestID)

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		ctx = log.NewContext(ctx, s.logger.With(log.FieldRequestID, requestID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withRequestLogging adds security headers, logs each request and records
// its latency.
func (s *Server) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()
		logger := log.FromContext(ctx)
		clientIP := extractClientIP(r)

		logger.DebugContext(ctx, "Request started",
			log.NewFields().
				WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery, r.Header.Get("User-Agent")).
				ToSlice()...)

		setSecurityHeaders(w)
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		duration := time.Since(start)

		fields := log.NewFields().
			WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery, r.Header.Get("User-Agent")).
			WithHTTPResponse(status, duration.Milliseconds())
		fields[log.FieldClientIP] = clientIP
		if status >= http.StatusInternalServerError {
			logger.WarnContext(ctx, "Request completed", fields.ToSlice()...)
		} else {
			logger.InfoContext(ctx, "Request completed", fields.ToSlice()...)
		}

		if s.metrics != nil {
			s.metrics.ObserveHTTP(r.Method, routePattern(r), status, duration)
		}
	})
}

// routePattern returns the matched chi pattern, keeping label cardinality
// bounded for unknown paths.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
