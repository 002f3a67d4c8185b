package handler

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angeloszaimis/simple-web-app/internal/metrics"
)

const RequestIDHeader = "X-Request-ID"

// Middleware logs every request and reports it to the metrics collector.
type Middleware struct {
	logger           *slog.Logger
	metricsCollector *metrics.Collector
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

// NewMiddleware builds the request middleware. collector may be nil when
// metrics are disabled.
func NewMiddleware(logger *slog.Logger, collector *metrics.Collector) *Middleware {
	return &Middleware{
		logger:           logger,
		metricsCollector: collector,
	}
}

// Wrap instruments next under the given route label.
func (m *Middleware) Wrap(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		m.logger.Debug("Received request",
			slog.String("request_id", requestID),
			slog.String("from", clientIP),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("proto", r.Proto),
			slog.String("host", r.Host),
			slog.String("user_agent", r.UserAgent()))

		m.emitEvent(metrics.MetricEvent{
			Type:      metrics.EventRequestReceived,
			Timestamp: start,
			Route:     route,
			Method:    r.Method,
		})

		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		m.emitEvent(metrics.MetricEvent{
			Type:       metrics.EventResponseCompleted,
			Timestamp:  time.Now(),
			Route:      route,
			Method:     r.Method,
			Duration:   duration,
			StatusCode: wrapped.statusCode,
		})

		m.logger.Info("Request completed",
			slog.String("request_id", requestID),
			slog.String("from", clientIP),
			slog.String("method", r.Method),
			slog.String("route", route),
			slog.Int("status", wrapped.statusCode),
			slog.Duration("duration", duration))
	})
}

// WrapFunc is Wrap for plain handler functions.
func (m *Middleware) WrapFunc(route string, next http.HandlerFunc) http.Handler {
	return m.Wrap(route, next)
}

func (m *Middleware) emitEvent(event metrics.MetricEvent) {
	if m.metricsCollector == nil {
		return
	}

	if !m.metricsCollector.Emit(event) {
		m.logger.Debug("Metrics buffer full, dropping event", slog.String("route", event.Route))
	}
}

func extractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.statusCode = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
