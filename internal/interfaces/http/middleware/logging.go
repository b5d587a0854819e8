package middleware

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/turtacn/rdkit-go/internal/infrastructure/monitoring/logging"
)

// LoggingConfig holds configuration for the request logging middleware.
type LoggingConfig struct {
	// SkipPaths are not logged (probes, scrapes).
	SkipPaths []string

	// SlowThreshold is the duration above which a successful request is
	// logged at warn level.  Zero disables the check.
	SlowThreshold time.Duration
}

func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		SkipPaths:     []string{"/healthz", "/readyz", "/metrics"},
		SlowThreshold: 2 * time.Second,
	}
}

// statusRecorder captures the status code and bytes written.
type statusRecorder struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int64
	wroteHeader  bool
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
}

func (w *statusRecorder) WriteHeader(code int) {
	if !w.wroteHeader {
		w.statusCode = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytesWritten += int64(n)
	return n, err
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, fmt.Errorf("underlying ResponseWriter does not implement http.Hijacker")
}

func (w *statusRecorder) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// recorderFor reuses a recorder installed by an outer middleware.
func recorderFor(w http.ResponseWriter) *statusRecorder {
	if rec, ok := w.(*statusRecorder); ok {
		return rec
	}
	return newStatusRecorder(w)
}

// RequestLogging logs one line per request: 5xx at error, 4xx and slow
// requests at warn, the rest at info.  It must run inside RequestID.
func RequestLogging(logger logging.Logger, config LoggingConfig) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	logger = logger.Named("http")
	skipSet := make(map[string]bool, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skipSet[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skipSet[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rec := recorderFor(w)
			next.ServeHTTP(rec, r)
			duration := time.Since(start)

			fields := []logging.Field{
				logging.String("method", r.Method),
				logging.String("path", r.URL.Path),
				logging.Int("status", rec.statusCode),
				logging.Duration("duration", duration),
				logging.Int64("bytes", rec.bytesWritten),
				logging.String("remote_addr", r.RemoteAddr),
			}
			if ua := r.UserAgent(); ua != "" {
				fields = append(fields, logging.String("user_agent", ua))
			}

			l := logger.WithContext(r.Context())
			switch {
			case rec.statusCode >= 500:
				l.Error("request failed", fields...)
			case rec.statusCode >= 400:
				l.Warn("request rejected", fields...)
			case config.SlowThreshold > 0 && duration >= config.SlowThreshold:
				l.Warn("slow request", append(fields, logging.Duration("threshold", config.SlowThreshold))...)
			default:
				l.Info("request completed", fields...)
			}
		})
	}
}

//Personal.AI order the ending
