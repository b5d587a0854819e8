package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/rdkit-go/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/rdkit-go/internal/testutil"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func TestRequestID_Generated(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
}

func TestRequestID_Propagated(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "trace-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "trace-42", seen)
	assert.Equal(t, "trace-42", rec.Header().Get(RequestIDHeader))
}

func TestRequestID_OversizedReplaced(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLen+1))
	rec := httptest.NewRecorder()
	RequestID(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
}

func TestRequestLogging_Levels(t *testing.T) {
	tests := []struct {
		name   string
		status int
		delay  time.Duration
		level  string
		msg    string
	}{
		{"success", http.StatusOK, 0, "info", "request completed"},
		{"client error", http.StatusBadRequest, 0, "warn", "request rejected"},
		{"server error", http.StatusInternalServerError, 0, "error", "request failed"},
		{"slow", http.StatusOK, 20 * time.Millisecond, "warn", "slow request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := testutil.NewMockLogger()
			mw := RequestLogging(logger, LoggingConfig{SlowThreshold: 10 * time.Millisecond})
			h := RequestID(mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(tt.delay)
				w.WriteHeader(tt.status)
			})))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/molecules/canonical", nil)
			req.Header.Set(RequestIDHeader, "req-1")
			h.ServeHTTP(httptest.NewRecorder(), req)

			assert.True(t, logger.HasMessage(tt.level, tt.msg), "messages: %+v", logger.GetMessages())
			id, ok := logger.FieldValue(tt.msg, logging.FieldRequestID)
			assert.True(t, ok)
			assert.Equal(t, "req-1", id)
		})
	}
}

func TestRequestLogging_SkipPaths(t *testing.T) {
	logger := testutil.NewMockLogger()
	h := RequestLogging(logger, DefaultLoggingConfig())(http.HandlerFunc(okHandler))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Empty(t, logger.GetMessages())
}

type recordedRequest struct {
	method, route string
	status        int
	size          int64
}

type fakeObserver struct {
	mu       sync.Mutex
	requests []recordedRequest
	active   float64
	peak     float64
}

func (f *fakeObserver) RecordHTTPRequest(method, route string, statusCode int, _ time.Duration, respSize int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, recordedRequest{method, route, statusCode, respSize})
}

func (f *fakeObserver) AddActiveRequests(delta float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active += delta
	if f.active > f.peak {
		f.peak = f.active
	}
}

func TestMetrics_RoutePattern(t *testing.T) {
	obs := &fakeObserver{}
	r := chi.NewRouter()
	r.Use(Metrics(obs))
	r.Post("/api/v1/molecules/{op}", okHandler)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/molecules/canonical", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	require.Len(t, obs.requests, 2)
	assert.Equal(t, recordedRequest{"POST", "/api/v1/molecules/{op}", 200, 2}, obs.requests[0])
	assert.Equal(t, http.StatusNotFound, obs.requests[1].status)
	assert.NotEqual(t, "/nowhere", obs.requests[1].route)
	assert.Zero(t, obs.active)
	assert.Equal(t, 1.0, obs.peak)
}

func TestMaxBodySize(t *testing.T) {
	var readErr error
	h := MaxBodySize(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))
	var tooLarge *http.MaxBytesError
	assert.ErrorAs(t, readErr, &tooLarge)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("short")))
	assert.NoError(t, readErr)
}

func TestMaxBodySize_Disabled(t *testing.T) {
	var body []byte
	h := MaxBodySize(0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", 4096))))
	assert.Len(t, body, 4096)
}

//Personal.AI order the ending
