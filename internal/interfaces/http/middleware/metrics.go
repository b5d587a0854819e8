package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// HTTPObserver receives per-request measurements.
type HTTPObserver interface {
	RecordHTTPRequest(method, route string, statusCode int, duration time.Duration, respSize int64)
	AddActiveRequests(delta float64)
}

// unmatchedRoute labels requests no route matched, so raw paths never
// become label values.
const unmatchedRoute = "unmatched"

// Metrics records each request under its chi route pattern.
func Metrics(obs HTTPObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			obs.AddActiveRequests(1)
			defer obs.AddActiveRequests(-1)

			start := time.Now()
			rec := recorderFor(w)
			next.ServeHTTP(rec, r)

			route := unmatchedRoute
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			obs.RecordHTTPRequest(r.Method, route, rec.statusCode, time.Since(start), rec.bytesWritten)
		})
	}
}

// MaxBodySize caps request bodies at n bytes; reads beyond it fail with
// *http.MaxBytesError.  Zero or less disables the cap.
func MaxBodySize(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if n <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}

//Personal.AI order the ending
