package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/turtacn/rdkit-go/internal/infrastructure/monitoring/logging"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLen = 128

// RequestID reuses a caller-supplied X-Request-ID or generates a UUID, echoes
// it on the response and stores it for logging.WithContext.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logging.WithRequestID(r.Context(), id)))
	})
}

//Personal.AI order the ending
