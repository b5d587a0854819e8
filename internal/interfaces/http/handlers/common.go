// Package handlers implements the HTTP endpoints over the molecule service.
package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/turtacn/rdkit-go/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/rdkit-go/pkg/errors"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// decodeJSON reads one JSON object into v.  An empty body, malformed JSON
// and trailing data are bad requests; an over-limit body is 413.
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case stderrors.As(err, &tooLarge):
			return errors.Newf(errors.ErrCodePayloadTooLarge, "request body exceeds %d bytes", tooLarge.Limit)
		case stderrors.Is(err, io.EOF):
			return errors.InvalidParam("request body is required")
		default:
			return errors.Wrap(err, errors.CodeInvalidParam, "malformed JSON body")
		}
	}
	if dec.More() {
		return errors.InvalidParam("request body must hold a single JSON object")
	}
	return nil
}

// writeAppError maps err to its HTTP status.  Server-side failures are
// logged and answered with the code's default message only.
func writeAppError(w http.ResponseWriter, r *http.Request, logger logging.Logger, err error) {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
		err = errors.Wrap(err, errors.ErrCodeTimeout, "request cancelled")
	}
	ae, ok := errors.AsAppError(err)
	if !ok {
		ae = errors.Wrap(err, errors.ErrCodeInternal, "internal server error")
	}

	status := ae.HTTPStatus()
	resp := ErrorResponse{Code: ae.Code.String(), Message: ae.Message}
	if ae.Detail != "" {
		resp.Message += ": " + ae.Detail
	}
	if status >= http.StatusInternalServerError {
		logger.WithContext(r.Context()).WithError(err).Error("request failed",
			logging.String("path", r.URL.Path))
		resp.Message = errors.DefaultMessageForCode(ae.Code)
	}
	writeJSON(w, status, resp)
}

//Personal.AI order the ending
