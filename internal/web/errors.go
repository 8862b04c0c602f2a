package web

// errors.go provides unified error response handling for the web layer.
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err)
//  3. The status code is derived from the error chain
//  4. Error is mapped via core.MapError to get a user-friendly message
//  5. Technical error + context is logged with the request ID for correlation
//  6. User message is returned as JSON or plain text, per the Accept header

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/servicediff/internal/core"
	"github.com/JonMunkholm/servicediff/internal/logging"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// errNoFile marks a missing multipart file field.
var errNoFile = errors.New("no file provided")

// requestError marks a failure caused by the request itself.
type requestError struct{ err error }

func (e requestError) Error() string { return e.err.Error() }
func (e requestError) Unwrap() error { return e.err }

// badRequest marks err as the client's fault.
func badRequest(err error) error { return requestError{err: err} }

// respondError logs the technical error server-side and returns a
// user-friendly message.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	userMsg := core.MapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	if wantsText(r) {
		http.Error(w, core.FormatUserError(err), status)
		return
	}
	writeJSON(w, status, ErrorResponse{
		Error:   userMsg.Message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	})
}

// statusFor picks the HTTP status for an error chain. Errors not marked
// with badRequest and not matched below are server faults.
func statusFor(err error) int {
	var (
		maxErr *http.MaxBytesError
		reqErr requestError
	)
	switch {
	case errors.Is(err, core.ErrTooManyComparisons):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &maxErr), strings.Contains(err.Error(), "request body too large"):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, core.ErrMissingColumn):
		return http.StatusUnprocessableEntity
	case errors.As(err, &reqErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// wantsText reports whether the client asked for plain text rather than JSON.
func wantsText(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/plain") && !strings.Contains(accept, "application/json")
}
