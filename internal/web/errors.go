package web

// errors.go provides unified error response handling for the web layer.
//
// Every handler error goes through respondError, which:
//  1. maps the error with core.MapError to a user-facing message and code
//  2. logs the technical error with the request id for correlation
//  3. renders the message as an HTMX fragment, JSON or plain text

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/opsconsole/internal/core"
	"github.com/JonMunkholm/opsconsole/internal/datatable"
	"github.com/JonMunkholm/opsconsole/internal/logging"
	"github.com/JonMunkholm/opsconsole/internal/web/templates"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs err and writes a user-friendly response with statusCode.
// A statusCode of 0 derives the status from err.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	if statusCode == 0 {
		statusCode = statusFor(err)
	}
	userMsg := core.MapError(err)

	logger := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	}
	if statusCode >= http.StatusInternalServerError {
		logger.Error("request error", attrs...)
	} else {
		logger.Warn("request error", attrs...)
	}

	switch {
	case isHTMX(r):
		renderErrorPartial(w, r, userMsg, statusCode)
	case wantsJSON(r):
		writeJSON(w, statusCode, ErrorResponse{
			Error:   userMsg.Message,
			Message: userMsg.Message,
			Action:  userMsg.Action,
			Code:    userMsg.Code,
		})
	default:
		http.Error(w, userMsg.Message+" ("+userMsg.Code+")", statusCode)
	}
}

// statusFor maps the errors of the service and the table engine to HTTP
// status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrScreenNotFound),
		errors.Is(err, core.ErrSessionNotFound),
		errors.Is(err, datatable.ErrRowNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrTooManySessions),
		errors.Is(err, core.ErrTooManyExports):
		return http.StatusServiceUnavailable
	case errors.Is(err, datatable.ErrActionNotAvailable):
		return http.StatusConflict
	case errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	case errors.Is(err, datatable.ErrInvalidPageSize),
		errors.Is(err, datatable.ErrInvalidPage),
		errors.Is(err, datatable.ErrInvalidSortColumn),
		errors.Is(err, datatable.ErrUnknownFilterValue),
		errors.Is(err, datatable.ErrSearchDisabled),
		errors.Is(err, datatable.ErrFilterDisabled),
		errors.Is(err, datatable.ErrSelectionDisabled),
		errors.Is(err, datatable.ErrUnknownAction),
		errors.Is(err, core.ErrUnknownSelectionOp),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// renderErrorPartial renders an HTMX-compatible error fragment. HTMX does
// not swap error responses, so the message also goes out as a showToast
// trigger.
func renderErrorPartial(w http.ResponseWriter, r *http.Request, msg core.UserMessage, statusCode int) {
	writeTrigger(w, "showToast", core.Notice{
		Level:   core.NoticeError,
		Message: msg.Message + " (Code: " + msg.Code + ")",
	})
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	templates.ErrorAlert(msg.Message, msg.Action, msg.Code).Render(r.Context(), w)
}

// isHTMX checks if the request is an HTMX request.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	// API routes default to JSON
	return strings.HasPrefix(r.URL.Path, "/api/")
}
