package swaggrt

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-json-experiment/json"
)

// HTTPError is an error with an HTTP status. Handlers return it to choose
// the status of a failed request.
type HTTPError struct {
	Status  int
	Message string
	Cause   error
}

// Errorf returns an HTTPError with a formatted message.
func Errorf(status int, format string, args ...any) *HTTPError {
	return &HTTPError{Status: status, Message: fmt.Sprintf(format, args...)}
}

// Error returns the message, followed by the cause if any.
func (e *HTTPError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the cause.
func (e *HTTPError) Unwrap() error {
	return e.Cause
}

type errorBody struct {
	Error string `json:"error"`
}

// WriteError is the default ErrorHandler. It answers with the status of an
// *HTTPError in err's chain and {"error": message}. Other errors become a
// 500 whose message does not leak err.
func WriteError(w http.ResponseWriter, _ *http.Request, err error) {
	status, msg := http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		status, msg = httpErr.Status, httpErr.Error()
	}
	data, mErr := json.Marshal(errorBody{Error: msg})
	if mErr != nil {
		http.Error(w, msg, status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}
