package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Sentinel kinds for the failure taxonomy. Every error returned by the client
// matches exactly one of these via errors.Is.
var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrMethodNotAllowed  = errors.New("method not allowed")
	ErrRemote            = errors.New("remote error")
	ErrTimeout           = errors.New("timeout")
	ErrTransport         = errors.New("transport failure")
	ErrMalformedResponse = errors.New("malformed response")
	ErrInvalidRequest    = errors.New("invalid request")
)

// APIError is a classified remote failure. Kind is one of the sentinel
// errors above; the remaining fields carry whatever detail the failure mode
// provides (remote status and message, configured timeout, or the underlying
// transport cause).
type APIError struct {
	Kind       error
	StatusCode int
	Message    string
	Duration   time.Duration
	Err        error
}

func (e *APIError) Error() string {
	switch {
	case e.Kind == ErrTimeout:
		return fmt.Sprintf("API call exceeded configured timeout of %s", e.Duration)
	case e.Kind == ErrRemote:
		return fmt.Sprintf("API error: http %d: %s", e.StatusCode, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("API error: %s: %s", e.Kind, e.Err)
	case e.Message != "":
		return fmt.Sprintf("API error: %s: %s", e.Kind, e.Message)
	default:
		return fmt.Sprintf("API error: %s", e.Kind)
	}
}

func (e *APIError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}

	return []error{e.Kind}
}

// errorDetail is the error body shape MISP uses. Fields are best-effort: the
// raw body is kept as the message when none of them are present.
type errorDetail struct {
	Name    string          `json:"name"`
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
}

// CheckResponse maps a non-2xx response to its classified error. The body has
// already been read in full by the caller.
func CheckResponse(r *http.Response, body []byte) error {
	if c := r.StatusCode; 200 <= c && c <= 299 {
		return nil
	}

	apiErr := &APIError{StatusCode: r.StatusCode, Message: errorMessage(r.StatusCode, body)}

	switch r.StatusCode {
	case http.StatusUnauthorized:
		apiErr.Kind = ErrUnauthorized
	case http.StatusForbidden:
		apiErr.Kind = ErrForbidden
	case http.StatusNotFound:
		apiErr.Kind = ErrNotFound
	case http.StatusMethodNotAllowed:
		apiErr.Kind = ErrMethodNotAllowed
	default:
		apiErr.Kind = ErrRemote
	}

	return apiErr
}

func errorMessage(statusCode int, body []byte) string {
	if len(body) == 0 {
		return fmt.Sprintf("http code %d, no response body", statusCode)
	}

	detail := errorDetail{}

	// the error convention is not followed by every controller, fall back to
	// the raw body
	if err := json.Unmarshal(body, &detail); err != nil || (detail.Message == "" && detail.Name == "") {
		return string(body)
	}

	msg := detail.Message
	if msg == "" {
		msg = detail.Name
	}

	if len(detail.Errors) > 0 {
		msg += fmt.Sprintf(" (%s)", detail.Errors)
	}

	return msg
}

// classifyRequestError distinguishes a deadline expiry from a network-level
// failure below HTTP.
func classifyRequestError(err error, timeout time.Duration) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &APIError{Kind: ErrTimeout, Duration: timeout, Err: err}
	}

	return &APIError{Kind: ErrTransport, Err: err}
}

func malformedResponse(err error) error {
	return &APIError{Kind: ErrMalformedResponse, Err: err}
}

func invalidRequest(format string, args ...any) error {
	return &APIError{Kind: ErrInvalidRequest, Message: fmt.Sprintf(format, args...)}
}
