package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
)

// ErrMalformedResponse wraps a 2xx body that could not be decoded
var ErrMalformedResponse = errors.New("malformed response")

// APIError is a structured failure returned by the server as
// {"error": {"code", "message", "details"}}
type APIError struct {
	Status  int
	Code    string
	Message string
	Details any
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Code != "" && e.Message != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	case e.Message != "":
		return e.Message
	case e.Code != "":
		return e.Code
	}
	return fmt.Sprintf("api error (%d)", e.Status)
}

func (e *APIError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.Status
}

// DetailsString renders details for display, or empty when absent
func (e *APIError) DetailsString() string {
	if e == nil || e.Details == nil {
		return ""
	}
	if s, ok := e.Details.(string); ok {
		return s
	}
	b, err := json.Marshal(e.Details)
	if err != nil {
		return fmt.Sprint(e.Details)
	}
	return string(b)
}

// HTTPStatusError is a non-2xx response without the structured envelope
type HTTPStatusError struct {
	Status int
	Body   string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return ""
	}
	msg := strings.TrimSpace(e.Body)
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if len(msg) > 500 {
		msg = msg[:500] + "..."
	}
	return fmt.Sprintf("http %d: %s", e.Status, msg)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.Status
}

type statusCoder interface {
	HTTPStatusCode() int
}

type errorEnvelope struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details"`
	} `json:"error"`
}

// parseError turns a non-2xx body into *APIError when it carries the
// envelope, otherwise into *HTTPStatusError
func parseError(status int, body []byte) error {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil &&
		(env.Error.Code != "" || env.Error.Message != "") {
		return &APIError{
			Status:  status,
			Code:    env.Error.Code,
			Message: env.Error.Message,
			Details: env.Error.Details,
		}
	}
	return &HTTPStatusError{Status: status, Body: string(body)}
}

// AsAPIError extracts a structured server error from err
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// StatusCode returns the HTTP status carried by err, or 0
func StatusCode(err error) int {
	var sc statusCoder
	if errors.As(err, &sc) {
		return sc.HTTPStatusCode()
	}
	return 0
}

// IsUnauthorized reports whether err is a 401 from the server
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 from the server
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsRetryable reports whether a failed read is worth one more attempt:
// transport timeouts and 408/429/5xx responses
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if code := StatusCode(err); code != 0 {
		return code == http.StatusRequestTimeout || code == http.StatusTooManyRequests ||
			(code >= 500 && code <= 599)
	}
	return false
}

// UserMessage is what a command prints for err. Structured errors are shown
// verbatim; anything else gets a generic fallback.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if apiErr, ok := AsAPIError(err); ok {
		msg := apiErr.Error()
		if d := apiErr.DetailsString(); d != "" {
			msg += " (" + d + ")"
		}
		return msg
	}
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("the server returned an unexpected response (%d)", statusErr.Status)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "the request timed out"
	}
	if errors.Is(err, ErrMalformedResponse) {
		return "the server returned a malformed response"
	}
	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return "could not reach the asset library service"
	}
	return err.Error()
}
