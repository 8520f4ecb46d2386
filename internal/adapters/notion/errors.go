package notion

import (
	"encoding/json"
	stderrs "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// APIError is the JSON error object the upstream returns with non-2xx statuses
// {"object":"error","status":404,"code":"object_not_found","message":"..."}
type APIError struct {
	Object    string `json:"object"`
	Status    int    `json:"status"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`

	// RetryAfter is the 429 Retry-After header in whole seconds, 0 when absent
	RetryAfter int `json:"-"`
}

// RetryAfter finds the upstream Retry-After hint anywhere in err's chain
func RetryAfter(err error) (time.Duration, bool) {
	var e *APIError
	if !stderrs.As(err, &e) || e.RetryAfter <= 0 {
		return 0, false
	}
	return time.Duration(e.RetryAfter) * time.Second, true
}

// Error implements error
func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("notion status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("notion status %d %s: %s", e.Status, e.Code, e.Message)
}

// HTTPStatus returns the upstream status
func (e *APIError) HTTPStatus() int { return e.Status }

// parseAPIError decodes raw best-effort; a body that is not the error shape still
// yields an APIError carrying the status text
func parseAPIError(status int, raw []byte) *APIError {
	e := &APIError{}
	if err := json.Unmarshal(raw, e); err != nil || e.Object != "error" {
		e = &APIError{Object: "error", Code: "http_error"}
	}
	e.Status = status
	if strings.TrimSpace(e.Message) == "" {
		e.Message = http.StatusText(status)
		if e.Message == "" {
			e.Message = fmt.Sprintf("status %d", status)
		}
	}
	return e
}
