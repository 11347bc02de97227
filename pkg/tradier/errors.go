package tradier

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidRequest is wrapped by errors returned when a request fails local
// validation before anything is sent.
var ErrInvalidRequest = errors.New("tradier: invalid request")

// APIError is returned for any response whose status is not a success. Body
// holds the raw response text; Messages holds the entries of an
// {"errors":{"error":...}} payload when the API sent one.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
	Messages   []string
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		body = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("tradier: %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, body)
}

func newAPIError(req *http.Request, status int, body []byte) *APIError {
	e := &APIError{
		Method:     req.Method,
		Path:       req.URL.Path,
		StatusCode: status,
		Body:       string(body),
	}
	var payload struct {
		Errors nullable[struct {
			Error List[string] `json:"error"`
		}] `json:"errors"`
	}
	if json.Unmarshal(body, &payload) == nil {
		e.Messages = payload.Errors.get().Error.Slice()
	}
	return e
}

// StatusCode reports the HTTP status carried by err, or 0 when err is not an
// *APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is an API 404.
func IsNotFound(err error) bool { return StatusCode(err) == http.StatusNotFound }

// IsUnauthorized reports whether err is an API 401.
func IsUnauthorized(err error) bool { return StatusCode(err) == http.StatusUnauthorized }

func invalidf(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidRequest, format, args...)
}
