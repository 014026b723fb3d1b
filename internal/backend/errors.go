package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnavailable marks network or transport faults; the backend never answered.
var ErrUnavailable = errors.New("backend unavailable")

// UnavailableMessage is shown to users when the backend cannot be reached.
const UnavailableMessage = "Unable to reach the store right now. Please try again."

// APIError is a non-2xx backend response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}

// UserMessage picks the text to surface for err: the server message verbatim
// when present, a generic connectivity message for transport faults, and
// fallback otherwise.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}
	if errors.Is(err, ErrUnavailable) {
		return UnavailableMessage
	}
	return fallback
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Errors  []struct {
		Msg string `json:"msg"`
	} `json:"errors"`
}

// errorMessage extracts a server message from error bodies shaped as
// {"error": ...}, {"errors": [{"msg": ...}]} or {"message": ...}.
func errorMessage(raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if s := strings.TrimSpace(body.Error); s != "" {
		return s
	}
	if len(body.Errors) > 0 {
		if s := strings.TrimSpace(body.Errors[0].Msg); s != "" {
			return s
		}
	}
	return strings.TrimSpace(body.Message)
}

// StatusCode maps a backend failure onto the status a page handler should
// answer with: the backend's own 4xx passes through, anything else is 502.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		return apiErr.Status
	}
	return 502
}
