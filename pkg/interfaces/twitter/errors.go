package twitter

import (
	"fmt"
	"net/http"
	"time"
)

// APIError is a non-2xx answer from the Twitter API.
type APIError struct {
	StatusCode int
	// Code is the first Twitter error code in the body, 0 when absent.
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Twitter API returned a %d (%s), %s", e.StatusCode, statusText(e.StatusCode), e.Message)
}

// RateLimitError is returned on a 429 answer.
type RateLimitError struct {
	*APIError
	Reset time.Time
}

// ResetAt is when Twitter resets the rate limit window.
func (e *RateLimitError) ResetAt() time.Time {
	return e.Reset
}

func (e *RateLimitError) Unwrap() error {
	return e.APIError
}

const defaultErrorMessage = "An error occurred processing your request."

func statusText(code int) string {
	if code == 420 {
		return "Enhance Your Calm"
	}
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "Unknown"
}
