package friends

import (
	"errors"
	"fmt"
)

// Local input errors. They are never retried.
var (
	ErrBadCSV      = errors.New("bad CSV file")
	ErrEmptyCSV    = errors.New("empty CSV file")
	ErrCSVNotFound = errors.New("CSV file not found")
)

var (
	// ErrTooManyPages means the remote kept returning cursors past the page
	// cap. It points at a remote API anomaly.
	ErrTooManyPages = errors.New("too many pages of friends to be retrieved")
	// ErrRateLimitExhausted means a read kept hitting the rate limit after
	// waiting for the limit window to reset.
	ErrRateLimitExhausted = errors.New("rate limit retries exhausted")
)

// TooBigError is returned when a file holds more rows than allowed.
type TooBigError struct {
	// Row is the row number where reading stopped.
	Row   int
	Limit int
}

func (e *TooBigError) Error() string {
	return fmt.Sprintf("file too big: stopped at row %d, limit is %d", e.Row, e.Limit)
}
