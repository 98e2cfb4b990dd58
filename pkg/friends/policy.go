package friends

import (
	"fmt"
	"time"
)

// Default policy values. Twitter allows roughly 400 follows per day and
// 30 per minute; a page of friends/list holds at most 200 users.
const (
	DefaultMaxFriends         = 3000
	DefaultMaxPages           = 15
	DefaultPageSize           = 200
	DefaultMaxReadRetries     = 1
	DefaultMaxWriteRetries    = 3
	DefaultDailyWriteBudget   = 400
	DefaultShortWait          = 15 * time.Minute
	DefaultLongWait           = 25 * time.Hour
	DefaultRetryCheckEvery    = 30 * time.Second
	DefaultThrottleCheckEvery = 30 * time.Second
	DefaultBurstCheckEvery    = time.Second
	DefaultBurstMinWait       = 2 * time.Second
	DefaultBurstMaxWait       = 3 * time.Second
)

// Policy holds the limits and timings of the sync engine.
type Policy struct {
	// MaxFriends caps both the accounts exported and the rows imported.
	MaxFriends int
	// MaxPages caps the friends/list pages fetched in one export.
	MaxPages int
	PageSize int

	// MaxReadRetries is the number of retries of a rate limited page fetch.
	MaxReadRetries int
	// MaxWriteRetries is the number of retries of a friendship creation; the
	// last one is preceded by LongWait instead of ShortWait.
	MaxWriteRetries int
	ShortWait       time.Duration
	LongWait        time.Duration
	RetryCheckEvery time.Duration

	// DailyWriteBudget is the number of follows allowed per day.
	DailyWriteBudget   int
	ThrottleCheckEvery time.Duration
	BurstMinWait       time.Duration
	BurstMaxWait       time.Duration
	BurstCheckEvery    time.Duration
}

// DefaultPolicy returns the policy used in production.
func DefaultPolicy() Policy {
	return Policy{
		MaxFriends:         DefaultMaxFriends,
		MaxPages:           DefaultMaxPages,
		PageSize:           DefaultPageSize,
		MaxReadRetries:     DefaultMaxReadRetries,
		MaxWriteRetries:    DefaultMaxWriteRetries,
		ShortWait:          DefaultShortWait,
		LongWait:           DefaultLongWait,
		RetryCheckEvery:    DefaultRetryCheckEvery,
		DailyWriteBudget:   DefaultDailyWriteBudget,
		ThrottleCheckEvery: DefaultThrottleCheckEvery,
		BurstMinWait:       DefaultBurstMinWait,
		BurstMaxWait:       DefaultBurstMaxWait,
		BurstCheckEvery:    DefaultBurstCheckEvery,
	}
}

// Validate checks the policy is usable.
func (p Policy) Validate() error {
	if p.MaxFriends < 1 {
		return fmt.Errorf("max friends must be positive")
	}
	if p.MaxPages < 1 {
		return fmt.Errorf("max pages must be positive")
	}
	if p.PageSize < 1 {
		return fmt.Errorf("page size must be positive")
	}
	if p.MaxReadRetries < 0 || p.MaxWriteRetries < 0 {
		return fmt.Errorf("retry counts cannot be negative")
	}
	if p.DailyWriteBudget < 1 {
		return fmt.Errorf("daily write budget must be positive")
	}
	if p.BurstMinWait > p.BurstMaxWait {
		return fmt.Errorf("burst min wait %v exceeds burst max wait %v", p.BurstMinWait, p.BurstMaxWait)
	}
	return nil
}

// ThrottleDelay returns how long to wait after a request when importing total
// friendships, and how often to check the clock while waiting.
//
// Above the daily budget the delay is drawn uniformly from
// [24h/budget, 25h/budget] seconds so the run stays just under the daily
// limit. Otherwise it is drawn from [BurstMinWait, BurstMaxWait] to stay under
// the per-minute limit. intn must behave like rand.IntN.
func (p Policy) ThrottleDelay(total int, intn func(n int) int) (wait, checkEvery time.Duration) {
	var lower, upper int
	if total > p.DailyWriteBudget {
		lower = int((24 * time.Hour).Seconds()) / p.DailyWriteBudget
		upper = int((25 * time.Hour).Seconds()) / p.DailyWriteBudget
		checkEvery = p.ThrottleCheckEvery
	} else {
		lower = int(p.BurstMinWait.Seconds())
		upper = int(p.BurstMaxWait.Seconds())
		checkEvery = p.BurstCheckEvery
	}

	seconds := lower + intn(upper-lower+1)
	return time.Duration(seconds) * time.Second, checkEvery
}

// retryDelay returns the wait before the next write attempt, or false once
// the retries are exhausted.
func (p Policy) retryDelay(rc retryContext) (time.Duration, bool) {
	switch {
	case rc.attempt < rc.maxAttempts:
		return p.ShortWait * time.Duration(rc.attempt), true
	case rc.attempt == rc.maxAttempts:
		return p.LongWait, true
	default:
		return 0, false
	}
}
