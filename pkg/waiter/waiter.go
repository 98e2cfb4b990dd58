// Package waiter pauses a run until a point in time while keeping an eye on
// the clock. Waits can last from a couple of seconds up to a full day, so the
// remaining time is logged at every poll tick.
package waiter

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const timeLayout = "2006-01-02 15:04:05"

// Config holds the dependencies of a Waiter.
type Config struct {
	Logger *logrus.Logger
	// ScreenName scopes every log line to the account being processed.
	ScreenName string
	// Clock defaults to the wall clock.
	Clock Clock
}

// Waiter blocks the caller until a deadline, polling the clock at a caller
// supplied interval.
type Waiter struct {
	clock   Clock
	log     *logrus.Entry
	initial time.Time
}

// New creates a Waiter.
func New(config Config) *Waiter {
	if config.Logger == nil {
		config.Logger = logrus.New()
	}
	if config.Clock == nil {
		config.Clock = RealClock()
	}

	return &Waiter{
		clock:   config.Clock,
		log:     config.Logger.WithField("screen_name", config.ScreenName),
		initial: config.Clock.Now(),
	}
}

// SleepFor blocks for d, checking the clock every checkEvery.
func (w *Waiter) SleepFor(ctx context.Context, d, checkEvery time.Duration) error {
	return w.SleepUntil(ctx, w.clock.Now().Add(d), checkEvery)
}

// SleepUntil blocks until wakeUp, checking the clock every checkEvery.
// It only returns early when ctx is done, in which case ctx.Err() is returned.
func (w *Waiter) SleepUntil(ctx context.Context, wakeUp time.Time, checkEvery time.Duration) error {
	log := w.log.WithFields(logrus.Fields{
		"sleep_until": wakeUp.Format(timeLayout),
		"initial":     w.initial.Format(timeLayout),
		"check_every": checkEvery.String(),
	})

	for {
		remaining := wakeUp.Sub(w.clock.Now())
		log.WithField("remaining", remaining.Round(time.Second).String()).Debug("Still waiting")

		if remaining <= 0 {
			return nil
		}

		tick := checkEvery
		if tick <= 0 || tick > remaining {
			tick = remaining
		}

		if err := ctx.Err(); err != nil {
			log.WithError(err).Warn("Wait interrupted")
			return err
		}

		select {
		case <-ctx.Done():
			log.WithError(ctx.Err()).Warn("Wait interrupted")
			return ctx.Err()
		case <-w.clock.After(tick):
		}
	}
}
