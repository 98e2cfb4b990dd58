package friends

import (
	"context"
	"fmt"

	"github.com/lisanmuaddib/twfriends/pkg/waiter"
	"github.com/sirupsen/logrus"
)

type itemOutcome int

const (
	itemCreated itemOutcome = iota
	itemSkipped
	// itemAborted stops the run with a specific message for the user.
	itemAborted
	// itemFailed stops the run after the retries ran out.
	itemFailed
)

type itemResult struct {
	outcome itemOutcome
	reason  string
}

// writeResult is the outcome of a writer run. detail is empty for generic
// failures, which get the "try again later" hint.
type writeResult struct {
	ok        bool
	imported  []string
	remaining []Friendship
	detail    string
}

// writer creates friendships one at a time, in input order, throttling the
// requests to stay within Twitter's follow limits.
type writer struct {
	remote Remote
	waiter *waiter.Waiter
	log    *logrus.Entry
	policy Policy
	owner  string
	intn   func(n int) int
}

func (w *writer) run(ctx context.Context, friends []Friendship) writeResult {
	total := len(friends)
	w.log.WithField("friends", total).Info("Starting the creation of friendships")

	remaining := append([]Friendship(nil), friends...)
	imported := make([]string, 0, total)
	// next is the position in remaining of the friendship being processed.
	next := 0

	for _, friend := range friends {
		res := w.createFriendship(ctx, friend)

		switch res.outcome {
		case itemCreated:
			imported = append(imported, friend.Handle)
			remaining = append(remaining[:next], remaining[next+1:]...)
		case itemSkipped:
			remaining[next].SkipReason = res.reason
			next++
		default:
			w.log.WithFields(logrus.Fields{
				"imported":  len(imported),
				"remaining": len(remaining),
			}).Warn("Problem importing friendships!")
			return writeResult{
				imported:  imported,
				remaining: remaining,
				detail:    res.reason,
			}
		}

		if err := w.throttle(ctx, total); err != nil {
			return writeResult{
				imported:  imported,
				remaining: remaining,
				detail:    interruptedDetail,
			}
		}
	}

	w.log.WithField("imported", len(imported)).Info("Created friendships successfully!")
	return writeResult{ok: true, imported: imported, remaining: remaining}
}

const interruptedDetail = "The import was interrupted before it could finish."

// createFriendship follows friend, classifying each failure before deciding
// whether to retry it.
func (w *writer) createFriendship(ctx context.Context, friend Friendship) itemResult {
	log := w.log.WithFields(logrus.Fields{
		"friend":    friend.Handle,
		"remote_id": friend.RemoteID,
	})
	rc := retryContext{maxAttempts: w.policy.MaxWriteRetries}

	for {
		log.Debug("Creating friendship")
		err := w.remote.CreateFriendship(ctx, friend.RemoteID)
		if err == nil {
			log.Info("Created friendship")
			return itemResult{outcome: itemCreated}
		}
		if ctx.Err() != nil {
			log.WithError(err).Warn("Friendship creation interrupted")
			return itemResult{outcome: itemAborted, reason: interruptedDetail}
		}

		log.WithError(err).Warn("Error from Twitter")
		c := Classify(err, friend.Handle, w.owner)
		switch c.Verdict {
		case VerdictSkip:
			log.WithField("reason", c.Reason).Debug("Skipping friendship")
			return itemResult{outcome: itemSkipped, reason: c.Reason}
		case VerdictAbort:
			log.WithError(err).Warn("Got an error we can't recover from! Stopping process")
			return itemResult{outcome: itemAborted, reason: c.Reason}
		}

		rc.attempt++
		wait, ok := w.policy.retryDelay(rc)
		if !ok {
			log.WithField("retries", rc.maxAttempts).Warn("Retried too many times. Bailing out")
			return itemResult{outcome: itemFailed}
		}
		if rc.attempt == rc.maxAttempts {
			log.WithField("wait", wait.String()).Info("Last retry, waiting long enough to clear the daily limit")
		}

		log.WithFields(logrus.Fields{
			"wait":    wait.String(),
			"attempt": fmt.Sprintf("%d/%d", rc.attempt, rc.maxAttempts),
		}).Info("Waiting before retrying")
		if err := w.waiter.SleepFor(ctx, wait, w.policy.RetryCheckEvery); err != nil {
			return itemResult{outcome: itemAborted, reason: interruptedDetail}
		}
	}
}

func (w *writer) throttle(ctx context.Context, total int) error {
	wait, checkEvery := w.policy.ThrottleDelay(total, w.intn)
	w.log.WithField("wait", wait.String()).Debug("Throttle: waiting")
	if err := w.waiter.SleepFor(ctx, wait, checkEvery); err != nil {
		return err
	}
	w.log.Debug("Throttle: resuming activity")
	return nil
}
