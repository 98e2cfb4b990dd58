package friends

import (
	"context"
	"errors"
	"fmt"

	"github.com/lisanmuaddib/twfriends/pkg/waiter"
	"github.com/sirupsen/logrus"
)

// fetcher pages through the friends list of the authenticated account.
type fetcher struct {
	remote Remote
	waiter *waiter.Waiter
	log    *logrus.Entry
	policy Policy
}

// fetchAll returns every friend of the authenticated account, in the order
// the remote returned them.
func (f *fetcher) fetchAll(ctx context.Context) ([]Friendship, error) {
	var all []Friendship
	cursor := FirstPageCursor

	for pages := 1; ; pages++ {
		page, err := f.fetchPage(ctx, cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Friends...)

		if page.NextCursor <= 0 {
			f.log.WithFields(logrus.Fields{
				"friends": len(all),
				"pages":   pages,
			}).Debug("Retrieved full list of friends")
			return all, nil
		}

		if pages >= f.policy.MaxPages {
			f.log.WithFields(logrus.Fields{
				"pages":       pages,
				"next_cursor": page.NextCursor,
			}).Error("Reached the pagination cap with pages still left. This shouldn't happen!")
			return nil, fmt.Errorf("%w: stopped after %d pages", ErrTooManyPages, pages)
		}
		cursor = page.NextCursor
	}
}

// fetchPage retrieves one page, waiting for the rate limit window to reset
// and retrying when the remote says the limit was hit. Other errors are
// returned as is.
func (f *fetcher) fetchPage(ctx context.Context, cursor int64) (Page, error) {
	rc := retryContext{maxAttempts: f.policy.MaxReadRetries}
	log := f.log.WithField("cursor", cursor)

	for {
		log.Debug("Retrieving partial friends list")
		page, err := f.remote.FriendsPage(ctx, cursor)
		if err == nil {
			log.WithFields(logrus.Fields{
				"friends":     len(page.Friends),
				"next_cursor": page.NextCursor,
			}).Debug("Retrieved partial friends list")
			return page, nil
		}

		var limited RateLimited
		if !errors.As(err, &limited) {
			log.WithError(err).Warn("Failed to retrieve friends page")
			return Page{}, err
		}

		rc.attempt++
		if rc.attempt > rc.maxAttempts {
			log.WithError(err).WithField("max_retries", rc.maxAttempts).
				Warn("Reached the maximum number of retries for the rate limit. Bailing out")
			return Page{}, fmt.Errorf("%w: %w", ErrRateLimitExhausted, err)
		}

		reset := limited.ResetAt()
		log.WithFields(logrus.Fields{
			"reset_at": reset.Format(timeLayout),
			"attempt":  rc.attempt,
		}).Info("Rate limit hit, waiting for the limit window to reset")

		if err := f.waiter.SleepUntil(ctx, reset, f.policy.RetryCheckEvery); err != nil {
			return Page{}, err
		}
		log.WithField("attempt", fmt.Sprintf("%d/%d", rc.attempt, rc.maxAttempts)).Info("Retrying")
	}
}
