package friends

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/lisanmuaddib/twfriends/pkg/waiter"
	"github.com/sirupsen/logrus"
)

// User messages of the export flow.
const (
	msgExportRateLimited = "We hit the Twitter API request rate limit. You may try again in 24h or so."
	msgExportTwitterErr  = "There was an error interacting with Twitter. You may try again in 24h or so."
	msgExportTooManyPgs  = "Twitter returned more pages of friends than expected. This shouldn't happen, please report it."
	msgExportInterrupted = "The export was interrupted before it could finish. No file generated."
)

// Exporter dumps the friends of the authenticated account to a file.
type Exporter struct {
	config Config
	owner  string
	log    *logrus.Entry
	waiter *waiter.Waiter
}

// NewExporter resolves the authenticated account and prepares an export.
func NewExporter(ctx context.Context, config Config) (*Exporter, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	owner, err := config.Remote.VerifyIdentity(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to verify credentials: %w", err)
	}

	e := &Exporter{
		config: config,
		owner:  owner,
		log:    config.Logger.WithField("screen_name", owner),
		waiter: config.newWaiter(owner),
	}
	e.log.Info("Exporter created!")
	return e, nil
}

// Owner is the screen name of the authenticated account.
func (e *Exporter) Owner() string {
	return e.owner
}

// Process runs the export.
func (e *Exporter) Process(ctx context.Context) ExportResult {
	defer e.log.Info("Exporter finished!")

	fail := func(msg string) ExportResult {
		e.log.WithField("user_message", msg).Warn("Couldn't export friends data!")
		return ExportResult{Owner: e.owner, UserMessage: msg}
	}

	count, err := e.config.Remote.FriendsCount(ctx, e.owner)
	if err != nil {
		e.log.WithError(err).Warn("Failed to retrieve friends count")
		return fail(e.userMessage(err))
	}
	e.log.WithField("friends_count", count).Info("Number of friends to export")

	limit := e.config.Policy.MaxFriends
	if count > limit {
		return fail(fmt.Sprintf("%s has %d friends. We only support up until %d", e.owner, count, limit))
	}
	if count == 0 {
		return fail(fmt.Sprintf("%s is not following anyone. No file generated.", e.owner))
	}

	f := &fetcher{
		remote: e.config.Remote,
		waiter: e.waiter,
		log:    e.log,
		policy: e.config.Policy,
	}
	friends, err := f.fetchAll(ctx)
	if err != nil {
		return fail(e.userMessage(err))
	}
	e.log.WithField("friends", len(friends)).Info("Retrieved friends from the user's Twitter profile")

	path, err := e.exportPath()
	if err != nil {
		e.log.WithError(err).Error("Failed to resolve export path")
		return fail("Could not create the export file.")
	}
	if err := e.config.Store.WriteRows(path, friends); err != nil {
		e.log.WithError(err).WithField("path", path).Error("Failed to write export file")
		return fail("Could not create the export file.")
	}
	e.log.WithField("path", path).Info("Exported CSV file successfully")

	return ExportResult{
		OK:          true,
		Owner:       e.owner,
		UserMessage: fmt.Sprintf("Exported %d friends of %s.", len(friends), e.owner),
		OutputPath:  path,
		Exported:    len(friends),
	}
}

func (e *Exporter) exportPath() (string, error) {
	name := fmt.Sprintf("friends_%s_%d.csv", e.owner, e.config.Clock.Now().UnixNano())
	return filepath.Abs(filepath.Join(e.config.DataDir, e.owner, name))
}

func (e *Exporter) userMessage(err error) string {
	switch {
	case errors.Is(err, ErrRateLimitExhausted):
		return msgExportRateLimited
	case errors.Is(err, ErrTooManyPages):
		return msgExportTooManyPgs
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return msgExportInterrupted
	default:
		return msgExportTwitterErr
	}
}
