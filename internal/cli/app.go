package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lisanmuaddib/twfriends/internal/appconfig"
	"github.com/lisanmuaddib/twfriends/pkg/db"
	"github.com/lisanmuaddib/twfriends/pkg/friends"
	"github.com/lisanmuaddib/twfriends/pkg/interfaces/twitter"
	"github.com/lisanmuaddib/twfriends/pkg/journal"
	"github.com/lisanmuaddib/twfriends/pkg/logging"
	"github.com/lisanmuaddib/twfriends/pkg/storage/csvfile"
)

// app holds what every command needs for one user's credentials.
type app struct {
	config  *appconfig.Config
	logger  *logrus.Logger
	logFile string
	closer  io.Closer

	remote *twitterRemote
	store  *csvfile.Store
	// runs is nil when the journal is disabled.
	runs *journal.RunStore
}

func newApp(accessToken, accessTokenSecret string) (*app, error) {
	config, err := appconfig.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logConfig := config.Logging
	logConfig.Verbose = verbose
	logConfig.Console = os.Stderr
	logger, closer, err := logging.Setup(logConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	a := &app{
		config: config,
		logger: logger,
		closer: closer,
		store:  csvfile.New(logger),
	}
	if logConfig.Dir != "" {
		a.logFile, _ = filepath.Abs(filepath.Join(logConfig.Dir, logConfig.FileName))
	}

	twitterConfig, err := twitter.NewTwitterConfig(accessToken, accessTokenSecret, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create Twitter config: %w", err)
	}
	client, err := twitter.NewTwitterClient(twitterConfig)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create Twitter client: %w", err)
	}
	a.remote = newTwitterRemote(client, config.Policy.PageSize)

	if config.Database != nil {
		conn, err := db.SetupDatabase(logger, config.Database)
		if err != nil {
			// The journal is a convenience: runs go on without it
			logger.WithError(err).Warn("Run journal disabled")
		} else {
			a.runs = journal.NewRunStore(conn, logger)
		}
	}

	return a, nil
}

func (a *app) engineConfig(dataDir string) friends.Config {
	return friends.Config{
		Remote:  a.remote,
		Store:   a.store,
		Logger:  a.logger,
		DataDir: dataDir,
		Policy:  a.config.Policy,
	}
}

func (a *app) recordExport(ctx context.Context, startedAt time.Time, result friends.ExportResult) {
	if a.runs == nil {
		return
	}
	if _, err := a.runs.RecordExport(ctx, startedAt, result); err != nil {
		a.logger.WithError(err).Warn("Could not record the export")
	}
}

func (a *app) recordImport(ctx context.Context, startedAt time.Time, result friends.ImportResult, remainingPath string) {
	if a.runs == nil {
		return
	}
	if _, err := a.runs.RecordImport(ctx, startedAt, result, remainingPath); err != nil {
		a.logger.WithError(err).Warn("Could not record the import")
	}
}

func (a *app) Close() {
	if a.closer != nil {
		_ = a.closer.Close()
	}
}
