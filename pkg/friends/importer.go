package friends

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/lisanmuaddib/twfriends/pkg/waiter"
	"github.com/sirupsen/logrus"
)

// Importer follows, on behalf of the authenticated account, every account
// listed in a file.
type Importer struct {
	config   Config
	owner    string
	fileName string
	log      *logrus.Entry
	waiter   *waiter.Waiter
}

// NewImporter resolves the authenticated account and prepares the import of
// fileName, looked up in the account's folder under the data dir.
func NewImporter(ctx context.Context, config Config, fileName string) (*Importer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if fileName == "" {
		return nil, fmt.Errorf("file name is required")
	}

	owner, err := config.Remote.VerifyIdentity(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to verify credentials: %w", err)
	}

	im := &Importer{
		config:   config,
		owner:    owner,
		fileName: fileName,
		log:      config.Logger.WithField("screen_name", owner),
		waiter:   config.newWaiter(owner),
	}
	im.log.Info("Importer created!")
	return im, nil
}

// Owner is the screen name of the authenticated account.
func (im *Importer) Owner() string {
	return im.owner
}

// Path is the location of the file being imported.
func (im *Importer) Path() string {
	return filepath.Join(im.config.DataDir, im.owner, im.fileName)
}

// Process runs the import.
func (im *Importer) Process(ctx context.Context) ImportResult {
	defer im.log.Info("Importer finished!")

	friends, err := im.load()
	if err != nil {
		msg := im.loadErrorMessage(err)
		im.log.WithError(err).Warn(msg)
		return ImportResult{Owner: im.owner, UserMessage: msg}
	}

	im.log.WithField("friends", len(friends)).Info("Importing friends")
	w := &writer{
		remote: im.config.Remote,
		waiter: im.waiter,
		log:    im.log,
		policy: im.config.Policy,
		owner:  im.owner,
		intn:   im.config.Intn,
	}
	res := w.run(ctx, friends)

	result := ImportResult{
		OK:        res.ok,
		Owner:     im.owner,
		Imported:  res.imported,
		Remaining: res.remaining,
	}
	if res.ok {
		im.log.WithField("imported", len(res.imported)).Info("Importer succeeded!")
		result.UserMessage = buildSuccessMessage(im.owner, res.imported, res.remaining)
	} else {
		im.log.Info("Importer couldn't finish properly")
		result.UserMessage = buildUnfinishedMessage(im.owner, res.imported, res.detail)
	}
	return result
}

func (im *Importer) load() ([]Friendship, error) {
	path := im.Path()
	im.log.WithField("path", path).Info("Loading CSV file")

	friends, err := im.config.Store.ReadRows(path, im.config.Policy.MaxFriends)
	if err != nil {
		return nil, err
	}

	im.log.WithField("friends", len(friends)).Info("Loaded CSV file")
	return friends, nil
}

func (im *Importer) loadErrorMessage(err error) string {
	var tooBig *TooBigError
	switch {
	case errors.Is(err, ErrBadCSV):
		return "Bad CSV file!"
	case errors.Is(err, ErrEmptyCSV):
		return fmt.Sprintf("Empty CSV file: %s", im.fileName)
	case errors.As(err, &tooBig):
		return fmt.Sprintf("The CSV file is too big. We stopped reading it at the row number %d. The limit is %d",
			tooBig.Row, tooBig.Limit)
	case errors.Is(err, ErrCSVNotFound):
		return fmt.Sprintf("CSV file not found: %s", im.fileName)
	default:
		return fmt.Sprintf("Could not read CSV file: %s", im.fileName)
	}
}
