package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lisanmuaddib/twfriends/pkg/friends"
)

var importCmd = &cobra.Command{
	Use:   "import OAUTH_USER_TOKEN OAUTH_USER_TOKEN_SECRET CSV_FILE_NAME",
	Short: "Follow every account listed in a CSV file",
	Long: `Follow every account listed in CSV_FILE_NAME, looked up in the user's folder
under IMP_DATA_DIR. Rows that could not be imported are saved next to it in a
file ending in _remaining_<timestamp>.csv, ready to be imported again.`,
	Args: cobra.ExactArgs(3),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	app, err := newApp(args[0], args[1])
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := signalContext(app.logger)
	defer cancel()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nImport process started...\n%s\n", logFileHint(app))

	importer, err := friends.NewImporter(ctx, app.engineConfig(app.config.ImportDataDir), args[2])
	if err != nil {
		app.logger.WithError(err).Error("Failed to create importer")
		return err
	}

	startedAt := time.Now()
	result := importer.Process(ctx)

	var remainingPath string
	if rows := result.Resubmittable(); len(rows) > 0 {
		path := remainingFilePath(importer.Path(), time.Now())
		if err := app.store.WriteRows(path, rows); err != nil {
			app.logger.WithError(err).Error("Could not save the remaining friendships")
		} else {
			remainingPath = path
		}
	}
	app.recordImport(ctx, startedAt, result, remainingPath)

	printImportResult(out, result, remainingPath)
	if !result.OK {
		return errRunFailed
	}
	return nil
}

// remainingFilePath names the file holding the rows of input left to import.
func remainingFilePath(input string, now time.Time) string {
	dir, name := filepath.Split(input)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(dir, fmt.Sprintf("%s_remaining_%d.csv", name, now.UnixNano()))
}
