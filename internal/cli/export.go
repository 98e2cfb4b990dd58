package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lisanmuaddib/twfriends/pkg/friends"
)

var exportCmd = &cobra.Command{
	Use:   "export OAUTH_USER_TOKEN OAUTH_USER_TOKEN_SECRET",
	Short: "Export the accounts the user follows to a CSV file",
	Args:  cobra.ExactArgs(2),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	app, err := newApp(args[0], args[1])
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := signalContext(app.logger)
	defer cancel()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nExport process started...\n%s\n", logFileHint(app))

	exporter, err := friends.NewExporter(ctx, app.engineConfig(app.config.ExportDataDir))
	if err != nil {
		app.logger.WithError(err).Error("Failed to create exporter")
		return err
	}

	startedAt := time.Now()
	result := exporter.Process(ctx)
	app.recordExport(ctx, startedAt, result)

	printExportResult(out, result)
	if !result.OK {
		return errRunFailed
	}
	return nil
}
