package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history OAUTH_USER_TOKEN OAUTH_USER_TOKEN_SECRET",
	Short: "List the latest runs of the user",
	Args:  cobra.ExactArgs(2),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	app, err := newApp(args[0], args[1])
	if err != nil {
		return err
	}
	defer app.Close()

	if app.runs == nil {
		return fmt.Errorf("the run journal is disabled, set DB_HOST to enable it")
	}

	ctx, cancel := signalContext(app.logger)
	defer cancel()

	owner, err := app.remote.VerifyIdentity(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify credentials: %w", err)
	}

	runs, err := app.runs.Recent(ctx, owner, historyLimit)
	if err != nil {
		return err
	}

	printRuns(cmd.OutOrStdout(), owner, runs)
	return nil
}
