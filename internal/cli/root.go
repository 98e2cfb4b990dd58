// Package cli wires the configuration, the Twitter client and the sync
// engine into the twfriends commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose bool

// errRunFailed is returned once the outcome of a failed run was printed.
var errRunFailed = errors.New("run failed")

var rootCmd = &cobra.Command{
	Use:   "twfriends",
	Short: "Export and import the accounts a Twitter user follows",
	Long: `twfriends exports the list of accounts a Twitter user follows to a CSV file,
and makes another user follow every account listed in such a file, pacing the
requests to stay within the Twitter API limits.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errRunFailed) {
			color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "mirror the log file to the console")
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(log *logrus.Logger) (context.Context, context.CancelFunc) {
	return notifyContext(log, syscall.SIGINT, syscall.SIGTERM)
}

func notifyContext(log *logrus.Logger, signals ...os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	// Registered before the goroutine starts so an early signal is not lost
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, signals...)

	// Handle graceful shutdown
	go func() {
		defer signal.Stop(sigChan)

		select {
		case sig := <-sigChan:
			log.WithField("signal", sig.String()).Info("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

func logFileHint(app *app) string {
	if app.logFile == "" {
		return ""
	}
	return fmt.Sprintf("You may check progress in log file: %s\n", app.logFile)
}
