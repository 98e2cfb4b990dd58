package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/lisanmuaddib/twfriends/pkg/friends"
	"github.com/lisanmuaddib/twfriends/pkg/journal"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	infoColor = color.New(color.FgCyan)
)

func printExportResult(w io.Writer, result friends.ExportResult) {
	if result.OK {
		okColor.Fprintln(w, "The export finished correctly!")
		fmt.Fprintln(w, result.UserMessage)
		infoColor.Fprintf(w, "Exported file: %s\n", result.OutputPath)
		return
	}
	failColor.Fprintln(w, "ERROR when exporting:")
	fmt.Fprintln(w, result.UserMessage)
}

func printImportResult(w io.Writer, result friends.ImportResult, remainingPath string) {
	if result.OK {
		okColor.Fprintln(w, "The import finished correctly!")
	} else {
		failColor.Fprintln(w, "ERROR when importing:")
	}
	fmt.Fprintln(w, result.UserMessage)

	if len(result.Imported) > 0 {
		infoColor.Fprintf(w, "Friendships imported successfully: %d\n", len(result.Imported))
	}
	if len(result.Remaining) > 0 {
		infoColor.Fprintf(w, "Friendships not imported: %d\n", len(result.Remaining))
	}
	if remainingPath != "" {
		infoColor.Fprintf(w, "The friendships left to import were saved to: %s\n", remainingPath)
	}
}

func printRuns(w io.Writer, owner string, runs []journal.SyncRun) {
	if len(runs) == 0 {
		fmt.Fprintf(w, "No runs recorded for %s\n", owner)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tKIND\tRESULT\tIMPORTED\tREMAINING\tDURATION\tFILE")
	for _, run := range runs {
		result := "ok"
		if !run.OK {
			result = "failed"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			run.StartedAt.Local().Format(time.DateTime),
			run.Kind,
			result,
			len(run.Imported),
			len(run.Remaining),
			run.Duration().Round(time.Second),
			run.OutputPath,
		)
	}
	_ = tw.Flush()
}
