package friends

import (
	"fmt"
	"strings"
)

func buildSuccessMessage(owner string, imported []string, remaining []Friendship) string {
	var b strings.Builder
	fmt.Fprintf(&b, "All done, %s! We added these (%d): \n%s\n", owner, len(imported), formatHandles(imported))

	var reasons []string
	for _, f := range remaining {
		if f.Skipped() {
			reasons = append(reasons, f.SkipReason)
		}
	}
	if len(reasons) > 0 {
		fmt.Fprintf(&b, "- Some accounts could not be followed (%d). You may remove them from the CSV file:\n", len(reasons))
		for _, r := range reasons {
			b.WriteString("- " + r + "\n")
		}
	}
	return b.String()
}

// buildUnfinishedMessage explains a failed import: what was imported anyway
// and either the specific detail or how to try again.
func buildUnfinishedMessage(owner string, imported []string, detail string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sorry, %s we couldn't follow all the people listed in the CSV file. ", owner)

	if len(imported) > 0 {
		fmt.Fprintf(&b, "But we added these (%d): \n%s\n", len(imported), formatHandles(imported))
	}

	b.WriteString("- More details:\n")
	if detail != "" {
		b.WriteString("- " + detail + "\n")
	} else {
		b.WriteString("- You may remove the accounts that were successfully imported from the CSV file " +
			"and try again in 24h or so.\n" +
			"- Twitter API has daily and hourly limits for following people.\n" +
			"- It's quite possible we hit a limit even though we tried to pace the requests.\n")
	}
	return b.String()
}

func formatHandles(handles []string) string {
	return "[" + strings.Join(handles, ", ") + "]"
}
