package cli

import (
	"bytes"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/lisanmuaddib/twfriends/pkg/friends"
	"github.com/lisanmuaddib/twfriends/pkg/journal"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("output", func() {
	var out bytes.Buffer

	BeforeEach(func() {
		out.Reset()
		noColor := color.NoColor
		color.NoColor = true
		DeferCleanup(func() { color.NoColor = noColor })
	})

	It("names the remaining file after the input", func() {
		now := time.Unix(0, 1709294400123456789)

		path := remainingFilePath(filepath.Join("data", "import", "jack", "good.csv"), now)

		Expect(path).To(Equal(filepath.Join("data", "import", "jack", "good_remaining_1709294400123456789.csv")))
	})

	It("prints where the exported file is", func() {
		printExportResult(&out, friends.ExportResult{
			OK:          true,
			UserMessage: "Exported 2 friends of jack.",
			OutputPath:  "/data/export/jack/friends_jack_1.csv",
		})

		Expect(out.String()).To(ContainSubstring("The export finished correctly!"))
		Expect(out.String()).To(ContainSubstring("Exported file: /data/export/jack/friends_jack_1.csv"))
	})

	It("prints a failed import with the saved rows", func() {
		printImportResult(&out, friends.ImportResult{
			UserMessage: "Sorry, jack we couldn't follow all the people listed in the CSV file.",
			Imported:    []string{"name1"},
			Remaining:   []friends.Friendship{{Handle: "name2", RemoteID: 12346}},
		}, "/data/import/jack/good_remaining_1.csv")

		Expect(out.String()).To(ContainSubstring("ERROR when importing:"))
		Expect(out.String()).To(ContainSubstring("Friendships imported successfully: 1"))
		Expect(out.String()).To(ContainSubstring("Friendships not imported: 1"))
		Expect(out.String()).To(ContainSubstring("saved to: /data/import/jack/good_remaining_1.csv"))
	})

	It("lists runs in a table", func() {
		started := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		run := journal.NewImportRun(friends.ImportResult{
			OK:       true,
			Owner:    "jack",
			Imported: []string{"name1", "name2"},
		}, "", started, started.Add(2*time.Minute))

		printRuns(&out, "jack", []journal.SyncRun{*run})

		Expect(out.String()).To(ContainSubstring("KIND"))
		Expect(out.String()).To(MatchRegexp(`import\s+ok\s+2\s+0\s+2m0s`))
	})

	It("says when nothing was recorded", func() {
		printRuns(&out, "jack", nil)
		Expect(out.String()).To(Equal("No runs recorded for jack\n"))
	})
})
