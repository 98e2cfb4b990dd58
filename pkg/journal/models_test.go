package journal_test

import (
	"time"

	"github.com/lisanmuaddib/twfriends/pkg/friends"
	"github.com/lisanmuaddib/twfriends/pkg/journal"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SyncRun", func() {
	var (
		started  time.Time
		finished time.Time
	)

	BeforeEach(func() {
		started = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		finished = started.Add(90 * time.Minute)
	})

	It("summarizes an export", func() {
		run := journal.NewExportRun(friends.ExportResult{
			OK:          true,
			Owner:       "jack",
			UserMessage: "Exported 3 friends of jack.",
			OutputPath:  "/data/export/jack/friends_jack_1.csv",
			Exported:    3,
		}, started, finished)

		Expect(run.Kind).To(Equal(journal.KindExport))
		Expect(run.Owner).To(Equal("jack"))
		Expect(run.OK).To(BeTrue())
		Expect(run.OutputPath).To(Equal("/data/export/jack/friends_jack_1.csv"))
		Expect(run.Imported).To(BeEmpty())
		Expect(run.Duration()).To(Equal(90 * time.Minute))
		Expect(run.ID.String()).NotTo(BeEmpty())
	})

	It("summarizes an import with the rows left behind", func() {
		result := friends.ImportResult{
			Owner:    "jack",
			Imported: []string{"name1"},
			Remaining: []friends.Friendship{
				{Handle: "name2", RemoteID: 12346, SkipReason: "gone"},
				{Handle: "name3", RemoteID: 12347},
			},
		}

		run := journal.NewImportRun(result, "/data/import/jack/good_remaining_1.csv", started, finished)

		Expect(run.Kind).To(Equal(journal.KindImport))
		Expect(run.OK).To(BeFalse())
		Expect([]string(run.Imported)).To(Equal([]string{"name1"}))
		Expect(run.Remaining).To(HaveLen(2))
		Expect(run.OutputPath).To(HaveSuffix("good_remaining_1.csv"))

		result.Imported[0] = "changed"
		Expect(run.Imported[0]).To(Equal("name1"))
	})

	It("gives every run its own id", func() {
		a := journal.NewExportRun(friends.ExportResult{Owner: "jack"}, started, finished)
		b := journal.NewExportRun(friends.ExportResult{Owner: "jack"}, started, finished)
		Expect(a.ID).NotTo(Equal(b.ID))
	})
})

var _ = Describe("RemainingRows", func() {
	It("stores the rows as JSON", func() {
		rows := journal.RemainingRows{{Handle: "name2", RemoteID: 12346, SkipReason: "gone"}}

		value, err := rows.Value()

		Expect(err).NotTo(HaveOccurred())
		Expect(value).To(MatchJSON(`[{"screen_name": "name2", "id": 12346, "reason_for_skipping": "gone"}]`))
	})

	It("stores nil as an empty array", func() {
		value, err := journal.RemainingRows(nil).Value()

		Expect(err).NotTo(HaveOccurred())
		Expect(value).To(Equal("[]"))
	})

	It("reads rows back from bytes", func() {
		var rows journal.RemainingRows

		Expect(rows.Scan([]byte(`[{"screen_name": "name3", "id": 12347}]`))).To(Succeed())
		Expect(rows).To(Equal(journal.RemainingRows{{Handle: "name3", RemoteID: 12347}}))
	})

	It("rejects unexpected column types", func() {
		var rows journal.RemainingRows
		Expect(rows.Scan(42)).To(MatchError(ContainSubstring("cannot scan int")))
	})
})
