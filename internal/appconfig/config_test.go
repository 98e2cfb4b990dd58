package appconfig_test

import (
	"os"

	"github.com/lisanmuaddib/twfriends/internal/appconfig"
	"github.com/lisanmuaddib/twfriends/pkg/friends"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var envKeys = []string{
	"LOG_LEVEL", "LOG_FORMAT", "APP_LOG_DIR", "APP_LOG_FILENAME",
	"EXP_DATA_DIR", "IMP_DATA_DIR",
	"MAX_NUM_FRIENDS", "MAX_PAGES", "MAX_READ_RETRIES", "MAX_WRITE_RETRIES", "DAILY_WRITE_BUDGET",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "MIGRATIONS_DIR",
}

var _ = Describe("FromEnv", func() {
	BeforeEach(func() {
		for _, key := range envKeys {
			if value, ok := os.LookupEnv(key); ok {
				DeferCleanup(os.Setenv, key, value)
			} else {
				DeferCleanup(os.Unsetenv, key)
			}
			Expect(os.Unsetenv(key)).To(Succeed())
		}
	})

	It("uses the defaults", func() {
		config, err := appconfig.FromEnv()

		Expect(err).NotTo(HaveOccurred())
		Expect(config.ExportDataDir).To(Equal("data/export"))
		Expect(config.ImportDataDir).To(Equal("data/import"))
		Expect(config.Logging.Level).To(Equal("info"))
		Expect(config.Logging.FileName).To(Equal("twfriends.log"))
		Expect(config.Policy).To(Equal(friends.DefaultPolicy()))
		Expect(config.Database).To(BeNil())
	})

	It("overrides the limits", func() {
		os.Setenv("MAX_NUM_FRIENDS", "100")
		os.Setenv("MAX_WRITE_RETRIES", "5")
		os.Setenv("DAILY_WRITE_BUDGET", "300")

		config, err := appconfig.FromEnv()

		Expect(err).NotTo(HaveOccurred())
		Expect(config.Policy.MaxFriends).To(Equal(100))
		Expect(config.Policy.MaxWriteRetries).To(Equal(5))
		Expect(config.Policy.DailyWriteBudget).To(Equal(300))
	})

	It("rejects limits that are not numbers", func() {
		os.Setenv("MAX_PAGES", "many")

		_, err := appconfig.FromEnv()

		Expect(err).To(MatchError(ContainSubstring("invalid MAX_PAGES")))
	})

	It("rejects limits that make no sense", func() {
		os.Setenv("MAX_NUM_FRIENDS", "0")

		_, err := appconfig.FromEnv()

		Expect(err).To(MatchError(ContainSubstring("max friends")))
	})

	It("enables the journal when a database host is set", func() {
		os.Setenv("DB_HOST", "localhost")
		os.Setenv("DB_USER", "twf")
		os.Setenv("DB_NAME", "twfriends")

		config, err := appconfig.FromEnv()

		Expect(err).NotTo(HaveOccurred())
		Expect(config.Database).NotTo(BeNil())
		Expect(config.Database.Port).To(Equal("5432"))
		Expect(config.Database.MigrationsDir).To(Equal("migrations"))
	})

	It("requires the database name with a host", func() {
		os.Setenv("DB_HOST", "localhost")
		os.Setenv("DB_USER", "twf")

		_, err := appconfig.FromEnv()

		Expect(err).To(MatchError(ContainSubstring("database name")))
	})
})
