package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lisanmuaddib/twfriends/pkg/logging"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
)

var _ = Describe("ColoredJSONFormatter", func() {
	It("prefixes the account and puts the friend fields first", func() {
		formatter := logging.NewColoredJSONFormatter()
		formatter.DisableColors = true
		entry := &logrus.Entry{
			Logger:  logrus.New(),
			Time:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			Level:   logrus.WarnLevel,
			Message: "Error from Twitter",
			Data: logrus.Fields{
				"screen_name": "jack",
				"attempt":     "1/3",
				"remote_id":   int64(12345),
				"friend":      "biz",
				"error":       errors.New("boom"),
			},
		}

		line, err := formatter.Format(entry)

		Expect(err).NotTo(HaveOccurred())
		Expect(string(line)).To(Equal(
			`2024-03-01T12:00:00Z WARNING [jack] Error from Twitter friend="biz" remote_id=12345 error="boom" attempt="1/3"` + "\n"))
	})
})

var _ = Describe("Setup", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("rejects unknown levels", func() {
		_, _, err := logging.Setup(logging.Config{Level: "chatty"})
		Expect(err).To(MatchError(ContainSubstring("invalid log level")))
	})

	It("rejects unknown formats", func() {
		_, _, err := logging.Setup(logging.Config{Format: "xml"})
		Expect(err).To(MatchError(ContainSubstring("unknown log format")))
	})

	It("logs to the console when no directory is set", func() {
		var console bytes.Buffer
		logger, closer, err := logging.Setup(logging.Config{Level: "debug", Console: &console})
		Expect(err).NotTo(HaveOccurred())
		defer closer.Close()

		logger.WithField("screen_name", "jack").Debug("Still waiting")

		var line map[string]interface{}
		Expect(json.Unmarshal(console.Bytes(), &line)).To(Succeed())
		Expect(line).To(HaveKeyWithValue("msg", "Still waiting"))
		Expect(line).To(HaveKeyWithValue("screen_name", "jack"))
	})

	It("writes JSON lines to the log file and mirrors them when verbose", func() {
		var console bytes.Buffer
		logger, closer, err := logging.Setup(logging.Config{
			Level:    "info",
			Dir:      filepath.Join(dir, "logs"),
			FileName: "twfriends.log",
			Verbose:  true,
			Console:  &console,
		})
		Expect(err).NotTo(HaveOccurred())

		logger.WithField("screen_name", "jack").Info("Exporter created!")
		logger.Debug("hidden")
		Expect(closer.Close()).To(Succeed())

		content, err := os.ReadFile(filepath.Join(dir, "logs", "twfriends.log"))
		Expect(err).NotTo(HaveOccurred())
		lines := strings.Split(strings.TrimSpace(string(content)), "\n")
		Expect(lines).To(HaveLen(1))
		Expect(lines[0]).To(ContainSubstring(`"msg":"Exporter created!"`))
		Expect(console.String()).To(ContainSubstring("[jack]"))
		Expect(console.String()).To(ContainSubstring("Exporter created!"))
		Expect(console.String()).NotTo(ContainSubstring("hidden"))
	})
})
