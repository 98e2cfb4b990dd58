package db_test

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/lisanmuaddib/twfriends/pkg/db"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm/logger"
)

var _ = Describe("Config", func() {
	It("requires a host", func() {
		config := &db.Config{User: "twf", Name: "twfriends"}
		Expect(config.Validate()).To(MatchError(ContainSubstring("host")))
	})

	It("fills in defaults", func() {
		config := &db.Config{Host: "localhost", User: "twf", Name: "twfriends"}

		Expect(config.Validate()).To(Succeed())
		Expect(config.Port).To(Equal("5432"))
		Expect(config.MigrationsDir).To(Equal("migrations"))
		Expect(config.ConnectTimeout).To(Equal(time.Minute))
	})

	It("escapes credentials in the migrator URL", func() {
		config := &db.Config{Host: "db", Port: "6543", User: "twf", Password: "p@ss/word", Name: "twfriends"}

		Expect(config.URL()).To(Equal("postgres://twf:p%40ss%2Fword@db:6543/twfriends?sslmode=disable"))
		Expect(config.DSN()).To(Equal("host=db user=twf password=p@ss/word dbname=twfriends port=6543 sslmode=disable"))
	})
})

var _ = Describe("GormLogrusLogger", func() {
	var (
		out  bytes.Buffer
		base *logrus.Logger
		ctx  context.Context
	)

	BeforeEach(func() {
		out.Reset()
		base = logrus.New()
		base.SetOutput(&out)
		base.SetFormatter(&logrus.JSONFormatter{})
		base.SetLevel(logrus.DebugLevel)
		ctx = context.Background()
	})

	It("logs failed queries as errors", func() {
		l := db.NewGormLogrusLogger(base)

		l.Trace(ctx, time.Now(), func() (string, int64) { return "SELECT 1", 0 }, errors.New("boom"))

		Expect(out.String()).To(ContainSubstring(`"msg":"database query failed"`))
		Expect(out.String()).To(ContainSubstring(`"sql":"SELECT 1"`))
	})

	It("stays quiet when silenced", func() {
		l := db.NewGormLogrusLogger(base).LogMode(logger.Silent)

		l.Trace(ctx, time.Now(), func() (string, int64) { return "SELECT 1", 0 }, errors.New("boom"))
		l.Error(ctx, "nope")

		Expect(out.String()).To(BeEmpty())
	})

	It("does not change the level of the original logger", func() {
		l := db.NewGormLogrusLogger(base)
		_ = l.LogMode(logger.Silent)

		l.Warn(ctx, "careful %s", "now")

		Expect(out.String()).To(ContainSubstring("careful now"))
	})
})
