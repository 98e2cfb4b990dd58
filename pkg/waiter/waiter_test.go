package waiter_test

import (
	"context"
	"io"
	"time"

	"github.com/lisanmuaddib/twfriends/pkg/waiter"
	"github.com/lisanmuaddib/twfriends/pkg/waiter/waitertest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
)

var _ = Describe("Waiter", func() {
	var (
		clock *waitertest.FakeClock
		w     *waiter.Waiter
		start time.Time
	)

	BeforeEach(func() {
		logger := logrus.New()
		logger.SetOutput(io.Discard)

		start = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		clock = waitertest.NewFakeClock(start)
		w = waiter.New(waiter.Config{
			Logger:     logger,
			ScreenName: "jack",
			Clock:      clock,
		})
	})

	Context("SleepFor", func() {
		It("polls at the requested interval until the duration has elapsed", func() {
			err := w.SleepFor(context.Background(), 95*time.Second, 30*time.Second)

			Expect(err).NotTo(HaveOccurred())
			Expect(clock.Ticks()).To(Equal([]time.Duration{
				30 * time.Second,
				30 * time.Second,
				30 * time.Second,
				5 * time.Second,
			}))
			Expect(clock.Now()).To(Equal(start.Add(95 * time.Second)))
		})

		It("does not sleep for a zero duration", func() {
			Expect(w.SleepFor(context.Background(), 0, time.Second)).To(Succeed())
			Expect(clock.Ticks()).To(BeEmpty())
		})

		It("sleeps the whole remainder when the poll interval is not positive", func() {
			Expect(w.SleepFor(context.Background(), time.Minute, 0)).To(Succeed())
			Expect(clock.Ticks()).To(Equal([]time.Duration{time.Minute}))
		})
	})

	Context("SleepUntil", func() {
		It("returns immediately for a deadline in the past", func() {
			Expect(w.SleepUntil(context.Background(), start.Add(-time.Hour), time.Second)).To(Succeed())
			Expect(clock.Ticks()).To(BeEmpty())
		})

		It("waits a full day in polling steps", func() {
			Expect(w.SleepUntil(context.Background(), start.Add(25*time.Hour), 30*time.Second)).To(Succeed())
			Expect(clock.Ticks()).To(HaveLen(3000))
			Expect(clock.Elapsed()).To(Equal(25 * time.Hour))
		})

		It("stops at the next poll tick once the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			err := w.SleepUntil(ctx, start.Add(time.Hour), time.Minute)
			Expect(err).To(MatchError(context.Canceled))
			Expect(clock.Ticks()).To(BeEmpty())
		})
	})
})
