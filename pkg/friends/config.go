package friends

import (
	"fmt"
	"math/rand"

	"github.com/lisanmuaddib/twfriends/pkg/waiter"
	"github.com/sirupsen/logrus"
)

const timeLayout = "2006-01-02 15:04:05"

// Config holds the dependencies shared by the Exporter and the Importer.
type Config struct {
	Remote Remote
	Store  Store
	Logger *logrus.Logger
	// DataDir is where per-account data folders live.
	DataDir string
	Policy  Policy
	// Clock defaults to the wall clock.
	Clock waiter.Clock
	// Intn draws throttle jitter; defaults to rand.Intn.
	Intn func(n int) int
}

// Validate checks the config and fills in defaults.
func (c *Config) Validate() error {
	if c.Remote == nil {
		return fmt.Errorf("remote is required")
	}
	if c.Store == nil {
		return fmt.Errorf("store is required")
	}
	if c.DataDir == "" {
		return fmt.Errorf("data dir is required")
	}
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
	if c.Clock == nil {
		c.Clock = waiter.RealClock()
	}
	if c.Intn == nil {
		c.Intn = rand.Intn
	}
	if err := c.Policy.Validate(); err != nil {
		return fmt.Errorf("invalid policy: %w", err)
	}
	return nil
}

func (c *Config) newWaiter(screenName string) *waiter.Waiter {
	return waiter.New(waiter.Config{
		Logger:     c.Logger,
		ScreenName: screenName,
		Clock:      c.Clock,
	})
}
