package db

import (
	"fmt"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// SetupDatabase runs the migrations and opens the GORM connection, retrying
// with exponential backoff while the database comes up.
func SetupDatabase(logger *logrus.Logger, config *Config) (*gorm.DB, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database config: %w", err)
	}
	logger.WithFields(logrus.Fields{
		"host": config.Host,
		"name": config.Name,
	}).Debug("Starting database setup")

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = time.Second
	expBackoff.MaxElapsedTime = config.ConnectTimeout

	var db *gorm.DB
	operation := func() error {
		if err := RunMigrations(logger, config); err != nil {
			logger.WithError(err).Warn("Database not ready, retrying")
			return err
		}

		conn, err := gorm.Open(postgres.Open(config.DSN()), &gorm.Config{
			Logger: NewGormLogrusLogger(logger),
		})
		if err != nil {
			logger.WithError(err).Warn("Database not ready, retrying")
			return err
		}
		db = conn
		return nil
	}

	if err := backoff.Retry(operation, expBackoff); err != nil {
		return nil, fmt.Errorf("failed to connect to database after retries: %w", err)
	}

	logger.Info("Database setup completed successfully")
	return db, nil
}
