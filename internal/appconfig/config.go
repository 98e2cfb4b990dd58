// Package appconfig loads the application settings from the environment,
// reading a .env file first when one exists.
package appconfig

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/lisanmuaddib/twfriends/pkg/db"
	"github.com/lisanmuaddib/twfriends/pkg/friends"
	"github.com/lisanmuaddib/twfriends/pkg/logging"
)

type Config struct {
	Logging logging.Config

	// Per-account folders are created under these dirs
	ExportDataDir string
	ImportDataDir string

	Policy friends.Policy

	// Database is nil when DB_HOST is unset; the run journal is then disabled.
	Database *db.Config
}

// Load reads the configuration. A missing .env file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}
	return FromEnv()
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() (*Config, error) {
	policy := friends.DefaultPolicy()
	ints := []struct {
		key    string
		target *int
	}{
		{"MAX_NUM_FRIENDS", &policy.MaxFriends},
		{"MAX_PAGES", &policy.MaxPages},
		{"MAX_READ_RETRIES", &policy.MaxReadRetries},
		{"MAX_WRITE_RETRIES", &policy.MaxWriteRetries},
		{"DAILY_WRITE_BUDGET", &policy.DailyWriteBudget},
	}
	for _, v := range ints {
		n, err := getEnvInt(v.key, *v.target)
		if err != nil {
			return nil, err
		}
		*v.target = n
	}

	config := &Config{
		Logging: logging.Config{
			Level:    getEnvOrDefault("LOG_LEVEL", "info"),
			Format:   getEnvOrDefault("LOG_FORMAT", logging.FormatJSON),
			Dir:      getEnvOrDefault("APP_LOG_DIR", "logs"),
			FileName: getEnvOrDefault("APP_LOG_FILENAME", "twfriends.log"),
		},
		ExportDataDir: getEnvOrDefault("EXP_DATA_DIR", "data/export"),
		ImportDataDir: getEnvOrDefault("IMP_DATA_DIR", "data/import"),
		Policy:        policy,
	}

	if host := os.Getenv("DB_HOST"); host != "" {
		config.Database = &db.Config{
			Host:          host,
			Port:          getEnvOrDefault("DB_PORT", "5432"),
			User:          os.Getenv("DB_USER"),
			Password:      os.Getenv("DB_PASSWORD"),
			Name:          os.Getenv("DB_NAME"),
			MigrationsDir: getEnvOrDefault("MIGRATIONS_DIR", "migrations"),
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.ExportDataDir == "" || c.ImportDataDir == "" {
		return fmt.Errorf("export and import data dirs are required")
	}
	if err := c.Policy.Validate(); err != nil {
		return fmt.Errorf("invalid limits: %w", err)
	}
	if c.Database != nil {
		if err := c.Database.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Helper function to get environment variable with default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
