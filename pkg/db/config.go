package db

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Config locates the Postgres database holding the run journal.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	// MigrationsDir is resolved against the project root when relative.
	MigrationsDir string
	// ConnectTimeout bounds the connection retries at startup.
	ConnectTimeout time.Duration
}

func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Name == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Port == "" {
		c.Port = "5432"
	}
	if c.MigrationsDir == "" {
		c.MigrationsDir = "migrations"
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = time.Minute
	}
	return nil
}

// DSN is the connection string used by GORM.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.Host, c.User, c.Password, c.Name, c.Port)
}

// URL is the connection URL used by the migrator.
func (c *Config) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// migrationsPath returns the absolute migrations directory.
func (c *Config) migrationsPath() (string, error) {
	if filepath.IsAbs(c.MigrationsDir) {
		return c.MigrationsDir, nil
	}
	root, err := findProjectRoot()
	if err != nil {
		return "", fmt.Errorf("failed to find project root: %w", err)
	}
	return filepath.Join(root, c.MigrationsDir), nil
}

// findProjectRoot looks for go.mod file to determine project root, falling
// back to the working directory for installed binaries.
func findProjectRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for dir := wd; ; {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return wd, nil
		}
		dir = parent
	}
}
