package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	FormatJSON  = "json"
	FormatColor = "color"

	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 9
)

// Config describes where and how the application logs.
type Config struct {
	Level string
	// Format is FormatJSON or FormatColor.
	Format string
	// Dir and FileName locate the rotating log file. Logs go to Console when
	// Dir is empty.
	Dir        string
	FileName   string
	MaxSizeMB  int
	MaxBackups int
	// Verbose mirrors file logs to Console with colors.
	Verbose bool
	Console io.Writer
}

func (c *Config) Validate() error {
	if c.Level == "" {
		c.Level = logrus.InfoLevel.String()
	}
	if _, err := logrus.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	switch c.Format {
	case "":
		c.Format = FormatJSON
	case FormatJSON, FormatColor:
	default:
		return fmt.Errorf("unknown log format %q", c.Format)
	}
	if c.Dir != "" && c.FileName == "" {
		return fmt.Errorf("log file name is required when a log dir is set")
	}
	if c.MaxSizeMB <= 0 {
		c.MaxSizeMB = DefaultMaxSizeMB
	}
	if c.MaxBackups <= 0 {
		c.MaxBackups = DefaultMaxBackups
	}
	if c.Console == nil {
		c.Console = os.Stderr
	}
	return nil
}

// Setup builds the application logger. The returned closer releases the log
// file and must be called on exit.
func Setup(config Config) (*logrus.Logger, io.Closer, error) {
	if err := config.Validate(); err != nil {
		return nil, nil, err
	}

	logger := logrus.New()
	level, _ := logrus.ParseLevel(config.Level)
	logger.SetLevel(level)
	logger.SetFormatter(newFormatter(config.Format))

	if config.Dir == "" {
		logger.SetOutput(config.Console)
		return logger, nopCloser{}, nil
	}

	if err := os.MkdirAll(config.Dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	file := &lumberjack.Logger{
		Filename:   filepath.Join(config.Dir, config.FileName),
		MaxSize:    config.MaxSizeMB,
		MaxBackups: config.MaxBackups,
	}
	logger.SetOutput(file)

	if config.Verbose {
		formatter := NewColoredJSONFormatter()
		logger.AddHook(&consoleHook{writer: config.Console, formatter: formatter})
	}

	return logger, file, nil
}

func newFormatter(format string) logrus.Formatter {
	if format == FormatColor {
		return NewColoredJSONFormatter()
	}
	return &logrus.JSONFormatter{}
}

// consoleHook copies every entry to a second writer with its own formatter.
type consoleHook struct {
	writer    io.Writer
	formatter logrus.Formatter
}

func (h *consoleHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *consoleHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.writer.Write(line)
	return err
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
