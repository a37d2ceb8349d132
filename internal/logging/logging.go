// Package logging builds the logrus logger shared by the commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Format selects the log encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Options configures New.
type Options struct {
	Level            string
	Format           Format
	Writer           io.Writer
	Color            bool
	DisableTimestamp bool
}

// Option mutates Options.
type Option func(*Options)

func WithLevel(level string) Option {
	return func(o *Options) { o.Level = level }
}

func WithFormat(format string) Option {
	return func(o *Options) { o.Format = Format(strings.ToLower(strings.TrimSpace(format))) }
}

func WithWriter(w io.Writer) Option {
	return func(o *Options) { o.Writer = w }
}

func WithColor(enabled bool) Option {
	return func(o *Options) { o.Color = enabled }
}

func WithoutTimestamp() Option {
	return func(o *Options) { o.DisableTimestamp = true }
}

// New returns a logger writing to stderr at info level in text format unless
// configured otherwise. Unknown levels and formats are rejected.
func New(opts ...Option) (*logrus.Logger, error) {
	options := Options{
		Level:  "info",
		Format: FormatText,
		Writer: os.Stderr,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if options.Writer == nil {
		options.Writer = os.Stderr
	}

	level := logrus.InfoLevel
	if trimmed := strings.TrimSpace(options.Level); trimmed != "" {
		parsed, err := logrus.ParseLevel(trimmed)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		level = parsed
	}

	logger := logrus.New()
	logger.SetOutput(options.Writer)
	logger.SetLevel(level)

	switch options.Format {
	case "", FormatText:
		logger.SetFormatter(&logrus.TextFormatter{
			DisableColors:    !options.Color,
			ForceColors:      options.Color,
			DisableTimestamp: options.DisableTimestamp,
			FullTimestamp:    true,
		})
	case FormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{
			DisableTimestamp: options.DisableTimestamp,
		})
	default:
		return nil, fmt.Errorf("logging: unknown format %q", options.Format)
	}
	return logger, nil
}
