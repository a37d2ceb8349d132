// Package config loads the optional YAML configuration file. Every section is
// optional; missing keys keep the values from Default.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-xcmgen/pkg/params"
)

// EnvPath names the environment variable consulted when no --config flag is
// given.
const EnvPath = "XCMGEN_CONFIG"

// Config is the full configuration file.
type Config struct {
	Defaults  params.GenerationParameters `yaml:"defaults"`
	Output    OutputConfig                `yaml:"output"`
	Server    ServerConfig                `yaml:"server"`
	Log       LogConfig                   `yaml:"log"`
	Templates TemplatesConfig             `yaml:"templates"`
	UI        UIConfig                    `yaml:"ui"`
}

// OutputConfig controls where generated contracts are written.
type OutputConfig struct {
	Dir       string `yaml:"dir"`
	Extension string `yaml:"extension"`
	Overwrite bool   `yaml:"overwrite"`
}

// ServerConfig configures the web form.
type ServerConfig struct {
	Addr  string        `yaml:"addr"`
	Grace time.Duration `yaml:"grace"`
	Title string        `yaml:"title"`
}

// LogConfig configures the logrus logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TemplatesConfig points at directories whose templates override the
// embedded ones.
type TemplatesConfig struct {
	ContractDir string `yaml:"contract_dir"`
	WebDir      string `yaml:"web_dir"`
}

// UIConfig configures the interactive session.
type UIConfig struct {
	NoColor bool `yaml:"no_color"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Defaults: params.Defaults(),
		Output: OutputConfig{
			Dir:       ".",
			Extension: "sol",
		},
		Server: ServerConfig{
			Addr:  "127.0.0.1:8080",
			Grace: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path, overlaying its values on Default. An empty path returns
// Default unchanged.
func Load(path string) (Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(raw)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML bytes over Default. Unknown keys are rejected.
func Parse(raw []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	if raw := c.Defaults.AccountFormat.String(); raw != "" {
		format, err := params.ParseAccountFormat(raw)
		if err != nil {
			return fmt.Errorf("defaults.accountFormat: %w", err)
		}
		c.Defaults.AccountFormat = format
	}
	c.Defaults = c.Defaults.Normalize(params.Defaults())
	if err := params.Validate(c.Defaults); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}

	c.Output.Dir = strings.TrimSpace(c.Output.Dir)
	if c.Output.Dir == "" {
		c.Output.Dir = "."
	}
	c.Output.Extension = strings.TrimPrefix(strings.TrimSpace(c.Output.Extension), ".")
	if c.Output.Extension == "" {
		c.Output.Extension = "sol"
	}

	if c.Server.Grace < 0 {
		return fmt.Errorf("server.grace: must not be negative")
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	return nil
}

// ResolvePath returns flagPath when set, otherwise the EnvPath variable.
func ResolvePath(flagPath string) string {
	if trimmed := strings.TrimSpace(flagPath); trimmed != "" {
		return trimmed
	}
	return strings.TrimSpace(os.Getenv(EnvPath))
}
