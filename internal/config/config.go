// Package config holds the pact client configuration.
//
// The configuration is passed through the builder unchanged to the update
// commands; only the local engine and the CLI interpret it. It can be loaded
// from YAML or CUE files and overlaid with PACT_* environment variables,
// optionally read from a .env file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/alexthissen/pact-net/internal/ir"
)

// Config is the pact client configuration.
type Config struct {
	// PactDir is the directory pact files are written to.
	PactDir string `yaml:"pact_dir" json:"pact_dir"`

	// Database is the path of the SQLite interaction store.
	Database string `yaml:"database" json:"database"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// BrokerURL is the pact broker base URL. Opaque to this client.
	BrokerURL string `yaml:"broker_url,omitempty" json:"broker_url,omitempty"`

	// SpecVersion is the pact specification version written to pact files.
	SpecVersion string `yaml:"spec_version" json:"spec_version"`
}

// Environment variable names read by ApplyEnv.
const (
	EnvPactDir     = "PACT_DIR"
	EnvDatabase    = "PACT_DATABASE"
	EnvLogLevel    = "PACT_LOG_LEVEL"
	EnvBrokerURL   = "PACT_BROKER_URL"
	EnvSpecVersion = "PACT_SPEC_VERSION"
)

// ValidLogLevels defines the allowed log levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Default returns the default configuration.
func Default() Config {
	return Config{
		PactDir:     "pacts",
		Database:    filepath.Join("pacts", "pacts.db"),
		LogLevel:    "info",
		SpecVersion: ir.PactSpecVersion,
	}
}

// Load reads a configuration file on top of the defaults.
// The format is chosen by extension: .yaml/.yml or .cue.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		err = decodeYAML(data, &cfg)
	case ".cue":
		err = decodeCUE(path, data, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// decodeYAML rejects unknown fields so typos surface as errors.
func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

func decodeCUE(path string, data []byte, cfg *Config) error {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return fmt.Errorf("failed to compile CUE: %w", err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("CUE config is not concrete: %w", err)
	}
	if err := v.Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode CUE: %w", err)
	}
	return nil
}

// ApplyEnv overlays PACT_* variables onto cfg.
//
// If envFile is non-empty and exists, its variables are read first; the
// process environment takes precedence over the file.
func (c *Config) ApplyEnv(envFile string) error {
	vars := map[string]string{}
	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to read env file: %w", err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}
	for _, name := range []string{EnvPactDir, EnvDatabase, EnvLogLevel, EnvBrokerURL, EnvSpecVersion} {
		if v, ok := os.LookupEnv(name); ok {
			vars[name] = v
		}
	}

	if v, ok := vars[EnvPactDir]; ok {
		c.PactDir = v
	}
	if v, ok := vars[EnvDatabase]; ok {
		c.Database = v
	}
	if v, ok := vars[EnvLogLevel]; ok {
		c.LogLevel = strings.ToLower(v)
	}
	if v, ok := vars[EnvBrokerURL]; ok {
		c.BrokerURL = v
	}
	if v, ok := vars[EnvSpecVersion]; ok {
		c.SpecVersion = v
	}
	return nil
}

// Validate checks required fields.
func (c Config) Validate() error {
	if strings.TrimSpace(c.PactDir) == "" {
		return fmt.Errorf("pact_dir is required")
	}
	if strings.TrimSpace(c.SpecVersion) == "" {
		return fmt.Errorf("spec_version is required")
	}
	if !isValidLogLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q: must be one of %v", c.LogLevel, ValidLogLevels)
	}
	return nil
}

// SlogLevel converts LogLevel to a slog.Level. Unknown levels map to Info.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func isValidLogLevel(level string) bool {
	for _, l := range ValidLogLevels {
		if l == level {
			return true
		}
	}
	return false
}
