// Package config loads the runtime settings shared by every plugin in a
// bundle: log level and destination, host log forwarding and metrics.
//
// Settings come from an optional file named by CLAPGO_CONFIG (YAML, TOML or
// JSON, detected from the extension) and are then overridden by
// environment variables.
package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/agilira/argus"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/justyntemme/clapgo/pkg/framework/debug"
)

// Environment variables read by FromEnv.
const (
	EnvConfig   = "CLAPGO_CONFIG"
	EnvLogLevel = "CLAPGO_LOG_LEVEL"
	EnvLogFile  = "CLAPGO_LOG_FILE"
	EnvMetrics  = "CLAPGO_METRICS"
)

// Config holds the runtime settings.
type Config struct {
	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level"`
	// LogFile receives log output instead of stderr when set.
	LogFile string `json:"log_file" yaml:"log_file" toml:"log_file"`
	// HostLog forwards warnings and errors to the host's clap.log.
	HostLog bool `json:"host_log" yaml:"host_log" toml:"host_log"`
	// HostLogLevel is the least severe level forwarded to the host.
	HostLogLevel string `json:"host_log_level" yaml:"host_log_level" toml:"host_log_level"`
	Metrics      bool   `json:"metrics" yaml:"metrics" toml:"metrics"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		LogLevel:     "info",
		HostLog:      true,
		HostLogLevel: "warn",
		Metrics:      true,
	}
}

// Load reads path, merges it over Default and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, NewFileError(path, err)
	}
	return Parse(path, data)
}

// Parse decodes data in the format implied by path's extension.
func Parse(path string, data []byte) (Config, error) {
	cfg := Default()
	var err error
	switch format := argus.DetectFormat(path); format {
	case argus.FormatYAML:
		err = yaml.Unmarshal(data, &cfg)
	case argus.FormatTOML:
		err = toml.Unmarshal(data, &cfg)
	case argus.FormatJSON:
		err = json.Unmarshal(data, &cfg)
	default:
		return Config{}, NewFormatError(path, format.String())
	}
	if err != nil {
		return Config{}, NewParseError(path, err)
	}
	return cfg, cfg.Validate()
}

// FromEnv loads the file named by CLAPGO_CONFIG, if any, then applies
// the other CLAPGO_* overrides.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if path, ok := lookup(EnvConfig); ok && path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return Config{}, err
		}
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup(EnvLogFile); ok {
		cfg.LogFile = v
	}
	if v, ok := lookup(EnvMetrics); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, NewValidationError(EnvMetrics, v, err)
		}
		cfg.Metrics = b
	}
	return cfg, cfg.Validate()
}

// Validate checks that the level names parse.
func (c Config) Validate() error {
	if _, err := debug.ParseLevel(c.LogLevel); err != nil {
		return NewValidationError("log_level", c.LogLevel, err)
	}
	if c.HostLog {
		if _, err := debug.ParseLevel(c.HostLogLevel); err != nil {
			return NewValidationError("host_log_level", c.HostLogLevel, err)
		}
	}
	return nil
}

// Level returns the parsed log level; invalid names fall back to info.
func (c Config) Level() debug.LogLevel {
	lvl, err := debug.ParseLevel(c.LogLevel)
	if err != nil {
		return debug.LogLevelInfo
	}
	return lvl
}

// HostLevel returns the parsed host forwarding level, defaulting to warn.
func (c Config) HostLevel() debug.LogLevel {
	lvl, err := debug.ParseLevel(c.HostLogLevel)
	if err != nil {
		return debug.LogLevelWarn
	}
	return lvl
}

// Logger builds the logger described by c.
func (c Config) Logger(prefix string) (*debug.Logger, error) {
	var (
		l   *debug.Logger
		err error
	)
	if c.LogFile != "" {
		l, err = debug.NewFileLogger(c.LogFile, prefix, debug.DefaultFlags)
		if err != nil {
			return nil, err
		}
	} else {
		l = debug.New(os.Stderr, prefix, debug.DefaultFlags)
	}
	l.SetLevel(c.Level())
	return l, nil
}
