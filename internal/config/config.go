// SPDX-License-Identifier: Apache-2.0

// Package config resolves runtime settings from flags, environment,
// an optional .env file and an optional config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/samber/oops"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the service reads.
const EnvPrefix = "INVOICEWIZ"

// CodeConfigLoadFailure marks configuration that could not be read or is invalid.
const CodeConfigLoadFailure = "config.load.read_failure"

// Config is the resolved service configuration.
type Config struct {
	// TemplatesFile is an optional YAML rule file loaded at startup.
	TemplatesFile string     `mapstructure:"templates_file"`
	Builtin       bool       `mapstructure:"builtin"`
	LogLevel      string     `mapstructure:"log_level"`
	HTTP          HTTPConfig `mapstructure:"http"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("templates_file", "")
	v.SetDefault("builtin", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("http.addr", ":8080")
}

// SetupEnv binds INVOICEWIZ_* environment variables, with dots in keys
// mapped to underscores (http.addr -> INVOICEWIZ_HTTP_ADDR).
func SetupEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv loads variables from a .env file into the process
// environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return oops.Code(CodeConfigLoadFailure).With("path", path).Wrapf(err, "loading env file")
	}
	return nil
}

// FromViper decodes and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, oops.Code(CodeConfigLoadFailure).Wrapf(err, "unmarshalling config")
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, oops.Code(CodeConfigLoadFailure).Wrapf(errors.Join(errs...), "validating config")
	}
	return &cfg, nil
}

// Validate returns every problem found rather than stopping at the first.
func (c *Config) Validate() []error {
	var errs []error
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("http.addr must not be empty"))
	}
	return errs
}

// Level returns the slog level named by LogLevel, defaulting to Info.
func (c *Config) Level() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log_level %q is not one of debug, info, warn, error", s)
	}
}
