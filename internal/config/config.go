// Package config loads pagefilter settings.
//
// Settings come from, highest precedence first: command-line flags,
// PAGEFILTER_* environment variables and a config file. Without --config the
// file is discovered as .pagefilter.{yaml,yml,json,toml} in the working
// directory, then in ~/.config/pagefilter.
//
// The same file may carry the whitelist and blacklist, or point at a separate
// rules file with "rules:". Rules are read by [LoadFilterConfig].
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Supported log levels.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Supported log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

const (
	envPrefix  = "PAGEFILTER"
	configName = ".pagefilter"
	keyRules   = "rules"
)

var (
	logLevels  = []string{LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError}
	logFormats = []string{LogFormatText, LogFormatJSON}
)

// Config holds the settings shared by every command.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log-level" json:"logLevel"`

	// LogFormat is text or json.
	LogFormat string `mapstructure:"log-format" json:"logFormat"`

	// NoColor disables ANSI colors in diff output.
	NoColor bool `mapstructure:"no-color" json:"noColor"`

	// Quiet raises the log level to error.
	Quiet bool `mapstructure:"quiet" json:"quiet"`

	// Rules is the path of a separate whitelist/blacklist file. A relative
	// path written in the config file is resolved against that file's
	// directory.
	Rules string `mapstructure:"rules" json:"rules,omitempty"`

	// ConfigFile is the config file that was read, if any.
	ConfigFile string `mapstructure:"-" json:"-"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		LogLevel:  LogLevelInfo,
		LogFormat: LogFormatText,
	}
}

// Validate rejects unknown log levels and formats.
func (c *Config) Validate() error {
	if !slices.Contains(logLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level %q: must be one of %s", c.LogLevel, strings.Join(logLevels, ", "))
	}

	if !slices.Contains(logFormats, c.LogFormat) {
		return fmt.Errorf("invalid log format %q: must be one of %s", c.LogFormat, strings.Join(logFormats, ", "))
	}

	return nil
}

// EffectiveLogLevel returns LogLevel, or "error" in quiet mode.
func (c *Config) EffectiveLogLevel() string {
	if c.Quiet {
		return LogLevelError
	}

	return c.LogLevel
}

// RulesFile returns the file the filter rules are read from: Rules when set,
// otherwise the config file in use. Empty means flags are the only source.
func (c *Config) RulesFile() string {
	if c.Rules != "" {
		return c.Rules
	}

	return c.ConfigFile
}

// Load builds a Config from cmd's flags, the environment and configFile (or
// the discovered config file when configFile is empty). Every call uses its
// own viper instance.
func Load(cmd *cobra.Command, configFile string) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("log-level", def.LogLevel)
	v.SetDefault("log-format", def.LogFormat)
	v.SetDefault("no-color", def.NoColor)
	v.SetDefault("quiet", def.Quiet)
	v.SetDefault(keyRules, "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v, configFile); err != nil {
		return nil, err
	}

	if err := bindFlags(v, cmd); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.ConfigFile = v.ConfigFileUsed()
	cfg.Rules = resolveRules(v, cmd, &cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// readConfigFile reads the explicit config file, or searches for one. Not
// finding a file during the search is not an error.
func readConfigFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %q: %w", configFile, err)
		}

		return nil
	}

	v.SetConfigName(configName)
	v.AddConfigPath(".")

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pagefilter"))
	}

	err := v.ReadInConfig()

	var notFound viper.ConfigFileNotFoundError
	if err == nil || errors.As(err, &notFound) {
		return nil
	}

	return fmt.Errorf("parsing config file: %w", err)
}

// bindFlags binds cmd's flags and the persistent flags of all its parents.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	for c := cmd; c != nil; c = c.Parent() {
		if err := v.BindPFlags(c.PersistentFlags()); err != nil {
			return fmt.Errorf("binding persistent flags: %w", err)
		}
	}

	return nil
}

// resolveRules anchors a relative rules path taken from the config file at
// the config file's directory. Paths from flags or the environment stay
// relative to the working directory.
func resolveRules(v *viper.Viper, cmd *cobra.Command, cfg *Config) string {
	rules := cfg.Rules

	if rules == "" || filepath.IsAbs(rules) || cfg.ConfigFile == "" || !v.InConfig(keyRules) {
		return rules
	}

	if _, ok := os.LookupEnv(envPrefix + "_RULES"); ok {
		return rules
	}

	if cmd != nil {
		if f := cmd.Flag(keyRules); f != nil && f.Changed {
			return rules
		}
	}

	return filepath.Join(filepath.Dir(cfg.ConfigFile), rules)
}

type ctxKey struct{}

// NewContext returns a child context carrying cfg.
func NewContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the Config stored in ctx, or Default().
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}

	return Default()
}
