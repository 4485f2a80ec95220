// Package config builds an [xconsole.Config] from CLI flags, environment
// variables and an optional config file.
//
// Flags are registered on a [*pflag.FlagSet] with [Config.RegisterFlags];
// [Config.Load] then overlays values from a [*viper.Viper] bound to those
// flags, so XCONSOLE_* environment variables and config file keys take effect
// wherever a flag was not set explicitly:
//
//	cfg := config.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//
//	v := viper.New()
//	if err := cfg.Load(v, rootCmd.PersistentFlags()); err != nil { ... }
//	lcfg, err := cfg.LoggerConfig(os.Stdout)
package config

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/trickstertwo/xconsole"
)

// EnvPrefix prefixes environment variables read by [Config.Load].
const EnvPrefix = "XCONSOLE"

// Format selects the line formatter.
type Format string

const (
	// FormatText is the built-in console renderer.
	FormatText Format = "text"
	// FormatJSON renders one JSON object per entry.
	FormatJSON Format = "json"
	// FormatLogfmt renders one logfmt record per entry.
	FormatLogfmt Format = "logfmt"
)

var (
	// ErrUnknownFormat indicates an unrecognized format string.
	ErrUnknownFormat = errors.New("unknown log format")
	// ErrReadConfig indicates the config file could not be read.
	ErrReadConfig = errors.New("read config")
)

// GetAllFormatStrings returns the accepted format names.
func GetAllFormatStrings() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatLogfmt)}
}

// ParseFormat parses a format string, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if slices.Contains(GetAllFormatStrings(), string(f)) {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Flags holds CLI flag names, allowing callers to customize them while keeping
// sensible defaults via [NewConfig].
type Flags struct {
	Debug      string
	ID         string
	Colours    string
	Format     string
	TimeFormat string
	ConfigFile string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	d := xconsole.DefaultConfig()
	return &Config{
		Debug:      d.Debug,
		Colours:    d.Colours,
		Format:     string(FormatText),
		TimeFormat: d.TimeFormat,
		Flags:      f,
	}
}

// Config holds flag values for logger configuration.
type Config struct {
	Debug      bool
	ID         string
	Colours    bool
	Format     string
	TimeFormat string
	ConfigFile string
	Flags      Flags
}

// NewConfig returns a [Config] with default flag names and values.
func NewConfig() *Config {
	f := Flags{
		Debug:      "debug",
		ID:         "id",
		Colours:    "colours",
		Format:     "format",
		TimeFormat: "time-format",
		ConfigFile: "config",
	}

	return f.NewConfig()
}

// RegisterFlags adds the logger flags to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&c.Debug, c.Flags.Debug, c.Debug, "print debug entries")
	flags.StringVar(&c.ID, c.Flags.ID, c.ID, "logger id (default: bracketed process id)")
	flags.BoolVar(&c.Colours, c.Flags.Colours, c.Colours, "colour level labels")
	flags.StringVar(&c.Format, c.Flags.Format, c.Format,
		fmt.Sprintf("line format, one of: %s", strings.Join(GetAllFormatStrings(), ", ")))
	flags.StringVar(&c.TimeFormat, c.Flags.TimeFormat, c.TimeFormat, "Go time layout of the text format")
	flags.StringVar(&c.ConfigFile, c.Flags.ConfigFile, c.ConfigFile, "optional config file (yaml, json or toml)")
}

// RegisterCompletions registers shell completions for the format flag on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions(GetAllFormatStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering format completion: %w", err)
	}

	return nil
}

// Load binds v to flags, environment variables with [EnvPrefix] and the
// config file named by the config flag, then copies the resolved values into
// c. Explicitly set flags win over environment, which wins over the file.
func (c *Config) Load(v *viper.Viper, flags *pflag.FlagSet) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	if path := v.GetString(c.Flags.ConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("%w: %w", ErrReadConfig, err)
		}
	}

	c.Debug = v.GetBool(c.Flags.Debug)
	c.ID = v.GetString(c.Flags.ID)
	c.Colours = v.GetBool(c.Flags.Colours)
	c.Format = v.GetString(c.Flags.Format)
	c.TimeFormat = v.GetString(c.Flags.TimeFormat)
	c.ConfigFile = v.GetString(c.Flags.ConfigFile)

	return nil
}

// LoggerConfig converts c into an [xconsole.Config] writing to w.
func (c *Config) LoggerConfig(w io.Writer) (xconsole.Config, error) {
	format, err := ParseFormat(c.Format)
	if err != nil {
		return xconsole.Config{}, err
	}

	cfg := xconsole.DefaultConfig()
	cfg.Debug = c.Debug
	cfg.Colours = c.Colours
	cfg.Writer = w
	cfg.TimeFormat = c.TimeFormat
	if c.ID != "" {
		cfg.ID = c.ID
	}

	switch format {
	case FormatJSON:
		cfg.Formatter = xconsole.JSONFormatter
	case FormatLogfmt:
		cfg.Formatter = xconsole.LogfmtFormatter
	}

	return cfg, nil
}

// NewLogger is shorthand for [Config.LoggerConfig] followed by [xconsole.New].
func (c *Config) NewLogger(w io.Writer) (*xconsole.Logger, error) {
	cfg, err := c.LoggerConfig(w)
	if err != nil {
		return nil, err
	}

	return xconsole.New(cfg)
}
