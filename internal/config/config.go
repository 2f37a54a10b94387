// Package config loads the default settings of the csvjson command from
// environment variables.  Command line flags override them.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arnodel/csvjson/encoding/csvline"
	"github.com/arnodel/csvjson/record"
)

// Config holds all settings that can come from the environment.
type Config struct {
	Output  OutputConfig
	Logging LoggingConfig
	Watch   WatchConfig
}

// OutputConfig controls how lines are parsed and how JSON is written.
type OutputConfig struct {
	// Quotes is the quote tracking mode: parity or quoted (default: parity)
	Quotes string `env:"CSVJSON_QUOTES" envDefault:"parity"`

	// Mismatch is the policy for lines whose field count differs from the
	// header: truncate, pad or strict (default: truncate)
	Mismatch string `env:"CSVJSON_MISMATCH" envDefault:"truncate"`

	// Indent puts one record per line when positive (default: 0)
	Indent int `env:"CSVJSON_INDENT" envDefault:"0"`

	// ASCII escapes non-ASCII characters (default: true)
	ASCII bool `env:"CSVJSON_ASCII" envDefault:"true"`

	// Color is auto, always or never (default: auto)
	Color string `env:"CSVJSON_COLOR" envDefault:"auto"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"CSVJSON_LOG_LEVEL" envDefault:"info"`
	Format string `env:"CSVJSON_LOG_FORMAT" envDefault:"console"`
}

// WatchConfig holds settings for watch mode.
type WatchConfig struct {
	// Debounce is how long the source must stay unchanged before it is
	// converted again (default: 500ms)
	Debounce time.Duration `env:"CSVJSON_WATCH_DEBOUNCE" envDefault:"500ms"`
}

// Mode returns the parsed quote mode.  Only valid after Validate succeeded.
func (c *OutputConfig) Mode() csvline.Mode {
	m, _ := csvline.ParseMode(c.Quotes)
	return m
}

// Policy returns the parsed mismatch policy.  Only valid after Validate
// succeeded.
func (c *OutputConfig) Policy() record.MismatchPolicy {
	p, _ := record.ParseMismatchPolicy(c.Mismatch)
	return p
}

const maxIndent = 16

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if _, err := csvline.ParseMode(c.Output.Quotes); err != nil {
		errs = append(errs, err.Error())
	}
	if _, err := record.ParseMismatchPolicy(c.Output.Mismatch); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Output.Indent < 0 || c.Output.Indent > maxIndent {
		errs = append(errs, fmt.Sprintf("indent (%d) must be 0-%d", c.Output.Indent, maxIndent))
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		errs = append(errs, fmt.Sprintf("invalid color mode: %q (use auto, always or never)", c.Output.Color))
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil || c.Logging.Level == "" {
		errs = append(errs, fmt.Sprintf("invalid log level: %q", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Sprintf("invalid log format: %q (use console or json)", c.Logging.Format))
	}

	if c.Watch.Debounce <= 0 {
		errs = append(errs, "watch debounce must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
