package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// Output formats.
const (
	FormatAuto     = "auto"
	FormatTerminal = "terminal"
	FormatJSON     = "json"
	FormatLive     = "live"
)

// Defaults.
const (
	DefaultFormat          = FormatAuto
	DefaultTheme           = "default"
	DefaultMaxCaptureBytes = 1024 * 1024 // 1MB per stream per test
	DefaultLogLevel        = "warn"
	DefaultLogFormat       = "text"
)

// CliFlags holds the values of command-line flags. The *Set fields record
// whether a flag was given explicitly.
type CliFlags struct {
	ConfigPath   string
	Format       string
	Theme        string
	PrintStack   bool
	NoCapture    bool
	AsyncTimeout time.Duration
	Summary      bool
	MetricsFile  string
	NoColor      bool
	CI           bool
	Debug        bool

	PrintStackSet   bool
	NoCaptureSet    bool
	AsyncTimeoutSet bool
	SummarySet      bool
	NoColorSet      bool
	CISet           bool
}

// ResolvedConfig is the final configuration after applying all priority rules.
type ResolvedConfig struct {
	Format          string
	Theme           string
	NoColor         bool
	CI              bool
	PrintStack      bool
	CaptureOutput   bool
	MaxCaptureBytes int
	AsyncTimeout    time.Duration
	Summary         bool
	MetricsFile     string
	LogLevel        logrus.Level
	LogFormat       string
	Debug           bool

	// ConfigFile is the YAML file that was read, if any.
	ConfigFile string
}

// Defaults returns the configuration used when no source sets a value.
func Defaults() *ResolvedConfig {
	return &ResolvedConfig{
		Format:          DefaultFormat,
		Theme:           DefaultTheme,
		CaptureOutput:   true,
		MaxCaptureBytes: DefaultMaxCaptureBytes,
		LogLevel:        logrus.WarnLevel,
		LogFormat:       DefaultLogFormat,
	}
}

// ResolveConfig resolves configuration from all sources: defaults, then
// the YAML file, then environment variables, then CLI flags.
func ResolveConfig(cliFlags CliFlags) (*ResolvedConfig, error) {
	fc, path, err := LoadFile(cliFlags.ConfigPath)
	if err != nil {
		return nil, err
	}

	resolved := Defaults()
	resolved.ConfigFile = path
	logLevel := DefaultLogLevel

	// File
	setString(&resolved.Format, fc.Format)
	setString(&resolved.Theme, fc.Theme)
	setBool(&resolved.NoColor, fc.NoColor)
	setBool(&resolved.CI, fc.CI)
	setBool(&resolved.PrintStack, fc.PrintStack)
	setBool(&resolved.CaptureOutput, fc.CaptureOutput)
	setBool(&resolved.Summary, fc.Summary)
	setString(&resolved.MetricsFile, fc.MetricsFile)
	setString(&logLevel, fc.LogLevel)
	setString(&resolved.LogFormat, fc.LogFormat)
	if fc.MaxCaptureBytes != 0 {
		resolved.MaxCaptureBytes = fc.MaxCaptureBytes
	}
	if fc.AsyncTimeout != "" {
		d, err := time.ParseDuration(fc.AsyncTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid async_timeout %q: %w", fc.AsyncTimeout, err)
		}
		resolved.AsyncTimeout = d
	}

	// Environment
	setString(&resolved.Format, os.Getenv("UT_FORMAT"))
	setString(&resolved.Theme, os.Getenv("UT_THEME"))
	setBool(&resolved.NoColor, getEnvBool("UT_NO_COLOR"))
	if os.Getenv("UT_NO_COLOR") == "" && os.Getenv("NO_COLOR") != "" {
		resolved.NoColor = true
	}
	setBool(&resolved.CI, getEnvBool("UT_CI", "CI"))
	setBool(&resolved.PrintStack, getEnvBool("UT_PRINT_STACK"))
	setBool(&resolved.CaptureOutput, getEnvBool("UT_CAPTURE_OUTPUT"))
	setBool(&resolved.Summary, getEnvBool("UT_SUMMARY"))
	setString(&resolved.MetricsFile, os.Getenv("UT_METRICS_FILE"))
	setString(&logLevel, os.Getenv("UT_LOG_LEVEL"))
	setString(&resolved.LogFormat, os.Getenv("UT_LOG_FORMAT"))
	if v := os.Getenv("UT_MAX_CAPTURE_BYTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid UT_MAX_CAPTURE_BYTES %q: %w", v, err)
		}
		resolved.MaxCaptureBytes = n
	}
	if v := os.Getenv("UT_ASYNC_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid UT_ASYNC_TIMEOUT %q: %w", v, err)
		}
		resolved.AsyncTimeout = d
	}
	if os.Getenv("UT_DEBUG") != "" {
		resolved.Debug = true
	}

	// CLI
	setString(&resolved.Format, cliFlags.Format)
	setString(&resolved.Theme, cliFlags.Theme)
	setString(&resolved.MetricsFile, cliFlags.MetricsFile)
	if cliFlags.PrintStackSet {
		resolved.PrintStack = cliFlags.PrintStack
	}
	if cliFlags.NoCaptureSet {
		resolved.CaptureOutput = !cliFlags.NoCapture
	}
	if cliFlags.AsyncTimeoutSet {
		resolved.AsyncTimeout = cliFlags.AsyncTimeout
	}
	if cliFlags.SummarySet {
		resolved.Summary = cliFlags.Summary
	}
	if cliFlags.NoColorSet {
		resolved.NoColor = cliFlags.NoColor
	}
	if cliFlags.CISet {
		resolved.CI = cliFlags.CI
	}
	if cliFlags.Debug {
		resolved.Debug = true
	}

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log_level: %w", err)
	}
	resolved.LogLevel = level
	if resolved.Debug {
		resolved.LogLevel = logrus.DebugLevel
	}

	// CI mode implies no color and no live display
	if resolved.CI {
		resolved.NoColor = true
		if resolved.Format == FormatLive {
			resolved.Format = FormatTerminal
		}
	}
	if resolved.NoColor {
		resolved.Theme = "mono"
	}

	if err := validateResolvedConfig(resolved); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return resolved, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// getEnvBool reads a boolean from environment variables, trying multiple keys.
// Returns nil if none are set to a parseable value.
func getEnvBool(keys ...string) *bool {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				return &b
			}
		}
	}
	return nil
}

// validateResolvedConfig returns an error for values no reporter can honor.
func validateResolvedConfig(cfg *ResolvedConfig) error {
	switch cfg.Format {
	case FormatAuto, FormatTerminal, FormatJSON, FormatLive:
	default:
		return fmt.Errorf("invalid format %q (must be: auto, terminal, json, live)", cfg.Format)
	}
	switch cfg.Theme {
	case "default", "orca", "mono":
	default:
		return fmt.Errorf("invalid theme %q (must be: default, orca, mono)", cfg.Theme)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q (must be: text, json)", cfg.LogFormat)
	}
	if cfg.MaxCaptureBytes <= 0 {
		return fmt.Errorf("max_capture_bytes must be positive, got: %d", cfg.MaxCaptureBytes)
	}
	if cfg.AsyncTimeout < 0 {
		return fmt.Errorf("async_timeout must not be negative, got: %s", cfg.AsyncTimeout)
	}
	return nil
}
