// Package config resolves runtime settings from defaults, the environment,
// an optional .env file and command-line flags, in increasing precedence.
package config

import (
	"flag"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/vkngwrapper/bootstrap/internal/bootstrap"
)

const envPrefix = "BOOTSTRAP_"

// maxWindowSize bounds either window dimension so the int32 sizes SDL takes
// never overflow.
const maxWindowSize = 16384

type Config struct {
	ApplicationName string
	EngineName      string

	WindowTitle  string
	WindowWidth  int
	WindowHeight int

	Diagnostics         bool
	DiagnosticsSeverity string

	LogLevel  string
	LogFormat string
}

func Default() Config {
	return Config{
		ApplicationName:     "Hello Triangle",
		EngineName:          "No Engine",
		WindowTitle:         "Vulkan",
		WindowWidth:         800,
		WindowHeight:        600,
		Diagnostics:         true,
		DiagnosticsSeverity: "verbose",
		LogLevel:            "info",
		LogFormat:           "text",
	}
}

// Load reads .env (if present in the working directory), then the
// BOOTSTRAP_* environment, then args. flag.ErrHelp is returned untouched
// when -h is given.
func Load(args []string, output io.Writer) (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, errors.Wrap(err, "config: .env")
	}
	return Parse(args, os.LookupEnv, output)
}

// Parse is Load without touching the process environment.
func Parse(args []string, lookup func(string) (string, bool), output io.Writer) (Config, error) {
	cfg := Default()
	if err := cfg.applyEnv(lookup); err != nil {
		return Config{}, err
	}

	flags := flag.NewFlagSet("bootstrap", flag.ContinueOnError)
	flags.SetOutput(output)
	flags.StringVar(&cfg.ApplicationName, "app-name", cfg.ApplicationName, "application name reported to the driver")
	flags.StringVar(&cfg.EngineName, "engine-name", cfg.EngineName, "engine name reported to the driver")
	flags.StringVar(&cfg.WindowTitle, "title", cfg.WindowTitle, "window title")
	flags.IntVar(&cfg.WindowWidth, "width", cfg.WindowWidth, "window width")
	flags.IntVar(&cfg.WindowHeight, "height", cfg.WindowHeight, "window height")
	flags.BoolVar(&cfg.Diagnostics, "diagnostics", cfg.Diagnostics, "enable the Khronos validation layer and debug messenger")
	flags.StringVar(&cfg.DiagnosticsSeverity, "diagnostics-severity", cfg.DiagnosticsSeverity, "least severe validation message to report: verbose, info, warning or error")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}
	if flags.NArg() > 0 {
		return Config{}, errors.Newf("config: unexpected arguments %q", flags.Args())
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"APP_NAME":             &c.ApplicationName,
		"ENGINE_NAME":          &c.EngineName,
		"TITLE":                &c.WindowTitle,
		"DIAGNOSTICS_SEVERITY": &c.DiagnosticsSeverity,
		"LOG_LEVEL":            &c.LogLevel,
		"LOG_FORMAT":           &c.LogFormat,
	}
	for key, dst := range strs {
		if value, ok := lookup(envPrefix + key); ok {
			*dst = value
		}
	}

	ints := map[string]*int{
		"WIDTH":  &c.WindowWidth,
		"HEIGHT": &c.WindowHeight,
	}
	for key, dst := range ints {
		value, ok := lookup(envPrefix + key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrapf(err, "config: %s%s", envPrefix, key)
		}
		*dst = n
	}

	if value, ok := lookup(envPrefix + "DIAGNOSTICS"); ok {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Wrapf(err, "config: %sDIAGNOSTICS", envPrefix)
		}
		c.Diagnostics = enabled
	}
	return nil
}

func (c Config) Validate() error {
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return errors.Newf("config: window size %dx%d must be positive", c.WindowWidth, c.WindowHeight)
	}
	if c.WindowWidth > maxWindowSize || c.WindowHeight > maxWindowSize {
		return errors.Newf("config: window size %dx%d exceeds %d", c.WindowWidth, c.WindowHeight, maxWindowSize)
	}
	if _, err := c.Severity(); err != nil {
		return errors.Wrap(err, "config")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "config")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return errors.Newf("config: unknown log format %q", c.LogFormat)
	}
	return nil
}

func (c Config) Severity() (bootstrap.Severity, error) {
	return bootstrap.ParseSeverity(c.DiagnosticsSeverity)
}

// EffectiveLogLevel is LogLevel, lowered when diagnostics are on so that the
// least severe validation message asked for is not filtered by the logger.
func (c Config) EffectiveLogLevel() (logrus.Level, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return level, errors.Wrap(err, "config")
	}
	if !c.Diagnostics {
		return level, nil
	}

	severity, err := c.Severity()
	if err != nil {
		return level, errors.Wrap(err, "config")
	}
	if floor := severity.LogLevel(); floor > level {
		level = floor
	}
	return level, nil
}
