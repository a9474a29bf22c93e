package config

import (
	"os"
	"strings"

	"codeberg.org/avhel/gpucoolctl/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultInterval    = 2
	DefaultHysteresis  = 3
	DefaultLogLevel    = "info"
	DefaultTelemetryDB = "/var/lib/gpucoolctl/telemetry.db"

	// EnvConfig overrides the config file search path with an explicit file.
	EnvConfig = "GPUCOOLCTL_CONFIG"
)

// DefaultThresholds raise the cooling state at 70, 80 and 90 degrees.
var DefaultThresholds = []int{70, 80, 90}

type Config struct {
	Interval    int    `mapstructure:"interval"`
	Hysteresis  int    `mapstructure:"hysteresis"`
	Thresholds  []int  `mapstructure:"thresholds"`
	Monitor     bool   `mapstructure:"monitor"`
	LogLevel    string `mapstructure:"log_level"`
	Telemetry   bool   `mapstructure:"telemetry"`
	TelemetryDB string `mapstructure:"database"`
}

// Load merges defaults, the TOML config file and command-line flags, in
// ascending priority.
func Load() (*Config, error) {
	errFactory := errors.New()

	fs := pflag.NewFlagSet("gpucoolctl", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Int("interval", DefaultInterval, "Seconds between governor updates")
	fs.Int("hysteresis", DefaultHysteresis, "Temperature margin before lowering the cooling state")
	fs.IntSlice("thresholds", DefaultThresholds, "Ascending temperatures that raise the cooling state")
	fs.Bool("monitor", false, "Only monitor temperature and cooling state")
	fs.String("log-level", DefaultLogLevel, "Log level (debug, info, warning, error)")
	fs.Bool("telemetry", false, "Enable telemetry collection")
	fs.String("database", DefaultTelemetryDB, "Path to the telemetry database")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	v := viper.New()
	v.SetDefault("interval", DefaultInterval)
	v.SetDefault("hysteresis", DefaultHysteresis)
	v.SetDefault("thresholds", DefaultThresholds)
	v.SetDefault("monitor", false)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("telemetry", false)
	v.SetDefault("database", DefaultTelemetryDB)

	if path := os.Getenv(EnvConfig); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("gpucoolctl")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc")
	}

	v.SetEnvPrefix("GPUCOOLCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	for viperKey, flagName := range map[string]string{
		"interval":   "interval",
		"hysteresis": "hysteresis",
		"thresholds": "thresholds",
		"monitor":    "monitor",
		"log_level":  "log-level",
		"telemetry":  "telemetry",
		"database":   "database",
	} {
		if err := v.BindPFlag(viperKey, fs.Lookup(flagName)); err != nil {
			return nil, errFactory.Wrap(errors.ErrBindFlags, err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Interval <= 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, c.Interval)
	}

	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	if len(c.Thresholds) == 0 {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "no temperature thresholds")
	}
	for i := 1; i < len(c.Thresholds); i++ {
		if c.Thresholds[i] <= c.Thresholds[i-1] {
			return errFactory.WithData(errors.ErrInvalidConfig, c.Thresholds)
		}
	}

	if c.Telemetry && c.TelemetryDB == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "telemetry enabled without database path")
	}

	return nil
}
