package telemetry

import (
	"strings"

	jlconfig "github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

type Config struct {
	// Log level configuration ("debug", "info", "warn", "error").
	LogLevel string `config:"CHAINY_LOG_LEVEL"`

	// Log format configuration ("json", "pretty").
	LogFormat string `config:"CHAINY_LOG_FORMAT"`

	// StatsdAddress is the DogStatsD agent address. Metrics are discarded when empty.
	StatsdAddress string `config:"CHAINY_STATSD_ADDRESS"`
}

func defaultConfig() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "json",
	}
}

// LoadConfig loads the configuration from envFile (when not empty) and the environment.
func LoadConfig(envFile string) (Config, error) {
	cfg := defaultConfig()

	builder := jlconfig.FromEnv()
	if envFile != "" {
		builder = jlconfig.From(envFile).FromEnv()
	}
	if err := builder.To(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to parse telemetry config")
	}

	if err := cfg.validate(); err != nil {
		return cfg, eris.Wrap(err, "failed to validate telemetry config")
	}

	return cfg, nil
}

// validate performs validation on the loaded configuration.
func (cfg *Config) validate() error {
	_, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		return eris.Errorf("invalid log level: %s (must be 'debug', 'info', 'warn', or 'error')", cfg.LogLevel)
	}

	if ParseLogFormat(cfg.LogFormat) == LogFormatUndefined {
		return eris.Errorf("invalid log format: %s (must be 'json' or 'pretty')", cfg.LogFormat)
	}

	return nil
}

type LogFormat uint8

const (
	LogFormatUndefined LogFormat = iota
	LogFormatJSON
	LogFormatPretty
)

func ParseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	case "pretty":
		return LogFormatPretty
	default:
		return LogFormatUndefined
	}
}
