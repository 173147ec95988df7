package telemetry

import (
	"io"
	"strings"
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/argus-labs/chainy/pkg/assert"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// newLogger creates a logger writing to out in the configured format.
func newLogger(cfg Config, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var writer io.Writer
	switch ParseLogFormat(cfg.LogFormat) {
	case LogFormatPretty:
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	case LogFormatJSON:
		writer = out
	case LogFormatUndefined:
		assert.That(false, "unreachable")
	}

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()
}

// newMetrics creates a DogStatsD client, or a no-op client when no address is configured.
func newMetrics(cfg Config, serviceName string) (statsd.ClientInterface, error) {
	if cfg.StatsdAddress == "" {
		return &statsd.NoOpClient{}, nil
	}

	client, err := statsd.New(cfg.StatsdAddress,
		statsd.WithNamespace(serviceName+"."),
		statsd.WithTags([]string{"service:" + serviceName}),
	)
	if err != nil {
		return nil, eris.Wrap(err, "failed to create statsd client")
	}
	return client, nil
}
