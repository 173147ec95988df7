package telemetry

import (
	"io"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

type Telemetry struct {
	Logger      zerolog.Logger
	Metrics     statsd.ClientInterface
	serviceName string
}

// New builds the process logger and metrics client from cfg. Logs are written to out.
func New(serviceName string, cfg Config, out io.Writer) (Telemetry, error) {
	if serviceName == "" {
		return Telemetry{}, eris.New("service name cannot be empty")
	}
	if err := cfg.validate(); err != nil {
		return Telemetry{}, eris.Wrap(err, "invalid telemetry config")
	}

	metrics, err := newMetrics(cfg, serviceName)
	if err != nil {
		return Telemetry{}, eris.Wrap(err, "failed to setup metrics")
	}

	return Telemetry{
		Logger:      newLogger(cfg, out),
		Metrics:     metrics,
		serviceName: serviceName,
	}, nil
}

// Shutdown flushes and closes the metrics client.
func (t *Telemetry) Shutdown() error {
	if t.Metrics == nil {
		return nil
	}
	return eris.Wrap(t.Metrics.Close(), "failed to close metrics client")
}

// GetLogger returns a component-specific logger.
func (t *Telemetry) GetLogger(component string) zerolog.Logger {
	return t.Logger.With().Str("component", t.serviceName+"."+component).Logger()
}
