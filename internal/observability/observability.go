// Package observability builds the logger, tracer and metrics shared by all modules.
package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Black-And-White-Club/frolf-rounds/internal/observability/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config controls how observability is initialised.
type Config struct {
	ServiceName string
	Environment string
	LogLevel    string
	// Output defaults to stdout.
	Output io.Writer
}

// Provider holds the process-wide logger.
type Provider struct {
	Logger *slog.Logger
}

// Registry holds tracing and metrics handles.
type Registry struct {
	Tracer     trace.Tracer
	Metrics    metrics.OperationMetrics
	Prometheus *prometheus.Registry
}

// Observability bundles everything a module needs to log, trace and measure.
type Observability struct {
	Provider Provider
	Registry Registry
}

// Init builds the observability stack. Spans go to the global otel tracer
// provider, which stays a no-op unless an SDK has been registered.
func Init(cfg Config) Observability {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	})).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return Observability{
		Provider: Provider{Logger: logger},
		Registry: Registry{
			Tracer:     otel.Tracer(cfg.ServiceName),
			Metrics:    metrics.NewPrometheusMetrics(reg, "frolf"),
			Prometheus: reg,
		},
	}
}

// NewNoop returns an Observability that discards logs, spans and metrics.
func NewNoop() Observability {
	return Observability{
		Provider: Provider{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))},
		Registry: Registry{
			Tracer:     noop.NewTracerProvider().Tracer("noop"),
			Metrics:    metrics.NewNoop(),
			Prometheus: prometheus.NewRegistry(),
		},
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
