// Package telemetry wires OpenTelemetry tracing for tool calls.
package telemetry

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const tracerName = "kubernetics-mcp-server"

// Config holds the tracing settings, read from the standard OTEL_* variables.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	SamplingRatio  float64
	Insecure       bool
	Disabled       bool
}

// LoadConfig reads the tracing configuration from the environment.
func LoadConfig(serviceVersion string) *Config {
	return &Config{
		ServiceName:    getEnv("OTEL_SERVICE_NAME", tracerName),
		ServiceVersion: serviceVersion,
		Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		SamplingRatio:  getEnvFloat("OTEL_TRACES_SAMPLER_ARG", 1),
		Insecure:       getEnvBool("OTEL_EXPORTER_OTLP_TRACES_INSECURE", false),
		Disabled:       getEnvBool("OTEL_SDK_DISABLED", false),
	}
}

// Enabled reports whether spans are exported anywhere. Without an endpoint
// there is nowhere to send them: stdout belongs to the stdio transport.
func (c *Config) Enabled() bool {
	return !c.Disabled && c.Endpoint != ""
}

// Setup installs a global tracer provider exporting over OTLP/HTTP. When
// tracing is not enabled the global no-op provider is left in place.
func Setup(ctx context.Context, cfg *Config) (shutdown func(context.Context) error, err error) {
	if !cfg.Enabled() {
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpointURL(normalizeEndpoint(cfg.Endpoint, cfg.Insecure)),
		otlptracehttp.WithTimeout(30 * time.Second),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SamplingRatio))),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

// normalizeEndpoint adds a scheme and the /v1/traces path when missing.
func normalizeEndpoint(endpoint string, insecure bool) string {
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		if insecure || strings.Contains(endpoint, "localhost") || strings.Contains(endpoint, "127.0.0.1") {
			endpoint = "http://" + endpoint
		} else {
			endpoint = "https://" + endpoint
		}
	}
	if !strings.HasSuffix(endpoint, "/v1/traces") {
		endpoint = strings.TrimSuffix(endpoint, "/") + "/v1/traces"
	}
	return endpoint
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
