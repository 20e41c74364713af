package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_SDK_DISABLED", "")

	cfg := LoadConfig("1.0.1")
	assert.Equal(t, "kubernetics-mcp-server", cfg.ServiceName)
	assert.Equal(t, "1.0.1", cfg.ServiceVersion)
	assert.Equal(t, 1.0, cfg.SamplingRatio)
	assert.False(t, cfg.Enabled())
}

func TestLoadConfigWithEnvVars(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "test-service")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.5")
	t.Setenv("OTEL_SDK_DISABLED", "false")

	cfg := LoadConfig("dev")
	assert.Equal(t, "test-service", cfg.ServiceName)
	assert.Equal(t, "localhost:4318", cfg.Endpoint)
	assert.Equal(t, 0.5, cfg.SamplingRatio)
	assert.True(t, cfg.Enabled())

	t.Setenv("OTEL_SDK_DISABLED", "true")
	assert.False(t, LoadConfig("dev").Enabled())
}

func TestSetupDisabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), &Config{Disabled: true, Endpoint: "http://localhost:4318"})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		endpoint string
		insecure bool
		want     string
	}{
		{"localhost:4318", false, "http://localhost:4318/v1/traces"},
		{"collector.example.com:4318", false, "https://collector.example.com:4318/v1/traces"},
		{"collector.example.com:4318", true, "http://collector.example.com:4318/v1/traces"},
		{"https://collector.example.com/", false, "https://collector.example.com/v1/traces"},
		{"http://127.0.0.1:4318/v1/traces", false, "http://127.0.0.1:4318/v1/traces"},
	}
	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeEndpoint(tt.endpoint, tt.insecure))
		})
	}
}

func installRecorder(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(previous)
	})
	return exporter
}

func TestWithTracing(t *testing.T) {
	exporter := installRecorder(t)

	handler := WithTracing("describe-kubernetics-pod", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("{}"), nil
	})
	request := mcp.CallToolRequest{}
	request.Params.Name = "describe-kubernetics-pod"
	request.Params.Arguments = map[string]interface{}{"name": "web-1", "namespace": "default"}

	_, err := handler(context.Background(), request)
	require.NoError(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "mcp.tool.describe-kubernetics-pod", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assert.Contains(t, spans[0].Attributes, attribute.String("k8s.namespace", "default"))
	assert.Contains(t, spans[0].Attributes, attribute.String("k8s.name", "web-1"))
}

func TestWithTracingRecordsFailures(t *testing.T) {
	exporter := installRecorder(t)

	failing := WithTracing("get-kubernetics-events", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, errors.New("boom")
	})
	erroring := WithTracing("get-kubernetics-events", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultError("missing required parameter: namespace"), nil
	})

	_, err := failing(context.Background(), mcp.CallToolRequest{})
	assert.Error(t, err)
	_, err = erroring(context.Background(), mcp.CallToolRequest{})
	assert.NoError(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	for _, span := range spans {
		assert.Equal(t, codes.Error, span.Status.Code)
	}
	require.NotEmpty(t, spans[0].Events)
	assert.Equal(t, "exception", spans[0].Events[0].Name)
}
