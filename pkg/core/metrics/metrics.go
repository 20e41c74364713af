// Package metrics defines the Prometheus metrics exported on /metrics.
package metrics

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	ServerInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "kubernetics_mcp_server_info",
			Help: "Information about the MCP server including version and build details",
		},
		[]string{"server_name", "version", "git_commit", "build_date", "transport"},
	)

	RegisteredTools = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "kubernetics_mcp_registered_tools",
			Help: "Set to 1 for each registered MCP tool",
		},
		[]string{"tool_name", "toolset"},
	)

	ToolInvocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kubernetics_mcp_tool_invocations_total",
			Help: "Total number of MCP tool invocations",
		},
		[]string{"tool_name"},
	)

	ToolInvocationsFailureTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kubernetics_mcp_tool_invocations_failure_total",
			Help: "Total number of MCP tool invocations that returned an error result",
		},
		[]string{"tool_name"},
	)

	ToolDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kubernetics_mcp_tool_duration_seconds",
			Help:    "Duration of MCP tool invocations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"tool_name"},
	)
)

// NewRegistry returns a registry holding the Go and process collectors and
// the server metrics. The metric vectors are package globals, so a fresh
// registry may be created per server without duplicate registration errors.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(ServerInfo, RegisteredTools, ToolInvocationsTotal, ToolInvocationsFailureTotal, ToolDuration)
	return registry
}

// WithMetrics instruments a tool handler. A result with IsError set counts
// as a failure just like a Go error does.
func WithMetrics(toolName string, handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		result, err := handler(ctx, request)

		ToolInvocationsTotal.WithLabelValues(toolName).Inc()
		ToolDuration.WithLabelValues(toolName).Observe(time.Since(start).Seconds())
		if err != nil || (result != nil && result.IsError) {
			ToolInvocationsFailureTotal.WithLabelValues(toolName).Inc()
		}
		return result, err
	}
}
