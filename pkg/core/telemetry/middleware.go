package telemetry

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// WithTracing wraps a tool handler in a "mcp.tool.<name>" span.
func WithTracing(toolName string, handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx, span := otel.Tracer(tracerName).Start(ctx, fmt.Sprintf("mcp.tool.%s", toolName))
		defer span.End()

		span.SetAttributes(attribute.String("mcp.tool.name", toolName))
		if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
			for _, key := range []string{"namespace", "name"} {
				if v, ok := args[key].(string); ok {
					span.SetAttributes(attribute.String("k8s."+key, v))
				}
			}
		}

		result, err := handler(ctx, request)
		switch {
		case err != nil:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case result != nil && result.IsError:
			span.SetStatus(codes.Error, "tool returned an error result")
		default:
			span.SetStatus(codes.Ok, "")
		}
		if result != nil {
			span.SetAttributes(attribute.Bool("mcp.result.is_error", result.IsError))
		}
		return result, err
	}
}
