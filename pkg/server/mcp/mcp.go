package mcp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/futuretea/kubernetics-mcp-server/pkg/client/kube"
	"github.com/futuretea/kubernetics-mcp-server/pkg/cluster"
	"github.com/futuretea/kubernetics-mcp-server/pkg/core/config"
	"github.com/futuretea/kubernetics-mcp-server/pkg/core/logging"
	"github.com/futuretea/kubernetics-mcp-server/pkg/core/metrics"
	"github.com/futuretea/kubernetics-mcp-server/pkg/core/telemetry"
	"github.com/futuretea/kubernetics-mcp-server/pkg/core/version"
	"github.com/futuretea/kubernetics-mcp-server/pkg/toolset"
	"github.com/futuretea/kubernetics-mcp-server/pkg/toolset/kubernetes"
	"github.com/futuretea/kubernetics-mcp-server/pkg/toolset/paramutil"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const authorizationKey contextKey = "Authorization"

// Configuration wraps the static configuration with additional runtime components
type Configuration struct {
	*config.StaticConfig

	// Querier overrides the cluster querier built from the kubeconfig.
	Querier *cluster.Querier
}

// Server represents the MCP server
type Server struct {
	configuration *Configuration
	server        *server.MCPServer
	enabledTools  []string
	querier       *cluster.Querier
}

// NewServer creates a new MCP server with the given configuration
func NewServer(configuration Configuration) (*Server, error) {
	// Note: Logging is initialized in root.go before calling NewServer
	// to properly handle stdio vs HTTP/SSE mode

	serverOptions := []server.ServerOption{
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithRecovery(),
	}

	querier := configuration.Querier
	if querier == nil {
		client, err := kube.NewClient(kube.Options{
			Kubeconfig: configuration.Kubeconfig,
			Context:    configuration.Context,
		})
		if err != nil {
			// Keep serving: every tool answers with its fallback message
			logging.Warn("Failed to create Kubernetes client: %v", err)
			logging.Warn("Kubernetes tools will return error messages until the server is restarted with a valid configuration")
		}
		querier = cluster.NewQuerier(client, err)
	}

	s := &Server{
		configuration: &configuration,
		server:        server.NewMCPServer(version.BinaryName, version.Version, serverOptions...),
		querier:       querier,
	}

	if err := s.registerTools(); err != nil {
		return nil, err
	}

	return s, nil
}

// registerTools registers all available tools based on configuration
func (s *Server) registerTools() error {
	toolsets := []toolset.Toolset{
		&kubernetes.Toolset{},
	}

	for _, ts := range toolsets {
		for _, tool := range ts.GetTools(s.querier) {
			if !s.shouldEnableTool(tool.Tool.Name) {
				continue
			}
			if err := s.registerTool(ts.GetName(), s.configureTool(tool)); err != nil {
				return fmt.Errorf("failed to register tool %s: %w", tool.Tool.Name, err)
			}
		}
	}

	logging.Info("MCP server initialized with %d tools", len(s.enabledTools))
	return nil
}

// shouldEnableTool determines if a tool should be enabled based on configuration
func (s *Server) shouldEnableTool(toolName string) bool {
	for _, disabledTool := range s.configuration.DisabledTools {
		if disabledTool == toolName {
			return false
		}
	}

	if len(s.configuration.EnabledTools) > 0 {
		for _, enabledTool := range s.configuration.EnabledTools {
			if enabledTool == toolName {
				return true
			}
		}
		return false
	}

	return true
}

// configureTool fills in configured defaults for parameters the caller
// did not pass and copies the hints onto the advertised tool.
func (s *Server) configureTool(tool toolset.ServerTool) toolset.ServerTool {
	advertised := tool.Tool
	advertised.Annotations.ReadOnlyHint = tool.Annotations.ReadOnlyHint
	advertised.Annotations.DestructiveHint = tool.Annotations.DestructiveHint

	return toolset.ServerTool{
		Tool:        advertised,
		Annotations: tool.Annotations,
		Handler: func(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
			if _, ok := params[paramutil.ParamFormat]; !ok && s.configuration.DescribeFormat != "" {
				params[paramutil.ParamFormat] = strings.ToLower(s.configuration.DescribeFormat)
			}
			if _, ok := params[paramutil.ParamRawOutput]; !ok {
				params[paramutil.ParamRawOutput] = s.configuration.RawOutput
			}
			return tool.Handler(ctx, client, params)
		},
	}
}

func contextFunc(ctx context.Context, r *http.Request) context.Context {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		return context.WithValue(ctx, authorizationKey, authHeader)
	}
	return ctx
}

// registerTool registers a single tool with the MCP server
func (s *Server) registerTool(toolsetName string, tool toolset.ServerTool) error {
	if tool.Handler == nil {
		return fmt.Errorf("tool %s has no handler", tool.Tool.Name)
	}

	toolHandler := server.ToolHandlerFunc(func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logging.Debug("Tool %s called with params: %v", tool.Tool.Name, request.Params.Arguments)

		params := make(map[string]interface{})
		if arguments, ok := request.Params.Arguments.(map[string]interface{}); ok {
			for key, value := range arguments {
				params[key] = value
			}
		}

		result, err := tool.Handler(ctx, s.querier, params)
		return NewTextResult(result, err), nil
	})

	toolHandler = telemetry.WithTracing(tool.Tool.Name, metrics.WithMetrics(tool.Tool.Name, toolHandler))

	s.server.AddTool(tool.Tool, toolHandler)
	s.enabledTools = append(s.enabledTools, tool.Tool.Name)
	metrics.RegisteredTools.WithLabelValues(tool.Tool.Name, toolsetName).Set(1)

	logging.Info("Registered tool: %s", tool.Tool.Name)
	return nil
}

// ServeStdio serves MCP over the given streams until in is exhausted or ctx
// is cancelled.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	logging.Info("Starting MCP server in stdio mode")
	return server.NewStdioServer(s.server).Listen(ctx, in, out)
}

// ServeSse starts the MCP server in SSE mode
func (s *Server) ServeSse(baseURL string, httpServer *http.Server) *server.SSEServer {
	logging.Info("Starting MCP server in SSE mode")

	options := make([]server.SSEOption, 0)
	options = append(options, server.WithHTTPServer(httpServer), server.WithSSEContextFunc(contextFunc))

	if baseURL != "" {
		options = append(options, server.WithBaseURL(baseURL))
	}

	return server.NewSSEServer(s.server, options...)
}

// ServeHTTP starts the MCP server in HTTP mode
func (s *Server) ServeHTTP(httpServer *http.Server) *server.StreamableHTTPServer {
	logging.Info("Starting MCP server in HTTP mode")

	options := []server.StreamableHTTPOption{
		server.WithHTTPContextFunc(contextFunc),
		server.WithStreamableHTTPServer(httpServer),
		server.WithStateLess(true),
	}

	return server.NewStreamableHTTPServer(s.server, options...)
}

// GetEnabledTools returns the list of enabled tools
func (s *Server) GetEnabledTools() []string {
	return s.enabledTools
}

// MCPServer exposes the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.server
}

// IsHealthy reports whether the Kubernetes client could be built.
func (s *Server) IsHealthy() bool {
	return s.querier.Available()
}

// Close cleans up the server resources
func (s *Server) Close() {
	logging.Info("Closing MCP server")
	// Nothing to clean up for now
}

// NewTextResult creates a standardized text result for tool responses
func NewTextResult(content string, err error) *mcp.CallToolResult {
	if err != nil {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				mcp.TextContent{
					Type: "text",
					Text: err.Error(),
				},
			},
		}
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: content,
			},
		},
	}
}
