package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/futuretea/kubernetics-mcp-server/pkg/core/config"
	"github.com/futuretea/kubernetics-mcp-server/pkg/core/logging"
	"github.com/futuretea/kubernetics-mcp-server/pkg/core/metrics"
	"github.com/futuretea/kubernetics-mcp-server/pkg/core/telemetry"
	"github.com/futuretea/kubernetics-mcp-server/pkg/core/version"
	"github.com/futuretea/kubernetics-mcp-server/pkg/server/http"
	"github.com/futuretea/kubernetics-mcp-server/pkg/server/mcp"
)

// IOStreams represents standard input, output, and error streams
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// NewMCPServer creates a new cobra command for the Kubernetics MCP Server
func NewMCPServer(streams IOStreams) *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   version.BinaryName,
		Short: "Kubernetics MCP Server - read-only Kubernetes introspection over the Model Context Protocol",
		Long: `Kubernetics MCP Server is a Model Context Protocol (MCP) server that lets an
AI assistant inspect a Kubernetes cluster: pods, namespaces, events, node metrics
and node taints and labels. It never modifies the cluster.

This server can run in stdio mode for integration with MCP clients or in HTTP mode
for network access.

Configuration is read from a YAML file (--config), then KUBERNETICS_* environment
variables, then command-line flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg, streams)
		},
	}

	// Set output streams for the command
	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.ErrOut)

	flags := cmd.Flags()
	flags.String(config.FlagConfig, "", "Path to a YAML configuration file")
	flags.Int(config.FlagPort, defaults.Port, "Port to listen on for HTTP mode (0 for stdio mode)")
	flags.String(config.FlagSSEBaseURL, defaults.SSEBaseURL, "Public base URL advertised by the SSE transport")
	flags.Int(config.FlagLogLevel, defaults.LogLevel, "Log level (0-9)")
	flags.String(config.FlagKubeconfig, defaults.Kubeconfig, "Path to the kubeconfig file (defaults to $KUBECONFIG, ~/.kube/config, then in-cluster)")
	flags.String(config.FlagContext, defaults.Context, "Kubeconfig context to use")
	flags.Bool(config.FlagRawOutput, defaults.RawOutput, "Return raw JSON for events and node details instead of formatted lines")
	flags.String(config.FlagDescribeFormat, defaults.DescribeFormat, "Default output format for describe-kubernetics-pod (json, yaml)")
	flags.StringSlice(config.FlagEnabledTools, defaults.EnabledTools, "Comma-separated list of tools to enable")
	flags.StringSlice(config.FlagDisabledTools, defaults.DisabledTools, "Comma-separated list of tools to disable")

	// Add version command
	cmd.AddCommand(newVersionCommand(streams))

	return cmd
}

// loadConfig layers defaults, the config file, the environment and flags.
func loadConfig(flags *pflag.FlagSet) (*config.StaticConfig, error) {
	cfg, err := config.LoadConfig(config.ConfigPath(flags))
	if err != nil {
		return nil, err
	}
	if err := config.ApplyOverrides(cfg, flags); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// runServer runs the MCP server with the given configuration
func runServer(ctx context.Context, cfg *config.StaticConfig, streams IOStreams) error {
	logging.Initialize(cfg.LogLevel)

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.LoadConfig(version.Version))
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logging.Warn("Failed to flush traces: %v", err)
		}
	}()

	server, err := mcp.NewServer(mcp.Configuration{StaticConfig: cfg})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	transport := "http"
	if cfg.IsStdio() {
		transport = "stdio"
	}
	metrics.ServerInfo.WithLabelValues(version.BinaryName, version.Version, version.GitCommit, version.BuildDate, transport).Set(1)

	if cfg.IsStdio() {
		fmt.Fprintf(streams.ErrOut, "Starting Kubernetics MCP Server in stdio mode\n")
		fmt.Fprintf(streams.ErrOut, "Enabled tools: %v\n", server.GetEnabledTools())
		return server.ServeStdio(ctx, streams.In, streams.Out)
	}

	fmt.Fprintf(streams.ErrOut, "Starting Kubernetics MCP Server in HTTP mode on port %d\n", cfg.Port)
	fmt.Fprintf(streams.ErrOut, "Enabled tools: %v\n", server.GetEnabledTools())
	return http.Serve(ctx, server, cfg)
}

// newVersionCommand creates the version command
func newVersionCommand(streams IOStreams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(streams.Out, "%s\n", version.GetVersionInfo())
		},
	}

	// Set output streams for the command
	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.ErrOut)

	return cmd
}
