package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStreams() IOStreams {
	return IOStreams{
		In:     &bytes.Buffer{},
		Out:    &bytes.Buffer{},
		ErrOut: &bytes.Buffer{},
	}
}

func TestVersionCommand(t *testing.T) {
	streams := newTestStreams()
	cmd := NewMCPServer(streams)

	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Version command failed: %v", err)
	}

	output := streams.Out.(*bytes.Buffer).String()
	for _, want := range []string{"kubernetics-mcp-server", "Version:", "Git commit:", "Built:", "Go version:", "Platform:"} {
		if !strings.Contains(output, want) {
			t.Errorf("Version output should contain %q, got: %s", want, output)
		}
	}
}

func TestHelpCommand(t *testing.T) {
	streams := newTestStreams()
	cmd := NewMCPServer(streams)

	cmd.SetArgs([]string{"--help"})
	_ = cmd.Execute()

	output := streams.Out.(*bytes.Buffer).String()
	for _, want := range []string{"Kubernetics MCP Server", "--port", "--kubeconfig", "--describe-format", "--raw-output", "--config"} {
		if !strings.Contains(output, want) {
			t.Errorf("Help output should contain %q, got: %s", want, output)
		}
	}
}

func TestFlags(t *testing.T) {
	cmd := NewMCPServer(newTestStreams())

	if cmd.Use != "kubernetics-mcp-server" {
		t.Errorf("Expected command use to be 'kubernetics-mcp-server', got: %s", cmd.Use)
	}

	for _, name := range []string{"config", "port", "sse-base-url", "log-level", "kubeconfig", "context", "raw-output", "describe-format", "enabled-tools", "disabled-tools"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("Command should have a %s flag", name)
		}
	}
}

func TestInvalidArguments(t *testing.T) {
	cmd := NewMCPServer(newTestStreams())

	cmd.SetArgs([]string{"--invalid-flag", "value"})
	err := cmd.Execute()
	if err == nil {
		t.Fatal("Command should fail with invalid flag")
	}
	if !strings.Contains(err.Error(), "unknown flag") {
		t.Errorf("Error should mention invalid flag, got: %v", err)
	}
}

func TestInvalidConfigurationFailsBeforeServing(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"log level out of range", []string{"--log-level", "42"}},
		{"unknown describe format", []string{"--describe-format", "xml"}},
		{"negative port", []string{"--port", "-1"}},
		{"missing config file", []string{"--config", "/nonexistent/config.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewMCPServer(newTestStreams())
			cmd.SetArgs(tt.args)
			if err := cmd.Execute(); err == nil {
				t.Error("Expected a configuration error")
			}
		})
	}
}

func TestLoadConfigLayering(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `port: 8080
log_level: 2
describe_format: yaml
kubeconfig: /etc/kube/config
disabled_tools:
  - get-kubernetics-top-nodes
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("KUBERNETICS_LOG_LEVEL", "4")
	t.Setenv("KUBERNETICS_CONTEXT", "staging")
	t.Setenv("KUBERNETICS_PORT", "9090")

	cmd := NewMCPServer(newTestStreams())
	if err := cmd.Flags().Parse([]string{"--config", path, "--port", "7070"}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	// flag beats environment beats file
	if cfg.Port != 7070 {
		t.Errorf("Expected port 7070 from flag, got %d", cfg.Port)
	}
	if cfg.LogLevel != 4 {
		t.Errorf("Expected log level 4 from environment, got %d", cfg.LogLevel)
	}
	if cfg.Context != "staging" {
		t.Errorf("Expected context from environment, got %q", cfg.Context)
	}
	if cfg.DescribeFormat != "yaml" {
		t.Errorf("Expected describe format from file, got %q", cfg.DescribeFormat)
	}
	if cfg.Kubeconfig != "/etc/kube/config" {
		t.Errorf("Expected kubeconfig from file, got %q", cfg.Kubeconfig)
	}
	if len(cfg.DisabledTools) != 1 || cfg.DisabledTools[0] != "get-kubernetics-top-nodes" {
		t.Errorf("Expected disabled tools from file, got %v", cfg.DisabledTools)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cmd := NewMCPServer(newTestStreams())
	if err := cmd.Flags().Parse(nil); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if !cfg.IsStdio() {
		t.Error("Default configuration should run in stdio mode")
	}
	if cfg.DescribeFormat != "json" {
		t.Errorf("Expected default describe format json, got %q", cfg.DescribeFormat)
	}
}
