package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Port != 0 {
		t.Errorf("Expected Port to be 0, got %d", config.Port)
	}

	if config.LogLevel != 0 {
		t.Errorf("Expected LogLevel to be 0, got %d", config.LogLevel)
	}

	if config.DescribeFormat != FormatJSON {
		t.Errorf("Expected DescribeFormat to be 'json', got '%s'", config.DescribeFormat)
	}

	if config.RawOutput {
		t.Error("Expected RawOutput to be false")
	}

	if !config.IsStdio() {
		t.Error("Expected default config to run in stdio mode")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *StaticConfig
		wantErr bool
	}{
		{
			name:    "valid default config",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name:    "valid port",
			config:  &StaticConfig{Port: 8080, DescribeFormat: "json"},
			wantErr: false,
		},
		{
			name:    "invalid port negative",
			config:  &StaticConfig{Port: -1, DescribeFormat: "json"},
			wantErr: true,
		},
		{
			name:    "invalid port too high",
			config:  &StaticConfig{Port: 65536, DescribeFormat: "json"},
			wantErr: true,
		},
		{
			name:    "invalid log level too high",
			config:  &StaticConfig{LogLevel: 10, DescribeFormat: "json"},
			wantErr: true,
		},
		{
			name:    "invalid log level negative",
			config:  &StaticConfig{LogLevel: -1, DescribeFormat: "json"},
			wantErr: true,
		},
		{
			name:    "yaml describe format",
			config:  &StaticConfig{DescribeFormat: "YAML"},
			wantErr: false,
		},
		{
			name:    "unknown describe format",
			config:  &StaticConfig{DescribeFormat: "table"},
			wantErr: true,
		},
		{
			name:    "empty describe format",
			config:  &StaticConfig{},
			wantErr: true,
		},
		{
			name:    "bad sse base url",
			config:  &StaticConfig{DescribeFormat: "json", SSEBaseURL: "example.com"},
			wantErr: true,
		},
		{
			name: "tool both enabled and disabled",
			config: &StaticConfig{
				DescribeFormat: "json",
				EnabledTools:   []string{"get-kubernetics-namespaces"},
				DisabledTools:  []string{"get-kubernetics-namespaces"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	tempDir := t.TempDir()

	configContent := `port: 8080
log_level: 5
kubeconfig: /tmp/kubeconfig
context: staging
raw_output: true
describe_format: yaml
disabled_tools:
  - get-kubernetics-top-nodes
`
	configPath := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Port != 8080 {
		t.Errorf("Expected Port to be 8080, got %d", config.Port)
	}
	if config.LogLevel != 5 {
		t.Errorf("Expected LogLevel to be 5, got %d", config.LogLevel)
	}
	if config.Kubeconfig != "/tmp/kubeconfig" {
		t.Errorf("Expected Kubeconfig to be '/tmp/kubeconfig', got '%s'", config.Kubeconfig)
	}
	if config.Context != "staging" {
		t.Errorf("Expected Context to be 'staging', got '%s'", config.Context)
	}
	if !config.RawOutput {
		t.Error("Expected RawOutput to be true")
	}
	if config.DescribeFormat != "yaml" {
		t.Errorf("Expected DescribeFormat to be 'yaml', got '%s'", config.DescribeFormat)
	}
	if len(config.DisabledTools) != 1 || config.DisabledTools[0] != "get-kubernetics-top-nodes" {
		t.Errorf("Unexpected DisabledTools: %v", config.DisabledTools)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig with empty path failed: %v", err)
	}
	if config.DescribeFormat != FormatJSON {
		t.Errorf("Expected default DescribeFormat, got '%s'", config.DescribeFormat)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tempDir := t.TempDir()

	if _, err := LoadConfig(filepath.Join(tempDir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}

	invalidPath := filepath.Join(tempDir, "invalid.yaml")
	if err := os.WriteFile(invalidPath, []byte("port: [not a number"), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}
	if _, err := LoadConfig(invalidPath); err == nil {
		t.Error("Expected error for malformed config file")
	}

	outOfRange := filepath.Join(tempDir, "range.yaml")
	if err := os.WriteFile(outOfRange, []byte("port: 70000\n"), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}
	if _, err := LoadConfig(outOfRange); err == nil {
		t.Error("Expected validation error for out-of-range port")
	}
}

func TestGetPortString(t *testing.T) {
	tests := []struct {
		name   string
		config *StaticConfig
		expect string
	}{
		{
			name:   "stdio mode (port 0)",
			config: &StaticConfig{Port: 0},
			expect: "",
		},
		{
			name:   "http mode port 8080",
			config: &StaticConfig{Port: 8080},
			expect: ":8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.GetPortString()
			if result != tt.expect {
				t.Errorf("GetPortString() = %v, want %v", result, tt.expect)
			}
		})
	}
}

func newTestFlags(cfg *StaticConfig) *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String(FlagConfig, "", "")
	flags.Int(FlagPort, cfg.Port, "")
	flags.Int(FlagLogLevel, cfg.LogLevel, "")
	flags.String(FlagKubeconfig, cfg.Kubeconfig, "")
	flags.String(FlagContext, cfg.Context, "")
	flags.Bool(FlagRawOutput, cfg.RawOutput, "")
	flags.String(FlagDescribeFormat, cfg.DescribeFormat, "")
	flags.String(FlagSSEBaseURL, cfg.SSEBaseURL, "")
	flags.StringSlice(FlagEnabledTools, cfg.EnabledTools, "")
	flags.StringSlice(FlagDisabledTools, cfg.DisabledTools, "")
	return flags
}

func TestApplyOverridesEnvironment(t *testing.T) {
	t.Setenv("KUBERNETICS_LOG_LEVEL", "7")
	t.Setenv("KUBERNETICS_RAW_OUTPUT", "true")
	t.Setenv("KUBERNETICS_DISABLED_TOOLS", "get-kubernetics-events,get-kubernetics-top-nodes")

	cfg := DefaultConfig()
	if err := ApplyOverrides(cfg, newTestFlags(cfg)); err != nil {
		t.Fatalf("ApplyOverrides failed: %v", err)
	}

	if cfg.LogLevel != 7 {
		t.Errorf("Expected LogLevel 7 from environment, got %d", cfg.LogLevel)
	}
	if !cfg.RawOutput {
		t.Error("Expected RawOutput from environment")
	}
	if len(cfg.DisabledTools) != 2 || cfg.DisabledTools[1] != "get-kubernetics-top-nodes" {
		t.Errorf("Unexpected DisabledTools from environment: %v", cfg.DisabledTools)
	}
	if cfg.Port != 0 {
		t.Errorf("Port should keep its default, got %d", cfg.Port)
	}
}

func TestApplyOverridesFlagsWinOverEnvironment(t *testing.T) {
	t.Setenv("KUBERNETICS_PORT", "9000")

	cfg := DefaultConfig()
	cfg.Context = "from-file"
	flags := newTestFlags(cfg)
	if err := flags.Parse([]string{"--port", "8081", "--describe-format", "YAML"}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	if err := ApplyOverrides(cfg, flags); err != nil {
		t.Fatalf("ApplyOverrides failed: %v", err)
	}

	if cfg.Port != 8081 {
		t.Errorf("Expected flag port 8081, got %d", cfg.Port)
	}
	if cfg.DescribeFormat != "yaml" {
		t.Errorf("Expected describe format 'yaml', got '%s'", cfg.DescribeFormat)
	}
	if cfg.Context != "from-file" {
		t.Errorf("Unset flag should keep file value, got '%s'", cfg.Context)
	}
}

func TestConfigPath(t *testing.T) {
	cfg := DefaultConfig()

	t.Setenv("KUBERNETICS_CONFIG", "/etc/kubernetics/env.yaml")
	if got := ConfigPath(newTestFlags(cfg)); got != "/etc/kubernetics/env.yaml" {
		t.Errorf("Expected config path from environment, got '%s'", got)
	}

	flags := newTestFlags(cfg)
	if err := flags.Parse([]string{"--config", "/tmp/flag.yaml"}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	if got := ConfigPath(flags); got != "/tmp/flag.yaml" {
		t.Errorf("Expected config path from flag, got '%s'", got)
	}
}
