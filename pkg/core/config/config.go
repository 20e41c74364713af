package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/futuretea/kubernetics-mcp-server/pkg/output"
)

// Describe output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StaticConfig represents the static configuration for the Kubernetics MCP Server
type StaticConfig struct {
	// Server configuration
	Port       int    `yaml:"port"`
	SSEBaseURL string `yaml:"sse_base_url"`

	// Logging configuration
	LogLevel int `yaml:"log_level"`

	// Kubernetes configuration. Empty values use the default kubeconfig
	// loading chain, then the in-cluster service account.
	Kubeconfig string `yaml:"kubeconfig"`
	Context    string `yaml:"context"`

	// Output configuration
	RawOutput      bool   `yaml:"raw_output"`
	DescribeFormat string `yaml:"describe_format"`

	// Tool configuration
	EnabledTools  []string `yaml:"enabled_tools"`
	DisabledTools []string `yaml:"disabled_tools"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *StaticConfig {
	return &StaticConfig{
		Port:           0, // 0 means stdio mode
		LogLevel:       0,
		DescribeFormat: FormatJSON,
	}
}

// Validate validates the configuration
func (c *StaticConfig) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 0 and 65535, got %d", c.Port)
	}

	if c.LogLevel < 0 || c.LogLevel > 9 {
		return fmt.Errorf("log_level must be between 0 and 9, got %d", c.LogLevel)
	}

	if !output.IsValidFormat(c.DescribeFormat) {
		return fmt.Errorf("describe_format must be one of: json, yaml, got %s", c.DescribeFormat)
	}

	if c.SSEBaseURL != "" && !strings.HasPrefix(c.SSEBaseURL, "http://") && !strings.HasPrefix(c.SSEBaseURL, "https://") {
		return fmt.Errorf("sse_base_url must start with http:// or https://, got %s", c.SSEBaseURL)
	}

	for _, name := range c.EnabledTools {
		for _, disabled := range c.DisabledTools {
			if name == disabled {
				return fmt.Errorf("tool %s is both enabled and disabled", name)
			}
		}
	}

	return nil
}

// LoadConfig loads configuration from a YAML file on top of the defaults
func LoadConfig(configPath string) (*StaticConfig, error) {
	config := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// IsStdio reports whether the server talks MCP over stdin/stdout
func (c *StaticConfig) IsStdio() bool {
	return c.Port == 0
}

// GetPortString returns the listen address for HTTP mode, empty in stdio mode
func (c *StaticConfig) GetPortString() string {
	if c.Port == 0 {
		return ""
	}
	return fmt.Sprintf(":%d", c.Port)
}
