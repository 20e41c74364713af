// Package output renders Kubernetes objects as pretty-printed documents.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"sigs.k8s.io/yaml"
)

// Supported document formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formatter provides formatting capabilities for different output formats
type Formatter struct {
	indent string
}

// NewFormatter creates a new formatter with two-space JSON indentation
func NewFormatter() *Formatter {
	return &Formatter{indent: "  "}
}

// IsValidFormat checks if the given format is supported
func IsValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// Format formats data in the specified format; unknown formats fall back to JSON
func (f *Formatter) Format(data interface{}, format string) (string, error) {
	switch strings.ToLower(format) {
	case FormatYAML:
		return f.FormatYAML(data)
	default:
		return f.FormatJSON(data)
	}
}

// FormatYAML formats data as YAML. Field names follow the json tags of the
// Kubernetes types, so the output matches kubectl -o yaml.
func (f *Formatter) FormatYAML(data interface{}) (string, error) {
	yamlBytes, err := yaml.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return string(yamlBytes), nil
}

// FormatJSON formats data as indented JSON
func (f *Formatter) FormatJSON(data interface{}) (string, error) {
	jsonBytes, err := json.MarshalIndent(data, "", f.indent)
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(jsonBytes), nil
}

// FormatCompactJSON formats data as single-line JSON
func (f *Formatter) FormatCompactJSON(data interface{}) (string, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(jsonBytes), nil
}
