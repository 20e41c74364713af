package paramutil

import "fmt"

// ExtractString extracts a required string parameter. Only presence and type
// are checked; an empty string is returned as-is.
func ExtractString(params map[string]interface{}, key string) (string, error) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return "", fmt.Errorf("%w: %s", ErrMissingParameter, key)
	}
	v, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidParameter, key, raw)
	}
	return v, nil
}

// ExtractOptionalString extracts an optional string parameter.
// Returns empty string if the parameter is missing or not a string.
func ExtractOptionalString(params map[string]interface{}, key string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}

// ExtractOptionalStringWithDefault extracts an optional string parameter with a default value.
// Returns defaultValue if the parameter is missing or empty.
func ExtractOptionalStringWithDefault(params map[string]interface{}, key, defaultValue string) string {
	if v, ok := params[key].(string); ok && v != "" {
		return v
	}
	return defaultValue
}

// ExtractBool extracts a boolean parameter with a default value
func ExtractBool(params map[string]interface{}, key string, defaultValue bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return defaultValue
}

// ExtractFormat extracts the format parameter with "json" as default.
func ExtractFormat(params map[string]interface{}) string {
	return ExtractOptionalStringWithDefault(params, ParamFormat, FormatJSON)
}

// ValidateFormat validates that the format is one of the supported formats
func ValidateFormat(format string) error {
	switch format {
	case FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("%w: %s (supported: json, yaml)", ErrInvalidFormat, format)
	}
}

// ExtractAndValidateFormat extracts format parameter and validates it.
func ExtractAndValidateFormat(params map[string]interface{}) (string, error) {
	format := ExtractFormat(params)
	if err := ValidateFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

// BoolPtr returns a pointer to b
func BoolPtr(b bool) *bool {
	return &b
}
