package paramutil

import "errors"

// Parameter name constants
const (
	ParamNamespace   = "namespace"
	ParamName        = "name"
	ParamClusterName = "clusterName"
	ParamFormat      = "format"
	ParamRawOutput   = "rawOutput"
)

// Format constants
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Error definitions
var (
	ErrMissingParameter = errors.New("missing required parameter")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidFormat    = errors.New("invalid output format")
)
