package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the server reads,
// e.g. KUBERNETICS_LOG_LEVEL for --log-level.
const EnvPrefix = "KUBERNETICS"

// Flag names shared by the command line and the environment.
const (
	FlagConfig         = "config"
	FlagPort           = "port"
	FlagSSEBaseURL     = "sse-base-url"
	FlagLogLevel       = "log-level"
	FlagKubeconfig     = "kubeconfig"
	FlagContext        = "context"
	FlagRawOutput      = "raw-output"
	FlagDescribeFormat = "describe-format"
	FlagEnabledTools   = "enabled-tools"
	FlagDisabledTools  = "disabled-tools"
)

// ApplyOverrides layers environment variables and explicitly set flags on
// top of cfg. Flags win over the environment; unset flags and variables leave
// the file or default value in place.
func ApplyOverrides(cfg *StaticConfig, flags *pflag.FlagSet) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if v.IsSet(FlagPort) {
		cfg.Port = v.GetInt(FlagPort)
	}
	if v.IsSet(FlagSSEBaseURL) {
		cfg.SSEBaseURL = v.GetString(FlagSSEBaseURL)
	}
	if v.IsSet(FlagLogLevel) {
		cfg.LogLevel = v.GetInt(FlagLogLevel)
	}
	if v.IsSet(FlagKubeconfig) {
		cfg.Kubeconfig = v.GetString(FlagKubeconfig)
	}
	if v.IsSet(FlagContext) {
		cfg.Context = v.GetString(FlagContext)
	}
	if v.IsSet(FlagRawOutput) {
		cfg.RawOutput = v.GetBool(FlagRawOutput)
	}
	if v.IsSet(FlagDescribeFormat) {
		cfg.DescribeFormat = strings.ToLower(v.GetString(FlagDescribeFormat))
	}
	if v.IsSet(FlagEnabledTools) {
		cfg.EnabledTools = splitList(v.GetStringSlice(FlagEnabledTools))
	}
	if v.IsSet(FlagDisabledTools) {
		cfg.DisabledTools = splitList(v.GetStringSlice(FlagDisabledTools))
	}

	return nil
}

// ConfigPath returns the config file named by --config or KUBERNETICS_CONFIG.
func ConfigPath(flags *pflag.FlagSet) string {
	if flags != nil {
		if f := flags.Lookup(FlagConfig); f != nil && f.Changed {
			return f.Value.String()
		}
	}
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	if err := v.BindEnv(FlagConfig); err != nil {
		return ""
	}
	return v.GetString(FlagConfig)
}

// splitList flattens comma separated entries; environment values arrive as a
// single "a,b" element.
func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
