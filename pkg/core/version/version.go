// Package version holds build metadata for the server binary.
package version

import (
	"fmt"
	"runtime"
)

// BinaryName is the name reported to MCP clients and by the version command.
const BinaryName = "kubernetics-mcp-server"

// Set at build time via -ldflags "-X".
var (
	Version   = "1.0.1"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	GoVersion = runtime.Version()
	Platform  = fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
)

// GetVersionInfo returns a multi-line, human-readable version summary
func GetVersionInfo() string {
	return fmt.Sprintf("%s\nVersion: %s\nGit commit: %s\nBuilt: %s\nGo version: %s\nPlatform: %s",
		BinaryName, Version, GitCommit, BuildDate, GoVersion, Platform)
}
