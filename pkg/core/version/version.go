// ============================================================================
// mDW Rechner - Taschenrechner
// ============================================================================
//
// Package:     version
// Description: Central version management
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package version

// Version constants
const (
	// Application version
	App = "1.0.0"

	// Wire protocol of the remote calculator
	Protocol = "1"
)

// Set at build time via -ldflags
var (
	GitCommit = "development"
	BuildDate = "unknown"
)

// Component versions reported by health checks and the version command
var components = map[string]string{
	"engine": "1.0.0",
	"tui":    "1.0.0",
	"remote": "1.0.0",
}

// ComponentVersion returns the version for a component name
func ComponentVersion(name string) string {
	if v, ok := components[name]; ok {
		return v
	}
	return App
}
