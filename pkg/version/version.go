// pkg/version/version.go
// Package version provides version metadata for the flow framework. The
// framework version is what fixture manifests record as project_version.
package version

import (
	"fmt"
	"time"

	"github.com/Masterminds/semver/v3"
)

// These variables are typically injected at build time using -ldflags
var (
	// Version holds the current version of flow.
	Version = "0.1.0"
	// Commit holds the current version commit of flow.
	Commit = "none"
	// BuildDate holds the build date of flow.
	BuildDate = "unknown"
	// StartDate holds the start date of the process.
	StartDate = time.Now()
)

// Struct returns version information in a structured format.
type Struct struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
}

// Info returns a formatted version string.
func Info() string {
	return fmt.Sprintf("flow %s (commit: %s, date: %s)", Version, Commit, BuildDate)
}

// Get returns version information as a Struct.
func Get() Struct {
	return Struct{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
	}
}

// Framework returns the version written into new project manifests. Builds
// stamped with a non-semver Version (for example "dev") report 0.0.0.
func Framework() string {
	v, err := semver.NewVersion(Version)
	if err != nil {
		return "0.0.0"
	}
	return v.String()
}
