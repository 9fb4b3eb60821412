// Package version provides information about the build version of the service.
package version

import "runtime"

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

// Info returns the build information. version, commit and date are set at build time:
//
//	-ldflags "-X 'potholes/internal/core/version.version=v0.1.0' -X 'potholes/internal/core/version.commit=abcd'"
func Info() BuildInfo {
	return BuildInfo{
		Service: "potholes-api",
		Version: version,
		Commit:  commit,
		Date:    date,
		Go:      runtime.Version(),
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
