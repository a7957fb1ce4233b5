// Package buildinfo holds release metadata set at link time, e.g.
//
//	go build -ldflags "-X github.com/aidanlsb/rsnote/internal/buildinfo.Version=v1.0.0"
package buildinfo

// Empty for local and dev builds.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
