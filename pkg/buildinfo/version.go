// Package buildinfo carries the version identity stamped into release
// binaries.
//
// Release builds override the defaults through the linker:
//
//	go build -ldflags "\
//	  -X github.com/delvemap/delvemap/pkg/buildinfo.Version=$(git describe --tags) \
//	  -X github.com/delvemap/delvemap/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/delvemap/delvemap/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// A plain go build reports "dev".
package buildinfo

import "fmt"

// Linker-set build identity. The defaults describe a local build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Template renders the cobra --version output with commit and build date.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
