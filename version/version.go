// Package version holds build metadata injected at link time via
// -ldflags, e.g.:
//
//	go build -ldflags "-X github.com/jackzampolin/paperdeck/version.GitRelease=v0.2.0"
package version

import "runtime"

var (
	// GitRelease is the release tag the binary was built from.
	GitRelease = "dev"

	// GitCommit is the commit hash the binary was built from.
	GitCommit = "unknown"

	// GitCommitDate is the commit date of GitCommit.
	GitCommitDate = "unknown"

	// GoInfo is the Go toolchain the binary was built with.
	GoInfo = runtime.Version()
)
