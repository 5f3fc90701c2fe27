// Package version reports which rs2ts build produced a set of generated
// declarations. `rs2ts version --json` prints Info for bug reports.
package version

import (
	"fmt"
	"runtime"
)

// Build stamps, overridden by the release build:
//
//	go build -ldflags "-X github.com/teranos/rs2ts/version.Version=v0.3.0 \
//	  -X github.com/teranos/rs2ts/version.CommitHash=$(git rev-parse HEAD)"
var (
	// CommitHash is the rs2ts commit the binary was built from
	CommitHash = "dev"

	// BuildTime is when the release build ran; "unknown" otherwise
	BuildTime = "unknown"

	// Version is the release tag; untagged builds stay "dev"
	Version = "dev"
)

// Info is the build stamp plus the toolchain and platform it ran on
type Info struct {
	CommitHash string `json:"commit_hash" yaml:"commit_hash"`
	BuildTime  string `json:"build_time" yaml:"build_time"`
	Version    string `json:"version" yaml:"version"`
	GoVersion  string `json:"go_version" yaml:"go_version"`
	Platform   string `json:"platform" yaml:"platform"`
}

// Get collects Info for the running binary
func Get() Info {
	return Info{
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		Version:    Version,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String is the one-line form printed by rs2ts version
func (i Info) String() string {
	if i.Version != "dev" {
		return fmt.Sprintf("rs2ts %s (commit %s, built %s)", i.Version, i.CommitHash, i.BuildTime)
	}
	return fmt.Sprintf("rs2ts dev (commit %s, built %s)", i.CommitHash, i.BuildTime)
}

// Short is the abbreviated commit logged with each run
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}
