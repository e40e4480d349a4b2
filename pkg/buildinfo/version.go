// Package buildinfo reports the gracetower release a binary was built from.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/gracetower/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/gracetower/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/gracetower/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Binaries from "go install" carry no ldflags; for those the module
// version and VCS stamp embedded by the toolchain fill the gaps.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is the semantic version, e.g. "v1.2.3".
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		fill(info)
	}
}

// fill copies module and VCS details from info into the variables still
// holding their defaults.
func fill(info *debug.BuildInfo) {
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && Commit == "none":
			Commit = s.Value
		case s.Key == "vcs.time" && Date == "unknown":
			Date = s.Value
		}
	}
}

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
