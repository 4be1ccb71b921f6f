// Package version carries build metadata injected with -ldflags "-X".
package version

import (
	"runtime"
	"runtime/debug"
)

var (
	// Version is the release tag.
	Version = "dev"
	// Commit is the source revision.
	Commit = ""
	// BuildDate is the build timestamp.
	BuildDate = ""
)

const unknown = "unknown"

// Info is the build metadata of the running binary.
type Info struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	Platform  string
}

// Get returns the injected metadata. A missing commit or date falls back to the VCS
// stamp of the Go toolchain, then to "unknown".
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.Commit == "":
				info.Commit = s.Value
			case s.Key == "vcs.time" && info.BuildDate == "":
				info.BuildDate = s.Value
			}
		}
	}
	if info.Commit == "" {
		info.Commit = unknown
	}
	if info.BuildDate == "" {
		info.BuildDate = unknown
	}
	return info
}

// ShortCommit trims a full revision to 12 characters.
func (i Info) ShortCommit() string {
	if len(i.Commit) > 12 {
		return i.Commit[:12]
	}
	return i.Commit
}
