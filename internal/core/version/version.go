// Package version reports which build of scribe is running
package version

import (
	"runtime"
	"runtime/debug"
)

// Release builds stamp these with
//
//	-ldflags "-X scribe/internal/core/version.tag=v1.2.0 -X scribe/internal/core/version.commit=$(git rev-parse HEAD)"
var (
	service = "scribe-api"
	tag     = "dev"
	commit  = ""
	builtAt = ""
)

// Build describes the running binary
type Build struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuiltAt   string `json:"built_at,omitempty"`
	Dirty     bool   `json:"dirty,omitempty"`
	GoVersion string `json:"go_version"`
}

// Info returns the stamped build. Commit and time fall back to the vcs
// settings the go tool embeds when the binary was not stamped
func Info() Build {
	b := Build{
		Service:   service,
		Version:   tag,
		Commit:    commit,
		BuiltAt:   builtAt,
		GoVersion: runtime.Version(),
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "" {
				b.Commit = s.Value
			}
		case "vcs.time":
			if b.BuiltAt == "" {
				b.BuiltAt = s.Value
			}
		case "vcs.modified":
			b.Dirty = s.Value == "true"
		}
	}
	return b
}
