package app

import (
	"fmt"
	"runtime/debug"

	"github.com/heartmarshall/shima-pokedex/internal/adapter/export"
)

// Version, Commit, and BuildTime are set via ldflags by release builds:
//
//	go build -ldflags "-X github.com/heartmarshall/shima-pokedex/internal/app.Version=1.0.0" ./cmd/...
//
// Without ldflags, Commit and BuildTime fall back to the VCS stamp the go
// tool embeds in the binary.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion returns the version string used in startup logs and the
// health endpoint. It also names the snapshot format the binary writes.
func BuildVersion() string {
	info, _ := debug.ReadBuildInfo()
	return formatVersion(Version, Commit, BuildTime, info)
}

func formatVersion(version, commit, built string, info *debug.BuildInfo) string {
	if info != nil {
		var rev, at string
		var dirty bool
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				rev = s.Value
			case "vcs.time":
				at = s.Value
			case "vcs.modified":
				dirty = s.Value == "true"
			}
		}
		if commit == "unknown" && rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			if dirty {
				rev += "-dirty"
			}
			commit = rev
		}
		if built == "unknown" && at != "" {
			built = at
		}
	}
	return fmt.Sprintf("%s (commit: %s, built: %s, snapshot: v%s)", version, commit, built, export.DataVersion)
}
