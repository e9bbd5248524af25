package wordtrie

import (
	"fmt"
	"runtime/debug"
)

// VersionInfo returns human-readable version information in a format suitable
// for concatenation with other messages.
func VersionInfo() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "(version info unavailable)"
	}
	return versionFromBuildInfo(bi)
}

func versionFromBuildInfo(bi *debug.BuildInfo) string {
	var rev, commitTime string
	dirty := true
	for _, b := range bi.Settings {
		switch b.Key {
		case "vcs.modified":
			dirty = b.Value != "false"
		case "vcs.revision":
			rev = b.Value
		case "vcs.time":
			commitTime = b.Value
		}
	}

	if rev == "" {
		if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			return fmt.Sprintf("%s using %s", bi.Main.Version, bi.GoVersion)
		}
		return "(version info unavailable)"
	}
	if dirty {
		commitTime = "dirty"
	}
	return fmt.Sprintf("built from commit %.8s (%s) using %s", rev, commitTime, bi.GoVersion)
}
