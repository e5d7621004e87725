package edunet

import (
	"fmt"
	"runtime/debug"
	"strings"
)

const release = "v0.1.0"

// BuildInfo describes the binary as recorded by the Go toolchain.
type BuildInfo struct {
	Release   string
	Revision  string
	CommitAt  string
	Dirty     bool
	GoVersion string
}

func ReadBuildInfo() BuildInfo {
	b := BuildInfo{Release: release}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}

	b.GoVersion = info.GoVersion
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			b.Revision = setting.Value
		case "vcs.time":
			b.CommitAt = setting.Value
		case "vcs.modified":
			b.Dirty = setting.Value == "true"
		}
	}
	return b
}

func (b BuildInfo) String() string {
	var sb strings.Builder
	sb.WriteString(b.Release)

	if b.Revision != "" {
		fmt.Fprintf(&sb, " git:%s", b.Revision)
		if b.Dirty {
			sb.WriteString("-dirty")
		}
	}
	if b.CommitAt != "" {
		fmt.Fprintf(&sb, ", at %s", b.CommitAt)
	}
	if b.GoVersion != "" {
		fmt.Fprintf(&sb, " (%s)", b.GoVersion)
	}
	return sb.String()
}

func Version() string {
	return ReadBuildInfo().String()
}
