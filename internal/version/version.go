package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

const (
	versionDevel   = "devel"
	versionUnknown = "unknown"
	shortRevision  = 7
)

// version is set via ldflags at build time. Builds without it fall back to
// the module version recorded by go install.
var version = versionDevel

type Info struct {
	Version   string `json:"version"`
	Revision  string `json:"revision,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
	GoVersion string `json:"go_version"`
}

var (
	once sync.Once
	info Info
)

// Read returns the build metadata of the running binary.
func Read() Info {
	once.Do(func() {
		info = Info{Version: version, GoVersion: runtime.Version()}
		bi, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		info = fromBuildInfo(info, bi)
	})
	return info
}

func Get() string {
	return Read().Version
}

func fromBuildInfo(base Info, bi *debug.BuildInfo) Info {
	out := base
	if out.Version == versionDevel {
		if v := bi.Main.Version; v != "" && v != "("+versionDevel+")" {
			out.Version = v
		}
	}
	if bi.GoVersion != "" {
		out.GoVersion = bi.GoVersion
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Revision = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}
	return out
}

// String renders e.g. "v1.2.0 (abc1234, go1.25.1)", marking dirty trees and
// development builds.
func (i Info) String() string {
	var b strings.Builder
	b.WriteString(i.Version)
	b.WriteString(" (")
	if rev := i.Revision; rev != "" {
		b.WriteString(rev[:min(len(rev), shortRevision)])
		if i.Modified {
			b.WriteString("-dirty")
		}
		b.WriteString(", ")
	}
	b.WriteString(i.GoVersion)
	b.WriteString(")")
	if IsDevelopment(i.Version) || i.Modified {
		b.WriteString(" development build")
	}
	return b.String()
}

// IsDevelopment reports whether v is a local or pseudo-version build rather
// than a tagged release.
func IsDevelopment(v string) bool {
	return v == versionDevel || v == versionUnknown || v == "" ||
		strings.Contains(v, "dirty") ||
		strings.Contains(v, "-0.")
}
