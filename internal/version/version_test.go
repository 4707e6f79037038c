package version

import (
	"runtime/debug"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIsDevelopment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		version string
		want    bool
	}{
		{name: "devel", version: "devel", want: true},
		{name: "unknown", version: "unknown", want: true},
		{name: "empty", version: "", want: true},
		{name: "dirty", version: "v1.2.0-dirty", want: true},
		{name: "pseudo version", version: "v0.0.0-0.20250101120000-abcdef123456", want: true},
		{name: "release", version: "v1.2.0", want: false},
		{name: "release without prefix", version: "1.0.0", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsDevelopment(tt.version); got != tt.want {
				t.Errorf("IsDevelopment(%q) = %v, want %v", tt.version, got, tt.want)
			}
		})
	}
}

func TestFromBuildInfo(t *testing.T) {
	t.Parallel()

	bi := &debug.BuildInfo{
		GoVersion: "go1.25.1",
		Main:      debug.Module{Version: "v1.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	tests := []struct {
		name string
		base Info
		want Info
	}{
		{
			name: "module version fills devel",
			base: Info{Version: versionDevel},
			want: Info{Version: "v1.4.0", Revision: "0123456789abcdef", Modified: true, GoVersion: "go1.25.1"},
		},
		{
			name: "ldflags version kept",
			base: Info{Version: "v2.0.0"},
			want: Info{Version: "v2.0.0", Revision: "0123456789abcdef", Modified: true, GoVersion: "go1.25.1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, fromBuildInfo(tt.base, bi)); diff != "" {
				t.Errorf("fromBuildInfo() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInfoString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		info Info
		want string
	}{
		{
			name: "release",
			info: Info{Version: "v1.4.0", Revision: "0123456789abcdef", GoVersion: "go1.25.1"},
			want: "v1.4.0 (0123456, go1.25.1)",
		},
		{
			name: "dirty tree",
			info: Info{Version: "v1.4.0", Revision: "abc", Modified: true, GoVersion: "go1.25.1"},
			want: "v1.4.0 (abc-dirty, go1.25.1) development build",
		},
		{
			name: "no vcs",
			info: Info{Version: "devel", GoVersion: "go1.25.1"},
			want: "devel (go1.25.1) development build",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.info.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	if got := Get(); got == "" {
		t.Error("Get() returned an empty version")
	}
}
