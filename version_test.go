package edunet_test

import (
	"testing"

	"github.com/davidkroell/edunet"
	"github.com/stretchr/testify/assert"
)

func TestBuildInfo_String(t *testing.T) {
	tests := map[string]struct {
		info edunet.BuildInfo
		want string
	}{
		"ReleaseOnly": {
			info: edunet.BuildInfo{Release: "v0.1.0"},
			want: "v0.1.0",
		},
		"Clean": {
			info: edunet.BuildInfo{Release: "v0.1.0", Revision: "abc123", CommitAt: "2024-01-01T00:00:00Z", GoVersion: "go1.24.0"},
			want: "v0.1.0 git:abc123, at 2024-01-01T00:00:00Z (go1.24.0)",
		},
		"Dirty": {
			info: edunet.BuildInfo{Release: "v0.1.0", Revision: "abc123", Dirty: true},
			want: "v0.1.0 git:abc123-dirty",
		},
	}

	for name, v := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, v.want, v.info.String())
		})
	}
}

func TestVersion(t *testing.T) {
	assert.Contains(t, edunet.Version(), "v0.1.0")
}
