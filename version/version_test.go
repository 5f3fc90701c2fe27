package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBuildInfo(t *testing.T, v, commit, built string) {
	t.Helper()
	oldV, oldC, oldB := Version, CommitHash, BuildTime
	Version, CommitHash, BuildTime = v, commit, built
	t.Cleanup(func() { Version, CommitHash, BuildTime = oldV, oldC, oldB })
}

func TestGet(t *testing.T) {
	withBuildInfo(t, "v0.3.0", "0123456789abcdef", "2026-01-02T03:04:05Z")

	info := Get()
	assert.Equal(t, "v0.3.0", info.Version)
	assert.Equal(t, "0123456789abcdef", info.CommitHash)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestInfoString(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    string
	}{
		{"tagged", "v0.3.0", "rs2ts v0.3.0 (commit abc1234, built today)"},
		{"dev", "dev", "rs2ts dev (commit abc1234, built today)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withBuildInfo(t, tt.version, "abc1234", "today")
			assert.Equal(t, tt.want, Get().String())
		})
	}
}

func TestInfoShort(t *testing.T) {
	withBuildInfo(t, "dev", "0123456789abcdef", "")
	assert.Equal(t, "0123456", Get().Short())

	withBuildInfo(t, "dev", "dev", "")
	assert.Equal(t, "dev", Get().Short())
}
