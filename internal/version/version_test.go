package version

import (
	"testing"
)

func TestInfo(t *testing.T) {
	origVersion, origBuild, origCommit := Version, BuildTime, GitCommit
	defer func() { Version, BuildTime, GitCommit = origVersion, origBuild, origCommit }()

	tests := []struct {
		version   string
		buildTime string
		commit    string
		expected  string
	}{
		{"dev", "unknown", "unknown", "dev (development build)"},
		{"v1.2.0", "not-a-time", "abc", "v1.2.0 (built not-a-time)"},
		{"v1.2.0", "2026-03-01T10:00:00Z", "0123456789abcdef", "v1.2.0 (built 2026-03-01 10:00:00 UTC, commit 01234567)"},
		{"v1.2.0", "2026-03-01T10:00:00Z", "abc", "v1.2.0 (built 2026-03-01 10:00:00 UTC, commit abc)"},
	}

	for _, tt := range tests {
		Version, BuildTime, GitCommit = tt.version, tt.buildTime, tt.commit
		if got := Info(); got != tt.expected {
			t.Errorf("Info() = %q; want %q", got, tt.expected)
		}
	}
}
