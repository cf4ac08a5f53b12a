package version

import (
	"strings"
	"testing"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestCurrent_CanBeOverridden(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})

	// как будто собрано с -ldflags
	Version = " 1.2.3 "
	GitCommit = "abc123def456\n"
	BuildDate = "2024-01-15T10:30:00Z"

	info := Current()
	if info.Version != "1.2.3" {
		t.Errorf("Version = %q, want %q", info.Version, "1.2.3")
	}
	if info.GitCommit != "abc123def456" {
		t.Errorf("GitCommit = %q, want %q", info.GitCommit, "abc123def456")
	}
	if info.BuildDate != "2024-01-15T10:30:00Z" {
		t.Errorf("BuildDate = %q", info.BuildDate)
	}
}

func TestCurrent_EmptyVersion(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "  "
	if got := Current().Version; got != "dev" {
		t.Errorf("Version = %q, want dev", got)
	}
}

func TestColored(t *testing.T) {
	tests := []struct {
		in      string
		enabled bool
		plain   bool
	}{
		{"0.1.0-dev", false, true},
		{"0.1.0-dev", true, false},
		{"1.2.3", true, false},
		{"dev", true, true},
		{"1.2", true, true},
	}
	for _, tt := range tests {
		got := Colored(tt.in, tt.enabled)
		if tt.plain {
			if got != tt.in {
				t.Errorf("Colored(%q, %v) = %q, want unchanged", tt.in, tt.enabled, got)
			}
			continue
		}
		if !strings.Contains(got, "\x1b[") {
			t.Errorf("Colored(%q) has no escape codes: %q", tt.in, got)
		}
		if strings.HasSuffix(tt.in, "-dev") && !strings.HasSuffix(got, "-dev") {
			t.Errorf("suffix lost: %q", got)
		}
	}
}
