package version

import (
	"strings"
	"testing"
)

func TestVersionHasDefault(t *testing.T) {
	if Version == "" {
		t.Fatal("Version must have a default value")
	}
	if !strings.Contains(Version, ".") {
		t.Fatalf("Version %q does not look semantic", Version)
	}
}

func TestBuildMetadataOverridable(t *testing.T) {
	origCommit, origDate := GitCommit, BuildDate
	defer func() {
		GitCommit, BuildDate = origCommit, origDate
	}()

	GitCommit = "abc123def456"
	BuildDate = "2026-01-15T10:30:00Z"
	if GitCommit != "abc123def456" || BuildDate != "2026-01-15T10:30:00Z" {
		t.Fatalf("override failed: commit=%q date=%q", GitCommit, BuildDate)
	}
}
