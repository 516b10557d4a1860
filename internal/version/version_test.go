package version

import (
	"strings"
	"testing"
)

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func TestStringPlain(t *testing.T) {
	withVersion(t, "1.2.3-rc1", "", "")
	if got := String(false); got != "1.2.3-rc1" {
		t.Errorf("String(false) = %q", got)
	}
}

func TestStringColored(t *testing.T) {
	withVersion(t, "1.2.3-rc1", "", "")
	got := String(true)
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-rc1") {
		t.Errorf("String(true) = %q", got)
	}
	withVersion(t, "dev", "", "")
	if got := String(true); got != "dev" {
		t.Errorf("non-semver version coloured: %q", got)
	}
}

func TestDetails(t *testing.T) {
	withVersion(t, "1.2.3", "abc123", "2024-01-15T10:30:00Z")
	want := "setlint 1.2.3\ncommit: abc123\nbuilt:  2024-01-15T10:30:00Z"
	if got := Details(false); got != want {
		t.Errorf("Details = %q, want %q", got, want)
	}
}
