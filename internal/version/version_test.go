package version

import (
	"strings"
	"testing"
)

func TestVersionStringNonEmpty(t *testing.T) {
	if s := String(); s == "" {
		t.Fatalf("version string is empty")
	}
}

func TestVersionStringIncludesMetadata(t *testing.T) {
	oldCommit, oldDate := Commit, Date
	defer func() { Commit, Date = oldCommit, oldDate }()

	Commit = "abc1234"
	Date = "2025-06-01"
	s := String()
	if !strings.Contains(s, "abc1234") || !strings.Contains(s, "2025-06-01") {
		t.Fatalf("metadata missing from version string: %q", s)
	}
}
