package diagfmt

import "testing"

func TestParsePathMode(t *testing.T) {
	for _, m := range []PathMode{PathModeAuto, PathModeAbsolute, PathModeRelative, PathModeBasename} {
		got, err := ParsePathMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParsePathMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if got, err := ParsePathMode(""); err != nil || got != PathModeAuto {
		t.Errorf("empty mode = %v, %v", got, err)
	}
	if _, err := ParsePathMode("full"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if PathMode(9).String() != "auto" {
		t.Error("out-of-range mode should print as auto")
	}
}
