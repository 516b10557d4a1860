package ui

import (
	"errors"
	"strings"
	"testing"

	"setlint/internal/driver"
)

func TestApplyEventCountsFinishedFiles(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("checking", []string{"a.py", "b.py", "c.py"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.py", Stage: driver.StageParse, Status: driver.StatusWorking})
	if m.items[0].state != stateParsing || m.finished != 0 {
		t.Fatalf("after parse: %+v finished=%d", m.items[0], m.finished)
	}
	m.applyEvent(driver.Event{File: "a.py", Stage: driver.StageLint, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "a.py", Stage: driver.StageLint, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.py", Stage: driver.StageCache, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "c.py", Stage: driver.StageLoad, Status: driver.StatusError, Err: errors.New("gone")})
	m.applyEvent(driver.Event{File: "unknown.py", Stage: driver.StageLint, Status: driver.StatusDone})

	if m.finished != 3 {
		t.Errorf("finished = %d, want 3", m.finished)
	}
	if m.items[1].state != stateCached || m.items[2].state != stateError {
		t.Errorf("states = %s, %s", m.items[1].state, m.items[2].state)
	}
	if view := m.View(); !strings.Contains(view, "(3/3)") {
		t.Errorf("view lacks counter:\n%s", view)
	}
}

func TestVisibleRowsCollapsesLongLists(t *testing.T) {
	files := make([]string, 20)
	for i := range files {
		files[i] = strings.Repeat("x", i+1) + ".py"
	}
	m := NewProgressModel("checking", files, nil).(*progressModel)
	m.applyEvent(driver.Event{File: files[19], Stage: driver.StageLint, Status: driver.StatusWorking})

	rows := m.visibleRows()
	if len(rows) != maxRows {
		t.Fatalf("rows = %d, want %d", len(rows), maxRows)
	}
	if rows[0].path != files[19] {
		t.Errorf("active file not listed first: %s", rows[0].path)
	}
	if view := m.View(); !strings.Contains(view, "… 8 more") {
		t.Errorf("view lacks overflow line:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.py", 20, "short.py"},
		{"very/long/path/module.py", 10, "very..."},
		{"abcdef", 2, "ab"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
