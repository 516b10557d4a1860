package logx

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWriterLevels(t *testing.T) {
	var buf bytes.Buffer
	NewWriter(&buf, false).Debug("hidden")
	NewWriter(&buf, false).Info("shown", "files", 3)
	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("debug record written at info level: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "msg=shown files=3") {
		t.Errorf("info record missing: %s", buf.String())
	}

	buf.Reset()
	NewWriter(&buf, true).Debug("visible")
	if !strings.Contains(buf.String(), "level=DEBUG msg=visible") {
		t.Errorf("verbose logger dropped debug: %s", buf.String())
	}
}

func TestNewWithoutPath(t *testing.T) {
	logger, closeFn := New(Options{})
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("logger without path must discard everything")
	}
	if err := closeFn(); err != nil {
		t.Errorf("close: %v", err)
	}
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setlint.log")
	logger, closeFn := New(Options{Path: path})
	logger.Info("checked", "file", "a.py")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "msg=checked file=a.py") {
		t.Errorf("unexpected log content: %s", data)
	}
}
