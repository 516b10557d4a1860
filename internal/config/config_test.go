package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"setlint/internal/diag"
)

func writeFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), `
[lint]
select = ["B033"]
max-diagnostics = 5

[output]
format = "JSON"
`)
	cfg, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings %v", warnings)
	}
	if !slices.Equal(cfg.Lint.Select, []string{"B033"}) || cfg.Lint.MaxDiagnostics != 5 {
		t.Errorf("lint section not decoded: %+v", cfg.Lint)
	}
	if cfg.Output.Format != "json" || cfg.Output.PathMode != "auto" {
		t.Errorf("output section = %+v", cfg.Output)
	}
	if !slices.Equal(cfg.Lint.Exclude, Default().Lint.Exclude) {
		t.Errorf("exclude default lost: %v", cfg.Lint.Exclude)
	}
}

func TestLoadUnknownKeys(t *testing.T) {
	path := writeFile(t, t.TempDir(), `
[lint]
selct = ["B033"]

[extra]
x = 1
`)
	_, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	joined := ""
	for _, w := range warnings {
		if w.Code != diag.CfgUnknownKey {
			t.Errorf("unexpected code %v", w.Code)
		}
		joined += w.String() + "\n"
	}
	for _, want := range []string{"CFG5001", `"lint.selct"`, `"extra`} {
		if !strings.Contains(joined, want) {
			t.Errorf("warnings missing %s:\n%s", want, joined)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		is      error
	}{
		{name: "bad format", content: "[output]\nformat = \"xml\"\n", is: ErrInvalidFormat},
		{name: "bad path mode", content: "[output]\npath-mode = \"upside\"\n", is: ErrInvalidPathMode},
		{name: "broken toml", content: "[lint\n"},
		{name: "negative max", content: "[lint]\nmax-diagnostics = -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.content)
			_, _, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("error %v is not %v", err, tt.is)
			}
		})
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeFile(t, root, "")
	nested := filepath.Join(root, "pkg", "sub")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(nested, "mod.py")
	if err := os.WriteFile(target, []byte("x = 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, start := range []string{nested, target} {
		got, ok, err := Find(start)
		if err != nil || !ok {
			t.Fatalf("Find(%s) = %v, %v", start, ok, err)
		}
		if got != want {
			t.Errorf("Find(%s) = %s, want %s", start, got, want)
		}
	}
}

func TestDiscoverWithoutFile(t *testing.T) {
	cfg, path, warnings, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if path != "" || len(warnings) != 0 {
		t.Skipf("a %s above the temp dir was picked up: %s", FileName, path)
	}
	if cfg.Output.Format != "pretty" || cfg.Lint.MaxDiagnostics != 100 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteDefault(dir, false)
	if err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}
	cfg, warnings, err := Load(path)
	if err != nil || len(warnings) != 0 {
		t.Fatalf("Load(default) = %v, %v", warnings, err)
	}
	def := Default()
	if cfg.Output != def.Output || cfg.Lint.MaxDiagnostics != def.Lint.MaxDiagnostics ||
		!slices.Equal(cfg.Lint.Exclude, def.Lint.Exclude) {
		t.Errorf("round trip changed config: %+v", cfg)
	}

	if _, err := WriteDefault(dir, false); !errors.Is(err, ErrExists) {
		t.Errorf("second write: %v, want ErrExists", err)
	}
	if _, err := WriteDefault(dir, true); err != nil {
		t.Errorf("forced write: %v", err)
	}
}

func TestCheckRules(t *testing.T) {
	cfg := Default()
	cfg.Lint.Select = []string{"B033", "X999"}
	cfg.Lint.Ignore = []string{"Y1"}
	warnings := cfg.CheckRules(func(id string) bool { return id == "B033" })
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", warnings)
	}
	if warnings[0].Code != diag.CfgUnknownRule || !strings.Contains(warnings[0].Msg, "X999") {
		t.Errorf("unexpected warning %v", warnings[0])
	}
}

func TestExcluded(t *testing.T) {
	cfg := Default()
	cfg.Lint.Exclude = []string{".venv", "build/", "*_pb2.py"}
	tests := map[string]bool{
		".venv":             true,
		".venv/lib/site.py": true,
		"build/out.py":      true,
		"builder/out.py":    false,
		"proto/api_pb2.py":  true,
		"src/app.py":        false,
		".":                 false,
	}
	for rel, want := range tests {
		if got := cfg.Excluded(rel); got != want {
			t.Errorf("Excluded(%q) = %v, want %v", rel, got, want)
		}
	}
}
