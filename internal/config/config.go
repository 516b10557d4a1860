package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"setlint/internal/diag"
)

// FileName is the name of the configuration file looked up by Find.
const FileName = "setlint.toml"

var (
	// ErrInvalidFormat is returned for an unknown [output].format value.
	ErrInvalidFormat = errors.New("invalid output format")
	// ErrInvalidPathMode is returned for an unknown [output].path-mode value.
	ErrInvalidPathMode = errors.New("invalid path mode")
)

// Formats lists accepted [output].format values.
var Formats = []string{"pretty", "short", "json", "sarif"}

var pathModes = []string{"auto", "absolute", "relative", "basename"}

type Lint struct {
	Select         []string `toml:"select"`
	Ignore         []string `toml:"ignore"`
	Exclude        []string `toml:"exclude"`
	MaxDiagnostics int      `toml:"max-diagnostics"`
}

type Output struct {
	Format   string `toml:"format"`
	PathMode string `toml:"path-mode"`
}

// Config is the decoded content of setlint.toml.
type Config struct {
	Lint   Lint   `toml:"lint"`
	Output Output `toml:"output"`
}

// Warning is a non-fatal problem found while loading the file.
type Warning struct {
	Code diag.Code
	Msg  string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code.ID(), w.Msg)
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Lint: Lint{
			Select:         []string{},
			Ignore:         []string{},
			Exclude:        []string{".git", ".venv", "__pycache__"},
			MaxDiagnostics: 100,
		},
		Output: Output{
			Format:   "pretty",
			PathMode: "auto",
		},
	}
}

// Load decodes path on top of Default(). Unknown keys come back as
// warnings; malformed TOML and invalid enum values are errors.
func Load(path string) (Config, []Warning, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	var warnings []Warning
	for _, key := range meta.Undecoded() {
		warnings = append(warnings, Warning{
			Code: diag.CfgUnknownKey,
			Msg:  fmt.Sprintf("%s: unknown key %q", path, key.String()),
		})
	}
	if err := cfg.validate(); err != nil {
		return Config{}, warnings, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, warnings, nil
}

func (c *Config) validate() error {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if !slices.Contains(Formats, c.Output.Format) {
		return fmt.Errorf("%w %q (want one of %s)", ErrInvalidFormat, c.Output.Format, strings.Join(Formats, ", "))
	}
	c.Output.PathMode = strings.ToLower(strings.TrimSpace(c.Output.PathMode))
	if c.Output.PathMode == "" {
		c.Output.PathMode = "auto"
	}
	if !slices.Contains(pathModes, c.Output.PathMode) {
		return fmt.Errorf("%w %q", ErrInvalidPathMode, c.Output.PathMode)
	}
	if c.Lint.MaxDiagnostics < 0 {
		return fmt.Errorf("lint.max-diagnostics must be >= 0, got %d", c.Lint.MaxDiagnostics)
	}
	return nil
}

// CheckRules reports select/ignore entries that known does not recognise.
func (c Config) CheckRules(known func(id string) bool) []Warning {
	var warnings []Warning
	check := func(section string, ids []string) {
		for _, id := range ids {
			if !known(id) {
				warnings = append(warnings, Warning{
					Code: diag.CfgUnknownRule,
					Msg:  fmt.Sprintf("lint.%s: unknown rule %q", section, id),
				})
			}
		}
	}
	check("select", c.Lint.Select)
	check("ignore", c.Lint.Ignore)
	return warnings
}
