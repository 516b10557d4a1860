package diagfmt

import (
	"fmt"
	"slices"
)

// PathMode выбирает, как печатать пути файлов.
type PathMode uint8

const (
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

var pathModeNames = [...]string{
	PathModeAuto:     "auto",
	PathModeAbsolute: "absolute",
	PathModeRelative: "relative",
	PathModeBasename: "basename",
}

func (m PathMode) String() string {
	if int(m) < len(pathModeNames) {
		return pathModeNames[m]
	}
	return pathModeNames[PathModeAuto]
}

// ParsePathMode maps a flag or config value onto a PathMode; "" means auto.
func ParsePathMode(s string) (PathMode, error) {
	if s == "" {
		return PathModeAuto, nil
	}
	i := slices.Index(pathModeNames[:], s)
	if i < 0 {
		return PathModeAuto, fmt.Errorf("unknown path mode %q", s)
	}
	return PathMode(i), nil //nolint:gosec // index into a four-element table
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color       bool
	Context     int8
	PathMode    PathMode
	Width       uint8 // максимальная ширина строки, 0 - не ограничено
	ShowNotes   bool
	ShowFixes   bool
	ShowPreview bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
	IncludeFixes     bool
	IncludePreviews  bool
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InformationURI string
	InvocationArgs []string
	// Rules describes every rule that could have produced a result.
	Rules []SarifRule
}

// SarifRule is one entry of the SARIF rules table.
type SarifRule struct {
	ID      string
	Name    string
	Summary string
}
