package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"setlint/internal/source"
)

// goldenLine: "severity CODE path:line:col message".
type goldenLine struct {
	sev, code, path string
	line, col       uint32
	msg             string
}

func (l goldenLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.line, l.col, l.msg)
}

func compareGolden(a, b goldenLine) int {
	return cmp.Or(
		cmp.Compare(a.path, b.path),
		cmp.Compare(a.line, b.line),
		cmp.Compare(a.col, b.col),
		cmp.Compare(a.sev, b.sev),
		cmp.Compare(a.code, b.code),
		cmp.Compare(a.msg, b.msg),
	)
}

// FormatGoldenDiagnostics renders one line per diagnostic (and per note when
// includeNotes is set) with paths relative to the file set base. Lines are
// sorted, so the output does not depend on reporting order.
func FormatGoldenDiagnostics(diags []*Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return FormatShortDiagnostics(diags, fs, includeNotes, "relative")
}

// FormatShortDiagnostics is the golden layout with a caller-chosen path mode.
func FormatShortDiagnostics(diags []*Diagnostic, fs *source.FileSet, includeNotes bool, pathMode string) string {
	if fs == nil {
		return ""
	}
	var lines []goldenLine
	add := func(sev string, code Code, span source.Span, msg string) {
		file := fs.Get(span.File)
		if file == nil {
			return
		}
		pos, _ := fs.Resolve(span)
		lines = append(lines, goldenLine{
			sev:  sev,
			code: code.ID(),
			path: slashPath(file.FormatPath(pathMode, fs.BaseDir())),
			line: pos.Line,
			col:  pos.Col,
			msg:  oneLine(msg),
		})
	}
	for _, d := range diags {
		if d == nil {
			continue
		}
		add(severityLabel(d.Severity), d.Code, d.Primary, d.Message)
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			add("note", d.Code, n.Span, n.Msg)
		}
	}
	slices.SortStableFunc(lines, compareGolden)

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return strings.Join(out, "\n")
}

func slashPath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	}
	return "info"
}

// oneLine сворачивает многострочное сообщение в одну строку.
func oneLine(msg string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg))
}
