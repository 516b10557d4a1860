package diagfmt

import (
	"cmp"
	"encoding/json"
	"io"
	"slices"

	"setlint/internal/diag"
	"setlint/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// FixEditJSON представляет одно редактирование для JSON
type FixEditJSON struct {
	Location    LocationJSON `json:"location"`
	NewText     string       `json:"new_text"`
	OldText     string       `json:"old_text,omitempty"`
	BeforeLines []string     `json:"before_lines,omitempty"`
	AfterLines  []string     `json:"after_lines,omitempty"`
}

// FixJSON представляет предложение по исправлению для JSON
type FixJSON struct {
	ID            string        `json:"id,omitempty"`
	Title         string        `json:"title"`
	Kind          string        `json:"kind"`
	Applicability string        `json:"applicability"`
	IsPreferred   bool          `json:"is_preferred,omitempty"`
	BuildError    string        `json:"build_error,omitempty"`
	Edits         []FixEditJSON `json:"edits,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
	Fixes    []FixJSON    `json:"fixes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	// Fixable counts diagnostics carrying at least one always-safe fix.
	Fixable int `json:"fixable"`
}

// jsonBuilder переводит диагностики в JSON-структуры для одного FileSet.
type jsonBuilder struct {
	fs   *source.FileSet
	opts JSONOpts
	fctx diag.FixBuildContext
}

func (b jsonBuilder) location(span source.Span) LocationJSON {
	f := b.fs.Get(span.File)
	loc := LocationJSON{
		File:      displayPath(b.fs, f, b.opts.PathMode),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if b.opts.IncludePositions && f != nil {
		start, end := f.Position(span.Start), f.Position(span.End)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

func (b jsonBuilder) notes(notes []diag.Note) []NoteJSON {
	if !b.opts.IncludeNotes || len(notes) == 0 {
		return nil
	}
	out := make([]NoteJSON, 0, len(notes))
	for _, n := range notes {
		out = append(out, NoteJSON{Message: n.Msg, Location: b.location(n.Span)})
	}
	return out
}

// fixOrder: предпочтительные и более безопасные исправления идут первыми.
func fixOrder(a, b *diag.Fix) int {
	if a.IsPreferred != b.IsPreferred {
		if a.IsPreferred {
			return -1
		}
		return 1
	}
	return cmp.Or(
		cmp.Compare(a.Applicability, b.Applicability),
		cmp.Compare(a.Kind, b.Kind),
		cmp.Compare(a.Title, b.Title),
		cmp.Compare(a.ID, b.ID),
	)
}

func (b jsonBuilder) fixes(fixes []*diag.Fix) []FixJSON {
	if !b.opts.IncludeFixes || len(fixes) == 0 {
		return nil
	}
	ordered := slices.Clone(fixes)
	slices.SortStableFunc(ordered, fixOrder)

	out := make([]FixJSON, 0, len(ordered))
	for _, f := range ordered {
		resolved, err := f.Resolve(b.fctx)
		fj := FixJSON{
			ID:            resolved.ID,
			Title:         resolved.Title,
			Kind:          resolved.Kind.String(),
			Applicability: resolved.Applicability.String(),
			IsPreferred:   resolved.IsPreferred,
		}
		if err != nil {
			fj.BuildError = err.Error()
		}
		for _, edit := range resolved.Edits {
			fj.Edits = append(fj.Edits, b.edit(edit))
		}
		out = append(out, fj)
	}
	return out
}

func (b jsonBuilder) edit(edit diag.TextEdit) FixEditJSON {
	ej := FixEditJSON{
		Location: b.location(edit.Span),
		NewText:  edit.NewText,
		OldText:  edit.OldText,
	}
	if !b.opts.IncludePreviews {
		return ej
	}
	// превью необязательно: ошибка построения просто оставляет его пустым
	if preview, err := buildFixEditPreview(b.fs, edit); err == nil {
		ej.BeforeLines = slices.Clone(preview.before)
		ej.AfterLines = slices.Clone(preview.after)
	}
	return ej
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
// opts.Max обрезает вывод, а не bag.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) (DiagnosticsOutput, error) {
	items := bag.Items()
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}

	b := jsonBuilder{fs: fs, opts: opts, fctx: diag.FixBuildContext{FileSet: fs}}
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, len(items))}
	for _, d := range items {
		out.Diagnostics = append(out.Diagnostics, DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: b.location(d.Primary),
			Notes:    b.notes(d.Notes),
			Fixes:    b.fixes(d.Fixes),
		})
		if hasSafeFix(d) {
			out.Fixable++
		}
	}
	out.Count = len(out.Diagnostics)
	return out, nil
}

// JSON пишет {"diagnostics": [...], "count": N, "fixable": M} с отступом.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	output, err := BuildDiagnosticsOutput(bag, fs, opts)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func hasSafeFix(d diag.Diagnostic) bool {
	for _, f := range d.Fixes {
		if f != nil && f.Applicability == diag.FixApplicabilityAlwaysSafe {
			return true
		}
	}
	return false
}
