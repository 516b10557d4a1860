package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"setlint/internal/diag"
	"setlint/internal/source"
)

type prettyStyles struct {
	err, warn, info *color.Color
	code, path      *color.Color
	gutter, caret   *color.Color
	note, fix       *color.Color
	added, removed  *color.Color
}

func newPrettyStyles(enabled bool) prettyStyles {
	s := prettyStyles{
		err:     color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		info:    color.New(color.FgCyan, color.Bold),
		code:    color.New(color.Bold),
		path:    color.New(color.Bold),
		gutter:  color.New(color.FgBlue),
		caret:   color.New(color.FgGreen, color.Bold),
		note:    color.New(color.FgCyan),
		fix:     color.New(color.FgMagenta),
		added:   color.New(color.FgGreen),
		removed: color.New(color.FgRed),
	}
	for _, c := range []*color.Color{s.err, s.warn, s.info, s.code, s.path, s.gutter, s.caret, s.note, s.fix, s.added, s.removed} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

func (s prettyStyles) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return s.err
	case diag.SevWarning:
		return s.warn
	default:
		return s.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := prettyPrinter{w: w, fs: fs, opts: opts, st: newPrettyStyles(opts.Color)}
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		p.diagnostic(d)
	}
}

type prettyPrinter struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
	st   prettyStyles
}

func (p *prettyPrinter) location(sp source.Span) string {
	file := p.fs.Get(sp.File)
	if file == nil {
		return "<unknown>"
	}
	pos := file.Position(sp.Start)
	return fmt.Sprintf("%s:%d:%d", displayPath(p.fs, file, p.opts.PathMode), pos.Line, pos.Col)
}

func (p *prettyPrinter) diagnostic(d diag.Diagnostic) {
	fmt.Fprintf(p.w, "%s: %s %s: %s\n",
		p.st.path.Sprint(p.location(d.Primary)),
		p.st.severity(d.Severity).Sprint(d.Severity.String()),
		p.st.code.Sprint(d.Code.ID()),
		d.Message)
	p.snippet(d.Primary)

	if p.opts.ShowNotes {
		for _, note := range d.Notes {
			fmt.Fprintf(p.w, "  %s %s: %s\n", p.st.note.Sprint("note:"), p.location(note.Span), note.Msg)
		}
	}
	if p.opts.ShowFixes {
		p.fixes(d.Fixes)
	}
}

// snippet prints the lines of sp (plus Context lines around) with a caret
// underline below the first line of the span.
func (p *prettyPrinter) snippet(sp source.Span) {
	file := p.fs.Get(sp.File)
	if file == nil || len(file.Content) == 0 {
		return
	}
	start := file.Position(sp.Start)
	end := file.Position(sp.End)
	ctx := uint32(max(p.opts.Context, 0))
	first := start.Line - min(ctx, start.Line-1)
	last := end.Line + ctx
	if total := uint32(len(file.LineIdx) + 1); last > total { // #nosec G115 -- line count fits, file size is checked on load
		last = total
	}
	gutter := len(strconv.FormatUint(uint64(last), 10))

	for line := first; line <= last; line++ {
		text := file.GetLine(line)
		if line > start.Line && line > end.Line {
			// контекст после спана печатаем только если строка не пустая
			if strings.TrimSpace(text) == "" {
				break
			}
		}
		fmt.Fprintf(p.w, "%s %s\n", p.st.gutter.Sprintf("%*d |", gutter, line), p.clip(expandTabs(text)))
		if line != start.Line {
			continue
		}
		from := min(int(start.Col-1), len(text))
		to := len(text)
		if end.Line == start.Line {
			to = max(min(int(end.Col-1), len(text)), from)
		}
		prefix := expandTabs(text[:from])
		width := max(runewidth.StringWidth(expandTabs(text[from:to])), 1)
		underline := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(p.w, "%s %s%s\n",
			p.st.gutter.Sprintf("%*s |", gutter, ""),
			strings.Repeat(" ", runewidth.StringWidth(prefix)),
			p.st.caret.Sprint(underline))
	}
}

func (p *prettyPrinter) clip(s string) string {
	if p.opts.Width == 0 {
		return s
	}
	return runewidth.Truncate(s, int(p.opts.Width), "…")
}

func (p *prettyPrinter) fixes(fixes []*diag.Fix) {
	ctx := diag.FixBuildContext{FileSet: p.fs}
	for i, f := range fixes {
		resolved, err := f.Resolve(ctx)
		if err != nil {
			fmt.Fprintf(p.w, "  %s %s (build error: %v)\n", p.st.fix.Sprintf("fix #%d:", i+1), f.Title, err)
			continue
		}
		meta := []string{resolved.Applicability.String()}
		if resolved.IsPreferred {
			meta = append(meta, "preferred")
		}
		if resolved.ID != "" {
			meta = append(meta, "id="+resolved.ID)
		}
		fmt.Fprintf(p.w, "  %s %s [%s]\n", p.st.fix.Sprintf("fix #%d:", i+1), resolved.Title, strings.Join(meta, ", "))
		for _, edit := range resolved.Edits {
			fmt.Fprintf(p.w, "    - %s apply=%q\n", p.location(edit.Span), edit.NewText)
			if !p.opts.ShowPreview {
				continue
			}
			preview, err := buildFixEditPreview(p.fs, edit)
			if err != nil {
				continue
			}
			fmt.Fprintln(p.w, "    preview:")
			for _, line := range preview.before {
				fmt.Fprintf(p.w, "      %s\n", p.st.removed.Sprint("- "+line))
			}
			for _, line := range preview.after {
				fmt.Fprintf(p.w, "      %s\n", p.st.added.Sprint("+ "+line))
			}
		}
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
