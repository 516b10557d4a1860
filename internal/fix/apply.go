package fix

import (
	"bytes"
	"cmp"
	"fmt"
	"os"
	"slices"

	"setlint/internal/diag"
	"setlint/internal/source"
)

// pendingFile копит принятые правки одного файла в исходных координатах.
// Правки не пересекаются, поэтому новый текст собирается за один проход.
type pendingFile struct {
	file  *source.File
	edits []diag.TextEdit
}

type applier struct {
	fs      *source.FileSet
	opts    ApplyOptions
	baseDir string
	files   map[source.FileID]*pendingFile
}

func newApplier(fs *source.FileSet, opts ApplyOptions) *applier {
	return &applier{
		fs:      fs,
		opts:    opts,
		baseDir: fs.BaseDir(),
		files:   make(map[source.FileID]*pendingFile),
	}
}

// stage проверяет все правки кандидата и принимает их целиком либо никак.
// Возвращает причину отказа или пустую строку.
func (a *applier) stage(c candidate) string {
	edits := slices.Clone(c.fix.Edits)
	slices.SortStableFunc(edits, compareEdits)

	for i, e := range edits {
		pf, reason := a.pending(e.Span.File)
		if reason != "" {
			return reason
		}
		content := pf.file.Content
		if e.Span.End < e.Span.Start || int(e.Span.End) > len(content) {
			return "edit span out of range"
		}
		if e.OldText != "" && string(content[e.Span.Start:e.Span.End]) != e.OldText {
			return "existing text does not match expected content"
		}
		if slices.ContainsFunc(pf.edits, func(prev diag.TextEdit) bool { return overlaps(prev, e) }) {
			return fmt.Sprintf("conflicts with previously applied edits in %s", pf.file.FormatPath("auto", a.baseDir))
		}
		if i > 0 && edits[i-1].Span.File == e.Span.File && overlaps(edits[i-1], e) {
			return "fix edits overlap"
		}
	}

	for _, e := range edits {
		pf := a.files[e.Span.File]
		pf.edits = append(pf.edits, e)
	}
	return ""
}

func (a *applier) pending(id source.FileID) (*pendingFile, string) {
	if pf, ok := a.files[id]; ok {
		return pf, ""
	}
	file := a.fs.Get(id)
	switch {
	case file == nil:
		return nil, "target file is unknown"
	case file.Flags&source.FileVirtual != 0 && !a.opts.DryRun:
		return nil, "target file is virtual"
	}
	pf := &pendingFile{file: file}
	a.files[id] = pf
	return pf, ""
}

func (a *applier) describe(c candidate) AppliedFix {
	primary := ""
	if file := a.fs.Get(c.diag.Primary.File); file != nil {
		primary = file.FormatPath("auto", a.baseDir)
	}
	return AppliedFix{
		ID:            c.fix.ID,
		Title:         c.fix.Title,
		Code:          c.diag.Code,
		Message:       c.diag.Message,
		Applicability: c.fix.Applicability,
		PrimaryPath:   primary,
		EditCount:     len(c.fix.Edits),
	}
}

// flush собирает новое содержимое файлов и, если это не dry run, пишет их на диск.
func (a *applier) flush() ([]FileChange, error) {
	changes := make([]FileChange, 0, len(a.files))
	for id, pf := range a.files {
		if len(pf.edits) == 0 {
			continue
		}
		changes = append(changes, FileChange{
			FileID:    id,
			Path:      pf.file.FormatPath("relative", a.baseDir),
			EditCount: len(pf.edits),
			Content:   render(pf.file.Content, pf.edits),
		})
	}
	slices.SortFunc(changes, func(x, y FileChange) int { return cmp.Compare(x.Path, y.Path) })

	if a.opts.DryRun {
		return changes, nil
	}
	for i, ch := range changes {
		if err := writeFile(a.files[ch.FileID].file, ch.Content); err != nil {
			return changes[:i], err
		}
		a.opts.logger().Debug("file updated", "path", ch.Path, "edits", ch.EditCount)
	}
	return changes, nil
}

func render(content []byte, edits []diag.TextEdit) []byte {
	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, compareEdits)

	var out bytes.Buffer
	out.Grow(len(content))
	pos := uint32(0)
	for _, e := range sorted {
		out.Write(content[pos:e.Span.Start])
		out.WriteString(e.NewText)
		pos = e.Span.End
	}
	out.Write(content[pos:])
	return out.Bytes()
}

func compareEdits(x, y diag.TextEdit) int {
	return cmp.Or(
		cmp.Compare(x.Span.File, y.Span.File),
		cmp.Compare(x.Span.Start, y.Span.Start),
		cmp.Compare(x.Span.End, y.Span.End),
	)
}

// overlaps работает с полуоткрытыми спанами [Start, End). Две вставки
// никогда не конфликтуют; вставка конфликтует со спаном, только если
// попадает строго внутрь него или в его начало.
func overlaps(x, y diag.TextEdit) bool {
	if x.Span.File != y.Span.File {
		return false
	}
	xs, xe, ys, ye := x.Span.Start, x.Span.End, y.Span.Start, y.Span.End
	switch {
	case xs == xe && ys == ye:
		return false
	case xs == xe:
		return ys <= xs && xs < ye
	case ys == ye:
		return xs <= ys && ys < xe
	}
	return xs < ye && ys < xe
}

// writeFile возвращает BOM и CRLF, снятые при загрузке.
func writeFile(file *source.File, buf []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(file.Path); err == nil {
		mode = info.Mode()
	}
	out := buf
	if file.Flags&source.FileNormalizedCRLF != 0 {
		out = bytes.ReplaceAll(out, []byte("\n"), []byte("\r\n"))
	}
	if file.Flags&source.FileHadBOM != 0 {
		out = append([]byte("\ufeff"), out...)
	}
	if err := os.WriteFile(file.Path, out, mode); err != nil {
		return fmt.Errorf("write %s: %w", file.Path, err)
	}
	return nil
}
