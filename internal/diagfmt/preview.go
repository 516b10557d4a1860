package diagfmt

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"setlint/internal/diag"
	"setlint/internal/source"
)

// fixEditPreview holds the whole lines touched by one edit, before and after.
type fixEditPreview struct {
	before []string
	after  []string
}

func buildFixEditPreview(fs *source.FileSet, edit diag.TextEdit) (fixEditPreview, error) {
	if fs == nil {
		return fixEditPreview{}, fmt.Errorf("nil FileSet")
	}
	file := fs.Get(edit.Span.File)
	if file == nil {
		return fixEditPreview{}, fmt.Errorf("file %d not found in FileSet", edit.Span.File)
	}
	size, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return fixEditPreview{}, fmt.Errorf("len file content overflow: %w", err)
	}
	if edit.Span.End > size || edit.Span.Start > edit.Span.End {
		return fixEditPreview{}, fmt.Errorf("edit span %d-%d out of range", edit.Span.Start, edit.Span.End)
	}

	// расширяем до целых строк
	startLine := file.Position(edit.Span.Start).Line
	endLine := max(file.Position(edit.Span.End).Line, startLine)
	blockStart := file.LineStart(startLine)
	blockEnd := size
	if int(endLine-1) < len(file.LineIdx) {
		blockEnd = file.LineIdx[endLine-1]
	}

	original := string(file.Content[blockStart:blockEnd])
	relStart := edit.Span.Start - blockStart
	relEnd := edit.Span.End - blockStart
	after := original[:relStart] + edit.NewText + original[relEnd:]

	return fixEditPreview{
		before: splitPreviewLines(original),
		after:  splitPreviewLines(after),
	}, nil
}

func splitPreviewLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
