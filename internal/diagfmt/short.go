package diagfmt

import (
	"io"

	"setlint/internal/diag"
	"setlint/internal/source"
)

// Short prints one line per diagnostic:
// <severity> <CODE> <path>:<line>:<col> <message>
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode, withNotes bool) error {
	items := bag.Items()
	if len(items) == 0 {
		return nil
	}
	ptrs := make([]*diag.Diagnostic, len(items))
	for i := range items {
		ptrs[i] = &items[i]
	}
	out := diag.FormatShortDiagnostics(ptrs, fs, withNotes, mode.String())
	_, err := io.WriteString(w, out+"\n")
	return err
}
