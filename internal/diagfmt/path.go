package diagfmt

import (
	"setlint/internal/source"
)

// displayPath renders the path of file according to mode.
func displayPath(fs *source.FileSet, file *source.File, mode PathMode) string {
	if file == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeRelative:
		return file.FormatPath("relative", fs.BaseDir())
	case PathModeAbsolute, PathModeBasename, PathModeAuto:
		return file.FormatPath(mode.String(), "")
	default:
		return file.Path
	}
}
