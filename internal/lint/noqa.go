package lint

import (
	"bytes"
	"regexp"
	"strings"

	"setlint/internal/diag"
	"setlint/internal/lexer"
	"setlint/internal/source"
	"setlint/internal/token"
)

// Noqa maps 1-based line numbers to their suppression directive.
type Noqa map[uint32]noqaLine

type noqaLine struct {
	// codes == nil подавляет все правила на строке
	codes map[string]struct{}
}

var noqaPattern = regexp.MustCompile(`(?i)#\s*noqa(?::\s*([a-z]+[0-9]+(?:[\s,]+[a-z]+[0-9]+)*))?`)

// Suppresses reports whether a diagnostic with code on line is silenced.
// Lexer, parser and I/O diagnostics are never suppressed.
func (n Noqa) Suppresses(code diag.Code, line uint32) bool {
	if !code.IsRule() {
		return false
	}
	entry, ok := n[line]
	if !ok {
		return false
	}
	if entry.codes == nil {
		return true
	}
	_, ok = entry.codes[code.ID()]
	return ok
}

// CollectNoqa scans the comments of file for "# noqa" and "# noqa: B033"
// directives. Files that never mention noqa are not tokenized.
func CollectNoqa(file *source.File) Noqa {
	if !bytes.Contains(bytes.ToLower(file.Content), []byte("noqa")) {
		return nil
	}
	var out Noqa
	for _, tok := range lexer.Tokenize(file, lexer.Options{}) {
		for _, tr := range tok.Leading {
			if tr.Kind != token.TriviaComment {
				continue
			}
			entry, ok := parseNoqa(tr.Text)
			if !ok {
				continue
			}
			if out == nil {
				out = Noqa{}
			}
			line := file.Position(tr.Span.Start).Line
			out[line] = entry
		}
	}
	return out
}

func parseNoqa(comment string) (noqaLine, bool) {
	m := noqaPattern.FindStringSubmatch(comment)
	if m == nil {
		return noqaLine{}, false
	}
	if m[1] == "" {
		return noqaLine{}, true
	}
	codes := map[string]struct{}{}
	for _, c := range strings.FieldsFunc(m[1], func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	}) {
		codes[strings.ToUpper(c)] = struct{}{}
	}
	return noqaLine{codes: codes}, true
}
