// Package diag defines the diagnostic model shared by the lexer, the parser
// and lint rules.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – compact numeric identifier with a stable string form. Lint rules
//     expose their public identifier (B033) through Code.ID.
//   - Message – short human oriented text.
//   - Primary – the source.Span the finding points at.
//   - Notes – secondary spans/messages.
//   - Fixes – pointers to Fix records.
//
// # Fix suggestions
//
// A Fix carries an ID, a Title, a Kind, an Applicability and a list of
// TextEdits. Several diagnostics may share one *Fix when a single edit
// resolves all of them; consumers must not mutate fixes they receive. The fix
// engine treats equal IDs as the same correction and applies it once.
//
// TextEdit spans are in source coordinates; OldText acts as an optional guard
// that the fix engine checks before applying the edit. Producers may attach a
// FixThunk to defer building edits; MaterializeFixes expands them.
//
// # Emitting diagnostics
//
// Phases emit through a Reporter. ReportWarning returns a ReportBuilder that
// chains WithNote and WithFixSuggestion before Emit. BagReporter collects into
// a Bag, which supports sorting, deduplication and filtering; DedupReporter
// and FilterReporter wrap another Reporter.
//
// Package diag performs no formatting or IO; rendering lives in
// internal/diagfmt and fix application in internal/fix.
package diag
