// Package token defines lexical token kinds and trivia for the Python
// subset understood by setlint.
// Invariants:
//   - Token.Text is the exact source text covered by Token.Span.
//   - Newline tokens mark the end of a logical line only; line breaks inside
//     brackets, after a backslash continuation, and blank lines are trivia.
//   - Indent/Dedent tokens bracket indented blocks, as CPython does;
//     a Dedent is emitted for every open level before EOF.
//   - Comments ("# ...") are leading trivia and never appear in the main stream.
//   - String prefixes (r, b, u, f and their combinations) stay in Text; the
//     Kind tells plain strings, bytes and f-strings apart.
//   - Soft keywords (match, case, type, _) are lexed as identifiers.
package token
