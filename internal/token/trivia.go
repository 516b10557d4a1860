package token

import "setlint/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	// TriviaNewline is a line break that does not end a logical line.
	TriviaNewline
	TriviaComment
	// TriviaContinuation is a backslash followed by a line break.
	TriviaContinuation
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaComment:
		return "Comment"
	case TriviaContinuation:
		return "Continuation"
	default:
		return "Trivia(?)"
	}
}

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
