package lexer

import (
	"testing"

	"setlint/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))

	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("Peek() = %q, want %q", got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump() = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() {
		t.Error("Expected EOF at end")
	}
	if cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Error("Peek/Bump past EOF must return 0")
	}
}

func TestPeekAtAndEatString(t *testing.T) {
	cursor := NewCursor(createFile("**=x"))

	if cursor.PeekAt(2) != '=' || cursor.PeekAt(4) != 0 {
		t.Error("PeekAt returned unexpected bytes")
	}
	if cursor.EatString("//") {
		t.Fatal("EatString consumed a mismatched prefix")
	}
	if !cursor.EatString("**=") || cursor.Off != 3 {
		t.Fatalf("EatString failed, off=%d", cursor.Off)
	}
	if cursor.EatString("xy") {
		t.Error("EatString must not read past the limit")
	}
	if string(cursor.Rest()) != "x" {
		t.Errorf("Rest() = %q", cursor.Rest())
	}
}

func TestSpanFromAndReset(t *testing.T) {
	cursor := NewCursor(createFile("α\nβ"))
	mark := cursor.Mark()
	cursor.Bump()
	cursor.Bump()
	span := cursor.SpanFrom(mark)
	if span.Start != 0 || span.End != 2 {
		t.Fatalf("unexpected span %v", span)
	}
	cursor.Reset(mark)
	if cursor.Off != 0 {
		t.Fatalf("Reset did not rewind, off=%d", cursor.Off)
	}
	if !cursor.Eat(0xCE) || cursor.Eat('x') {
		t.Fatal("Eat mismatch")
	}
}
