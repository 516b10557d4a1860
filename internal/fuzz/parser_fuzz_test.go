package fuzztests

import (
	"testing"
	"time"

	"setlint/internal/ast"
	"setlint/internal/diag"
	"setlint/internal/parser"
	"setlint/internal/source"
	"setlint/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

// FuzzParserNoHang tests that the parser terminates on any input,
// including broken indentation and unbalanced brackets.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	f.Add([]byte("s = {1, 1\nt = 2\n"))          // незакрытая скобка
	f.Add([]byte("if x:\ny = 1\n"))              // нет отступа
	f.Add([]byte("def f(:\n    pass\n"))         // сломанная сигнатура
	f.Add([]byte("{{{{{{{{{{{{1}}}}}}}}}}}}\n")) // глубокая вложенность
	f.Add([]byte("s = {1,, 2}\n"))               // пустой элемент
	f.Add([]byte("x = 'unterminated\n"))         // строка без конца
	f.Add([]byte("  x = {1}\n y = {2}\n"))       // несогласованный dedent

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		done := make(chan struct{})
		go func() {
			defer close(done)

			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.py", input))
			bag := diag.NewBag(128)
			builder := ast.NewBuilder(ast.Hints{}, nil)
			_ = parser.ParseSource(file, builder, parser.Options{
				Reporter:  diag.BagReporter{Bag: bag},
				MaxErrors: 128,
			})
		}()

		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}

// FuzzParserSpans checks span invariants of every syntactically valid input.
func FuzzParserSpans(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.py", input))
		bag := diag.NewBag(128)
		builder := ast.NewBuilder(ast.Hints{}, nil)
		res := parser.ParseSource(file, builder, parser.Options{
			Reporter:  diag.BagReporter{Bag: bag},
			MaxErrors: 128,
		})
		if bag.HasErrors() {
			return
		}
		if err := testkit.CheckSpanInvariants(builder, res.File, file); err != nil {
			t.Fatalf("%v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}
