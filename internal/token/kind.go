package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline terminates a logical line.
	Newline
	// Indent opens a block: the logical line is indented deeper than the previous one.
	Indent
	// Dedent closes one block level.
	Dedent

	// Ident represents an identifier token.
	Ident

	KwFalse    // False
	KwNone     // None
	KwTrue     // True
	KwAnd      // and
	KwAs       // as
	KwAssert   // assert
	KwAsync    // async
	KwAwait    // await
	KwBreak    // break
	KwClass    // class
	KwContinue // continue
	KwDef      // def
	KwDel      // del
	KwElif     // elif
	KwElse     // else
	KwExcept   // except
	KwFinally  // finally
	KwFor      // for
	KwFrom     // from
	KwGlobal   // global
	KwIf       // if
	KwImport   // import
	KwIn       // in
	KwIs       // is
	KwLambda   // lambda
	KwNonlocal // nonlocal
	KwNot      // not
	KwOr       // or
	KwPass     // pass
	KwRaise    // raise
	KwReturn   // return
	KwTry      // try
	KwWhile    // while
	KwWith     // with
	KwYield    // yield

	// IntLit represents an integer literal (decimal, 0x, 0o, 0b).
	IntLit
	// FloatLit represents a floating point literal.
	FloatLit
	// ImagLit represents an imaginary literal such as 2j.
	ImagLit
	// StringLit represents a str literal, possibly raw or u-prefixed.
	StringLit
	// BytesLit represents a bytes literal (b"...").
	BytesLit
	// FStringLit represents a formatted string literal (f"...").
	FStringLit

	Plus              // +
	Minus             // -
	Star              // *
	DoubleStar        // **
	Slash             // /
	DoubleSlash       // //
	Percent           // %
	At                // @
	Shl               // <<
	Shr               // >>
	Amp               // &
	Pipe              // |
	Caret             // ^
	Tilde             // ~
	ColonEq           // :=
	Lt                // <
	Gt                // >
	LtEq              // <=
	GtEq              // >=
	EqEq              // ==
	NotEq             // !=
	LParen            // (
	RParen            // )
	LBracket          // [
	RBracket          // ]
	LBrace            // {
	RBrace            // }
	Comma             // ,
	Colon             // :
	Dot               // .
	Semicolon         // ;
	Assign            // =
	Arrow             // ->
	Ellipsis          // ...
	PlusAssign        // +=
	MinusAssign       // -=
	StarAssign        // *=
	DoubleStarAssign  // **=
	SlashAssign       // /=
	DoubleSlashAssign // //=
	PercentAssign     // %=
	AtAssign          // @=
	AmpAssign         // &=
	PipeAssign        // |=
	CaretAssign       // ^=
	ShlAssign         // <<=
	ShrAssign         // >>=

	kindCount
)

var kindNames = [...]string{
	Invalid: "Invalid", EOF: "EOF", Newline: "Newline", Indent: "Indent", Dedent: "Dedent", Ident: "Ident",
	KwFalse: "False", KwNone: "None", KwTrue: "True", KwAnd: "and", KwAs: "as",
	KwAssert: "assert", KwAsync: "async", KwAwait: "await", KwBreak: "break",
	KwClass: "class", KwContinue: "continue", KwDef: "def", KwDel: "del",
	KwElif: "elif", KwElse: "else", KwExcept: "except", KwFinally: "finally",
	KwFor: "for", KwFrom: "from", KwGlobal: "global", KwIf: "if",
	KwImport: "import", KwIn: "in", KwIs: "is", KwLambda: "lambda",
	KwNonlocal: "nonlocal", KwNot: "not", KwOr: "or", KwPass: "pass",
	KwRaise: "raise", KwReturn: "return", KwTry: "try", KwWhile: "while",
	KwWith: "with", KwYield: "yield",
	IntLit: "IntLit", FloatLit: "FloatLit", ImagLit: "ImagLit",
	StringLit: "StringLit", BytesLit: "BytesLit", FStringLit: "FStringLit",
	Plus: "+", Minus: "-", Star: "*", DoubleStar: "**", Slash: "/",
	DoubleSlash: "//", Percent: "%", At: "@", Shl: "<<", Shr: ">>",
	Amp: "&", Pipe: "|", Caret: "^", Tilde: "~", ColonEq: ":=",
	Lt: "<", Gt: ">", LtEq: "<=", GtEq: ">=", EqEq: "==", NotEq: "!=",
	LParen: "(", RParen: ")", LBracket: "[", RBracket: "]",
	LBrace: "{", RBrace: "}", Comma: ",", Colon: ":", Dot: ".",
	Semicolon: ";", Assign: "=", Arrow: "->", Ellipsis: "...",
	PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=",
	DoubleStarAssign: "**=", SlashAssign: "/=", DoubleSlashAssign: "//=",
	PercentAssign: "%=", AtAssign: "@=", AmpAssign: "&=", PipeAssign: "|=",
	CaretAssign: "^=", ShlAssign: "<<=", ShrAssign: ">>=",
}

func (k Kind) String() string {
	if k < kindCount && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
