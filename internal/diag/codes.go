package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0
	// Лексические
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003
	LexTokenTooLong       Code = 1004
	LexUnmatchedBracket   Code = 1005
	LexBadContinuation    Code = 1006
	LexBadDedent          Code = 1007

	// Парсерные
	SynUnexpectedToken   Code = 2001
	SynUnclosedParen     Code = 2002
	SynUnclosedBracket   Code = 2003
	SynUnclosedBrace     Code = 2004
	SynExpectExpression  Code = 2005
	SynExpectIdentifier  Code = 2006
	SynExpectColon       Code = 2007
	SynExpectNewline     Code = 2008
	SynInvalidTarget     Code = 2009
	SynForMissingIn      Code = 2010
	SynLambdaBadParams   Code = 2011
	SynImportBadName     Code = 2012
	SynStarredNotAllowed Code = 2013

	// Lint rules. Rule codes keep their public identifiers (see ruleIDs).
	LintDuplicateSetValue Code = 3033
	LintRuleInternal      Code = 3999

	// Ошибки I/O
	IOLoadFileError Code = 4001

	// Configuration
	CfgUnknownKey  Code = 5001
	CfgUnknownRule Code = 5002
)

// ruleIDs maps rule codes onto the identifiers users select and suppress.
var ruleIDs = map[Code]string{
	LintDuplicateSetValue: "B033",
}

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedString: "Unterminated string",
	LexBadNumber:          "Bad number",
	LexTokenTooLong:       "Token too long",
	LexUnmatchedBracket:   "Unmatched closing bracket",
	LexBadContinuation:    "Unexpected character after line continuation",
	LexBadDedent:          "Unindent does not match any outer indentation level",
	SynUnexpectedToken:    "Unexpected token",
	SynUnclosedParen:      "Unclosed parenthesis",
	SynUnclosedBracket:    "Unclosed bracket",
	SynUnclosedBrace:      "Unclosed brace",
	SynExpectExpression:   "Expect expression",
	SynExpectIdentifier:   "Expect identifier",
	SynExpectColon:        "Expect colon",
	SynExpectNewline:      "Expect end of line",
	SynInvalidTarget:      "Invalid assignment target",
	SynForMissingIn:       "Missing 'in' in for clause",
	SynLambdaBadParams:    "Malformed lambda parameters",
	SynImportBadName:      "Malformed import name",
	SynStarredNotAllowed:  "Starred expression not allowed here",
	LintDuplicateSetValue: "Duplicate value in set literal",
	LintRuleInternal:      "Lint rule failed",
	IOLoadFileError:       "Failed to load file",
	CfgUnknownKey:         "Unknown configuration key",
	CfgUnknownRule:        "Unknown rule code",
}

func (c Code) ID() string {
	if id, ok := ruleIDs[c]; ok {
		return id
	}
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("LNT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// IsRule reports whether the code belongs to a lint rule (as opposed to
// lexer, parser or I/O failures).
func (c Code) IsRule() bool {
	return c >= 3000 && c < 4000
}

// LookupID resolves a public identifier ("B033", "SYN2001") back to its code.
func LookupID(id string) (Code, bool) {
	for code := range codeDescription {
		if code.ID() == id {
			return code, true
		}
	}
	return UnknownCode, false
}
