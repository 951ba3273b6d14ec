package diag

import (
	"fmt"
)

// Code is a compact numeric diagnostic identifier with a stable string form.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Syntactic
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedParen      Code = 2002
	SynUnclosedBrace      Code = 2003
	SynExpectSemicolon    Code = 2004
	SynExpectIdentifier   Code = 2005
	SynExpectExpression   Code = 2006
	SynUnexpectedTopLevel Code = 2007

	// Macro expansion
	MacInfo            Code = 4000
	MacUnknownMacro    Code = 4001
	MacWrongRole       Code = 4002
	MacExpansionFailed Code = 4003
	MacCustom          Code = 4100
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown error",

	LexInfo:                     "lexical information",
	LexUnknownChar:              "unknown character",
	LexUnterminatedString:       "unterminated string literal",
	LexUnterminatedBlockComment: "unterminated block comment",
	LexBadNumber:                "malformed number literal",

	SynInfo:               "syntactic information",
	SynUnexpectedToken:    "unexpected token",
	SynUnclosedParen:      "unclosed parenthesis",
	SynUnclosedBrace:      "unclosed brace",
	SynExpectSemicolon:    "expected ';'",
	SynExpectIdentifier:   "expected identifier",
	SynExpectExpression:   "expected expression",
	SynUnexpectedTopLevel: "unexpected top-level construct",

	MacInfo:            "macro information",
	MacUnknownMacro:    "unknown macro",
	MacWrongRole:       "macro not allowed in this position",
	MacExpansionFailed: "macro expansion failed",
	MacCustom:          "macro-defined diagnostic",
}

// ID returns the short stable identifier, e.g. "SYN2001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("MAC%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
