package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwFn represents the 'fn' keyword.
	KwFn // fn

	// IntLit represents an integer literal.
	IntLit
	// StringLit represents a double-quoted string literal.
	StringLit

	// Hash introduces a freestanding macro invocation.
	Hash // #
	Plus
	Minus
	Star
	Slash
	Assign // =
	Comma
	Semicolon
	LParen
	RParen
	LBrace
	RBrace
)

var kindNames = map[Kind]string{
	Invalid:   "invalid",
	EOF:       "eof",
	Ident:     "identifier",
	KwLet:     "'let'",
	KwFn:      "'fn'",
	IntLit:    "integer literal",
	StringLit: "string literal",
	Hash:      "'#'",
	Plus:      "'+'",
	Minus:     "'-'",
	Star:      "'*'",
	Slash:     "'/'",
	Assign:    "'='",
	Comma:     "','",
	Semicolon: "';'",
	LParen:    "'('",
	RParen:    "')'",
	LBrace:    "'{'",
	RBrace:    "'}'",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// LookupKeyword maps an identifier's text to its keyword kind, or Ident.
func LookupKeyword(text string) Kind {
	switch text {
	case "let":
		return KwLet
	case "fn":
		return KwFn
	default:
		return Ident
	}
}
