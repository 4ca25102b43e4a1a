// Package token defines the lexeme kinds produced by the scanner and consumed
// by the parser.
package token

// Kind tags a Token with its lexical category. The zero value is never
// produced by the scanner; it exists only as an invalid sentinel.
type Kind int

const (
	invalid Kind = iota

	// Single-character tokens.
	LeftParen
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Star
	Colon
	Question

	// One or two character tokens.
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual
	Slash

	// Literals.
	Identifier
	String
	Number

	// Keywords.
	And
	Class
	Else
	False
	Fun
	For
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	Eof
)

var names = [...]string{
	invalid:      "INVALID",
	LeftParen:    "(",
	RightParen:   ")",
	LeftBrace:    "{",
	RightBrace:   "}",
	Comma:        ",",
	Dot:          ".",
	Minus:        "-",
	Plus:         "+",
	Semicolon:    ";",
	Star:         "*",
	Colon:        ":",
	Question:     "?",
	Bang:         "!",
	BangEqual:    "!=",
	Equal:        "=",
	EqualEqual:   "==",
	Greater:      ">",
	GreaterEqual: ">=",
	Less:         "<",
	LessEqual:    "<=",
	Slash:        "/",
	Identifier:   "IDENTIFIER",
	String:       "STRING",
	Number:       "NUMBER",
	And:          "and",
	Class:        "class",
	Else:         "else",
	False:        "false",
	Fun:          "fun",
	For:          "for",
	If:           "if",
	Nil:          "nil",
	Or:           "or",
	Print:        "print",
	Return:       "return",
	Super:        "super",
	This:         "this",
	True:         "true",
	Var:          "var",
	While:        "while",
	Eof:          "EOF",
}

// String renders a Kind's canonical name, used by diagnostics and the
// tokenize CLI subcommand.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(names) || names[k] == "" {
		return "UNKNOWN"
	}
	return names[k]
}

// Keywords maps every reserved word to its Kind. The scanner consults this
// after recognizing an identifier-shaped lexeme.
var Keywords = map[string]Kind{
	"and":    And,
	"class":  Class,
	"else":   Else,
	"false":  False,
	"for":    For,
	"fun":    Fun,
	"if":     If,
	"nil":    Nil,
	"or":     Or,
	"print":  Print,
	"return": Return,
	"super":  Super,
	"this":   This,
	"true":   True,
	"var":    Var,
	"while":  While,
}

// Token is an immutable lexeme produced by the scanner. Literal is non-nil
// only for Number (float64) and String/Identifier (string) kinds.
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal any
	Line    int
}

// New constructs a Token. Literal may be nil for kinds with no payload.
func New(kind Kind, lexeme string, literal any, line int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Literal: literal, Line: line}
}

func (t Token) String() string {
	return t.Kind.String() + " " + t.Lexeme
}
