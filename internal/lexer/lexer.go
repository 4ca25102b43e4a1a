// Package lexer turns Lox source text into a token stream, accumulating
// diagnostics for every malformed lexeme rather than stopping at the first.
package lexer

import (
	"strconv"

	"github.com/cwbudde/go-lox/internal/diag"
	"github.com/cwbudde/go-lox/internal/token"
)

// Scanner is a single-use tokenizer over one source string. String literals
// undergo no escape processing: a backslash is just a backslash. This is
// intentional, not an omission — Lox strings are raw character runs between
// quotes.
type Scanner struct {
	source  string
	start   int
	current int
	line    int

	tokens []token.Token
	errs   []*diag.SourceError
}

func New(source string) *Scanner {
	return &Scanner{source: source, line: 1}
}

// Scan tokenizes the whole source, always terminating with an Eof token.
// Errors are accumulated; a non-empty error slice means the caller should
// treat the token list as unusable for parsing.
func (s *Scanner) Scan() ([]token.Token, []*diag.SourceError) {
	for !s.isAtEnd() {
		s.start = s.current
		s.scanToken()
	}
	s.tokens = append(s.tokens, token.New(token.Eof, "", nil, s.line))
	return s.tokens, s.errs
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	return c
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) match(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) addToken(kind token.Kind) {
	s.addTokenLiteral(kind, nil)
}

func (s *Scanner) addTokenLiteral(kind token.Kind, literal any) {
	lexeme := s.source[s.start:s.current]
	s.tokens = append(s.tokens, token.New(kind, lexeme, literal, s.line))
}

func (s *Scanner) errorf(message string) {
	s.errs = append(s.errs, diag.New(diag.Lex, s.line, "", message))
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case '(':
		s.addToken(token.LeftParen)
	case ')':
		s.addToken(token.RightParen)
	case '{':
		s.addToken(token.LeftBrace)
	case '}':
		s.addToken(token.RightBrace)
	case ',':
		s.addToken(token.Comma)
	case '-':
		s.addToken(token.Minus)
	case '+':
		s.addToken(token.Plus)
	case ';':
		s.addToken(token.Semicolon)
	case '*':
		s.addToken(token.Star)
	case ':':
		s.addToken(token.Colon)
	case '?':
		s.addToken(token.Question)
	case '!':
		if s.match('=') {
			s.addToken(token.BangEqual)
		} else {
			s.addToken(token.Bang)
		}
	case '=':
		if s.match('=') {
			s.addToken(token.EqualEqual)
		} else {
			s.addToken(token.Equal)
		}
	case '<':
		if s.match('=') {
			s.addToken(token.LessEqual)
		} else {
			s.addToken(token.Less)
		}
	case '>':
		if s.match('=') {
			s.addToken(token.GreaterEqual)
		} else {
			s.addToken(token.Greater)
		}
	case '/':
		switch {
		case s.match('/'):
			for s.peek() != '\n' && !s.isAtEnd() {
				s.advance()
			}
		case s.match('*'):
			s.scanBlockComment()
		default:
			s.addToken(token.Slash)
		}
	case '.':
		s.scanDot()
	case ' ', '\t', '\r':
		// skip
	case '\n':
		s.line++
	case '"':
		s.scanString()
	default:
		switch {
		case isDigit(c):
			s.scanNumber()
		case isAlpha(c):
			s.scanIdentifier()
		default:
			s.errorf("Unexpected character.")
		}
	}
}

// scanDot emits a bare Dot token. scanNumber only folds a '.' into the
// number when a digit follows it, so a '.' reaching the main switch on its
// own — including the trailing-dot case in "100." — is always a standalone
// token.
func (s *Scanner) scanDot() {
	s.addToken(token.Dot)
}

// scanBlockComment consumes a /* ... */ comment whose nesting depth already
// accounts for the opening "/*" consumed by the caller. Unmatched nested
// "/*" increments depth; "*/" decrements; EOF before the outermost close is
// an error.
func (s *Scanner) scanBlockComment() {
	depth := 1
	for depth > 0 {
		if s.isAtEnd() {
			s.errorf("Unterminated block comment.")
			return
		}
		if s.peek() == '\n' {
			s.line++
		}
		if s.peek() == '/' && s.peekNext() == '*' {
			s.advance()
			s.advance()
			depth++
			continue
		}
		if s.peek() == '*' && s.peekNext() == '/' {
			s.advance()
			s.advance()
			depth--
			continue
		}
		s.advance()
	}
}

func (s *Scanner) scanString() {
	for s.peek() != '"' && !s.isAtEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.isAtEnd() {
		s.errorf("Unterminated string.")
		return
	}
	s.advance() // closing '"'
	value := s.source[s.start+1 : s.current-1]
	s.addTokenLiteral(token.String, value)
}

func (s *Scanner) scanNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}
	// A '.' is part of the number only if followed by at least one digit;
	// otherwise it is left unconsumed so the next scanToken() call emits it
	// as its own Dot token.
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	text := s.source[s.start:s.current]
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		s.errorf("Invalid number literal.")
		return
	}
	s.addTokenLiteral(token.Number, value)
}

func (s *Scanner) scanIdentifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	text := s.source[s.start:s.current]
	if kind, ok := token.Keywords[text]; ok {
		s.addToken(kind)
		return
	}
	s.addTokenLiteral(token.Identifier, text)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }
