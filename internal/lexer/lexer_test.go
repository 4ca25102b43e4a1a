package lexer

import (
	"testing"

	"github.com/cwbudde/go-lox/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func assertKinds(t *testing.T, got []token.Kind, want ...token.Kind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSingleAndTwoCharTokens(t *testing.T) {
	toks, errs := New("!= == <= >= ! = < > / ( ) { } , . - + ; * : ?").Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	assertKinds(t, kinds(toks),
		token.BangEqual, token.EqualEqual, token.LessEqual, token.GreaterEqual,
		token.Bang, token.Equal, token.Less, token.Greater, token.Slash,
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon,
		token.Star, token.Colon, token.Question, token.Eof)
}

func TestLineComment(t *testing.T) {
	toks, errs := New("print 1; // a comment\nprint 2;").Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[len(toks)-2].Line != 2 {
		t.Errorf("expected second statement's ';' on line 2, got %d", toks[len(toks)-2].Line)
	}
}

func TestNestedBlockComment(t *testing.T) {
	toks, errs := New("/* outer /* inner */ still outer */ print 1;").Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	assertKinds(t, kinds(toks), token.Print, token.Number, token.Semicolon, token.Eof)
}

func TestUnterminatedBlockComment(t *testing.T) {
	_, errs := New("/* never closes").Scan()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
}

func TestStringLiteralNoEscapes(t *testing.T) {
	toks, errs := New(`"hello\nworld"`).Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0].Literal.(string) != `hello\nworld` {
		t.Errorf("expected raw backslash-n preserved, got %q", toks[0].Literal)
	}
}

func TestStringLiteralSpansLines(t *testing.T) {
	toks, errs := New("\"a\nb\" 1").Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[1].Line != 2 {
		t.Errorf("expected number token on line 2, got %d", toks[1].Line)
	}
}

func TestUnterminatedString(t *testing.T) {
	_, errs := New(`"never closes`).Scan()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
}

func TestNumberLiteral(t *testing.T) {
	toks, errs := New("123 45.67").Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0].Literal.(float64) != 123 {
		t.Errorf("got %v", toks[0].Literal)
	}
	if toks[1].Literal.(float64) != 45.67 {
		t.Errorf("got %v", toks[1].Literal)
	}
}

func TestTrailingDotIsSeparateToken(t *testing.T) {
	toks, errs := New("100.method()").Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	assertKinds(t, kinds(toks),
		token.Number, token.Dot, token.Identifier, token.LeftParen, token.RightParen, token.Eof)
	if toks[0].Literal.(float64) != 100 {
		t.Errorf("expected Number(100), got %v", toks[0].Literal)
	}
}

func TestIdentifiersAndKeywords(t *testing.T) {
	toks, errs := New("var x = foo and true").Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	assertKinds(t, kinds(toks),
		token.Var, token.Identifier, token.Equal, token.Identifier, token.And, token.True, token.Eof)
}

func TestUnexpectedCharacter(t *testing.T) {
	_, errs := New("@").Scan()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	if errs[0].Message != "Unexpected character." {
		t.Errorf("got message %q", errs[0].Message)
	}
}

func TestLineCountingAcrossWhitespace(t *testing.T) {
	toks, _ := New("1\n2\n3").Scan()
	if toks[0].Line != 1 || toks[1].Line != 2 || toks[2].Line != 3 {
		t.Errorf("line tracking wrong: %v %v %v", toks[0].Line, toks[1].Line, toks[2].Line)
	}
}
