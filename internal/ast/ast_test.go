package ast

import (
	"testing"

	"github.com/cwbudde/go-lox/internal/token"
)

func tok(kind token.Kind, lexeme string) token.Token {
	return token.New(kind, lexeme, nil, 1)
}

func TestExprStringForms(t *testing.T) {
	one := &LiteralExpr{Value: float64(1)}
	two := &LiteralExpr{Value: float64(2)}

	cases := []struct {
		name string
		expr Expr
		want string
	}{
		{"nil literal", &LiteralExpr{Value: nil}, "nil"},
		{"string literal", &LiteralExpr{Value: "hi"}, `"hi"`},
		{"number literal", &LiteralExpr{Value: float64(3)}, "3"},
		{"bool literal", &LiteralExpr{Value: true}, "true"},
		{"grouping", &GroupingExpr{Inner: one}, "(group 1)"},
		{"unary", &UnaryExpr{Op: tok(token.Minus, "-"), Operand: one}, "(- 1)"},
		{"binary", &BinaryExpr{Left: one, Op: tok(token.Plus, "+"), Right: two}, "(+ 1 2)"},
		{"logical", &LogicalExpr{Left: one, Op: tok(token.Or, "or"), Right: two}, "(or 1 2)"},
		{
			"conditional",
			&ConditionalExpr{Cond: one, Then: two, Else: one},
			"(?: 1 2 1)",
		},
		{"variable", &VariableExpr{Name: tok(token.Identifier, "x")}, "x"},
		{"assign", &AssignExpr{Name: tok(token.Identifier, "x"), Value: one}, "(= x 1)"},
		{
			"call no args",
			&CallExpr{Callee: &VariableExpr{Name: tok(token.Identifier, "f")}, Paren: tok(token.RightParen, ")")},
			"(call f)",
		},
		{
			"call with args",
			&CallExpr{
				Callee: &VariableExpr{Name: tok(token.Identifier, "f")},
				Paren:  tok(token.RightParen, ")"),
				Args:   []Expr{one, two},
			},
			"(call f 1 2)",
		},
		{
			"get",
			&GetExpr{Object: &VariableExpr{Name: tok(token.Identifier, "obj")}, Name: tok(token.Identifier, "field")},
			"(. obj field)",
		},
		{
			"set",
			&SetExpr{Object: &VariableExpr{Name: tok(token.Identifier, "obj")}, Name: tok(token.Identifier, "field"), Value: one},
			"(set obj field 1)",
		},
		{"this", &ThisExpr{Keyword: tok(token.This, "this")}, "this"},
		{"super", &SuperExpr{Keyword: tok(token.Super, "super"), Method: tok(token.Identifier, "m")}, "(super m)"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.expr.String(); got != c.want {
				t.Errorf("%s.String() = %q, want %q", c.name, got, c.want)
			}
		})
	}
}

func TestPrecedenceMatchesFullyParenthesizedForm(t *testing.T) {
	// (1 + 2 * 4) - 5, grouped as the parser would produce it.
	expr := &BinaryExpr{
		Left: &BinaryExpr{
			Left: &LiteralExpr{Value: float64(1)},
			Op:   tok(token.Plus, "+"),
			Right: &BinaryExpr{
				Left:  &LiteralExpr{Value: float64(2)},
				Op:    tok(token.Star, "*"),
				Right: &LiteralExpr{Value: float64(4)},
			},
		},
		Op:    tok(token.Minus, "-"),
		Right: &LiteralExpr{Value: float64(5)},
	}
	want := "(- (+ 1 (* 2 4)) 5)"
	if got := expr.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestStmtStringForms(t *testing.T) {
	name := tok(token.Identifier, "x")
	lit := &LiteralExpr{Value: float64(1)}

	cases := []struct {
		name string
		stmt Stmt
		want string
	}{
		{"expression", &ExpressionStmt{Expression: lit}, "1;"},
		{"print", &PrintStmt{Expression: lit}, "(print 1)"},
		{"var no init", &VarStmt{Name: name}, "(var x)"},
		{"var with init", &VarStmt{Name: name, Initializer: lit}, "(var x 1)"},
		{
			"block",
			&BlockStmt{Statements: []Stmt{&ExpressionStmt{Expression: lit}, &PrintStmt{Expression: lit}}},
			"(block 1; (print 1))",
		},
		{
			"if no else",
			&IfStmt{Cond: lit, Then: &PrintStmt{Expression: lit}},
			"(if 1 (print 1))",
		},
		{
			"if with else",
			&IfStmt{Cond: lit, Then: &PrintStmt{Expression: lit}, Else: &PrintStmt{Expression: lit}},
			"(if 1 (print 1) (print 1))",
		},
		{
			"while",
			&WhileStmt{Cond: lit, Body: &PrintStmt{Expression: lit}},
			"(while 1 (print 1))",
		},
		{"return bare", &ReturnStmt{Keyword: tok(token.Return, "return")}, "(return)"},
		{"return value", &ReturnStmt{Keyword: tok(token.Return, "return"), Value: lit}, "(return 1)"},
		{
			"function",
			&FunctionStmt{
				Name:   tok(token.Identifier, "f"),
				Params: []token.Token{tok(token.Identifier, "a"), tok(token.Identifier, "b")},
				Body:   []Stmt{&ReturnStmt{Keyword: tok(token.Return, "return"), Value: lit}},
			},
			"(fun f (a b) (return 1))",
		},
		{
			"class no superclass",
			&ClassStmt{
				Name: tok(token.Identifier, "Cake"),
				Methods: []*FunctionStmt{
					{Name: tok(token.Identifier, "bake"), Body: []Stmt{&PrintStmt{Expression: lit}}},
				},
			},
			"(class Cake (fun bake () (print 1)))",
		},
		{
			"class with superclass",
			&ClassStmt{
				Name:       tok(token.Identifier, "Cake"),
				Superclass: &VariableExpr{Name: tok(token.Identifier, "Pastry")},
			},
			"(class Cake < Pastry)",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.stmt.String(); got != c.want {
				t.Errorf("%s.String() = %q, want %q", c.name, got, c.want)
			}
		})
	}
}

func TestNodeConstructorsImplementMarkerInterfaces(t *testing.T) {
	var exprs = []Expr{
		&LiteralExpr{}, &GroupingExpr{}, &UnaryExpr{}, &BinaryExpr{}, &LogicalExpr{},
		&ConditionalExpr{}, &VariableExpr{}, &AssignExpr{}, &CallExpr{}, &GetExpr{},
		&SetExpr{}, &ThisExpr{}, &SuperExpr{},
	}
	for _, e := range exprs {
		if e == nil {
			t.Fatal("nil Expr in table")
		}
	}

	var stmts = []Stmt{
		&ExpressionStmt{}, &PrintStmt{}, &VarStmt{}, &BlockStmt{}, &IfStmt{},
		&WhileStmt{}, &FunctionStmt{}, &ReturnStmt{}, &ClassStmt{},
	}
	for _, s := range stmts {
		if s == nil {
			t.Fatal("nil Stmt in table")
		}
	}
}
