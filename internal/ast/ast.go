// Package ast defines the expression and statement node types produced by
// the parser and consumed by the resolver and interpreter.
package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/go-lox/internal/token"
)

// Expr is implemented only by the expression node types in this package; the
// marker method keeps the sum type closed to outside implementations. Every
// Expr also renders itself as a fully-parenthesized debug form via String,
// used by the CLI's AST dump.
type Expr interface {
	exprNode()
	fmt.Stringer
}

// Stmt is implemented only by the statement node types in this package.
type Stmt interface {
	stmtNode()
	fmt.Stringer
}

// Every node is allocated as a pointer by the parser, so a node's own address
// is a stable identity the resolver can key its binding table on, rather
// than structural equality.

type LiteralExpr struct {
	Value any // nil, bool, float64, or string
}

type GroupingExpr struct {
	Inner Expr
}

type UnaryExpr struct {
	Op      token.Token
	Operand Expr
}

type BinaryExpr struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

type LogicalExpr struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

type ConditionalExpr struct {
	Cond Expr
	Then Expr
	Else Expr
}

type VariableExpr struct {
	Name token.Token
}

type AssignExpr struct {
	Name  token.Token
	Value Expr
}

type CallExpr struct {
	Callee Expr
	Paren  token.Token // closing ')', used for error location
	Args   []Expr
}

type GetExpr struct {
	Object Expr
	Name   token.Token
}

type SetExpr struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

type ThisExpr struct {
	Keyword token.Token
}

type SuperExpr struct {
	Keyword token.Token
	Method  token.Token
}

func (*LiteralExpr) exprNode()     {}
func (*GroupingExpr) exprNode()    {}
func (*UnaryExpr) exprNode()       {}
func (*BinaryExpr) exprNode()      {}
func (*LogicalExpr) exprNode()     {}
func (*ConditionalExpr) exprNode() {}
func (*VariableExpr) exprNode()    {}
func (*AssignExpr) exprNode()      {}
func (*CallExpr) exprNode()        {}
func (*GetExpr) exprNode()         {}
func (*SetExpr) exprNode()         {}
func (*ThisExpr) exprNode()        {}
func (*SuperExpr) exprNode()       {}

// parenthesize renders name and exprs as a single Lisp-style debug form,
// e.g. "(+ 1 2)". Used by every Expr's String method below.
func parenthesize(name string, exprs ...Expr) string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(name)
	for _, e := range exprs {
		sb.WriteString(" ")
		sb.WriteString(e.String())
	}
	sb.WriteString(")")
	return sb.String()
}

func (e *LiteralExpr) String() string {
	switch v := e.Value.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (e *GroupingExpr) String() string { return parenthesize("group", e.Inner) }
func (e *UnaryExpr) String() string    { return parenthesize(e.Op.Lexeme, e.Operand) }
func (e *BinaryExpr) String() string   { return parenthesize(e.Op.Lexeme, e.Left, e.Right) }
func (e *LogicalExpr) String() string  { return parenthesize(e.Op.Lexeme, e.Left, e.Right) }
func (e *ConditionalExpr) String() string {
	return parenthesize("?:", e.Cond, e.Then, e.Else)
}
func (e *VariableExpr) String() string { return e.Name.Lexeme }
func (e *AssignExpr) String() string {
	return fmt.Sprintf("(= %s %s)", e.Name.Lexeme, e.Value.String())
}
func (e *CallExpr) String() string {
	return parenthesize("call", append([]Expr{e.Callee}, e.Args...)...)
}
func (e *GetExpr) String() string {
	return fmt.Sprintf("(. %s %s)", e.Object.String(), e.Name.Lexeme)
}
func (e *SetExpr) String() string {
	return fmt.Sprintf("(set %s %s %s)", e.Object.String(), e.Name.Lexeme, e.Value.String())
}
func (e *ThisExpr) String() string  { return "this" }
func (e *SuperExpr) String() string { return fmt.Sprintf("(super %s)", e.Method.Lexeme) }

type ExpressionStmt struct {
	Expression Expr
}

type PrintStmt struct {
	Expression Expr
}

type VarStmt struct {
	Name        token.Token
	Initializer Expr // nil if absent
}

type BlockStmt struct {
	Statements []Stmt
}

type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt // nil if absent
}

type WhileStmt struct {
	Cond Expr
	Body Stmt
}

type FunctionStmt struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

type ReturnStmt struct {
	Keyword token.Token
	Value   Expr // nil if bare `return;`
}

type ClassStmt struct {
	Name       token.Token
	Superclass *VariableExpr // nil if no superclass
	Methods    []*FunctionStmt
}

func (*ExpressionStmt) stmtNode() {}
func (*PrintStmt) stmtNode()      {}
func (*VarStmt) stmtNode()        {}
func (*BlockStmt) stmtNode()      {}
func (*IfStmt) stmtNode()         {}
func (*WhileStmt) stmtNode()      {}
func (*FunctionStmt) stmtNode()   {}
func (*ReturnStmt) stmtNode()     {}
func (*ClassStmt) stmtNode()      {}

func (s *ExpressionStmt) String() string { return s.Expression.String() + ";" }
func (s *PrintStmt) String() string      { return fmt.Sprintf("(print %s)", s.Expression.String()) }

func (s *VarStmt) String() string {
	if s.Initializer == nil {
		return fmt.Sprintf("(var %s)", s.Name.Lexeme)
	}
	return fmt.Sprintf("(var %s %s)", s.Name.Lexeme, s.Initializer.String())
}

func (s *BlockStmt) String() string {
	parts := make([]string, len(s.Statements))
	for i, st := range s.Statements {
		parts[i] = st.String()
	}
	return "(block " + strings.Join(parts, " ") + ")"
}

func (s *IfStmt) String() string {
	if s.Else == nil {
		return fmt.Sprintf("(if %s %s)", s.Cond.String(), s.Then.String())
	}
	return fmt.Sprintf("(if %s %s %s)", s.Cond.String(), s.Then.String(), s.Else.String())
}

func (s *WhileStmt) String() string {
	return fmt.Sprintf("(while %s %s)", s.Cond.String(), s.Body.String())
}

func (s *FunctionStmt) String() string {
	params := make([]string, len(s.Params))
	for i, p := range s.Params {
		params[i] = p.Lexeme
	}
	body := make([]string, len(s.Body))
	for i, st := range s.Body {
		body[i] = st.String()
	}
	return fmt.Sprintf("(fun %s (%s) %s)", s.Name.Lexeme, strings.Join(params, " "), strings.Join(body, " "))
}

func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return "(return)"
	}
	return fmt.Sprintf("(return %s)", s.Value.String())
}

func (s *ClassStmt) String() string {
	var sb strings.Builder
	sb.WriteString("(class ")
	sb.WriteString(s.Name.Lexeme)
	if s.Superclass != nil {
		sb.WriteString(" < ")
		sb.WriteString(s.Superclass.Name.Lexeme)
	}
	for _, m := range s.Methods {
		sb.WriteString(" ")
		sb.WriteString(m.String())
	}
	sb.WriteString(")")
	return sb.String()
}
