// Package resolver performs a single static pass over the parsed statement
// list, binding every variable-shaped expression to a scope depth the
// interpreter can use to skip dynamic environment-chain walks.
package resolver

import (
	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/internal/diag"
	"github.com/cwbudde/go-lox/internal/token"
)

type functionKind int

const (
	fnNone functionKind = iota
	fnFunction
	fnMethod
	fnInitializer
)

type classKind int

const (
	classNone classKind = iota
	classClass
	classSubclass
)

// scope maps a declared name to whether it has finished initializing.
type scope map[string]bool

// Resolver walks the AST once, maintaining a stack of lexical scopes.
// Bindings land in Locals, keyed by the expression node's own pointer
// identity: only Variable, Assign, This, and Super expressions ever appear
// as keys.
type Resolver struct {
	scopes          []scope
	currentFunction functionKind
	currentClass    classKind

	Locals map[ast.Expr]int
	errs   []*diag.SourceError
}

func New() *Resolver {
	return &Resolver{Locals: make(map[ast.Expr]int)}
}

// Resolve runs the pass over a top-level statement list. The first error
// terminates the pass: resolution stops after the top-level statement that
// produced it and only that error is returned. An empty result means the
// program may be interpreted.
func (r *Resolver) Resolve(stmts []ast.Stmt) []*diag.SourceError {
	for _, s := range stmts {
		r.resolveStmt(s)
		if len(r.errs) > 0 {
			return r.errs[:1]
		}
	}
	return nil
}

func (r *Resolver) errorAt(tok token.Token, message string) {
	r.errs = append(r.errs, diag.New(diag.Resolve, tok.Line, tok.Lexeme, message))
}

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, scope{}) }
func (r *Resolver) endScope()   { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	top := r.scopes[len(r.scopes)-1]
	if _, ok := top[name.Lexeme]; ok {
		r.errorAt(name, "Variable with this name already exists in this scope.")
	}
	top[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.Locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
	// not found in any scope: treated as global, no entry
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.ExpressionStmt:
		r.resolveExpr(st.Expression)
	case *ast.PrintStmt:
		r.resolveExpr(st.Expression)
	case *ast.VarStmt:
		r.declare(st.Name)
		if st.Initializer != nil {
			r.resolveExpr(st.Initializer)
		}
		r.define(st.Name)
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(st.Statements)
		r.endScope()
	case *ast.IfStmt:
		r.resolveExpr(st.Cond)
		r.resolveStmt(st.Then)
		if st.Else != nil {
			r.resolveStmt(st.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpr(st.Cond)
		r.resolveStmt(st.Body)
	case *ast.FunctionStmt:
		r.declare(st.Name)
		r.define(st.Name)
		r.resolveFunction(st, fnFunction)
	case *ast.ReturnStmt:
		if r.currentFunction == fnNone {
			r.errorAt(st.Keyword, "Can't return from top-level code.")
		}
		if st.Value != nil {
			if r.currentFunction == fnInitializer {
				r.errorAt(st.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(st.Value)
		}
	case *ast.ClassStmt:
		r.resolveClass(st)
	}
}

func (r *Resolver) resolveClass(st *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classClass

	r.declare(st.Name)
	r.define(st.Name)

	if st.Superclass != nil {
		if st.Superclass.Name.Lexeme == st.Name.Lexeme {
			r.errorAt(st.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = classSubclass
		r.resolveExpr(st.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range st.Methods {
		kind := fnMethod
		if method.Name.Lexeme == "init" {
			kind = fnInitializer
		}
		r.resolveFunction(method, kind)
	}

	r.endScope()

	if st.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, kind functionKind) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) resolveExpr(e ast.Expr) {
	switch ex := e.(type) {
	case *ast.VariableExpr:
		if len(r.scopes) > 0 {
			if initialized, ok := r.scopes[len(r.scopes)-1][ex.Name.Lexeme]; ok && !initialized {
				r.errorAt(ex.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(ex, ex.Name)
	case *ast.AssignExpr:
		r.resolveExpr(ex.Value)
		r.resolveLocal(ex, ex.Name)
	case *ast.BinaryExpr:
		r.resolveExpr(ex.Left)
		r.resolveExpr(ex.Right)
	case *ast.LogicalExpr:
		r.resolveExpr(ex.Left)
		r.resolveExpr(ex.Right)
	case *ast.UnaryExpr:
		r.resolveExpr(ex.Operand)
	case *ast.ConditionalExpr:
		r.resolveExpr(ex.Cond)
		r.resolveExpr(ex.Then)
		r.resolveExpr(ex.Else)
	case *ast.GroupingExpr:
		r.resolveExpr(ex.Inner)
	case *ast.LiteralExpr:
		// nothing to resolve
	case *ast.CallExpr:
		r.resolveExpr(ex.Callee)
		for _, a := range ex.Args {
			r.resolveExpr(a)
		}
	case *ast.GetExpr:
		r.resolveExpr(ex.Object)
	case *ast.SetExpr:
		r.resolveExpr(ex.Value)
		r.resolveExpr(ex.Object)
	case *ast.ThisExpr:
		if r.currentClass == classNone {
			r.errorAt(ex.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(ex, ex.Keyword)
	case *ast.SuperExpr:
		if r.currentClass == classNone {
			r.errorAt(ex.Keyword, "Can't use 'super' outside of a class.")
		} else if r.currentClass != classSubclass {
			r.errorAt(ex.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(ex, ex.Keyword)
	}
}
