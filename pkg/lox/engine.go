// Package lox is the embeddable library facade over the interpreter
// pipeline: functional options for construction (New, WithOutput,
// WithGlobal) so the core packages stay consumable outside the CLI.
package lox

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/internal/diag"
	"github.com/cwbudde/go-lox/internal/interp"
	"github.com/cwbudde/go-lox/internal/lexer"
	"github.com/cwbudde/go-lox/internal/parser"
	"github.com/cwbudde/go-lox/internal/resolver"
)

// Engine bundles a persistent global environment (so REPL lines share state)
// with the output writer `print` targets.
type Engine struct {
	out     io.Writer
	globals map[string]interp.Value
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithOutput redirects `print` output away from the default of os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.out = w }
}

// WithGlobal predefines a global binding before any source runs. Any Value
// may be bound, not just functions, since Lox's native bridge is ordinary
// environment entries.
func WithGlobal(name string, value interp.Value) Option {
	return func(e *Engine) { e.globals[name] = value }
}

func New(opts ...Option) *Engine {
	e := &Engine{out: os.Stdout, globals: make(map[string]interp.Value)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result reports whether a Run succeeded; on failure Err holds the causing
// diagnostic and ExitCode follows the CLI convention (65 parse/resolve,
// 70 runtime, 0 success).
type Result struct {
	Success  bool
	ExitCode int
	Err      error
}

// Run lexes, parses, resolves, and interprets source once against a fresh
// global environment seeded with the engine's configured globals.
func (e *Engine) Run(source string) *Result {
	stmts, err := e.compile(source)
	if err != nil {
		return &Result{ExitCode: 65, Err: err}
	}

	locals, err := e.resolveLocals(stmts)
	if err != nil {
		return &Result{ExitCode: 65, Err: err}
	}

	it := interp.New(e.out, locals)
	for name, v := range e.globals {
		it.Globals.Define(name, v)
	}

	if err := it.Interpret(stmts); err != nil {
		return &Result{ExitCode: 70, Err: err}
	}
	return &Result{Success: true, ExitCode: 0}
}

func (e *Engine) compile(source string) ([]ast.Stmt, error) {
	toks, lexErrs := lexer.New(source).Scan()
	if len(lexErrs) > 0 {
		return nil, fmt.Errorf("%s", diag.FormatErrors(lexErrs))
	}
	stmts, parseErrs := parser.New(toks).Parse()
	if len(parseErrs) > 0 {
		return nil, fmt.Errorf("%s", diag.FormatErrors(parseErrs))
	}
	return stmts, nil
}

func (e *Engine) resolveLocals(stmts []ast.Stmt) (map[ast.Expr]int, error) {
	r := resolver.New()
	if errs := r.Resolve(stmts); len(errs) > 0 {
		return nil, fmt.Errorf("%s", diag.FormatErrors(errs))
	}
	return r.Locals, nil
}

// REPL runs a read-eval-print loop against one persistent global
// environment: each line is lexed, parsed, resolved, and interpreted in
// that shared scope; runtime errors print to stderr and the loop continues
// rather than exiting.
func (e *Engine) REPL(r io.Reader, w io.Writer) {
	globals := interp.NewEnvironment()
	interp.DefineNatives(globals)
	for name, v := range e.globals {
		globals.Define(name, v)
	}

	scanner := bufio.NewScanner(r)
	fmt.Fprint(w, "> ")
	for scanner.Scan() {
		stmts, err := e.compile(scanner.Text())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			fmt.Fprint(w, "> ")
			continue
		}
		locals, err := e.resolveLocals(stmts)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			fmt.Fprint(w, "> ")
			continue
		}
		lineInterp := interp.NewWithGlobals(e.out, locals, globals)
		if err := lineInterp.Interpret(stmts); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		fmt.Fprint(w, "> ")
	}
}
