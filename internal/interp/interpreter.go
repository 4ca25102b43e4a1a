// Package interp evaluates a resolved Lox AST: statement execution, call
// frames, environment chains, and class/instance semantics.
package interp

import (
	"fmt"
	"io"
	"time"

	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/internal/token"
)

// Interpreter owns all evaluation state: the global environment, the
// current environment pointer (swapped on block/function entry and always
// restored on exit), and the resolver's binding-depth table.
// Single-threaded, synchronous, owned by one goroutine.
type Interpreter struct {
	Globals *Environment
	env     *Environment
	locals  map[ast.Expr]int
	out     io.Writer
}

// New builds an interpreter writing `print` output to out, with a fresh
// global environment pre-populated with the native bridge.
func New(out io.Writer, locals map[ast.Expr]int) *Interpreter {
	globals := NewEnvironment()
	DefineNatives(globals)
	return NewWithGlobals(out, locals, globals)
}

// NewWithGlobals builds an interpreter against an already-constructed
// global environment, letting a caller (e.g. a REPL) reuse one environment
// — and therefore one set of top-level bindings — across many Interpret
// calls instead of starting fresh each time.
func NewWithGlobals(out io.Writer, locals map[ast.Expr]int, globals *Environment) *Interpreter {
	return &Interpreter{Globals: globals, env: globals, locals: locals, out: out}
}

// DefineNatives populates globals with the native bridge. Exported so
// callers that need a persistent, reused global environment — e.g. pkg/lox's
// REPL — can set it up once outside of New.
func DefineNatives(globals *Environment) {
	globals.Define("clock", &NativeFunction{
		Name: "clock",
		Arg:  0,
		Fn: func(_ *Interpreter, _ []Value) (Value, error) {
			return NumberValue(float64(time.Now().UnixNano()) / 1e9), nil
		},
	})
}

// Interpret runs every top-level statement in order. It stops and returns
// the first RuntimeError (script mode exits; REPL mode prints and
// continues with the next line — that policy lives in the caller).
func (in *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := in.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execute(s ast.Stmt) error {
	switch st := s.(type) {
	case *ast.ExpressionStmt:
		_, err := in.evaluate(st.Expression)
		return err

	case *ast.PrintStmt:
		v, err := in.evaluate(st.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.out, v.String())
		return nil

	case *ast.VarStmt:
		var value Value = Nil
		if st.Initializer != nil {
			v, err := in.evaluate(st.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		in.env.Define(st.Name.Lexeme, value)
		return nil

	case *ast.BlockStmt:
		return in.executeBlock(st.Statements, Wrap(in.env))

	case *ast.IfStmt:
		cond, err := in.evaluate(st.Cond)
		if err != nil {
			return err
		}
		if truthy(cond) {
			return in.execute(st.Then)
		}
		if st.Else != nil {
			return in.execute(st.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := in.evaluate(st.Cond)
			if err != nil {
				return err
			}
			if !truthy(cond) {
				return nil
			}
			if err := in.execute(st.Body); err != nil {
				return err
			}
		}

	case *ast.FunctionStmt:
		fn := &LoxFunction{Declaration: st, Closure: in.env}
		in.env.Define(st.Name.Lexeme, fn)
		return nil

	case *ast.ReturnStmt:
		var value Value = Nil
		if st.Value != nil {
			v, err := in.evaluate(st.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return &returnSignal{Value: value}

	case *ast.ClassStmt:
		return in.executeClass(st)
	}
	return nil
}

func (in *Interpreter) executeClass(st *ast.ClassStmt) error {
	var superclass *LoxClass
	if st.Superclass != nil {
		sc, err := in.evaluate(st.Superclass)
		if err != nil {
			return err
		}
		class, ok := sc.(*LoxClass)
		if !ok {
			return newRuntimeError(st.Superclass.Name.Line, "Superclass must be a class.")
		}
		superclass = class
	}

	in.env.Define(st.Name.Lexeme, Nil)

	env := in.env
	if st.Superclass != nil {
		env = Wrap(in.env)
		env.Define("super", superclass)
	}

	methods := make(map[string]*LoxFunction, len(st.Methods))
	for _, m := range st.Methods {
		methods[m.Name.Lexeme] = &LoxFunction{
			Declaration:   m,
			Closure:       env,
			IsInitializer: m.Name.Lexeme == "init",
		}
	}

	class := &LoxClass{Name: st.Name.Lexeme, Superclass: superclass, Methods: methods}

	// The `super` scope (`env`, if a superclass is present) is retained only
	// by the method closures built above; in.env itself never changes here.
	return in.env.Assign(st.Name.Lexeme, class)
}

// executeBlock swaps the current environment for env, runs stmts, and
// restores the previous environment on every exit path — normal, Return, or
// RuntimeError.
func (in *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, s := range stmts {
		if err := in.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) evaluate(e ast.Expr) (Value, error) {
	switch ex := e.(type) {
	case *ast.LiteralExpr:
		return literalValue(ex.Value), nil

	case *ast.GroupingExpr:
		return in.evaluate(ex.Inner)

	case *ast.UnaryExpr:
		return in.evalUnary(ex)

	case *ast.BinaryExpr:
		return in.evalBinary(ex)

	case *ast.LogicalExpr:
		return in.evalLogical(ex)

	case *ast.ConditionalExpr:
		cond, err := in.evaluate(ex.Cond)
		if err != nil {
			return nil, err
		}
		if truthy(cond) {
			return in.evaluate(ex.Then)
		}
		return in.evaluate(ex.Else)

	case *ast.VariableExpr:
		return in.lookupVariable(ex.Name, ex)

	case *ast.AssignExpr:
		value, err := in.evaluate(ex.Value)
		if err != nil {
			return nil, err
		}
		if depth, ok := in.locals[ex]; ok {
			in.env.AssignAt(depth, ex.Name.Lexeme, value)
		} else if err := in.Globals.Assign(ex.Name.Lexeme, value); err != nil {
			return nil, newRuntimeError(ex.Name.Line, "%s", err.Error())
		}
		return value, nil

	case *ast.CallExpr:
		return in.evalCall(ex)

	case *ast.GetExpr:
		obj, err := in.evaluate(ex.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := obj.(*Instance)
		if !ok {
			return nil, newRuntimeError(ex.Name.Line, "Only instances have properties.")
		}
		v, err := instance.Get(ex.Name.Lexeme)
		if err != nil {
			return nil, newRuntimeError(ex.Name.Line, "%s", err.Error())
		}
		return v, nil

	case *ast.SetExpr:
		obj, err := in.evaluate(ex.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := obj.(*Instance)
		if !ok {
			return nil, newRuntimeError(ex.Name.Line, "Only instances have fields.")
		}
		value, err := in.evaluate(ex.Value)
		if err != nil {
			return nil, err
		}
		instance.Set(ex.Name.Lexeme, value)
		return value, nil

	case *ast.ThisExpr:
		return in.lookupVariable(ex.Keyword, ex)

	case *ast.SuperExpr:
		return in.evalSuper(ex)
	}
	return nil, fmt.Errorf("unhandled expression type %T", e)
}

func literalValue(v any) Value {
	switch x := v.(type) {
	case nil:
		return Nil
	case bool:
		return BoolValue(x)
	case float64:
		return NumberValue(x)
	case string:
		return StringValue(x)
	default:
		return Nil
	}
}

func (in *Interpreter) lookupVariable(name token.Token, expr ast.Expr) (Value, error) {
	if depth, ok := in.locals[expr]; ok {
		return in.env.GetAt(depth, name.Lexeme), nil
	}
	v, err := in.Globals.Get(name.Lexeme)
	if err != nil {
		return nil, newRuntimeError(name.Line, "%s", err.Error())
	}
	return v, nil
}

func (in *Interpreter) evalUnary(ex *ast.UnaryExpr) (Value, error) {
	operand, err := in.evaluate(ex.Operand)
	if err != nil {
		return nil, err
	}
	switch ex.Op.Kind {
	case token.Minus:
		n, ok := operand.(NumberValue)
		if !ok {
			return nil, newRuntimeError(ex.Op.Line, "Operand must be a number.")
		}
		return -n, nil
	case token.Bang:
		return BoolValue(!truthy(operand)), nil
	}
	return nil, newRuntimeError(ex.Op.Line, "Unknown unary operator.")
}

func (in *Interpreter) evalLogical(ex *ast.LogicalExpr) (Value, error) {
	left, err := in.evaluate(ex.Left)
	if err != nil {
		return nil, err
	}
	if ex.Op.Kind == token.Or {
		if truthy(left) {
			return left, nil
		}
	} else { // and
		if !truthy(left) {
			return left, nil
		}
	}
	return in.evaluate(ex.Right)
}

func (in *Interpreter) evalBinary(ex *ast.BinaryExpr) (Value, error) {
	left, err := in.evaluate(ex.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(ex.Right)
	if err != nil {
		return nil, err
	}
	line := ex.Op.Line

	switch ex.Op.Kind {
	case token.Plus:
		return evalPlus(left, right, line)
	case token.Minus:
		l, r, err := bothNumbers(left, right, line)
		if err != nil {
			return nil, err
		}
		return l - r, nil
	case token.Star:
		l, r, err := bothNumbers(left, right, line)
		if err != nil {
			return nil, err
		}
		return l * r, nil
	case token.Slash:
		l, r, err := bothNumbers(left, right, line)
		if err != nil {
			return nil, err
		}
		if r == 0 {
			return nil, newRuntimeError(line, "Division by zero.")
		}
		return l / r, nil
	case token.Greater:
		l, r, err := bothNumbers(left, right, line)
		if err != nil {
			return nil, err
		}
		return BoolValue(l > r), nil
	case token.GreaterEqual:
		l, r, err := bothNumbers(left, right, line)
		if err != nil {
			return nil, err
		}
		return BoolValue(l >= r), nil
	case token.Less:
		l, r, err := bothNumbers(left, right, line)
		if err != nil {
			return nil, err
		}
		return BoolValue(l < r), nil
	case token.LessEqual:
		l, r, err := bothNumbers(left, right, line)
		if err != nil {
			return nil, err
		}
		return BoolValue(l <= r), nil
	case token.EqualEqual:
		return BoolValue(valuesEqual(left, right)), nil
	case token.BangEqual:
		return BoolValue(!valuesEqual(left, right)), nil
	}
	return nil, newRuntimeError(line, "Unknown binary operator.")
}

func bothNumbers(left, right Value, line int) (NumberValue, NumberValue, error) {
	l, lok := left.(NumberValue)
	r, rok := right.(NumberValue)
	if !lok || !rok {
		return 0, 0, newRuntimeError(line, "Operands must be numbers.")
	}
	return l, r, nil
}

func evalPlus(left, right Value, line int) (Value, error) {
	ln, lok := left.(NumberValue)
	rn, rok := right.(NumberValue)
	if lok && rok {
		return ln + rn, nil
	}
	ls, lsok := left.(StringValue)
	rs, rsok := right.(StringValue)
	if lsok && rsok {
		return ls + rs, nil
	}
	if lsok && rok {
		return ls + StringValue(stringifyForConcat(rn)), nil
	}
	if lok && rsok {
		return StringValue(stringifyForConcat(ln)) + rs, nil
	}
	return nil, newRuntimeError(line, "Operands must be two numbers or two strings.")
}

func (in *Interpreter) evalCall(ex *ast.CallExpr) (Value, error) {
	callee, err := in.evaluate(ex.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(ex.Args))
	for i, a := range ex.Args {
		v, err := in.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, newRuntimeError(ex.Paren.Line, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return nil, newRuntimeError(ex.Paren.Line, "Expected %d arguments but got %d.", callable.Arity(), len(args))
	}
	return callable.Call(in, args)
}

func (in *Interpreter) evalSuper(ex *ast.SuperExpr) (Value, error) {
	depth := in.locals[ex]
	superclass := in.env.GetAt(depth, "super").(*LoxClass)
	instance := in.env.GetAt(depth-1, "this").(*Instance)

	method := superclass.findMethod(ex.Method.Lexeme)
	if method == nil {
		return nil, newRuntimeError(ex.Method.Line, "Undefined property '%s'.", ex.Method.Lexeme)
	}
	return method.Bind(instance), nil
}
