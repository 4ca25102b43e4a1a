package interp

import (
	"fmt"

	"github.com/cwbudde/go-lox/internal/ast"
)

// LoxFunction is a user-defined function or method value: its declaration
// plus the environment it closed over at definition time. Method closures
// capture the class-definition environment, which after class assignment
// transitively reaches the class itself, forming reference cycles through
// Instance -> Class -> methods -> closure; Go's garbage collector reclaims
// these without any help from the interpreter.
type LoxFunction struct {
	Declaration   *ast.FunctionStmt
	Closure       *Environment
	IsInitializer bool
}

func (f *LoxFunction) String() string { return fmt.Sprintf("<fn %s>", f.Declaration.Name.Lexeme) }
func (f *LoxFunction) Arity() int     { return len(f.Declaration.Params) }

func (f *LoxFunction) Call(in *Interpreter, args []Value) (Value, error) {
	env := Wrap(f.Closure)
	for i, param := range f.Declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := in.executeBlock(f.Declaration.Body, env)
	if err != nil {
		if ret, ok := err.(*returnSignal); ok {
			if f.IsInitializer {
				return f.Closure.GetAt(0, "this"), nil
			}
			return ret.Value, nil
		}
		return nil, err
	}

	if f.IsInitializer {
		return f.Closure.GetAt(0, "this"), nil
	}
	return Nil, nil
}

// Bind produces a copy of the method whose closure is a fresh environment
// enclosing the original closure and binding `this` to instance.
func (f *LoxFunction) Bind(instance *Instance) *LoxFunction {
	env := Wrap(f.Closure)
	env.Define("this", instance)
	return &LoxFunction{Declaration: f.Declaration, Closure: env, IsInitializer: f.IsInitializer}
}
