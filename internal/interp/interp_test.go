package interp

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-lox/internal/lexer"
	"github.com/cwbudde/go-lox/internal/parser"
	"github.com/cwbudde/go-lox/internal/resolver"
)

func runProgram(t *testing.T, source string) (string, error) {
	t.Helper()
	toks, lexErrs := lexer.New(source).Scan()
	if len(lexErrs) != 0 {
		t.Fatalf("unexpected lex errors: %v", lexErrs)
	}
	stmts, parseErrs := parser.New(toks).Parse()
	if len(parseErrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}
	r := resolver.New()
	if resolveErrs := r.Resolve(stmts); len(resolveErrs) != 0 {
		t.Fatalf("unexpected resolve errors: %v", resolveErrs)
	}
	var out strings.Builder
	it := New(&out, r.Locals)
	err := it.Interpret(stmts)
	return out.String(), err
}

func TestPrintArithmeticPrecedence(t *testing.T) {
	out, err := runProgram(t, "print 1 + 2 * 3;")
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "7\n" {
		t.Errorf("got %q", out)
	}
}

func TestIntegralNumberPrintsWithoutDecimal(t *testing.T) {
	out, err := runProgram(t, "print 6 / 2;")
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "3\n" {
		t.Errorf("got %q", out)
	}
}

func TestStringConcatenation(t *testing.T) {
	out, err := runProgram(t, `print "foo" + "bar";`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "foobar\n" {
		t.Errorf("got %q", out)
	}
}

func TestStringPlusNumberStringifies(t *testing.T) {
	out, err := runProgram(t, `print "count: " + 3;`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "count: 3\n" {
		t.Errorf("got %q", out)
	}
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	_, err := runProgram(t, "print 1 / 0;")
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	if !strings.Contains(err.Error(), "Division by zero.") {
		t.Errorf("got error %q", err)
	}
}

func TestUnaryMinusOnNonNumberIsRuntimeError(t *testing.T) {
	_, err := runProgram(t, `print -"x";`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	if !strings.Contains(err.Error(), "Operand must be a number.") {
		t.Errorf("got error %q", err)
	}
}

func TestTruthiness(t *testing.T) {
	out, err := runProgram(t, `
		if (nil) print "a"; else print "b";
		if (false) print "c"; else print "d";
		if (0) print "e"; else print "f";
		if ("") print "g"; else print "h";
	`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "b\nd\ne\ng\n" {
		t.Errorf("got %q", out)
	}
}

func TestNilEqualityIsSpecialCased(t *testing.T) {
	out, err := runProgram(t, `
		print nil == nil;
		print nil == false;
		print nil == 0;
	`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "true\nfalse\nfalse\n" {
		t.Errorf("got %q", out)
	}
}

func TestClosureCapturesEnclosingVariable(t *testing.T) {
	out, err := runProgram(t, `
		fun makeCounter() {
			var count = 0;
			fun inc() {
				count = count + 1;
				return count;
			}
			return inc;
		}
		var counter = makeCounter();
		print counter();
		print counter();
	`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "1\n2\n" {
		t.Errorf("got %q", out)
	}
}

func TestClassInstantiationAndMethodCall(t *testing.T) {
	out, err := runProgram(t, `
		class Greeter {
			init(name) {
				this.name = name;
			}
			greet() {
				print "hello " + this.name;
			}
		}
		var g = Greeter("world");
		g.greet();
	`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "hello world\n" {
		t.Errorf("got %q", out)
	}
}

func TestInitializerForcesReturnOfThis(t *testing.T) {
	out, err := runProgram(t, `
		class Box {
			init(v) {
				this.v = v;
				return;
			}
		}
		var b = Box(5);
		print b.v;
	`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "5\n" {
		t.Errorf("got %q", out)
	}
}

func TestSuperclassMethodAndOverride(t *testing.T) {
	out, err := runProgram(t, `
		class Animal {
			speak() {
				print "...";
			}
		}
		class Dog < Animal {
			speak() {
				super.speak();
				print "woof";
			}
		}
		Dog().speak();
	`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "...\nwoof\n" {
		t.Errorf("got %q", out)
	}
}

func TestUndefinedPropertyIsRuntimeError(t *testing.T) {
	_, err := runProgram(t, `
		class A {}
		print A().missing;
	`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	if !strings.Contains(err.Error(), "Undefined property 'missing'.") {
		t.Errorf("got error %q", err)
	}
}

func TestCallArityMismatchIsRuntimeError(t *testing.T) {
	_, err := runProgram(t, `
		fun f(a, b) { return a + b; }
		f(1);
	`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	if !strings.Contains(err.Error(), "Expected 2 arguments but got 1.") {
		t.Errorf("got error %q", err)
	}
}

func TestWhileLoopWithBlockLocalVariable(t *testing.T) {
	out, err := runProgram(t, `
		var i = 0;
		while (i < 3) {
			var shadow = i;
			print shadow;
			i = i + 1;
		}
	`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "0\n1\n2\n" {
		t.Errorf("got %q", out)
	}
}

func TestClockNativeIsCallable(t *testing.T) {
	out, err := runProgram(t, `print clock() >= 0;`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "true\n" {
		t.Errorf("got %q", out)
	}
}
