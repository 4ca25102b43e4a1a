package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/internal/diag"
	"github.com/cwbudde/go-lox/internal/interp"
	"github.com/cwbudde/go-lox/internal/lexer"
	"github.com/cwbudde/go-lox/internal/parser"
	"github.com/cwbudde/go-lox/internal/resolver"
	"github.com/cwbudde/go-lox/pkg/lox"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/unicode"
)

var (
	evalExpr string
	dumpAST  bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Lox script or expression, or start the REPL with no arguments",
	Long: `Execute a Lox program from a file, an inline expression, or the REPL.

Examples:
  # Run a script file
  lox run script.lox

  # Evaluate inline source
  lox run -e 'print 1 + 2 * 3;'

  # Start the REPL
  lox run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading from a file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "pretty-print the parsed statement list before executing (debugging)")
}

func runScript(_ *cobra.Command, args []string) error {
	log := logger()

	switch {
	case evalExpr != "":
		return runSource(evalExpr, "<eval>")
	case len(args) == 1:
		content, err := readSourceFile(args[0])
		if err != nil {
			return err
		}
		return runSource(content, args[0])
	default:
		log.Debug("starting REPL")
		engine := lox.New()
		engine.REPL(bufio.NewReader(os.Stdin), os.Stdout)
		return nil
	}
}

// readSourceFile decodes a script through a UTF-8 BOM-aware transform,
// since editor-saved .lox files commonly carry a leading BOM.
func readSourceFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	decoder := unicode.UTF8BOM.NewDecoder()
	decoded, err := decoder.Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s as UTF-8: %w", path, err)
	}
	return string(decoded), nil
}

func runSource(source, filename string) error {
	log := logger()

	toks, lexErrs := lexer.New(source).Scan()
	if len(lexErrs) > 0 {
		printDiagnostics(lexErrs, source)
		os.Exit(65)
	}

	stmts, parseErrs := parser.New(toks).Parse()
	if len(parseErrs) > 0 {
		printDiagnostics(parseErrs, source)
		os.Exit(65)
	}

	if dumpAST {
		dumpStatements(stmts, filename)
	}

	res := resolver.New()
	if resolveErrs := res.Resolve(stmts); len(resolveErrs) > 0 {
		printDiagnostics(resolveErrs, source)
		os.Exit(65)
	}

	log.Debug("running", "file", filename, "statements", len(stmts))

	result := runInterpreted(stmts, res.Locals)
	if result != nil {
		fmt.Fprintln(os.Stderr, result)
		os.Exit(70)
	}
	return nil
}

// dumpStatements pretty-prints each top-level statement's fully-parenthesized
// debug form, mirroring the teacher's --dump-ast output.
func dumpStatements(stmts []ast.Stmt, filename string) {
	fmt.Fprintf(os.Stderr, "AST for %s (%d top-level statement(s)):\n", filename, len(stmts))
	for _, s := range stmts {
		fmt.Fprintln(os.Stderr, s.String())
	}
}

func runInterpreted(stmts []ast.Stmt, locals map[ast.Expr]int) error {
	it := interp.New(os.Stdout, locals)
	return it.Interpret(stmts)
}

func printDiagnostics(errs []*diag.SourceError, source string) {
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, diag.FormatWithContext(e, source))
	}
}
