package cmd

import (
	"fmt"

	"github.com/cwbudde/go-lox/internal/lexer"
	"github.com/cwbudde/go-lox/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Scan and parse a Lox file and print its parsed statements",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		content, err := readSourceFile(args[0])
		if err != nil {
			return err
		}
		toks, lexErrs := lexer.New(content).Scan()
		if len(lexErrs) > 0 {
			printDiagnostics(lexErrs, content)
			exitWithError("tokenizing failed with %d error(s)", len(lexErrs))
		}
		stmts, parseErrs := parser.New(toks).Parse()
		if len(parseErrs) > 0 {
			printDiagnostics(parseErrs, content)
			exitWithError("parsing failed with %d error(s)", len(parseErrs))
		}
		fmt.Printf("parsed %d top-level statement(s):\n", len(stmts))
		for _, s := range stmts {
			fmt.Println(s.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
