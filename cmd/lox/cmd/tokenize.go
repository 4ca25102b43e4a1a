package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-lox/internal/lexer"
	"github.com/spf13/cobra"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <file>",
	Short: "Scan a Lox file and print its token stream",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		content, err := readSourceFile(args[0])
		if err != nil {
			return err
		}
		toks, errs := lexer.New(content).Scan()
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		for _, t := range toks {
			fmt.Printf("%4d  %s\n", t.Line, t.String())
		}
		if len(errs) > 0 {
			exitWithError("tokenizing failed with %d error(s)", len(errs))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
}
