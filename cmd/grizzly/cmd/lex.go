package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shantanunp/grizzly/internal/lexer"
)

var lexShowPos bool

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Tokenize a Grizzly script and print the resulting tokens",
	Args:  cobra.ExactArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
}

func runLex(_ *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", args[0], err)
	}

	l := lexer.New(string(content))
	toks := l.Tokenize()

	for _, t := range toks {
		if lexShowPos {
			fmt.Printf("%-10s %-15q @%d:%d\n", t.Kind, t.Literal, t.Pos.Line, t.Pos.Column)
		} else {
			fmt.Printf("%-10s %q\n", t.Kind, t.Literal)
		}
	}

	if errs := l.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("lexing failed with %d error(s)", len(errs))
	}
	return nil
}
