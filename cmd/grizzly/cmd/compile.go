package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shantanunp/grizzly/internal/diag"
	"github.com/shantanunp/grizzly/pkg/grizzly"
)

var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Compile a Grizzly script, reporting any parse errors",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
}

func runCompile(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	if _, err := grizzly.Compile(string(content)); err != nil {
		var rerr *diag.RuntimeError
		var derr *diag.Error
		switch {
		case errors.As(err, &rerr):
			fmt.Fprintln(os.Stderr, rerr.Err.WithSource(string(content)).Format())
		case errors.As(err, &derr):
			fmt.Fprintln(os.Stderr, derr.WithSource(string(content)).Format())
		default:
			fmt.Fprintln(os.Stderr, err)
		}
		return fmt.Errorf("compilation of %s failed", filename)
	}

	fmt.Printf("%s compiled OK\n", filename)
	return nil
}
