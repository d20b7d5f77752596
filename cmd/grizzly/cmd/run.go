package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/shantanunp/grizzly/internal/diag"
	"github.com/shantanunp/grizzly/internal/jsonbridge"
	"github.com/shantanunp/grizzly/pkg/grizzly"
)

var (
	runInputFile    string
	runNullHandling string
	runReport       bool
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Compile and run a Grizzly script against a JSON input",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runInputFile, "input", "", "JSON input file (required)")
	runCmd.Flags().StringVar(&runNullHandling, "null-handling", "safe", "strict|safe|silent")
	runCmd.Flags().BoolVar(&runReport, "report", false, "print the validation report alongside the output")
	_ = runCmd.MarkFlagRequired("input")
}

func parseNullHandling(s string) (grizzly.NullHandling, error) {
	switch s {
	case "strict":
		return grizzly.Strict, nil
	case "safe":
		return grizzly.Safe, nil
	case "silent":
		return grizzly.Silent, nil
	default:
		return grizzly.Safe, fmt.Errorf("unrecognised --null-handling %q", s)
	}
}

func runRun(_ *cobra.Command, args []string) error {
	filename := args[0]
	source, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	inputData, err := os.ReadFile(runInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file %s: %w", runInputFile, err)
	}

	nh, err := parseNullHandling(runNullHandling)
	if err != nil {
		return err
	}

	prog, err := grizzly.Compile(string(source))
	if err != nil {
		printRunError(err, string(source))
		return fmt.Errorf("compiling %s failed", filename)
	}

	input, err := jsonbridge.Decode(inputData)
	if err != nil {
		return fmt.Errorf("failed to decode input JSON: %w", err)
	}

	cfg := grizzly.DefaultConfig()
	cfg.NullHandling = nh

	var outJSON []byte
	var elapsed time.Duration

	if runReport {
		out, report, dur, err := prog.ExecuteWithValidation(input, cfg)
		if err != nil {
			printRunError(err, string(source))
			return fmt.Errorf("executing %s failed", filename)
		}
		elapsed = dur
		outJSON, err = jsonbridge.MarshalOrdered(out)
		if err != nil {
			return fmt.Errorf("failed to serialize output: %w", err)
		}
		reportJSON, err := report.ToJSON()
		if err != nil {
			return fmt.Errorf("failed to serialize report: %w", err)
		}
		// Splice host metadata (elapsed time, template path) onto the
		// engine's fixed report shape via sjson instead of re-marshaling
		// the whole structure by hand.
		reportJSON, err = sjson.Set(reportJSON, "elapsedMs", elapsed.Milliseconds())
		if err != nil {
			return fmt.Errorf("failed to annotate report: %w", err)
		}
		reportJSON, err = sjson.Set(reportJSON, "template", filename)
		if err != nil {
			return fmt.Errorf("failed to annotate report: %w", err)
		}
		fmt.Println(string(outJSON))
		fmt.Fprintln(os.Stderr, reportJSON)
		return nil
	}

	out, err := prog.Execute(input, cfg)
	if err != nil {
		printRunError(err, string(source))
		return fmt.Errorf("executing %s failed", filename)
	}
	outJSON, err = jsonbridge.MarshalOrdered(out)
	if err != nil {
		return fmt.Errorf("failed to serialize output: %w", err)
	}
	fmt.Println(string(outJSON))
	return nil
}

func printRunError(err error, source string) {
	var rerr *diag.RuntimeError
	var derr *diag.Error
	var lerr *diag.LimitError
	switch {
	case errors.As(err, &rerr):
		fmt.Fprintln(os.Stderr, rerr.Err.WithSource(source).Format())
	case errors.As(err, &derr):
		fmt.Fprintln(os.Stderr, derr.WithSource(source).Format())
	case errors.As(err, &lerr):
		fmt.Fprintln(os.Stderr, lerr.Error())
	default:
		fmt.Fprintln(os.Stderr, err)
	}
}
