// Package interp implements Grizzly's tree-walking interpreter: it
// evaluates a compiled *ast.Program against an input value.Value,
// yielding an output value.Value and, in SAFE/tracked mode, a
// validation report of every property/index access performed.
//
// The interpreter supports:
//   - Statement execution (assignment, if/elif/else, for, while,
//     return, break, continue) via the execResult sentinel in
//     control_flow.go instead of Go panics.
//   - Expression evaluation (arithmetic, logical, relational,
//     safe-navigation member/index access, method and function calls).
//   - A flat per-call Frame (no lexical closures) plus a module
//     namespace of user-defined functions and the `re` namespace.
//   - Recursion-depth and statement-count caps that abort execution
//     with a resource-limit error rather than running away.
package interp

import (
	"time"

	"github.com/shantanunp/grizzly/internal/diag"
	"github.com/shantanunp/grizzly/internal/token"
	"github.com/shantanunp/grizzly/internal/tracker"
	"github.com/shantanunp/grizzly/internal/value"
	"github.com/shantanunp/grizzly/pkg/ast"
)

// Interpreter executes one compiled Program. A fresh Interpreter is
// required per concurrent execution (see SPEC_FULL.md §5); there is no
// reset method, and the executed-statement count carries over between
// runs on the same Interpreter.
type Interpreter struct {
	program *ast.Program
	cfg     Config
	re      bool // `import re` was declared

	tracker   *tracker.Tracker
	stmtCount int
	callDepth int
	deadline  time.Time
	hasBudget bool
}

// New creates an Interpreter for program under cfg. Program is
// assumed valid (§3: at least one `transform` function with exactly
// one parameter) — compile-time validation happens in the parser.
func New(program *ast.Program, cfg Config) *Interpreter {
	it := &Interpreter{program: program, cfg: cfg}
	for _, imp := range program.Imports {
		if imp.Module == "re" {
			it.re = true
		}
	}
	return it
}

// Execute runs `transform(input)` and returns the output value,
// discarding any access tracking.
func (it *Interpreter) Execute(input value.Value) (value.Value, error) {
	out, _, err := it.run(input)
	return out, err
}

// ExecuteWithValidation runs `transform(input)` with access tracking
// forced on (regardless of Config.NullHandling/TrackAccess), returning
// the output value, the validation report, and elapsed wall time.
func (it *Interpreter) ExecuteWithValidation(input value.Value) (value.Value, *tracker.Report, time.Duration, error) {
	start := time.Now()
	forced := it.cfg
	forced.TrackAccess = TrackAccessOverride(true)
	it2 := New(it.program, forced)
	out, rep, err := it2.run(input)
	return out, rep, time.Since(start), err
}

func (it *Interpreter) run(input value.Value) (value.Value, *tracker.Report, error) {
	if it.cfg.tracksAccess() {
		it.tracker = tracker.New()
	}
	if it.cfg.TimeBudgetMs > 0 {
		it.deadline = time.Now().Add(time.Duration(it.cfg.TimeBudgetMs) * time.Millisecond)
		it.hasBudget = true
	}

	fn := it.program.FunctionByName("transform")
	if fn == nil {
		return nil, nil, diag.NewRuntimeError(token.Position{Line: 1, Column: 1}, "no transform function defined")
	}

	result, rerr := it.callUserFunction(fn, []value.Value{input}, fn.Pos())
	var report *tracker.Report
	if it.tracker != nil {
		report = it.tracker.Report()
	}
	if rerr != nil {
		return nil, report, rerr
	}
	return result, report, nil
}

// checkBudget enforces the statement counter and optional time
// budget, returning a LimitError when either is exceeded.
func (it *Interpreter) checkBudget(pos token.Position) *diag.LimitError {
	it.stmtCount++
	if it.cfg.StatementLimit > 0 && it.stmtCount > it.cfg.StatementLimit {
		return &diag.LimitError{Kind: diag.LimitStatement, Value: int64(it.stmtCount), Pos: pos}
	}
	if it.hasBudget && time.Now().After(it.deadline) {
		return &diag.LimitError{Kind: diag.LimitTime, Value: int64(it.cfg.TimeBudgetMs), Pos: pos}
	}
	return nil
}
