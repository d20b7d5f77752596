package interp

import "github.com/shantanunp/grizzly/internal/value"

// signal records what a statement's execution wants the enclosing
// control structure to do next: keep going, propagate a return out of
// the function, or unwind the nearest loop.
//
// This is the sentinel design named in SPEC_FULL.md's interpreter
// expansion: rather than using Go panics for break/continue/return,
// every statement execution returns one of these, and ForLoop/WhileLoop/
// FunctionDef interpret only the signals they own, letting others flow
// through unchanged — adapted from the teacher's EvalResult wrapper
// pattern (internal/interp/evaluator/result.go), generalized here from
// wrapping error-or-value to wrapping control-flow-or-value.
type signal int

const (
	signalNone signal = iota
	signalReturn
	signalBreak
	signalContinue
)

// execResult is what executing a single Statement produces.
type execResult struct {
	sig   signal
	value value.Value // populated only when sig == signalReturn
}

var normalResult = execResult{sig: signalNone}

func returning(v value.Value) execResult { return execResult{sig: signalReturn, value: v} }

var breakResult = execResult{sig: signalBreak}
var continueResult = execResult{sig: signalContinue}

func (r execResult) isNormal() bool { return r.sig == signalNone }
