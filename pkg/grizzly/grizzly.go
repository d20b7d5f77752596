// Package grizzly is the embeddable public surface of the engine: a
// script is Compiled once into a *Program and Executed many times
// against different inputs, per SPEC_FULL.md §6.
package grizzly

import (
	"time"

	"github.com/shantanunp/grizzly/internal/interp"
	"github.com/shantanunp/grizzly/internal/parser"
	"github.com/shantanunp/grizzly/internal/tracker"
	"github.com/shantanunp/grizzly/internal/value"
	"github.com/shantanunp/grizzly/pkg/ast"
)

// Program is a compiled Grizzly script, safe to Execute repeatedly and
// concurrently (the compiled AST is read-only; each Execute call gets
// its own interpreter state).
type Program struct {
	ast *ast.Program
}

// Compile parses source into a Program. It fails with a parse error if
// the source is malformed or does not define a `transform` function.
func Compile(source string) (*Program, error) {
	prog, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return &Program{ast: prog}, nil
}

// NullHandling selects how `.`/`[` behave when applied to a null
// value; re-exported from internal/interp so callers never import an
// internal package directly.
type NullHandling = interp.NullHandling

// Recognised null-handling modes.
const (
	Strict = interp.Strict
	Safe   = interp.Safe
	Silent = interp.Silent
)

// Config holds the engine options enumerated in SPEC_FULL.md §6.
type Config = interp.Config

// DefaultConfig returns the engine's documented defaults.
func DefaultConfig() Config { return interp.DefaultConfig() }

// Report is a completed execution's validation log; re-exported from
// internal/tracker.
type Report = tracker.Report

// Execute runs the program's `transform` function against input using
// cfg, discarding any access tracking.
func (p *Program) Execute(input value.Value, cfg Config) (value.Value, error) {
	it := interp.New(p.ast, cfg)
	return it.Execute(input)
}

// ExecuteWithValidation runs the program with access tracking forced
// on, returning the output value, the validation report, and elapsed
// wall time.
func (p *Program) ExecuteWithValidation(input value.Value, cfg Config) (value.Value, *Report, time.Duration, error) {
	it := interp.New(p.ast, cfg)
	return it.ExecuteWithValidation(input)
}
