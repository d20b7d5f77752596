// Package diag formats Grizzly's compile and runtime errors with
// source context: a line/column header, the offending source line,
// and a caret pointing at the column.
//
// This is adapted from the teacher repository's internal/errors
// package (CompilerError.Format/FormatWithContext), generalized to
// cover both parse-time and run-time errors through one formatter
// instead of two.
package diag

import (
	"fmt"
	"strings"

	"github.com/shantanunp/grizzly/internal/token"
)

// Error is a single diagnostic: a message at a source position,
// optionally rendered against the original source text.
type Error struct {
	Message string
	Source  string
	Pos     token.Position
}

// NewError creates a diagnostic at pos, without source context
// attached (use WithSource to attach it for rendering).
func NewError(pos token.Position, format string, args ...any) *Error {
	return &Error{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// WithSource returns a copy of e with source attached for rendering.
func (e *Error) WithSource(source string) *Error {
	cp := *e
	cp.Source = source
	return &cp
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Format() }

// Format renders the error with a line:column header and, if source
// is attached, the offending line with a caret under the column.
func (e *Error) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)

	line := e.sourceLine(e.Pos.Line)
	if line == "" {
		return sb.String()
	}
	sb.WriteString("\n")
	prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
	sb.WriteString(prefix)
	sb.WriteString(line)
	sb.WriteString("\n")
	col := e.Pos.Column
	if col < 1 {
		col = 1
	}
	sb.WriteString(strings.Repeat(" ", len(prefix)+col-1))
	sb.WriteString("^")
	return sb.String()
}

func (e *Error) sourceLine(n int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// FormatAll formats a batch of errors, numbering them when there is
// more than one.
func FormatAll(errs []*Error) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors:\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&sb, "[%d/%d] %s\n", i+1, len(errs), e.Format())
		if i < len(errs)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// RuntimeError is a failure raised while executing a compiled
// program: a type mismatch, unknown name, division by zero, an
// out-of-loop break/continue, bad builtin arguments, or a failed
// regex compile. It carries the statement's line and, when the
// failure happened mid-access-chain, the textual path that broke.
type RuntimeError struct {
	Err  *Error
	Path string
}

// NewRuntimeError creates a RuntimeError at pos with no access path.
func NewRuntimeError(pos token.Position, format string, args ...any) *RuntimeError {
	return &RuntimeError{Err: NewError(pos, format, args...)}
}

// WithPath attaches the broken access path to a RuntimeError.
func (e *RuntimeError) WithPath(path string) *RuntimeError {
	cp := *e
	cp.Path = path
	return &cp
}

// Pos returns the error's source position.
func (e *RuntimeError) Pos() token.Position { return e.Err.Pos }

func (e *RuntimeError) Error() string {
	if e.Path == "" {
		return e.Err.Format()
	}
	return e.Err.Format() + fmt.Sprintf(" (path: %s)", e.Path)
}

// LimitKind identifies which resource cap a LimitError tripped.
type LimitKind string

// Recognised resource-limit kinds.
const (
	LimitRecursion LimitKind = "recursion"
	LimitStatement LimitKind = "statement"
	LimitTime      LimitKind = "time"
)

// LimitError is raised when recursion depth, statement count, or the
// optional time budget is exceeded. No partial output is returned
// when this error is raised.
type LimitError struct {
	Kind  LimitKind
	Value int64
	Pos   token.Position
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s limit exceeded (%d) at %d:%d", e.Kind, e.Value, e.Pos.Line, e.Pos.Column)
}
