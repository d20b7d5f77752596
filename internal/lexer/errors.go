package lexer

import (
	"fmt"

	"github.com/shantanunp/grizzly/internal/token"
)

// ErrorKind classifies a lexical error.
type ErrorKind string

// Recognised lexical error kinds.
const (
	UnterminatedString ErrorKind = "UNTERMINATED_STRING"
	InconsistentDedent ErrorKind = "INCONSISTENT_DEDENT"
	BadNumber          ErrorKind = "BAD_NUMBER"
	BadEscape          ErrorKind = "BAD_ESCAPE"
)

// Error is a single lexical error with its source position.
type Error struct {
	Kind    ErrorKind
	Message string
	Pos     token.Position
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Pos, e.Message)
}
