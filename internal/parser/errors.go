package parser

import (
	"github.com/shantanunp/grizzly/internal/diag"
	"github.com/shantanunp/grizzly/internal/token"
)

// expected records a single "wanted X, got Y" mismatch at pos, turned
// into a *diag.Error by the parser's errorf helper.
func expected(pos token.Position, want string, got token.Token) *diag.Error {
	return diag.NewError(pos, "expected %s, got %s %q", want, got.Kind, got.Literal)
}
