package lexer

import (
	"testing"

	"github.com/shantanunp/grizzly/internal/token"
)

func TestTokenizeSimpleAssignment(t *testing.T) {
	input := "x = 5\n"

	tests := []struct {
		kind    token.Kind
		literal string
	}{
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.NUMBER, "5"},
		{token.NEWLINE, ""},
		{token.EOF, ""},
	}

	toks := New(input).Tokenize()
	for i, tt := range tests {
		if i >= len(toks) {
			t.Fatalf("ran out of tokens at index %d, want %v", i, tt.kind)
		}
		if toks[i].Kind != tt.kind {
			t.Errorf("token[%d].Kind = %v, want %v (literal=%q)", i, toks[i].Kind, tt.kind, toks[i].Literal)
		}
		if tt.literal != "" && toks[i].Literal != tt.literal {
			t.Errorf("token[%d].Literal = %q, want %q", i, toks[i].Literal, tt.literal)
		}
	}
}

func TestTokenizeKeywordsAndOperators(t *testing.T) {
	input := "def transform(INPUT):\n    return not a == b and c or d\n"

	toks := New(input).Tokenize()
	var kinds []token.Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}

	want := []token.Kind{
		token.DEF, token.IDENT, token.LPAREN, token.IDENT, token.RPAREN, token.COLON, token.NEWLINE,
		token.INDENT,
		token.RETURN, token.NOT, token.IDENT, token.EQ, token.IDENT, token.AND, token.IDENT, token.OR, token.IDENT, token.NEWLINE,
	}
	if len(kinds) < len(want) {
		t.Fatalf("got %d tokens, want at least %d: %v", len(kinds), len(want), kinds)
	}
	for i, w := range want {
		if kinds[i] != w {
			t.Errorf("token[%d] = %v, want %v", i, kinds[i], w)
		}
	}
}

func TestTokenizeSafeNavigationAndSlash(t *testing.T) {
	input := "a?.b?[0] // c\n"

	toks := New(input).Tokenize()
	want := []token.Kind{token.IDENT, token.QDOT, token.IDENT, token.QBRACK, token.NUMBER, token.RBRACK, token.DSLASH, token.IDENT, token.NEWLINE}
	if len(toks) < len(want) {
		t.Fatalf("got %d tokens, want at least %d: %v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Kind != w {
			t.Errorf("token[%d] = %v, want %v", i, toks[i].Kind, w)
		}
	}
}

func TestTokenizeStringEscapes(t *testing.T) {
	input := `"a\nb"` + "\n"
	toks := New(input).Tokenize()
	if len(toks) < 1 || toks[0].Kind != token.STRING {
		t.Fatalf("expected a STRING token, got %v", toks)
	}
	if toks[0].Literal != "a\nb" {
		t.Errorf("literal = %q, want %q", toks[0].Literal, "a\nb")
	}
}

func TestTokenizeIndentDedent(t *testing.T) {
	input := "if x:\n    y = 1\nz = 2\n"
	toks := New(input).Tokenize()

	var kinds []token.Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}

	foundIndent, foundDedent := false, false
	for _, k := range kinds {
		if k == token.INDENT {
			foundIndent = true
		}
		if k == token.DEDENT {
			foundDedent = true
		}
	}
	if !foundIndent {
		t.Errorf("expected an INDENT token, got %v", kinds)
	}
	if !foundDedent {
		t.Errorf("expected a DEDENT token, got %v", kinds)
	}
}

// TestTokenizeTerminates is a crude check of §8's "tokenize terminates
// in O(n) time" invariant: tokenizing a large but finite source must
// return within the test's own deadline, never hang.
func TestTokenizeTerminates(t *testing.T) {
	var input string
	for i := 0; i < 2000; i++ {
		input += "x = 1\n"
	}
	toks := New(input).Tokenize()
	if len(toks) == 0 {
		t.Fatal("expected a non-empty token stream")
	}
	if toks[len(toks)-1].Kind != token.EOF {
		t.Errorf("last token = %v, want EOF", toks[len(toks)-1].Kind)
	}
}

func TestTokenizeUnterminatedStringRecordsError(t *testing.T) {
	l := New(`"unterminated`)
	l.Tokenize()
	if len(l.Errors()) == 0 {
		t.Fatal("expected at least one lexical error for an unterminated string")
	}
}
