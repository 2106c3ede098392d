package lexer

import (
	"testing"

	"github.com/cwbudde/miniscript/pkg/token"
)

func TestTokenizeStringLiteralEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"hello"`, "hello"},
		{`"line\nbreak"`, "line\nbreak"},
		{`"a\tb"`, "a\tb"},
		{`"back\\slash"`, `back\slash`},
		{`"she said \"hi\""`, `she said "hi"`},
		{`'single \'quoted\''`, `single 'quoted'`},
		{`"unknown \x escape"`, `unknown x escape`},
	}

	for _, tt := range tests {
		toks := New(tt.input).Tokenize()
		tok := toks[0]
		if tok.Kind != token.STRING_LIT {
			t.Fatalf("Tokenize(%q): kind = %v, want STRING_LIT", tt.input, tok.Kind)
		}
		if tok.Literal != tt.want {
			t.Errorf("Tokenize(%q): literal = %q, want %q", tt.input, tok.Literal, tt.want)
		}
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	l := New(`"unterminated`)
	toks := l.Tokenize()

	if len(toks) != 1 || toks[0].Kind != token.EOF {
		t.Fatalf("expected scanning to stop at EOF, got %v", toks)
	}
	errs := l.Errors()
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	if errs[0] != "Unterminated string at line 1" {
		t.Errorf("error = %q, want %q", errs[0], "Unterminated string at line 1")
	}
}

func TestTokenizeMixedQuoteStyles(t *testing.T) {
	toks := New(`'a' "b"`).Tokenize()
	if toks[0].Literal != "a" || toks[1].Literal != "b" {
		t.Fatalf("unexpected literals: %v", toks[:2])
	}
}
