package lexer

import (
	"testing"

	"github.com/cwbudde/miniscript/pkg/token"
)

func TestTokenizeEndsWithEOF(t *testing.T) {
	tests := []string{
		"",
		"var x = 1;",
		"// just a comment",
	}

	for _, src := range tests {
		toks := New(src).Tokenize()
		last := toks[len(toks)-1]
		if last.Kind != token.EOF {
			t.Fatalf("Tokenize(%q) last token = %v, want EOF", src, last.Kind)
		}
		for _, tok := range toks[:len(toks)-1] {
			if tok.Kind == token.EOF {
				t.Fatalf("Tokenize(%q) produced EOF before the end", src)
			}
		}
	}
}

func TestTokenizeDeclarationAndPrint(t *testing.T) {
	input := "var x = 10; print x;"

	want := []token.Kind{
		token.VAR, token.ID, token.ASSIGN, token.INT_LIT, token.SEMICOLON,
		token.PRINT, token.ID, token.SEMICOLON, token.EOF,
	}

	toks := New(input).Tokenize()
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: kind = %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestTokenizeLineComment(t *testing.T) {
	input := "var x = 1; // trailing comment\nvar y = 2;"

	toks := New(input).Tokenize()
	for _, tok := range toks {
		if tok.Lexeme == "//" || tok.Kind == token.ILLEGAL {
			t.Fatalf("comment leaked into token stream: %v", toks)
		}
	}
}

func TestTokenizeKeywords(t *testing.T) {
	input := "var int float bool string if else while for func return print input true false"

	want := []token.Kind{
		token.VAR, token.INT, token.FLOAT, token.BOOL, token.STRING,
		token.IF, token.ELSE, token.WHILE, token.FOR, token.FUNC,
		token.RETURN, token.PRINT, token.INPUT, token.TRUE, token.FALSE,
		token.EOF,
	}

	toks := New(input).Tokenize()
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: kind = %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestTokenizeLineColumnTracking(t *testing.T) {
	input := "var x = 1;\nvar y = 2;"

	toks := New(input).Tokenize()
	// "var" on the second line starts at line 2, column 1.
	for _, tok := range toks {
		if tok.Lexeme == "y" {
			if tok.Line != 2 {
				t.Errorf("identifier y: line = %d, want 2", tok.Line)
			}
			return
		}
	}
	t.Fatal("identifier y not found in token stream")
}
