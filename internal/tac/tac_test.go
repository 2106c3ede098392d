package tac

import (
	"testing"

	"github.com/cwbudde/miniscript/internal/lexer"
	"github.com/cwbudde/miniscript/internal/parser"
)

func generateFrom(t *testing.T, src string) []Instruction {
	t.Helper()
	toks := lexer.New(src).Tokenize()
	p := parser.New(toks)
	program := p.Parse()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, p.Errors())
	}
	return New().Generate(program)
}

// S1 — declaration and print (§8 scenario 1).
func TestGenerateDeclarationAndPrint(t *testing.T) {
	instrs := generateFrom(t, `var x = 10; print x;`)
	want := []string{"x = ASSIGN 10", "PRINT x"}

	if len(instrs) != len(want) {
		t.Fatalf("got %d instructions, want %d:\n%s", len(instrs), len(want), Listing(instrs))
	}
	for i, w := range want {
		if instrs[i].String() != w {
			t.Errorf("instr[%d] = %q, want %q", i, instrs[i].String(), w)
		}
	}
}

// S2 — arithmetic expression precedence in TAC lowering (§8 scenario 2).
func TestGenerateArithmeticPrecedence(t *testing.T) {
	instrs := generateFrom(t, `var x = 5; var y = 10; var z = x + y * 2;`)
	last3 := instrs[len(instrs)-3:]

	want := []string{"t1 = y * 2", "t2 = x + t1", "z = ASSIGN t2"}
	for i, w := range want {
		if last3[i].String() != w {
			t.Errorf("instr = %q, want %q\nfull listing:\n%s", last3[i].String(), w, Listing(instrs))
		}
	}
}

// S3 — if/else branch lowering (§8 scenario 3).
func TestGenerateIfElse(t *testing.T) {
	instrs := generateFrom(t, `var x = 1; if (x == 1) { print 1; } else { print 2; }`)

	contains := func(s string) bool {
		for _, instr := range instrs {
			if instr.String() == s {
				return true
			}
		}
		return false
	}

	for _, want := range []string{
		"t1 = x == 1",
		"IF_FALSE t1 L1",
		"PRINT 1",
		"GOTO L2",
		"LABEL L1",
		"PRINT 2",
		"LABEL L2",
	} {
		if !contains(want) {
			t.Errorf("listing missing %q:\n%s", want, Listing(instrs))
		}
	}
}

// S4 — while-loop lowering (§8 scenario 4).
func TestGenerateWhileLoop(t *testing.T) {
	instrs := generateFrom(t, `var i = 0; while (i < 10) { i = i + 1; }`)

	want := []string{
		"LABEL L1",
		"t1 = i < 10",
		"IF_FALSE t1 L2",
		"t2 = i + 1",
		"i = ASSIGN t2",
		"GOTO L1",
		"LABEL L2",
	}
	got := instrs[len(instrs)-len(want):]
	for i, w := range want {
		if got[i].String() != w {
			t.Errorf("instr[%d] = %q, want %q\nfull listing:\n%s", i, got[i].String(), w, Listing(instrs))
		}
	}
}

// S5 — function declaration lowering (§8 scenario 5).
func TestGenerateFunctionDeclaration(t *testing.T) {
	instrs := generateFrom(t, `func add(a, b) { return a + b; }`)

	want := []string{
		"FUNCTION add",
		"PARAM a",
		"PARAM b",
		"t1 = a + b",
		"RETURN t1",
		"RETURN",
	}
	if len(instrs) != len(want) {
		t.Fatalf("got %d instructions, want %d:\n%s", len(instrs), len(want), Listing(instrs))
	}
	for i, w := range want {
		if instrs[i].String() != w {
			t.Errorf("instr[%d] = %q, want %q", i, instrs[i].String(), w)
		}
	}
}

func TestGenerateFunctionCall(t *testing.T) {
	instrs := generateFrom(t, `print add(1, 2);`)

	want := []string{"ARG 1", "ARG 2", "t1 = CALL add", "PRINT t1"}
	if len(instrs) != len(want) {
		t.Fatalf("got %d instructions, want %d:\n%s", len(instrs), len(want), Listing(instrs))
	}
	for i, w := range want {
		if instrs[i].String() != w {
			t.Errorf("instr[%d] = %q, want %q", i, instrs[i].String(), w)
		}
	}
}

func TestGenerateUnaryOp(t *testing.T) {
	instrs := generateFrom(t, `var x = -5; print !true;`)

	want := []string{"t1 = - 5", "x = ASSIGN t1", "t2 = ! true", "PRINT t2"}
	if len(instrs) != len(want) {
		t.Fatalf("got %d instructions, want %d:\n%s", len(instrs), len(want), Listing(instrs))
	}
	for i, w := range want {
		if instrs[i].String() != w {
			t.Errorf("instr[%d] = %q, want %q", i, instrs[i].String(), w)
		}
	}
}

// Temporaries and labels are strictly increasing with no gaps: §8 invariant 4.
func TestGenerateTempAndLabelCountersIncreaseWithoutGaps(t *testing.T) {
	instrs := generateFrom(t, `var a = 1 + 2 + 3; if (a > 0) { print a; }`)

	seenTemp, seenLabel := 0, 0
	for _, instr := range instrs {
		for _, name := range []string{instr.Arg1, instr.Arg2, instr.Result} {
			if len(name) >= 2 && name[0] == 't' {
				if n := parseIndex(name[1:]); n == seenTemp+1 {
					seenTemp = n
				} else if n > seenTemp+1 {
					t.Errorf("temporary %s appears after t%d: gap in numbering", name, seenTemp)
				}
			}
			if len(name) >= 2 && name[0] == 'L' {
				if n := parseIndex(name[1:]); n == seenLabel+1 {
					seenLabel = n
				} else if n > seenLabel+1 {
					t.Errorf("label %s appears after L%d: gap in numbering", name, seenLabel)
				}
			}
		}
	}
	if seenTemp == 0 {
		t.Error("expected at least one temporary to be allocated")
	}
	if seenLabel == 0 {
		t.Error("expected at least one label to be allocated")
	}
}

func parseIndex(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return -1
		}
		n = n*10 + int(c-'0')
	}
	return n
}

func TestListingFormatIsStable(t *testing.T) {
	instrs := generateFrom(t, `var x = 10; print x;`)
	got := Listing(instrs)
	want := "  0: x = ASSIGN 10\n  1: PRINT x"
	if got != want {
		t.Errorf("Listing() = %q, want %q", got, want)
	}
}

func TestEmptyProgramProducesNoInstructions(t *testing.T) {
	instrs := generateFrom(t, ``)
	if len(instrs) != 0 {
		t.Errorf("got %d instructions for empty program, want 0", len(instrs))
	}
}
