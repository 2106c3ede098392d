package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/miniscript/internal/errors"
	"github.com/cwbudde/miniscript/internal/lexer"
	"github.com/cwbudde/miniscript/internal/parser"
	"github.com/cwbudde/miniscript/internal/report"
	"github.com/cwbudde/miniscript/internal/semantic"
	"github.com/cwbudde/miniscript/internal/tac"
)

var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Run the full MiniScript compiler pipeline",
	Long: `Compile runs the lexer, parser, semantic analyzer, and TAC generator
over a MiniScript source file in sequence, printing each stage's output
(unless --quiet is given) and stopping at the first stage that fails.

Examples:
  miniscript compile script.ms
  miniscript compile --quiet script.ms
  miniscript compile --format json script.ms
  miniscript compile --format json --filter tac.0.op script.ms`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	input := string(content)

	banner := func(title string) {
		if !cfg.Quiet && cfg.Format != "json" {
			fmt.Printf("== %s ==\n", title)
		}
	}

	// Stage 1: lex.
	banner("Tokens")
	l := lexer.New(input)
	toks := l.Tokenize()
	if len(l.Errors()) > 0 {
		return reportStageFailure(l.Errors(), input, filename, "lexing")
	}
	if !cfg.Quiet && cfg.Format != "json" {
		for _, tok := range toks {
			printToken(tok)
		}
	}

	// Stage 2: parse.
	banner("Parse")
	p := parser.New(toks)
	program := p.Parse()
	if len(p.Errors()) > 0 {
		return reportStageFailure(p.Errors(), input, filename, "parsing")
	}
	if !cfg.Quiet && cfg.Format != "json" {
		fmt.Println(program.String())
	}

	// Stage 3: semantic analysis.
	banner("Semantic analysis")
	a := semantic.NewAnalyzer()
	if !a.Analyze(program) {
		return reportStageFailure(a.Errors(), input, filename, "semantic analysis")
	}
	if !cfg.Quiet && cfg.Format != "json" {
		for _, sym := range a.Symbols().All() {
			fmt.Printf("%s : %s (scope %d)\n", sym.Name, sym.DataType, sym.ScopeLevel)
		}
	}

	// Stage 4: TAC generation.
	banner("TAC")
	instrs := tac.New().Generate(program)
	if !cfg.Quiet && cfg.Format != "json" {
		fmt.Println(tac.Listing(instrs))
	}

	if cfg.Format == "json" {
		b := report.NewBuilder()
		for i, tok := range toks {
			b.AddToken(i, tok)
		}
		b.SetStatementCount(len(program.Statements))
		for i, sym := range a.Symbols().All() {
			b.AddSymbol(i, sym)
		}
		for i, instr := range instrs {
			b.AddInstruction(i, instr)
		}
		return printReport(b, "compile")
	}

	return nil
}

func reportStageFailure(stageErrors []string, source, filename, stage string) error {
	compilerErrors := errors.FromStringErrors(stageErrors, source, filename)
	fmt.Fprint(os.Stderr, errors.FormatErrors(compilerErrors, true))
	fmt.Fprintln(os.Stderr)
	return fmt.Errorf("%s failed with %d error(s)", stage, len(stageErrors))
}
