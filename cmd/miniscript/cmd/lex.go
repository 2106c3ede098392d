package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/miniscript/internal/errors"
	"github.com/cwbudde/miniscript/internal/lexer"
	"github.com/cwbudde/miniscript/internal/report"
	"github.com/cwbudde/miniscript/pkg/token"
)

var (
	showPos  bool
	showKind bool
)

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Tokenize a MiniScript file",
	Long: `Tokenize (lex) a MiniScript program and print the resulting tokens.

Examples:
  miniscript lex script.ms
  miniscript lex --show-pos --show-kind script.ms
  miniscript lex --format json script.ms`,
	Args: cobra.ExactArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showKind, "show-kind", false, "show token kind names")
}

func runLex(cmd *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	input := string(content)

	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "Tokenizing: %s\n", filename)
	}

	l := lexer.New(input)
	toks := l.Tokenize()

	if len(l.Errors()) > 0 {
		compilerErrors := errors.FromStringErrors(l.Errors(), input, filename)
		fmt.Fprint(os.Stderr, errors.FormatErrors(compilerErrors, true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("lexing failed with %d error(s)", len(l.Errors()))
	}

	if cfg.Format == "json" {
		b := report.NewBuilder()
		for i, tok := range toks {
			b.AddToken(i, tok)
		}
		return printReport(b, "tokens")
	}

	if !cfg.Quiet {
		for _, tok := range toks {
			printToken(tok)
		}
	}
	return nil
}

func printToken(tok token.Token) {
	var out string
	if showKind {
		out = fmt.Sprintf("[%-10s]", tok.Kind)
	}
	if tok.Kind == token.EOF {
		out += " EOF"
	} else if tok.Literal != nil {
		out += fmt.Sprintf(" %q", tok.Lexeme)
	} else {
		out += fmt.Sprintf(" %s", tok.Lexeme)
	}
	if showPos {
		out += fmt.Sprintf(" @%d:%d", tok.Line, tok.Column)
	}
	fmt.Println(out)
}
