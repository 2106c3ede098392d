package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/miniscript/internal/ast"
	"github.com/cwbudde/miniscript/internal/errors"
	"github.com/cwbudde/miniscript/internal/lexer"
	"github.com/cwbudde/miniscript/internal/parser"
	"github.com/cwbudde/miniscript/internal/report"
)

var parseDumpAST bool

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a MiniScript file and display the AST",
	Long: `Parse MiniScript source code and display its Abstract Syntax Tree.

Examples:
  miniscript parse script.ms
  miniscript parse --dump-ast script.ms
  miniscript parse --format json script.ms`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the full AST node tree")
}

func runParse(cmd *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	input := string(content)

	toks := lexer.New(input).Tokenize()
	p := parser.New(toks)
	program := p.Parse()

	if len(p.Errors()) > 0 {
		compilerErrors := errors.FromStringErrors(p.Errors(), input, filename)
		fmt.Fprint(os.Stderr, errors.FormatErrors(compilerErrors, true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("parsing failed with %d error(s)", len(p.Errors()))
	}

	if cfg.Format == "json" {
		b := report.NewBuilder()
		b.SetStatementCount(len(program.Statements))
		return printReport(b, "ast")
	}

	if cfg.Quiet {
		return nil
	}

	if parseDumpAST {
		dumpNode(program, 0)
	} else {
		fmt.Println(program.String())
	}
	return nil
}

func dumpNode(node any, indent int) {
	pad := strings.Repeat("  ", indent)

	switch n := node.(type) {
	case *ast.Program:
		fmt.Printf("%sProgram (%d statements)\n", pad, len(n.Statements))
		for _, stmt := range n.Statements {
			dumpNode(stmt, indent+1)
		}
	case *ast.Block:
		fmt.Printf("%sBlock (%d statements)\n", pad, len(n.Statements))
		for _, stmt := range n.Statements {
			dumpNode(stmt, indent+1)
		}
	case *ast.VarDeclaration:
		fmt.Printf("%sVarDeclaration %s\n", pad, n.Name)
		if n.Value != nil {
			dumpNode(n.Value, indent+1)
		}
	case *ast.Assignment:
		fmt.Printf("%sAssignment %s\n", pad, n.Name)
		dumpNode(n.Value, indent+1)
	case *ast.PrintStatement:
		fmt.Printf("%sPrintStatement\n", pad)
		dumpNode(n.Value, indent+1)
	case *ast.ReturnStatement:
		fmt.Printf("%sReturnStatement\n", pad)
		if n.Value != nil {
			dumpNode(n.Value, indent+1)
		}
	case *ast.IfStatement:
		fmt.Printf("%sIfStatement\n", pad)
		fmt.Printf("%s  Condition:\n", pad)
		dumpNode(n.Condition, indent+2)
		fmt.Printf("%s  Then:\n", pad)
		dumpNode(n.Then, indent+2)
		if n.Else != nil {
			fmt.Printf("%s  Else:\n", pad)
			dumpNode(n.Else, indent+2)
		}
	case *ast.WhileStatement:
		fmt.Printf("%sWhileStatement\n", pad)
		fmt.Printf("%s  Condition:\n", pad)
		dumpNode(n.Condition, indent+2)
		dumpNode(n.Body, indent+1)
	case *ast.ForStatement:
		fmt.Printf("%sForStatement\n", pad)
		if n.Init != nil {
			fmt.Printf("%s  Init:\n", pad)
			dumpNode(n.Init, indent+2)
		}
		if n.Condition != nil {
			fmt.Printf("%s  Condition:\n", pad)
			dumpNode(n.Condition, indent+2)
		}
		if n.Update != nil {
			fmt.Printf("%s  Update:\n", pad)
			dumpNode(n.Update, indent+2)
		}
		dumpNode(n.Body, indent+1)
	case *ast.FunctionDeclaration:
		fmt.Printf("%sFunctionDeclaration %s(%s)\n", pad, n.Name, strings.Join(n.Parameters, ", "))
		dumpNode(n.Body, indent+1)
	case *ast.BinaryOp:
		fmt.Printf("%sBinaryOp (%s)\n", pad, n.Operator)
		dumpNode(n.Left, indent+1)
		dumpNode(n.Right, indent+1)
	case *ast.UnaryOp:
		fmt.Printf("%sUnaryOp (%s)\n", pad, n.Operator)
		dumpNode(n.Operand, indent+1)
	case *ast.FunctionCall:
		fmt.Printf("%sFunctionCall %s\n", pad, n.Name)
		for _, a := range n.Arguments {
			dumpNode(a, indent+1)
		}
	case *ast.Identifier:
		fmt.Printf("%sIdentifier: %s\n", pad, n.Name)
	case *ast.IntLiteral:
		fmt.Printf("%sIntLiteral: %d\n", pad, n.Value)
	case *ast.FloatLiteral:
		fmt.Printf("%sFloatLiteral: %g\n", pad, n.Value)
	case *ast.StringLiteral:
		fmt.Printf("%sStringLiteral: %q\n", pad, n.Value)
	case *ast.BoolLiteral:
		fmt.Printf("%sBoolLiteral: %v\n", pad, n.Value)
	default:
		fmt.Printf("%s%T: %v\n", pad, node, node)
	}
}
