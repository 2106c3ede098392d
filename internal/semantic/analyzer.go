// Package semantic implements the scope-aware semantic analyzer: symbol
// table management, type inference, and the error checks the tree walk
// performs over the AST.
package semantic

import (
	"fmt"

	"github.com/cwbudde/miniscript/internal/ast"
	"github.com/cwbudde/miniscript/internal/types"
)

// Analyzer walks a parsed Program, maintaining exactly one SymbolTable, and
// accumulates an ordered list of error strings (§4.4). It visits the whole
// tree regardless of errors encountered (best-effort), matching the
// original implementation's behavior.
type Analyzer struct {
	symbols *SymbolTable
	errors  []string
}

// NewAnalyzer returns an Analyzer ready to visit a Program.
func NewAnalyzer() *Analyzer {
	return &Analyzer{symbols: NewSymbolTable()}
}

// Errors returns every semantic error recorded during Analyze.
func (a *Analyzer) Errors() []string {
	return a.errors
}

// Symbols returns the analyzer's symbol table, as it stood at the end of
// the walk (useful for the CLI's symbol-table dump).
func (a *Analyzer) Symbols() *SymbolTable {
	return a.symbols
}

func (a *Analyzer) addError(node ast.Node, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if node != nil {
		line, col := node.Pos()
		msg = fmt.Sprintf("Line %d, Column %d: %s", line, col, msg)
	}
	a.errors = append(a.errors, msg)
}

// Analyze visits every statement in program and reports whether analysis
// succeeded, i.e. no errors were recorded.
func (a *Analyzer) Analyze(program *ast.Program) bool {
	for _, stmt := range program.Statements {
		a.visitStatement(stmt)
	}
	return len(a.errors) == 0
}

func (a *Analyzer) visitStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDeclaration:
		a.visitVarDeclaration(s)
	case *ast.Assignment:
		a.visitAssignment(s)
	case *ast.IfStatement:
		a.visitIfStatement(s)
	case *ast.WhileStatement:
		a.visitWhileStatement(s)
	case *ast.ForStatement:
		a.visitForStatement(s)
	case *ast.FunctionDeclaration:
		a.visitFunctionDeclaration(s)
	case *ast.ReturnStatement:
		a.visitReturnStatement(s)
	case *ast.PrintStatement:
		a.visitPrintStatement(s)
	}
}

// visitVarDeclaration declares name as type auto, regardless of the
// initializer's inferred type: a declared variable's type is never
// narrowed from its initializer (§9 Design Notes).
func (a *Analyzer) visitVarDeclaration(node *ast.VarDeclaration) {
	if !a.symbols.Declare(node.Name, types.Auto, false) {
		a.addError(node, "Variable '%s' already declared", node.Name)
	}
	if node.Value != nil {
		a.visitExpression(node.Value)
	}
}

func (a *Analyzer) visitAssignment(node *ast.Assignment) {
	sym := a.symbols.Lookup(node.Name)
	if sym == nil {
		a.addError(node, "Undeclared variable '%s'", node.Name)
	}
	if node.Value != nil {
		a.visitExpression(node.Value)
	}
}

func (a *Analyzer) visitBlock(block *ast.Block) {
	for _, stmt := range block.Statements {
		a.visitStatement(stmt)
	}
}

func (a *Analyzer) visitIfStatement(node *ast.IfStatement) {
	condType := a.visitExpression(node.Condition)
	if condType != types.Bool {
		a.addError(node, "If condition must be bool, got %s", condType)
	}
	a.visitBlock(node.Then)
	if node.Else != nil {
		a.visitBlock(node.Else)
	}
}

func (a *Analyzer) visitWhileStatement(node *ast.WhileStatement) {
	condType := a.visitExpression(node.Condition)
	if condType != types.Bool {
		a.addError(node, "While condition must be bool, got %s", condType)
	}
	a.visitBlock(node.Body)
}

func (a *Analyzer) visitForStatement(node *ast.ForStatement) {
	a.symbols.EnterScope()
	defer a.symbols.ExitScope()

	if node.Init != nil {
		a.visitStatement(node.Init)
	}
	if node.Condition != nil {
		condType := a.visitExpression(node.Condition)
		if condType != types.Bool {
			a.addError(node, "For condition must be bool, got %s", condType)
		}
	}
	if node.Update != nil {
		a.visitStatement(node.Update)
	}
	a.visitBlock(node.Body)
}

func (a *Analyzer) visitFunctionDeclaration(node *ast.FunctionDeclaration) {
	if !a.symbols.Declare(node.Name, types.Func, true) {
		a.addError(node, "Function '%s' already declared", node.Name)
	}

	a.symbols.EnterScope()
	defer a.symbols.ExitScope()

	for _, param := range node.Parameters {
		a.symbols.Declare(param, types.Auto, false)
	}
	a.visitBlock(node.Body)
}

func (a *Analyzer) visitReturnStatement(node *ast.ReturnStatement) {
	if node.Value != nil {
		a.visitExpression(node.Value)
	}
}

func (a *Analyzer) visitPrintStatement(node *ast.PrintStatement) {
	a.visitExpression(node.Value)
}

// visitExpression dispatches on the expression's dynamic type and returns
// its inferred type.
func (a *Analyzer) visitExpression(expr ast.Expression) string {
	switch e := expr.(type) {
	case *ast.BinaryOp:
		return a.visitBinaryOp(e)
	case *ast.UnaryOp:
		return a.visitUnaryOp(e)
	case *ast.Identifier:
		return a.visitIdentifier(e)
	case *ast.IntLiteral:
		return types.Int
	case *ast.FloatLiteral:
		return types.Float
	case *ast.StringLiteral:
		return types.String
	case *ast.BoolLiteral:
		return types.Bool
	case *ast.FunctionCall:
		return a.visitFunctionCall(e)
	default:
		return "unknown"
	}
}

func (a *Analyzer) visitBinaryOp(node *ast.BinaryOp) string {
	leftType := a.visitExpression(node.Left)
	rightType := a.visitExpression(node.Right)

	result, ok := types.InferBinary(leftType, node.Operator, rightType)
	if !ok {
		a.addError(node, "Invalid operation: %s %s %s", leftType, node.Operator, rightType)
		return types.Error
	}
	return result
}

func (a *Analyzer) visitUnaryOp(node *ast.UnaryOp) string {
	operandType := a.visitExpression(node.Operand)

	result, ok := types.InferUnary(node.Operator, operandType)
	if !ok {
		a.addError(node, "Invalid unary operation: %s %s", node.Operator, operandType)
		return types.Error
	}
	return result
}

func (a *Analyzer) visitIdentifier(node *ast.Identifier) string {
	sym := a.symbols.Lookup(node.Name)
	if sym == nil {
		a.addError(node, "Undeclared variable '%s'", node.Name)
		return types.Error
	}
	return sym.DataType
}

func (a *Analyzer) visitFunctionCall(node *ast.FunctionCall) string {
	result := types.Auto
	sym := a.symbols.Lookup(node.Name)
	if sym == nil {
		a.addError(node, "Undeclared function '%s'", node.Name)
		result = types.Error
	} else if !sym.IsFunction {
		a.addError(node, "'%s' is not a function", node.Name)
		result = types.Error
	}
	for _, arg := range node.Arguments {
		a.visitExpression(arg)
	}
	return result
}
