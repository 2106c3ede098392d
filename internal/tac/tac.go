// Package tac lowers a semantically-checked AST into linear three-address
// code: a flat instruction list with fresh temporaries and labels.
package tac

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/miniscript/internal/ast"
)

// Instruction is one three-address-code line: an operation plus up to two
// argument strings and an optional result name. An empty string means the
// corresponding field is absent, matching the original generator's
// truthiness checks — none of arg1/arg2/result/op is ever legitimately the
// empty string for an emitted instruction.
type Instruction struct {
	Op     string
	Arg1   string
	Arg2   string
	Result string
}

// String renders the instruction per §4.5's five rendering cases.
func (i Instruction) String() string {
	switch {
	case i.Result != "" && i.Arg2 != "":
		return fmt.Sprintf("%s = %s %s %s", i.Result, i.Arg1, i.Op, i.Arg2)
	case i.Result != "":
		return fmt.Sprintf("%s = %s %s", i.Result, i.Op, i.Arg1)
	case i.Arg2 != "":
		return fmt.Sprintf("%s %s %s", i.Op, i.Arg1, i.Arg2)
	case i.Arg1 != "":
		return fmt.Sprintf("%s %s", i.Op, i.Arg1)
	default:
		return i.Op
	}
}

// Generator walks a Program and produces its TAC instruction list, handing
// out strictly-increasing temporary and label names as it goes.
type Generator struct {
	instructions []Instruction
	tempCounter  int
	labelCounter int
}

// New returns a Generator ready to lower a Program.
func New() *Generator {
	return &Generator{}
}

func (g *Generator) newTemp() string {
	g.tempCounter++
	return fmt.Sprintf("t%d", g.tempCounter)
}

func (g *Generator) newLabel() string {
	g.labelCounter++
	return fmt.Sprintf("L%d", g.labelCounter)
}

func (g *Generator) emit(op, arg1, arg2, result string) string {
	g.instructions = append(g.instructions, Instruction{Op: op, Arg1: arg1, Arg2: arg2, Result: result})
	return result
}

// Generate lowers every statement in program and returns the resulting
// instruction list.
func (g *Generator) Generate(program *ast.Program) []Instruction {
	for _, stmt := range program.Statements {
		g.visitStatement(stmt)
	}
	return g.instructions
}

// Instructions returns everything emitted so far.
func (g *Generator) Instructions() []Instruction {
	return g.instructions
}

func (g *Generator) visitStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDeclaration:
		g.visitVarDeclaration(s)
	case *ast.Assignment:
		g.visitAssignment(s)
	case *ast.IfStatement:
		g.visitIfStatement(s)
	case *ast.WhileStatement:
		g.visitWhileStatement(s)
	case *ast.ForStatement:
		g.visitForStatement(s)
	case *ast.FunctionDeclaration:
		g.visitFunctionDeclaration(s)
	case *ast.ReturnStatement:
		g.visitReturnStatement(s)
	case *ast.PrintStatement:
		g.visitPrintStatement(s)
	}
}

func (g *Generator) visitBlock(block *ast.Block) {
	if block == nil {
		return
	}
	for _, stmt := range block.Statements {
		g.visitStatement(stmt)
	}
}

func (g *Generator) visitVarDeclaration(node *ast.VarDeclaration) {
	if node.Value == nil {
		return
	}
	value := g.visitExpression(node.Value)
	g.emit("ASSIGN", value, "", node.Name)
}

func (g *Generator) visitAssignment(node *ast.Assignment) {
	value := g.visitExpression(node.Value)
	g.emit("ASSIGN", value, "", node.Name)
}

func (g *Generator) visitIfStatement(node *ast.IfStatement) {
	cond := g.visitExpression(node.Condition)

	falseLabel := g.newLabel()
	endLabel := g.newLabel()

	g.emit("IF_FALSE", cond, falseLabel, "")
	g.visitBlock(node.Then)
	g.emit("GOTO", endLabel, "", "")
	g.emit("LABEL", falseLabel, "", "")
	if node.Else != nil {
		g.visitBlock(node.Else)
	}
	g.emit("LABEL", endLabel, "", "")
}

func (g *Generator) visitWhileStatement(node *ast.WhileStatement) {
	loopLabel := g.newLabel()
	endLabel := g.newLabel()

	g.emit("LABEL", loopLabel, "", "")
	cond := g.visitExpression(node.Condition)
	g.emit("IF_FALSE", cond, endLabel, "")
	g.visitBlock(node.Body)
	g.emit("GOTO", loopLabel, "", "")
	g.emit("LABEL", endLabel, "", "")
}

func (g *Generator) visitForStatement(node *ast.ForStatement) {
	if node.Init != nil {
		g.visitStatement(node.Init)
	}

	loopLabel := g.newLabel()
	endLabel := g.newLabel()

	g.emit("LABEL", loopLabel, "", "")
	if node.Condition != nil {
		cond := g.visitExpression(node.Condition)
		g.emit("IF_FALSE", cond, endLabel, "")
	}
	g.visitBlock(node.Body)
	if node.Update != nil {
		g.visitStatement(node.Update)
	}
	g.emit("GOTO", loopLabel, "", "")
	g.emit("LABEL", endLabel, "", "")
}

func (g *Generator) visitFunctionDeclaration(node *ast.FunctionDeclaration) {
	g.emit("FUNCTION", node.Name, "", "")
	for _, param := range node.Parameters {
		g.emit("PARAM", param, "", "")
	}
	g.visitBlock(node.Body)
	g.emit("RETURN", "", "", "")
}

func (g *Generator) visitReturnStatement(node *ast.ReturnStatement) {
	if node.Value == nil {
		g.emit("RETURN", "", "", "")
		return
	}
	value := g.visitExpression(node.Value)
	g.emit("RETURN", value, "", "")
}

func (g *Generator) visitPrintStatement(node *ast.PrintStatement) {
	value := g.visitExpression(node.Value)
	g.emit("PRINT", value, "", "")
}

func (g *Generator) visitExpression(expr ast.Expression) string {
	switch e := expr.(type) {
	case *ast.BinaryOp:
		return g.visitBinaryOp(e)
	case *ast.UnaryOp:
		return g.visitUnaryOp(e)
	case *ast.Identifier:
		return e.Name
	case *ast.IntLiteral:
		return strconv.FormatInt(e.Value, 10)
	case *ast.FloatLiteral:
		return strconv.FormatFloat(e.Value, 'g', -1, 64)
	case *ast.StringLiteral:
		return "\"" + e.Value + "\""
	case *ast.BoolLiteral:
		return strconv.FormatBool(e.Value)
	case *ast.FunctionCall:
		return g.visitFunctionCall(e)
	default:
		return "unknown"
	}
}

func (g *Generator) visitBinaryOp(node *ast.BinaryOp) string {
	left := g.visitExpression(node.Left)
	right := g.visitExpression(node.Right)

	result := g.newTemp()
	g.emit(node.Operator, left, right, result)
	return result
}

func (g *Generator) visitUnaryOp(node *ast.UnaryOp) string {
	operand := g.visitExpression(node.Operand)

	result := g.newTemp()
	g.emit(node.Operator, operand, "", result)
	return result
}

func (g *Generator) visitFunctionCall(node *ast.FunctionCall) string {
	for _, arg := range node.Arguments {
		value := g.visitExpression(arg)
		g.emit("ARG", value, "", "")
	}

	result := g.newTemp()
	g.emit("CALL", node.Name, "", result)
	return result
}

// Listing renders instructions in the CLI's stable, test-comparable format:
// one "%3d: <rendering>" line per instruction, newline-joined.
func Listing(instructions []Instruction) string {
	lines := make([]string, len(instructions))
	for i, instr := range instructions {
		lines[i] = fmt.Sprintf("%3d: %s", i, instr.String())
	}
	return strings.Join(lines, "\n")
}
