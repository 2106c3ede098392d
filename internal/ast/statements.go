package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde/miniscript/pkg/token"
)

// VarDeclaration declares a new variable. MiniScript has no declaration-site
// type annotations: every declared variable is typed "auto" and the
// initializer's type, if any, is inferred but never used to refine it.
type VarDeclaration struct {
	Token token.Token // the 'var' token
	Name  string
	Value Expression // nil for "var x;"
}

func (vd *VarDeclaration) statementNode()       {}
func (vd *VarDeclaration) TokenLiteral() string { return vd.Token.Lexeme }
func (vd *VarDeclaration) Pos() (int, int)      { return vd.Token.Line, vd.Token.Column }
func (vd *VarDeclaration) String() string {
	var out bytes.Buffer
	out.WriteString("var ")
	out.WriteString(vd.Name)
	if vd.Value != nil {
		out.WriteString(" = ")
		out.WriteString(vd.Value.String())
	}
	out.WriteString(";")
	return out.String()
}

// Assignment assigns a new value to an already-declared variable.
type Assignment struct {
	Token token.Token // the identifier token on the left
	Name  string
	Value Expression
}

func (a *Assignment) statementNode()       {}
func (a *Assignment) TokenLiteral() string { return a.Token.Lexeme }
func (a *Assignment) Pos() (int, int)      { return a.Token.Line, a.Token.Column }
func (a *Assignment) String() string {
	return a.Name + " = " + a.Value.String() + ";"
}

// PrintStatement prints the value of an expression.
type PrintStatement struct {
	Token token.Token // the 'print' token
	Value Expression
}

func (ps *PrintStatement) statementNode()       {}
func (ps *PrintStatement) TokenLiteral() string { return ps.Token.Lexeme }
func (ps *PrintStatement) Pos() (int, int)      { return ps.Token.Line, ps.Token.Column }
func (ps *PrintStatement) String() string {
	return "print " + ps.Value.String() + ";"
}

// ReturnStatement returns from the enclosing function, optionally with a
// value.
type ReturnStatement struct {
	Token token.Token // the 'return' token
	Value Expression  // nil for a bare "return;"
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Lexeme }
func (rs *ReturnStatement) Pos() (int, int)      { return rs.Token.Line, rs.Token.Column }
func (rs *ReturnStatement) String() string {
	if rs.Value == nil {
		return "return;"
	}
	return "return " + rs.Value.String() + ";"
}

// Block is a brace-delimited sequence of statements forming the body of an
// if/else, while, for, or function.
type Block struct {
	Token      token.Token // the '{' token
	Statements []Statement
}

func (b *Block) statementNode()       {}
func (b *Block) TokenLiteral() string { return b.Token.Lexeme }
func (b *Block) Pos() (int, int)      { return b.Token.Line, b.Token.Column }
func (b *Block) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, s := range b.Statements {
		out.WriteString(s.String())
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}

// IfStatement is a conditional with a required then-branch and an optional
// else-branch. No new scope is introduced for either branch (§4.4).
type IfStatement struct {
	Token     token.Token // the 'if' token
	Condition Expression
	Then      *Block
	Else      *Block // nil when there is no else clause
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Lexeme }
func (is *IfStatement) Pos() (int, int)      { return is.Token.Line, is.Token.Column }
func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(is.Condition.String())
	out.WriteString(") ")
	out.WriteString(is.Then.String())
	if is.Else != nil {
		out.WriteString(" else ")
		out.WriteString(is.Else.String())
	}
	return out.String()
}

// WhileStatement repeats Body while Condition evaluates to true. Like
// IfStatement, no new scope is introduced for the body.
type WhileStatement struct {
	Token     token.Token // the 'while' token
	Condition Expression
	Body      *Block
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Lexeme }
func (ws *WhileStatement) Pos() (int, int)      { return ws.Token.Line, ws.Token.Column }
func (ws *WhileStatement) String() string {
	return "while (" + ws.Condition.String() + ") " + ws.Body.String()
}

// ForStatement is a C-style counted loop: Init runs once inside a scope that
// spans the whole loop, Condition is checked before each iteration, Update
// runs after each iteration's body. Init, Condition and Update may all be
// nil/absent.
type ForStatement struct {
	Token     token.Token // the 'for' token
	Init      Statement   // *VarDeclaration, *Assignment, or nil
	Condition Expression  // nil means "always true"
	Update    *Assignment // nil when absent
	Body      *Block
}

func (fs *ForStatement) statementNode()       {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Lexeme }
func (fs *ForStatement) Pos() (int, int)      { return fs.Token.Line, fs.Token.Column }
func (fs *ForStatement) String() string {
	var out bytes.Buffer
	out.WriteString("for (")
	if fs.Init != nil {
		out.WriteString(fs.Init.String())
	} else {
		out.WriteString(";")
	}
	out.WriteString(" ")
	if fs.Condition != nil {
		out.WriteString(fs.Condition.String())
	}
	out.WriteString("; ")
	if fs.Update != nil {
		out.WriteString(fs.Update.String())
	}
	out.WriteString(") ")
	out.WriteString(fs.Body.String())
	return out.String()
}

// FunctionDeclaration declares a named function. Parameters are plain names
// (MiniScript has no parameter type annotations); the function's own return
// type is untracked and treated as "auto" throughout (§4.4, §9).
type FunctionDeclaration struct {
	Token      token.Token // the 'func' token
	Name       string
	Parameters []string
	Body       *Block
}

func (fd *FunctionDeclaration) statementNode()       {}
func (fd *FunctionDeclaration) TokenLiteral() string { return fd.Token.Lexeme }
func (fd *FunctionDeclaration) Pos() (int, int)      { return fd.Token.Line, fd.Token.Column }
func (fd *FunctionDeclaration) String() string {
	var out bytes.Buffer
	out.WriteString("func ")
	out.WriteString(fd.Name)
	out.WriteString("(")
	out.WriteString(strings.Join(fd.Parameters, ", "))
	out.WriteString(") ")
	out.WriteString(fd.Body.String())
	return out.String()
}
