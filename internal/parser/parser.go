// Package parser implements the MiniScript recursive-descent,
// precedence-climbing parser with panic-mode error recovery.
package parser

import (
	"fmt"

	"github.com/cwbudde/miniscript/internal/ast"
	"github.com/cwbudde/miniscript/pkg/token"
)

// parseError is raised internally to unwind out of a failed statement and
// into synchronize(). It is never returned to callers of Parse.
type parseError struct{ msg string }

func (e *parseError) Error() string { return e.msg }

// Parser consumes a flat token stream (as produced by internal/lexer) and
// builds an *ast.Program, accumulating one error string per recoverable
// failure along the way.
type Parser struct {
	tokens []token.Token
	pos    int
	errors []string
}

// New returns a Parser ready to parse tokens. tokens must end with an EOF
// token, as internal/lexer guarantees.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Errors returns every parse error recorded so far.
func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) addError(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *Parser) current() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek(offset int) token.Token {
	pos := p.pos + offset
	if pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[pos]
}

func (p *Parser) advance() token.Token {
	tok := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) match(kinds ...token.Kind) bool {
	cur := p.current().Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

// consume advances past a token of the expected kind or raises a parseError
// and records it.
func (p *Parser) consume(kind token.Kind, context string) token.Token {
	if p.current().Kind != kind {
		msg := fmt.Sprintf("Expected %s, got %s at line %d", kind, p.current().Kind, p.current().Line)
		if context != "" {
			msg += ": " + context
		}
		p.addError("%s", msg)
		panic(&parseError{msg: msg})
	}
	return p.advance()
}

// synchronize recovers from a statement-level parse failure by advancing
// until a token that starts a new statement, or EOF.
func (p *Parser) synchronize() {
	p.advance()
	for !p.match(token.EOF) {
		if p.match(token.VAR, token.IF, token.WHILE, token.FUNC, token.RETURN, token.PRINT) {
			return
		}
		p.advance()
	}
}

// Parse runs the parser to completion, recovering from statement-level
// errors via synchronize, and returns the resulting Program.
func (p *Parser) Parse() *ast.Program {
	program := &ast.Program{}

	for !p.match(token.EOF) {
		stmt := p.parseStatementRecovering()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
	}

	return program
}

func (p *Parser) parseStatementRecovering() (stmt ast.Statement) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*parseError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()
	return p.statement()
}

func (p *Parser) statement() ast.Statement {
	switch {
	case p.match(token.VAR):
		return p.varDeclaration()
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.FUNC):
		return p.functionDeclaration()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.match(token.PRINT):
		return p.printStatement()
	default:
		return p.exprStatement()
	}
}

func (p *Parser) varDeclaration() *ast.VarDeclaration {
	varTok := p.consume(token.VAR, "")
	name := p.consume(token.ID, "expected variable name")

	var value ast.Expression
	if p.match(token.ASSIGN) {
		p.advance()
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "expected ';' after variable declaration")

	return &ast.VarDeclaration{Token: varTok, Name: name.Lexeme, Value: value}
}

// block parses the statements inside an already-opened '{' up to (but not
// consuming) the matching '}'.
func (p *Parser) block() *ast.Block {
	b := &ast.Block{Token: p.peek(-1)}
	for !p.match(token.RBRACE) && !p.match(token.EOF) {
		stmt := p.parseStatementRecovering()
		if stmt != nil {
			b.Statements = append(b.Statements, stmt)
		}
	}
	return b
}

func (p *Parser) ifStatement() *ast.IfStatement {
	ifTok := p.consume(token.IF, "")
	p.consume(token.LPAREN, "expected '(' after 'if'")
	cond := p.expression()
	p.consume(token.RPAREN, "expected ')' after if condition")

	p.consume(token.LBRACE, "expected '{' to start if body")
	then := p.block()
	p.consume(token.RBRACE, "expected '}' to close if body")

	var elseBlock *ast.Block
	if p.match(token.ELSE) {
		p.advance()
		p.consume(token.LBRACE, "expected '{' to start else body")
		elseBlock = p.block()
		p.consume(token.RBRACE, "expected '}' to close else body")
	}

	return &ast.IfStatement{Token: ifTok, Condition: cond, Then: then, Else: elseBlock}
}

func (p *Parser) whileStatement() *ast.WhileStatement {
	whileTok := p.consume(token.WHILE, "")
	p.consume(token.LPAREN, "expected '(' after 'while'")
	cond := p.expression()
	p.consume(token.RPAREN, "expected ')' after while condition")

	p.consume(token.LBRACE, "expected '{' to start while body")
	body := p.block()
	p.consume(token.RBRACE, "expected '}' to close while body")

	return &ast.WhileStatement{Token: whileTok, Condition: cond, Body: body}
}

func (p *Parser) forStatement() *ast.ForStatement {
	forTok := p.consume(token.FOR, "")
	p.consume(token.LPAREN, "expected '(' after 'for'")

	var init ast.Statement
	if p.match(token.SEMICOLON) {
		p.advance()
	} else if p.match(token.VAR) {
		init = p.varDeclaration()
	} else {
		init = p.exprStatement()
	}

	var cond ast.Expression
	if !p.match(token.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(token.SEMICOLON, "expected ';' after for condition")

	var update *ast.Assignment
	if !p.match(token.RPAREN) {
		update = p.exprStatement().(*ast.Assignment)
	}
	p.consume(token.RPAREN, "expected ')' after for clauses")

	p.consume(token.LBRACE, "expected '{' to start for body")
	body := p.block()
	p.consume(token.RBRACE, "expected '}' to close for body")

	return &ast.ForStatement{Token: forTok, Init: init, Condition: cond, Update: update, Body: body}
}

func (p *Parser) functionDeclaration() *ast.FunctionDeclaration {
	funcTok := p.consume(token.FUNC, "")
	name := p.consume(token.ID, "expected function name")

	p.consume(token.LPAREN, "expected '(' after function name")
	var params []string
	if !p.match(token.RPAREN) {
		params = append(params, p.consume(token.ID, "expected parameter name").Lexeme)
		for p.match(token.COMMA) {
			p.advance()
			params = append(params, p.consume(token.ID, "expected parameter name").Lexeme)
		}
	}
	p.consume(token.RPAREN, "expected ')' after parameters")

	p.consume(token.LBRACE, "expected '{' to start function body")
	body := p.block()
	p.consume(token.RBRACE, "expected '}' to close function body")

	return &ast.FunctionDeclaration{Token: funcTok, Name: name.Lexeme, Parameters: params, Body: body}
}

func (p *Parser) returnStatement() *ast.ReturnStatement {
	returnTok := p.consume(token.RETURN, "")

	var value ast.Expression
	if !p.match(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "expected ';' after return value")

	return &ast.ReturnStatement{Token: returnTok, Value: value}
}

func (p *Parser) printStatement() *ast.PrintStatement {
	printTok := p.consume(token.PRINT, "")
	value := p.expression()
	p.consume(token.SEMICOLON, "expected ';' after print expression")

	return &ast.PrintStatement{Token: printTok, Value: value}
}

// exprStatement parses the only expression statement MiniScript allows: a
// plain assignment to an identifier. Anything else — including a bare call
// used for effect — is rejected, matching §4.2's ExprStmt rule.
func (p *Parser) exprStatement() ast.Statement {
	expr := p.expression()

	if ident, ok := expr.(*ast.Identifier); ok && p.match(token.ASSIGN) {
		p.advance()
		value := p.expression()
		p.consume(token.SEMICOLON, "expected ';' after assignment")
		return &ast.Assignment{Token: ident.Token, Name: ident.Name, Value: value}
	}

	msg := "Expected assignment statement"
	p.addError("%s", msg)
	panic(&parseError{msg: msg})
}

// --- Expressions, by descending precedence (§4.2). ---

func (p *Parser) expression() ast.Expression {
	return p.logicalOr()
}

func (p *Parser) logicalOr() ast.Expression {
	expr := p.logicalAnd()
	for p.match(token.OR) {
		op := p.advance()
		right := p.logicalAnd()
		expr = &ast.BinaryOp{Token: op, Left: expr, Operator: op.Lexeme, Right: right}
	}
	return expr
}

func (p *Parser) logicalAnd() ast.Expression {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.advance()
		right := p.equality()
		expr = &ast.BinaryOp{Token: op, Left: expr, Operator: op.Lexeme, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expression {
	expr := p.comparison()
	for p.match(token.EQ, token.NE) {
		op := p.advance()
		right := p.comparison()
		expr = &ast.BinaryOp{Token: op, Left: expr, Operator: op.Lexeme, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expression {
	expr := p.additive()
	for p.match(token.LT, token.GT, token.LE, token.GE) {
		op := p.advance()
		right := p.additive()
		expr = &ast.BinaryOp{Token: op, Left: expr, Operator: op.Lexeme, Right: right}
	}
	return expr
}

func (p *Parser) additive() ast.Expression {
	expr := p.multiplicative()
	for p.match(token.PLUS, token.MINUS) {
		op := p.advance()
		right := p.multiplicative()
		expr = &ast.BinaryOp{Token: op, Left: expr, Operator: op.Lexeme, Right: right}
	}
	return expr
}

func (p *Parser) multiplicative() ast.Expression {
	expr := p.unary()
	for p.match(token.STAR, token.SLASH, token.PERCENT) {
		op := p.advance()
		right := p.unary()
		expr = &ast.BinaryOp{Token: op, Left: expr, Operator: op.Lexeme, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expression {
	if p.match(token.NOT, token.MINUS) {
		op := p.advance()
		operand := p.unary()
		return &ast.UnaryOp{Token: op, Operator: op.Lexeme, Operand: operand}
	}
	return p.call()
}

// call parses zero or more trailing '(' argument-list ')' applications.
// Only an Identifier primary may be called (§4.2's call-target rule); a call
// applied to anything else is a parse error.
func (p *Parser) call() ast.Expression {
	expr := p.primary()

	for p.match(token.LPAREN) {
		p.advance()
		var args []ast.Expression
		if !p.match(token.RPAREN) {
			args = append(args, p.expression())
			for p.match(token.COMMA) {
				p.advance()
				args = append(args, p.expression())
			}
		}
		p.consume(token.RPAREN, "expected ')' after arguments")

		ident, ok := expr.(*ast.Identifier)
		if !ok {
			msg := "Can only call functions by name"
			p.addError("%s", msg)
			panic(&parseError{msg: msg})
		}
		expr = &ast.FunctionCall{Token: ident.Token, Name: ident.Name, Arguments: args}
	}

	return expr
}

func (p *Parser) primary() ast.Expression {
	switch {
	case p.match(token.INT_LIT):
		tok := p.advance()
		return &ast.IntLiteral{Token: tok, Value: tok.Literal.(int64)}
	case p.match(token.FLOAT_LIT):
		tok := p.advance()
		return &ast.FloatLiteral{Token: tok, Value: tok.Literal.(float64)}
	case p.match(token.STRING_LIT):
		tok := p.advance()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal.(string)}
	case p.match(token.TRUE, token.FALSE):
		tok := p.advance()
		return &ast.BoolLiteral{Token: tok, Value: tok.Literal.(bool)}
	case p.match(token.ID):
		tok := p.advance()
		return &ast.Identifier{Token: tok, Name: tok.Lexeme}
	case p.match(token.LPAREN):
		p.advance()
		expr := p.expression()
		p.consume(token.RPAREN, "expected ')' after expression")
		return expr
	default:
		msg := fmt.Sprintf("Unexpected token: %s", p.current().Kind)
		p.addError("%s", msg)
		panic(&parseError{msg: msg})
	}
}
