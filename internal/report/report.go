// Package report assembles the CLI's --format json output: a single JSON
// document describing a compile run's tokens, AST summary, symbol table,
// and TAC listing, built incrementally field by field the same way the TAC
// listing itself is built instruction by instruction.
package report

import (
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/cwbudde/miniscript/internal/semantic"
	"github.com/cwbudde/miniscript/internal/tac"
	"github.com/cwbudde/miniscript/pkg/token"
)

// Builder accumulates a JSON document field by field via sjson, rather than
// marshaling a struct in one shot, so a caller can add tokens, symbols, and
// TAC instructions as each stage of the pipeline produces them.
type Builder struct {
	json []byte
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{json: []byte("{}")}
}

func (b *Builder) set(path string, value any) {
	next, err := sjson.SetBytes(b.json, path, value)
	if err != nil {
		// sjson only fails on malformed paths, which are all constants
		// below; a failure here is a programming error, not a runtime one.
		panic(err)
	}
	b.json = next
}

// AddToken records token i in the "tokens" array.
func (b *Builder) AddToken(i int, tok token.Token) {
	prefix := sjsonPath("tokens", i)
	b.set(prefix+".kind", tok.Kind.String())
	b.set(prefix+".lexeme", tok.Lexeme)
	b.set(prefix+".line", tok.Line)
	b.set(prefix+".column", tok.Column)
}

// SetStatementCount records the top-level statement count as the AST
// summary (§2's AST is not itself serialized; a full tree dump belongs to
// the text-mode AST dump, not the JSON report).
func (b *Builder) SetStatementCount(n int) {
	b.set("ast.statementCount", n)
}

// AddSymbol records symbol i in the "symbols" array.
func (b *Builder) AddSymbol(i int, sym *semantic.Symbol) {
	prefix := sjsonPath("symbols", i)
	b.set(prefix+".name", sym.Name)
	b.set(prefix+".type", sym.DataType)
	b.set(prefix+".scope", sym.ScopeLevel)
	b.set(prefix+".function", sym.IsFunction)
}

// AddInstruction records TAC instruction i in the "tac" array, including
// its rendered text form alongside the individual op/arg1/arg2/result
// fields so §8 property 13 (gjson round-trip on "tac.N.op") holds.
func (b *Builder) AddInstruction(i int, instr tac.Instruction) {
	prefix := sjsonPath("tac", i)
	b.set(prefix+".op", instr.Op)
	b.set(prefix+".arg1", instr.Arg1)
	b.set(prefix+".arg2", instr.Arg2)
	b.set(prefix+".result", instr.Result)
	b.set(prefix+".text", instr.String())
}

// SetErrors records a stage's error strings verbatim under path (one of
// "lexErrors", "parseErrors", "semanticErrors").
func (b *Builder) SetErrors(path string, errs []string) {
	b.set(path, errs)
}

// JSON returns the assembled document.
func (b *Builder) JSON() []byte {
	return b.json
}

// String returns the assembled document as a string.
func (b *Builder) String() string {
	return string(b.json)
}

// Filter extracts the field at the given dotted gjson path (e.g. "tac.0.op")
// from an assembled report. The bool result is false if the path matched
// nothing.
func Filter(reportJSON []byte, path string) (string, bool) {
	result := gjson.GetBytes(reportJSON, path)
	if !result.Exists() {
		return "", false
	}
	return result.String(), true
}

func sjsonPath(array string, index int) string {
	return array + "." + strconv.Itoa(index)
}
