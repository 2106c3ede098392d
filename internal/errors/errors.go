// Package errors formats the raw `[]string` error lists produced by the
// lexer, parser, and semantic analyzer into source-excerpted diagnostics
// for the CLI: a header, the offending line with a gutter, and a caret
// pointing at the column.
package errors

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// CompilerError is a single diagnostic with enough context to render a
// source excerpt. Line and Column are 0 when a stage error carried no
// position (e.g. an "Unexpected token" message with no line info at all).
type CompilerError struct {
	Message string
	Source  string
	File    string
	Line    int
	Column  int
}

// NewCompilerError returns a CompilerError ready to Format.
func NewCompilerError(line, column int, message, source, file string) *CompilerError {
	return &CompilerError{Line: line, Column: column, Message: message, Source: source, File: file}
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the error with a one-line source excerpt and a caret
// pointing at the column. When color is true, ANSI codes highlight the
// header and caret.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", e.File, e.Line, e.Column))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", e.Line, e.Column))
	}

	if line := e.sourceLine(e.Line); line != "" {
		gutter := fmt.Sprintf("%4d | ", e.Line)
		sb.WriteString(gutter)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(gutter)+max(e.Column-1, 0)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *CompilerError) sourceLine(lineNum int) string {
	if e.Source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// FormatErrors renders a batch of CompilerErrors, numbering them when there
// is more than one.
func FormatErrors(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Compilation failed with %d error(s):\n\n", len(errs)))
	for i, err := range errs {
		sb.WriteString(fmt.Sprintf("[Error %d of %d]\n", i+1, len(errs)))
		sb.WriteString(err.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

var (
	lineColonColumn = regexp.MustCompile(`^Line (\d+), Column (\d+): (.*)$`)
	atLineColumn    = regexp.MustCompile(`^(.*) at line (\d+), column (\d+)$`)
	atLineOnly      = regexp.MustCompile(`^(.*) at line (\d+)$`)
)

// FromStringErrors adapts a stage's raw error strings (lexer/parser/semantic
// wording differs: "Line L, Column C: text", "text at line L, column C", or
// "text at line L") into CompilerErrors carrying the same source and file so
// the CLI can render them uniformly.
func FromStringErrors(stageErrors []string, source, file string) []*CompilerError {
	out := make([]*CompilerError, 0, len(stageErrors))
	for _, raw := range stageErrors {
		line, column, message := parseStageError(raw)
		out = append(out, NewCompilerError(line, column, message, source, file))
	}
	return out
}

func parseStageError(raw string) (line, column int, message string) {
	if m := lineColonColumn.FindStringSubmatch(raw); m != nil {
		line, _ = strconv.Atoi(m[1])
		column, _ = strconv.Atoi(m[2])
		return line, column, m[3]
	}
	if m := atLineColumn.FindStringSubmatch(raw); m != nil {
		line, _ = strconv.Atoi(m[2])
		column, _ = strconv.Atoi(m[3])
		return line, column, m[1]
	}
	if m := atLineOnly.FindStringSubmatch(raw); m != nil {
		line, _ = strconv.Atoi(m[2])
		return line, 0, m[1]
	}
	return 0, 0, raw
}
