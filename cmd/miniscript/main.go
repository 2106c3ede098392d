// Command miniscript is the MiniScript compiler CLI: lex, parse, and
// compile subcommands driving the lexer/parser/semantic analyzer/TAC
// generator pipeline.
package main

import (
	"os"

	"github.com/cwbudde/miniscript/cmd/miniscript/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
