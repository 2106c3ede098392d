package cmd

import (
	"fmt"

	"github.com/cwbudde/miniscript/internal/report"
)

// printReport prints an assembled report's JSON, or, when --filter was
// given, just the one dotted-path field it names (e.g. "tac.0.op").
func printReport(b *report.Builder, stage string) error {
	doc := b.JSON()
	if cfgFilter == "" {
		fmt.Println(b.String())
		return nil
	}
	value, ok := report.Filter(doc, cfgFilter)
	if !ok {
		return fmt.Errorf("filter path %q not found in %s report", cfgFilter, stage)
	}
	fmt.Println(value)
	return nil
}
