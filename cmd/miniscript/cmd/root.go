package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/miniscript/internal/config"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	cfgPath    string
	cfgVerbose bool
	cfgQuiet   bool
	cfgFormat  string
	cfgFilter  string

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "miniscript",
	Short: "MiniScript compiler front end",
	Long: `miniscript is a teaching compiler front end for MiniScript: a small
statically-typed imperative language with ints, floats, bools, strings,
and auto-typed variables.

The pipeline is lexer -> parser -> scope-aware semantic analyzer -> TAC
(three-address code) generator.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("failed to load config %s: %w", cfgPath, err)
		}
		cfg = loaded

		// Flags win over the config file: only overwrite a config field
		// when its flag was explicitly set.
		if cmd.Flags().Changed("verbose") {
			cfg.Verbose = cfgVerbose
		}
		if cmd.Flags().Changed("quiet") {
			cfg.Quiet = cfgQuiet
		}
		if cmd.Flags().Changed("format") {
			cfg.Format = cfgFormat
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".miniscript.yml", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&cfgVerbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&cfgQuiet, "quiet", "q", false, "suppress extended output")
	rootCmd.PersistentFlags().StringVar(&cfgFormat, "format", "text", "output format: text or json")
	rootCmd.PersistentFlags().StringVar(&cfgFilter, "filter", "", "dotted-path field to print from the JSON report (--format json only)")
}
