// Package cli wires the checker into its command-line surface: audit a
// level set, package its addon files, report overrides.
package cli

import (
	"github.com/spf13/cobra"
)

// version can be overridden at build time via:
// go build -ldflags "-X github.com/parasti/neverball-checker/internal/cli.version=1.2.3"
var version = "0.4.0"

var (
	flagData    string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "nbcheck",
	Short: "Audit and package the assets of a Neverball level set",
	Long: `nbcheck discovers every asset a level set depends on (levels, their
background chains, images, audio, materials, companion maps and models),
resolves each against the addon directory layered over the base data
directory, and reports exactly what is missing. It can also package the
addon files that are genuinely new into a minimal distributable zip.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagData, "data", "d", "", "base data directory (default $NEVERBALL_DATA, then ./data)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(packCmd)
}
