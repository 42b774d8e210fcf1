package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/parasti/neverball-checker/internal/report"
)

var (
	checkShowFound bool
	checkOverrides bool
	checkDiff      bool
)

var checkCmd = &cobra.Command{
	Use:   "check <set-file>",
	Short: "Audit a level set's asset dependencies",
	Long: `check reads the set manifest, follows every level and its background
chain, and verifies that each referenced image, audio track, material,
companion map and model resolves in the addon or base store. The command
fails when anything is missing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(args[0])
		if err != nil {
			return err
		}
		out, err := s.audit()
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		missing := report.Print(w, out, report.Options{ShowFound: checkShowFound})

		if checkOverrides || checkDiff {
			n := report.PrintOverrides(w, s.res, os.ReadFile, checkDiff)
			fmt.Fprintf(w, "%d overridden\n", n)
		}

		if missing > 0 {
			return fmt.Errorf("%d missing asset(s)", missing)
		}
		return nil
	},
}

func init() {
	f := checkCmd.Flags()
	f.BoolVar(&checkShowFound, "found", false, "also list found assets")
	f.BoolVar(&checkOverrides, "overrides", false, "list addon files that shadow a base file")
	f.BoolVar(&checkDiff, "diff", false, "show unified diffs for shadowed text files (implies --overrides)")
}
