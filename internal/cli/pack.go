package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parasti/neverball-checker/internal/overlay"
	"github.com/parasti/neverball-checker/internal/pack"
	"github.com/parasti/neverball-checker/internal/report"
)

var (
	packOutput string
	packForce  bool
	packStrays bool
)

var packCmd = &cobra.Command{
	Use:   "pack <set-file>",
	Short: "Package a set's genuinely new addon files into a zip",
	Long: `pack audits the set like check does, then writes a minimal distributable
archive: the set manifest plus every addon file the set references that has
no counterpart in the base store. Archive entries use logical paths, so the
zip unpacks straight into a data directory.`,
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
		if !out.OK() {
			report.Print(w, out, report.Options{})
			if !packForce {
				return fmt.Errorf("refusing to pack a set with %d missing asset(s); use --force to override", len(out.Missing))
			}
			s.logger.Warn("packing despite missing assets", "missing", len(out.Missing))
		}

		items := pack.Select(s.res)
		// The manifest itself always ships; a set archive without it is
		// useless to the game.
		items = append([]pack.Item{{Source: s.setPath, Name: s.setName}}, items...)

		if err := pack.WriteArchive(packOutput, items); err != nil {
			return fmt.Errorf("write archive: %w", err)
		}
		fmt.Fprintf(w, "wrote %s (%d files)\n", packOutput, len(items))

		if packStrays {
			strays, err := pack.Strays(s.res.AddonDir(), referencedAddonPaths(s.res), map[string]struct{}{s.setName: {}})
			if err != nil {
				return fmt.Errorf("stray scan: %w", err)
			}
			for _, p := range strays {
				fmt.Fprintf(w, "STRAY %s\n", p)
			}
			fmt.Fprintf(w, "%d stray addon file(s)\n", len(strays))
		}
		return nil
	},
}

// referencedAddonPaths collects every logical path the audit resolved into
// the addon store, shadowed or not.
func referencedAddonPaths(res *overlay.Resolver) map[string]struct{} {
	out := make(map[string]struct{}, 16)
	for _, rec := range res.Records() {
		if rec.Origin == overlay.OriginAddon {
			out[rec.Logical] = struct{}{}
		}
	}
	return out
}

func init() {
	f := packCmd.Flags()
	f.StringVarP(&packOutput, "output", "o", "", "output zip path (required)")
	f.BoolVar(&packForce, "force", false, "pack even when the audit reports missing assets")
	f.BoolVar(&packStrays, "strays", false, "list addon files the set never references")
	packCmd.MarkFlagRequired("output")
}
