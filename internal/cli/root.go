package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "refprune",
		Short: "Prune unused weapon attachments and dangling references from a mod",
		Long: `Refprune removes attachment definitions no weapon uses anymore, removes
weapons you name, and cleans up the quest rewards, presets, trader assorts
and loot entries that still point at what was removed.

Usage is decided by text containment: an id counts as used wherever its text
appears. Files are rewritten in place without a backup; use --dry-run first.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./refprune.yaml when present)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log every scanned file")

	pruneCmd := &cobra.Command{
		Use:   "prune [root]",
		Short: "Prune unused attachments and records referencing removed ids",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunPrune,
	}
	addLayoutFlags(pruneCmd)
	pruneCmd.Flags().Bool("dry-run", false, "Report what would change without writing files")
	pruneCmd.Flags().Int("indent", 2, "Spaces per level in rewritten files (0 for tabs)")
	pruneCmd.Flags().Int("cache-size", 0, "Number of file contents kept in memory (default: 512)")
	pruneCmd.Flags().String("log-file", "", "Also write a JSON log to this file")
	pruneCmd.Flags().Bool("json", false, "Print machine-readable run summary")

	// Inspect Commands
	doctorCmd := &cobra.Command{
		Use:   "doctor [root]",
		Short: "Check that a mod root has the folders and files prune needs",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunDoctor,
	}
	addLayoutFlags(doctorCmd)
	doctorCmd.Flags().Bool("json", false, "Print machine-readable doctor output")

	refsCmd := &cobra.Command{
		Use:   "refs <id> [root]",
		Short: "List content files that reference an identifier",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  RunRefs,
	}
	addLayoutFlags(refsCmd)
	refsCmd.Flags().Bool("json", false, "Print machine-readable matches")

	initCmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default refprune.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunInit,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "refprune %s\n", version)
		},
	}

	rootCmd.AddCommand(
		pruneCmd,
		doctorCmd,
		refsCmd,
		initCmd,
		versionCmd,
	)

	return rootCmd
}
