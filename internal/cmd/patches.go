package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/uiforge/internal/errors"
	"github.com/felixgeelhaar/uiforge/internal/exitcode"
	"github.com/felixgeelhaar/uiforge/internal/patch"
)

var patchesCmd = &cobra.Command{
	Use:   "patches <dir> [<from> <to>]",
	Short: "List or show patches saved by chat --patches",
	Long: `List the patches in a directory written by 'uiforge chat --patches',
oldest first. Given two version ids, print that patch's unified diffs.
The first version of a session is diffed from "initial".`,
	Args: cobra.RangeArgs(1, 3),
	RunE: instrumented(runPatches),
}

func init() {
	rootCmd.AddCommand(patchesCmd)
}

func runPatches(cmd *cobra.Command, args []string) error {
	if len(args) == 2 {
		return exitcode.Usage(fmt.Errorf("patches needs both <from> and <to>"))
	}

	dir := args[0]
	if _, err := os.Stat(dir); err != nil {
		return errors.NewFileNotFoundError(dir)
	}

	store := patch.NewStore(dir)
	out := cmd.OutOrStdout()

	if len(args) == 3 {
		p, err := store.Load(args[1], args[2])
		if err != nil {
			return errors.Wrap(errors.ErrCodeFileReadFailed, "failed to load patch", err)
		}
		fmt.Fprintf(out, "%s: %s\n", p.Span(), p.Summary)
		for _, f := range p.Files {
			fmt.Fprint(out, f.Diff)
		}
		return nil
	}

	patches, err := store.List()
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileReadFailed, "failed to list patches", err)
	}
	if len(patches) == 0 {
		fmt.Fprintf(out, "No patches in %s\n", dir)
		return nil
	}
	for _, p := range patches {
		fmt.Fprintf(out, "%s  +%d -%d  %s\n", p.Span(), p.Insertions, p.Deletions, p.Summary)
	}
	return nil
}
